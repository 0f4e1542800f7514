package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the site layout and the data source locations. Sources may
// be local paths or HTTP URLs.
type Config struct {
	Site struct {
		Title    string `yaml:"title"`
		PagesDir string `yaml:"pages_dir"`
		Manifest string `yaml:"manifest"`
	} `yaml:"site"`
	Data struct {
		Collection     string `yaml:"collection"`
		LiveHistory    string `yaml:"live_history"`
		SubmittedMusic string `yaml:"submitted_music"`
	} `yaml:"data"`
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
}

// Load reads the YAML config at path, after loading .env if present. A
// missing config file is not an error; defaults apply. Environment
// variables override both.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := &Config{}

	// 2. Load YAML config when present
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with environment variables if present
	if v := os.Getenv("DJSITE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DJSITE_PAGES_DIR"); v != "" {
		cfg.Site.PagesDir = v
	}
	if v := os.Getenv("DJSITE_MANIFEST"); v != "" {
		cfg.Site.Manifest = v
	}
	if v := os.Getenv("DJSITE_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "DJ Site"
	}
	if c.Site.PagesDir == "" {
		c.Site.PagesDir = "pages"
	}
	if c.Site.Manifest == "" {
		c.Site.Manifest = "pages/pages.json"
	}
	if c.Data.Collection == "" {
		c.Data.Collection = "site_data/deejay_set_collection.json"
	}
	if c.Data.LiveHistory == "" {
		c.Data.LiveHistory = "site_data/recent_history.json"
	}
	if c.Data.SubmittedMusic == "" {
		c.Data.SubmittedMusic = "site_data/submitted_music.json"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:*"}
	}
}
