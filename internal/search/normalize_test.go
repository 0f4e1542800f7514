package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeForSearch_LowerCasesOnly(t *testing.T) {
	assert.Equal(t, "dj marvel", NormalizeForSearch("DJ Marvel"))
	assert.Equal(t, "b2b session!", NormalizeForSearch("B2B Session!"))
	assert.Equal(t, "", NormalizeForSearch(""))
}

func TestNormalizeToken_StripsSeparators(t *testing.T) {
	assert.Equal(t, "b2b", NormalizeToken("B2B"))
	assert.Equal(t, "b2b", NormalizeToken("B-2-B"))
	assert.Equal(t, "djmarvel", NormalizeToken("DJ Marvel"))
	assert.Equal(t, "djmarvel", NormalizeToken("dj_marvel"))
	assert.Equal(t, "", NormalizeToken("!!! ---"))
	assert.Equal(t, "", NormalizeToken(""))
}

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;&amp;&quot;x&#39;s&quot;&lt;/b&gt;", EscapeHTML(`<b>&"x's"</b>`))
	assert.Equal(t, "plain", EscapeHTML("plain"))
}

func TestEscapeAttr_NeutralizesBackticks(t *testing.T) {
	assert.Equal(t, "&#96;cmd&#96; &amp; &lt;x&gt;", EscapeAttr("`cmd` & <x>"))
}
