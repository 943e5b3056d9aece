package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func base(t language.Tag) language.Base {
	b, _ := t.Base()
	return b
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		accept   string
		expected language.Tag
	}{
		{"en-US,en;q=0.9", language.English},
		{"de-DE,de;q=0.9", language.German},
		{"fr-FR", language.English},
		{"", language.English},
	}

	for _, tt := range tests {
		assert.Equal(t, base(tt.expected), base(MatchLanguage(tt.accept)), "Accept: %s", tt.accept)
	}
}

func TestLocaleTag(t *testing.T) {
	tests := []struct {
		lcAll, lang string
		expected    language.Tag
	}{
		{"", "", language.English},
		{"C", "", language.English},
		{"POSIX", "de_DE.UTF-8", language.English},
		{"", "de_DE.UTF-8", language.German},
		{"de_DE@euro", "", language.German},
		{"", "fr_FR.UTF-8", language.English},
		{"en_GB.UTF-8", "de_DE.UTF-8", language.English},
	}

	for _, tt := range tests {
		got := localeTag(tt.lcAll, tt.lang)
		assert.Equal(t, base(tt.expected), base(got), "LC_ALL=%q LANG=%q", tt.lcAll, tt.lang)
	}
}

func TestNewCLIPrinter(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "en_US.UTF-8")
	p := NewCLIPrinter()
	assert.Equal(t, "1,234\n", p.Sprintf("%d\n", 1234))
}
