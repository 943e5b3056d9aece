// Package i18n selects the message printer for CLI output.
package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLang is the fallback language
var DefaultLang = language.English

// SupportedLangs are the languages we support
var SupportedLangs = []language.Tag{
	language.English,
	language.German,
}

var matcher = language.NewMatcher(SupportedLangs)

// MatchLanguage returns the best supported language for a list of tags in
// Accept-Language form.
func MatchLanguage(tags string) language.Tag {
	parsed, _, _ := language.ParseAcceptLanguage(tags)
	tag, _, _ := matcher.Match(parsed...)
	return tag
}

// NewPrinter returns a message printer for the given language
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// NewCLIPrinter returns a printer for the locale named by LC_ALL or LANG.
func NewCLIPrinter() *message.Printer {
	return NewPrinter(localeTag(os.Getenv("LC_ALL"), os.Getenv("LANG")))
}

func localeTag(lcAll, lang string) language.Tag {
	locale := lcAll
	if locale == "" {
		locale = lang
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return DefaultLang
	}

	// en_US.UTF-8 -> en_US
	if i := strings.IndexAny(locale, ".@"); i != -1 {
		locale = locale[:i]
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return MatchLanguage(locale)
	}
	tag, _, _ = matcher.Match(tag)
	return tag
}
