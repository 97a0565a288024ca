package locale

import (
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/da_DK"
	"github.com/go-playground/locales/de_DE"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es_ES"
	"github.com/go-playground/locales/fr_FR"
	"github.com/go-playground/locales/it_IT"
	"github.com/go-playground/locales/nb_NO"
	"github.com/go-playground/locales/nl_NL"
	"github.com/go-playground/locales/pl_PL"
	"github.com/go-playground/locales/pt_BR"
	"github.com/go-playground/locales/pt_PT"
	"github.com/go-playground/locales/sv_SE"
	"golang.org/x/text/language"
)

type translatorEntry struct {
	tag language.Tag
	new func() locales.Translator
}

// translators lists the supported locales; the first entry is the default
var translators = []translatorEntry{
	{language.AmericanEnglish, en_US.New},
	{language.BritishEnglish, en_GB.New},
	{language.MustParse("it-IT"), it_IT.New},
	{language.MustParse("de-DE"), de_DE.New},
	{language.MustParse("fr-FR"), fr_FR.New},
	{language.MustParse("es-ES"), es_ES.New},
	{language.MustParse("pt-BR"), pt_BR.New},
	{language.MustParse("pt-PT"), pt_PT.New},
	{language.MustParse("nl-NL"), nl_NL.New},
	{language.MustParse("sv-SE"), sv_SE.New},
	{language.MustParse("da-DK"), da_DK.New},
	{language.MustParse("nb-NO"), nb_NO.New},
	{language.MustParse("pl-PL"), pl_PL.New},
}

var matcher = language.NewMatcher(supportedTags())

func supportedTags() []language.Tag {
	tags := make([]language.Tag, len(translators))
	for i, t := range translators {
		tags[i] = t.tag
	}
	return tags
}

// Translator returns the closest supported translator for a BCP 47 tag and
// the tag it resolved to. Unknown or malformed tags resolve to en-US.
func Translator(tag string) (locales.Translator, language.Tag) {
	requested, err := language.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		requested = language.Und
	}
	_, idx, conf := matcher.Match(requested)
	if conf == language.No {
		idx = 0
	}
	entry := translators[idx]
	return entry.new(), entry.tag
}

// MonthsFor returns the twelve abbreviated month names of a locale with
// every period removed
func MonthsFor(tag string) []string {
	tr, _ := Translator(tag)
	months := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, strings.ReplaceAll(tr.MonthAbbreviated(m), ".", ""))
	}
	return months
}

// Supported lists the locales MonthsFor knows
func Supported() []string {
	out := make([]string, len(translators))
	for i, t := range translators {
		out[i] = t.tag.String()
	}
	return out
}
