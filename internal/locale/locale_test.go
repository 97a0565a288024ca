package locale

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gphotos-admin/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticPage(t *testing.T, html string) *StaticPage {
	t.Helper()
	p, err := NewStaticPage(strings.NewReader(html))
	require.NoError(t, err)
	return p.WithRuntimeLang("en-US")
}

func noSleep(t *testing.T) (*Extractor, *[]time.Duration) {
	var slept []time.Duration
	e := NewExtractor()
	e.Sleep = func(_ context.Context, d time.Duration) { slept = append(slept, d) }
	return e, &slept
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		sample   string
		pageLang string
		format   string
		locale   string
		ok       bool
	}{
		{
			name:   "german",
			sample: "Foto - 13. Nov. 2025, 14:32:41",
			format: "de (day. month. year)",
			locale: "de-DE",
			ok:     true,
		},
		{
			name:   "english",
			sample: "Photo - Nov 13, 2025, 2:32:41 PM",
			format: "en (month day, year)",
			locale: "en-US",
			ok:     true,
		},
		{
			name:     "european with page language",
			sample:   "Photo - 13 nov 2025, 14:32:41",
			pageLang: "fr",
			format:   "eu (day month year)",
			locale:   "fr",
			ok:       true,
		},
		{
			name:   "european without page language",
			sample: "Foto - 13 nov 2025, 14:32:41",
			format: "eu (day month year)",
			locale: "it-IT",
			ok:     true,
		},
		{
			name:   "iso date",
			sample: "Photo - 2025-11-13 14:32",
		},
		{
			name:   "european with no-break spaces",
			sample: "13\u00a0nov\u00a02025, 14:32:41 - Photo",
			format: "eu (day month year)",
			locale: "it-IT",
			ok:     true,
		},
		{
			name:   "english with narrow no-break spaces",
			sample: "Photo - Nov\u202f13,\u202f2025, 2:32:41\u202fPM",
			format: "en (month day, year)",
			locale: "en-US",
			ok:     true,
		},
		{
			name:   "german with no-break spaces",
			sample: "Foto - 13.\u00a0Nov.\u00a02025, 14:32:41",
			format: "de (day. month. year)",
			locale: "de-DE",
			ok:     true,
		},
		{
			name:   "german wins over english",
			sample: "Nov 13, 2025, 13. Nov. 2025, x",
			format: "de (day. month. year)",
			locale: "de-DE",
			ok:     true,
		},
		{
			name:     "english wins over european",
			sample:   "Nov 13, 2025, 13 nov 2025, x",
			pageLang: "fr",
			format:   "en (month day, year)",
			locale:   "en-US",
			ok:       true,
		},
		{
			name:     "german wins over european",
			sample:   "13 nov 2025, 13. Nov. 2025, x",
			pageLang: "fr",
			format:   "de (day. month. year)",
			locale:   "de-DE",
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, locale, ok := Classify(tt.sample, tt.pageLang, "it-IT")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.locale, locale)
		})
	}
}

func TestMonthsFor(t *testing.T) {
	assert.Equal(t,
		[]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		MonthsFor("en-US"))
	assert.Equal(t,
		[]string{"gen", "feb", "mar", "apr", "mag", "giu", "lug", "ago", "set", "ott", "nov", "dic"},
		MonthsFor("it-IT"))

	de := MonthsFor("de-DE")
	require.Len(t, de, 12)
	assert.Equal(t, "Jan", de[0])
	assert.Equal(t, "März", de[2])
	assert.Equal(t, "Dez", de[11])
	for _, m := range de {
		assert.NotContains(t, m, ".")
	}
}

func TestTranslator_Matching(t *testing.T) {
	_, tag := Translator("it")
	assert.Equal(t, "it-IT", tag.String())

	_, tag = Translator("de_DE")
	assert.Equal(t, "de-DE", tag.String())

	_, tag = Translator("tlh")
	assert.Equal(t, "en-US", tag.String())

	_, tag = Translator("not a tag!")
	assert.Equal(t, "en-US", tag.String())

	assert.Len(t, MonthsFor("xx-YY"), 12)
	assert.Contains(t, Supported(), "en-US")
}

func TestExtract_EnglishPage(t *testing.T) {
	page := staticPage(t, `<html lang="en"><body>
		<div aria-label="Open menu"></div>
		<div aria-label="Photo - Nov 13, 2025, 2:32:41 PM"></div>
		<div aria-label="Video - Dec 1, 2025, 9:00:00 AM"></div>
	</body></html>`)

	e, slept := noSleep(t)
	res := e.Extract(context.Background(), page)

	require.NotNil(t, res.MetadataFormat)
	assert.Equal(t, "Photo - Nov 13, 2025, 2:32:41 PM", *res.MetadataFormat)
	assert.Equal(t, "en (month day, year)", res.DateFormat)
	assert.Equal(t, "en-US", res.DetectedLocale)
	assert.Equal(t, "en", res.PageLang)
	assert.Equal(t, "en-US", res.BrowserLocale)
	assert.Len(t, res.Months, 12)
	assert.Empty(t, *slept)
	assert.True(t, res.Found())
}

func TestExtract_GermanPage(t *testing.T) {
	page := staticPage(t, `<html lang="de"><body>
		<span aria-label="Foto - 13. Nov. 2025, 14:32:41"></span>
	</body></html>`)

	e, _ := noSleep(t)
	res := e.Extract(context.Background(), page)
	assert.Equal(t, "de (day. month. year)", res.DateFormat)
	assert.Equal(t, "de-DE", res.DetectedLocale)
	assert.Equal(t, "Nov", res.Months[10])
}

func TestExtract_ItalianPageWithoutLang(t *testing.T) {
	page := staticPage(t, `<html><body>
		<span aria-label="Foto - 13 nov 2025, 14:32:41"></span>
	</body></html>`)

	e, _ := noSleep(t)
	res := e.Extract(context.Background(), page)
	assert.Equal(t, "eu (day month year)", res.DateFormat)
	assert.Equal(t, "it-IT", res.DetectedLocale)
	assert.Equal(t, "gen", res.Months[0])
	assert.Equal(t, "", res.PageLang)
}

func TestExtract_NothingFound(t *testing.T) {
	page := staticPage(t, `<html lang="it"><body><button aria-label="Informazioni"></button></body></html>`)

	e, slept := noSleep(t)
	res := e.Extract(context.Background(), page)
	assert.Nil(t, res.MetadataFormat)
	assert.Empty(t, res.Months)
	assert.Equal(t, Unknown, res.DateFormat)
	assert.Empty(t, res.DetectedLocale)
	assert.Empty(t, *slept, "static pages cannot open the info panel")

	out := res.Format()
	assert.Contains(t, out, "METADATA_FORMAT:\nNot found\n")
	assert.Contains(t, out, "MONTHS:\nNot found\n")
	assert.Contains(t, out, "DETECTED_LOCALE: unknown\n")
	assert.Contains(t, out, "PAGE_LANG: it\n")
}

func TestExtract_UnmatchedSample(t *testing.T) {
	page := staticPage(t, `<html lang="ja"><body><i aria-label="写真 - 2025年11月13日 14:32"></i></body></html>`)

	e, _ := noSleep(t)
	res := e.Extract(context.Background(), page)
	require.NotNil(t, res.MetadataFormat)
	assert.Equal(t, Unknown, res.DateFormat)
	assert.Empty(t, res.Months)
}

func TestResult_Format(t *testing.T) {
	sample := "Photo - Nov 13, 2025, 2:32:41 PM"
	res := Result{
		MetadataFormat: &sample,
		Months:         []string{"Jan", "Feb"},
		DateFormat:     "en (month day, year)",
		DetectedLocale: "en-US",
		PageLang:       "en",
		BrowserLocale:  "en-GB",
	}

	want := "METADATA_FORMAT:\n" +
		"Photo - Nov 13, 2025, 2:32:41 PM\n" +
		"\n" +
		"MONTHS:\n" +
		"Jan, Feb\n" +
		"\n" +
		"DATE_FORMAT: en (month day, year)\n" +
		"DETECTED_LOCALE: en-US\n" +
		"PAGE_LANG: en\n" +
		"BROWSER_LOCALE: en-GB\n"
	assert.Equal(t, want, res.Format())

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"detected_locale":"en-US"`)
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "it-IT", NormalizeTag("it_IT.UTF-8"))
	assert.Equal(t, "de-DE", NormalizeTag("de_DE@euro"))
	assert.Equal(t, "", NormalizeTag("C"))
	assert.Equal(t, "", NormalizeTag("POSIX"))
	assert.Equal(t, "", NormalizeTag(""))
}

func TestEnvLocale(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "C")
	t.Setenv("LANG", "fr_FR.UTF-8")
	assert.Equal(t, "fr-FR", EnvLocale())

	t.Setenv("LANG", "")
	assert.Equal(t, "en-US", EnvLocale())
}

func TestOpenStaticPage(t *testing.T) {
	_, err := OpenStaticPage(filepath.Join(t.TempDir(), "missing.html"))
	assert.True(t, errors.IsNotFound(err))

	path := filepath.Join(t.TempDir(), "photo.html")
	require.NoError(t, os.WriteFile(path, []byte(`<html lang="en"></html>`), 0o644))
	p, err := OpenStaticPage(path)
	require.NoError(t, err)
	lang, err := p.Lang(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "en", lang)
}
