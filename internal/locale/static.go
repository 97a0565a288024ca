package locale

import (
	"context"
	"io"
	"os"
	"strings"

	"gphotos-admin/internal/constants"
	"gphotos-admin/internal/errors"

	"github.com/PuerkitoBio/goquery"
)

// StaticPage is a saved HTML document. It has no script runtime, so buttons
// cannot be clicked.
type StaticPage struct {
	doc         *goquery.Document
	runtimeLang string
}

// NewStaticPage parses an HTML document
func NewStaticPage(r io.Reader) (*StaticPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrLocaleExtraction, "Failed to parse HTML document", err)
	}
	return &StaticPage{doc: doc, runtimeLang: EnvLocale()}, nil
}

// OpenStaticPage parses the HTML file at path
func OpenStaticPage(path string) (*StaticPage, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewWithDetails(errors.ErrNotFound, "HTML file not found", path)
		}
		return nil, errors.Wrap(errors.ErrLocaleExtraction, "Failed to open HTML file", err)
	}
	defer f.Close()
	return NewStaticPage(f)
}

// WithRuntimeLang overrides the language reported by RuntimeLang
func (p *StaticPage) WithRuntimeLang(lang string) *StaticPage {
	p.runtimeLang = lang
	return p
}

func (p *StaticPage) Lang(context.Context) (string, error) {
	return strings.TrimSpace(p.doc.Find("html").First().AttrOr("lang", "")), nil
}

func (p *StaticPage) RuntimeLang(context.Context) (string, error) {
	return p.runtimeLang, nil
}

func (p *StaticPage) Labels(context.Context) ([]string, error) {
	return p.attrs("[aria-label]"), nil
}

func (p *StaticPage) ButtonLabels(context.Context) ([]string, error) {
	return p.attrs("button[aria-label]"), nil
}

// ClickButton always reports false
func (p *StaticPage) ClickButton(context.Context, string) (bool, error) {
	return false, nil
}

func (p *StaticPage) attrs(selector string) []string {
	var out []string
	p.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("aria-label"); ok {
			out = append(out, v)
		}
	})
	return out
}

// EnvLocale reads the process locale from LC_ALL, LC_MESSAGES and LANG,
// in that order, as a BCP 47 tag
func EnvLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if tag := NormalizeTag(os.Getenv(key)); tag != "" {
			return tag
		}
	}
	return constants.DefaultRuntimeLocale
}

// NormalizeTag turns a POSIX locale such as it_IT.UTF-8 into it-IT.
// The C and POSIX locales yield "".
func NormalizeTag(posix string) string {
	s := strings.TrimSpace(posix)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}
