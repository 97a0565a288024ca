package locale

import (
	"context"
	"regexp"
	"strings"
	"time"

	"gphotos-admin/internal/constants"
	"gphotos-admin/internal/logger"
)

// labelSeparator marks the aria-label of the photo metadata line
const labelSeparator = " - "

// infoButtonHints match the info panel button, lowercased
var infoButtonHints = []string{"info", "informazioni"}

// dateStyle is one recognised date layout, tried in declaration order
type dateStyle struct {
	pattern *regexp.Regexp
	format  string
	locale  string // empty means the page language
}

// space is any whitespace a browser date formatter may emit, including the
// no-break and narrow no-break spaces
const space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`

var dateStyles = []dateStyle{
	{datePattern(`(\d{1,2})\._(\w+)\._(\d{4}),`), "de (day. month. year)", "de-DE"},
	{datePattern(`(\w+)_(\d{1,2}),_(\d{4}),`), "en (month day, year)", "en-US"},
	{datePattern(`(\d{1,2})_(\w+)_(\d{4}),`), "eu (day month year)", ""},
}

// datePattern compiles expr with every "_" standing for a run of space
func datePattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(strings.ReplaceAll(expr, "_", space))
}

// Classify matches a metadata sample against the known date layouts. It
// returns the format tag and locale, or ok=false when nothing matches.
func Classify(sample, pageLang, fallback string) (format, locale string, ok bool) {
	for _, s := range dateStyles {
		if !s.pattern.MatchString(sample) {
			continue
		}
		locale = s.locale
		if locale == "" {
			locale = pageLang
		}
		if locale == "" {
			locale = fallback
		}
		return s.format, locale, true
	}
	return "", "", false
}

// Extractor reads the date locale off a page
type Extractor struct {
	// InfoDelay is how long the info panel is given to render
	InfoDelay time.Duration
	// FallbackLocale is used for day-month-year dates on pages without a
	// declared language
	FallbackLocale string
	// Sleep waits for the info panel; nil uses a context-aware timer
	Sleep func(ctx context.Context, d time.Duration)
	// SkipInfo never clicks the info button
	SkipInfo bool
}

// NewExtractor creates an extractor with the stock delay and fallback
func NewExtractor() *Extractor {
	return &Extractor{
		InfoDelay:      constants.DefaultInfoDelay,
		FallbackLocale: constants.DefaultFallbackLocale,
	}
}

// Extract inspects the page. Page errors are logged and leave the affected
// fields at their defaults.
func (e *Extractor) Extract(ctx context.Context, page Page) Result {
	res := Result{DateFormat: Unknown}

	var err error
	if res.PageLang, err = page.Lang(ctx); err != nil {
		logger.WithError(err).Warn("Could not read page language")
	}
	if res.BrowserLocale, err = page.RuntimeLang(ctx); err != nil {
		logger.WithError(err).Warn("Could not read runtime language")
	}
	if res.BrowserLocale == "" {
		res.BrowserLocale = constants.DefaultRuntimeLocale
	}

	labels := e.metadataLabels(ctx, page)
	if len(labels) == 0 && !e.SkipInfo {
		labels = e.openInfoPanel(ctx, page)
	}
	if len(labels) == 0 {
		logger.Debug("No metadata label found")
		return res
	}

	sample := labels[0]
	res.MetadataFormat = &sample

	fallback := e.FallbackLocale
	if fallback == "" {
		fallback = constants.DefaultFallbackLocale
	}
	format, detected, ok := Classify(sample, res.PageLang, fallback)
	if !ok {
		logger.WithField("sample", sample).Debug("Metadata date did not match a known layout")
		return res
	}
	res.DateFormat = format
	res.DetectedLocale = detected
	res.Months = MonthsFor(detected)
	return res
}

func (e *Extractor) metadataLabels(ctx context.Context, page Page) []string {
	labels, err := page.Labels(ctx)
	if err != nil {
		logger.WithError(err).Warn("Could not collect labels")
		return nil
	}
	var out []string
	for _, l := range labels {
		if strings.Contains(l, labelSeparator) {
			out = append(out, l)
		}
	}
	return out
}

// openInfoPanel clicks the info button once and collects labels again
func (e *Extractor) openInfoPanel(ctx context.Context, page Page) []string {
	buttons, err := page.ButtonLabels(ctx)
	if err != nil {
		logger.WithError(err).Warn("Could not collect buttons")
		return nil
	}

	var target string
	for _, b := range buttons {
		lower := strings.ToLower(b)
		for _, hint := range infoButtonHints {
			if strings.Contains(lower, hint) {
				target = b
				break
			}
		}
		if target != "" {
			break
		}
	}
	if target == "" {
		return nil
	}

	clicked, err := page.ClickButton(ctx, target)
	if err != nil {
		logger.WithError(err).WithField("button", target).Warn("Could not open info panel")
		return nil
	}
	if clicked {
		logger.WithField("button", target).Debug("Opened info panel")
		e.sleep(ctx, e.InfoDelay)
	}
	return e.metadataLabels(ctx, page)
}

func (e *Extractor) sleep(ctx context.Context, d time.Duration) {
	if e.Sleep != nil {
		e.Sleep(ctx, d)
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
