package locale

import (
	"fmt"
	"strings"
)

// Unknown is reported for fields that could not be determined
const Unknown = "unknown"

// notFound is printed for an absent sample or month list
const notFound = "Not found"

// Result is what the extractor learned about a page
type Result struct {
	MetadataFormat *string  `json:"metadata_format"`
	Months         []string `json:"months"`
	DateFormat     string   `json:"date_format"`
	DetectedLocale string   `json:"detected_locale,omitempty"`
	PageLang       string   `json:"page_lang"`
	BrowserLocale  string   `json:"browser_locale"`
}

// Found reports whether a locale was detected
func (r Result) Found() bool {
	return r.DetectedLocale != ""
}

// Format renders the result as the plain text report
func (r Result) Format() string {
	var b strings.Builder

	b.WriteString("METADATA_FORMAT:\n")
	if r.MetadataFormat != nil {
		b.WriteString(*r.MetadataFormat)
	} else {
		b.WriteString(notFound)
	}
	b.WriteString("\n\nMONTHS:\n")
	if len(r.Months) > 0 {
		b.WriteString(strings.Join(r.Months, ", "))
	} else {
		b.WriteString(notFound)
	}
	b.WriteString("\n\n")

	detected := r.DetectedLocale
	if detected == "" {
		detected = Unknown
	}
	dateFormat := r.DateFormat
	if dateFormat == "" {
		dateFormat = Unknown
	}
	fmt.Fprintf(&b, "DATE_FORMAT: %s\n", dateFormat)
	fmt.Fprintf(&b, "DETECTED_LOCALE: %s\n", detected)
	fmt.Fprintf(&b, "PAGE_LANG: %s\n", r.PageLang)
	fmt.Fprintf(&b, "BROWSER_LOCALE: %s\n", r.BrowserLocale)
	return b.String()
}
