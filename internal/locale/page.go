// Package locale detects the date locale a Google Photos account is rendered
// in by reading the photo info panel of a loaded page.
package locale

import "context"

// Page is a loaded document the extractor can inspect
type Page interface {
	// Lang is the document's declared language
	Lang(ctx context.Context) (string, error)
	// RuntimeLang is the language the rendering runtime reports
	RuntimeLang(ctx context.Context) (string, error)
	// Labels returns every aria-label in document order
	Labels(ctx context.Context) ([]string, error)
	// ButtonLabels returns the aria-labels of buttons
	ButtonLabels(ctx context.Context) ([]string, error)
	// ClickButton clicks the button carrying label and reports whether it
	// could
	ClickButton(ctx context.Context, label string) (bool, error)
}
