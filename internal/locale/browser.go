package locale

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/logger"

	"github.com/chromedp/chromedp"
)

// BrowserOptions selects the Chrome instance a BrowserPage drives
type BrowserOptions struct {
	// RemoteURL attaches to a running Chrome's DevTools websocket instead of
	// launching one
	RemoteURL string
	// URL is navigated to after the tab is ready. Empty keeps the tab as is.
	URL string
	// TargetMatch picks an existing tab whose URL contains it when attached
	// to a remote browser
	TargetMatch string
	Headless    bool
	// UserDataDir reuses a Chrome profile, e.g. one that is signed in
	UserDataDir string
	Timeout     time.Duration
}

// BrowserPage is a live tab driven over the DevTools protocol
type BrowserPage struct {
	ctx     context.Context
	cancels []context.CancelFunc
}

// NewBrowserPage launches or attaches to Chrome and opens the page
func NewBrowserPage(ctx context.Context, opts BrowserOptions) (*BrowserPage, error) {
	p := &BrowserPage{}

	var allocCtx context.Context
	var cancel context.CancelFunc
	if opts.RemoteURL != "" {
		allocCtx, cancel = chromedp.NewRemoteAllocator(ctx, opts.RemoteURL)
	} else {
		allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		allocOpts = append(allocOpts, chromedp.Flag("headless", opts.Headless))
		if opts.UserDataDir != "" {
			allocOpts = append(allocOpts, chromedp.UserDataDir(opts.UserDataDir))
		}
		allocCtx, cancel = chromedp.NewExecAllocator(ctx, allocOpts...)
	}
	p.cancels = append(p.cancels, cancel)

	tabCtx, cancel := chromedp.NewContext(allocCtx)
	p.cancels = append(p.cancels, cancel)

	if opts.RemoteURL != "" && opts.TargetMatch != "" {
		targets, err := chromedp.Targets(tabCtx)
		if err != nil {
			p.Close()
			return nil, errors.Wrap(errors.ErrLocaleExtraction, "Failed to list browser tabs", err)
		}
		for _, t := range targets {
			if t.Type == "page" && strings.Contains(t.URL, opts.TargetMatch) {
				logger.WithField("url", t.URL).Debug("Attaching to existing tab")
				tabCtx, cancel = chromedp.NewContext(allocCtx, chromedp.WithTargetID(t.TargetID))
				p.cancels = append(p.cancels, cancel)
				break
			}
		}
	}
	p.ctx = tabCtx

	if opts.Timeout > 0 {
		var timeoutCancel context.CancelFunc
		p.ctx, timeoutCancel = context.WithTimeout(p.ctx, opts.Timeout)
		p.cancels = append(p.cancels, timeoutCancel)
	}

	var tasks chromedp.Tasks
	if opts.URL != "" {
		tasks = append(tasks, chromedp.Navigate(opts.URL), chromedp.WaitReady("body", chromedp.ByQuery))
	}
	if err := chromedp.Run(p.ctx, tasks...); err != nil {
		p.Close()
		return nil, errors.Wrap(errors.ErrLocaleExtraction, "Failed to open page in browser", err)
	}
	return p, nil
}

// Close releases the tab and, when launched by us, the browser
func (p *BrowserPage) Close() {
	for i := len(p.cancels) - 1; i >= 0; i-- {
		p.cancels[i]()
	}
	p.cancels = nil
}

func (p *BrowserPage) eval(expr string, out interface{}) error {
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(expr, out)); err != nil {
		return errors.Wrap(errors.ErrLocaleExtraction, "Browser evaluation failed", err)
	}
	return nil
}

func (p *BrowserPage) Lang(context.Context) (string, error) {
	var lang string
	err := p.eval(`document.documentElement.lang || ""`, &lang)
	return lang, err
}

func (p *BrowserPage) RuntimeLang(context.Context) (string, error) {
	var lang string
	err := p.eval(`navigator.language || ""`, &lang)
	return lang, err
}

const labelsJS = `[...document.querySelectorAll(%q)].map(e => e.getAttribute('aria-label') || '')`

func (p *BrowserPage) Labels(context.Context) ([]string, error) {
	var labels []string
	err := p.eval(fmt.Sprintf(labelsJS, "[aria-label]"), &labels)
	return labels, err
}

func (p *BrowserPage) ButtonLabels(context.Context) ([]string, error) {
	var labels []string
	err := p.eval(fmt.Sprintf(labelsJS, "button[aria-label]"), &labels)
	return labels, err
}

func (p *BrowserPage) ClickButton(_ context.Context, label string) (bool, error) {
	quoted, err := json.Marshal(label)
	if err != nil {
		return false, errors.InternalError("quote button label", err)
	}
	expr := fmt.Sprintf(`(() => {
		const b = [...document.querySelectorAll('button[aria-label]')].find(b => b.getAttribute('aria-label') === %s);
		if (!b) return false;
		b.click();
		return true;
	})()`, quoted)

	var clicked bool
	err = p.eval(expr, &clicked)
	return clicked, err
}
