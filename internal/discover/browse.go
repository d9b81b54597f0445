package discover

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"webforge/internal/logging"
)

// pageScript extracts forms, inputs, buttons and links from the live DOM.
// Selectors prefer id, then name, then a tag-scoped index fallback.
const pageScript = `(() => {
	const sel = (el, i, tag) => {
		if (el.id) return '#' + el.id;
		if (el.name) return tag + '[name="' + el.name + '"]';
		return tag + ':nth-of-type(' + (i + 1) + ')';
	};
	const input = (el, i) => ({
		selector: sel(el, i, el.tagName.toLowerCase()),
		type: el.type || el.tagName.toLowerCase(),
		name: el.name || '',
		required: el.required || false,
		placeholder: el.placeholder || '',
	});
	return {
		title: document.title,
		url: location.href,
		forms: Array.from(document.forms).map((f, i) => ({
			selector: sel(f, i, 'form'),
			action: f.action || '',
			method: f.method || '',
			inputs: Array.from(f.querySelectorAll('input, textarea, select')).map(input),
		})),
		buttons: Array.from(document.querySelectorAll('button, input[type=submit]')).map((b, i) => ({
			selector: sel(b, i, 'button'),
			text: (b.innerText || b.value || '').trim(),
			type: b.type || '',
		})),
		links: Array.from(document.querySelectorAll('a[href]')).map((a, i) => ({
			selector: sel(a, i, 'a'),
			text: (a.innerText || '').trim(),
			href: a.getAttribute('href') || '',
		})),
		inputs: Array.from(document.querySelectorAll('input, textarea, select')).map(input),
	};
})()`

// Browser drives headless Chrome to discover page structure and API traffic.
type Browser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	log         *slog.Logger
}

// NewBrowser creates a headless Chrome allocator. Close releases it.
func NewBrowser(ctx context.Context) *Browser {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	return &Browser{allocCtx: allocCtx, allocCancel: cancel, log: logging.New("discover")}
}

// Close releases the browser allocator.
func (b *Browser) Close() { b.allocCancel() }

// Browse navigates to url and returns the discovered page structure.
func (b *Browser) Browse(ctx context.Context, url string) (*PageInfo, error) {
	browserCtx, cancel := chromedp.NewContext(b.allocCtx)
	defer cancel()
	if dl, ok := ctx.Deadline(); ok {
		browserCtx, cancel = context.WithDeadline(browserCtx, dl)
		defer cancel()
	}

	var page PageInfo
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(pageScript, &page),
	)
	if err != nil {
		return nil, fmt.Errorf("browse %s: %w", url, err)
	}
	b.log.Info("page discovered", "url", url,
		"forms", len(page.Forms), "links", len(page.Links), "inputs", len(page.Inputs))
	return &page, nil
}

// CaptureAPI navigates to url with network capture enabled and returns the
// API endpoints observed (XHR/fetch requests under the page's origin).
func (b *Browser) CaptureAPI(ctx context.Context, url string) ([]Endpoint, error) {
	browserCtx, cancel := chromedp.NewContext(b.allocCtx)
	defer cancel()
	if dl, ok := ctx.Deadline(); ok {
		browserCtx, cancel = context.WithDeadline(browserCtx, dl)
		defer cancel()
	}

	var mu sync.Mutex
	byRequest := make(map[network.RequestID]*Endpoint)
	var order []network.RequestID

	chromedp.ListenTarget(browserCtx, func(ev any) {
		switch e := ev.(type) {
		case *network.EventRequestWillBeSent:
			if e.Type != network.ResourceTypeXHR && e.Type != network.ResourceTypeFetch {
				return
			}
			ep := &Endpoint{Method: e.Request.Method, URL: e.Request.URL}
			if len(e.Request.Headers) > 0 {
				ep.Headers = make(map[string]string, len(e.Request.Headers))
				for k, v := range e.Request.Headers {
					ep.Headers[k] = fmt.Sprint(v)
				}
			}
			mu.Lock()
			byRequest[e.RequestID] = ep
			order = append(order, e.RequestID)
			mu.Unlock()
		case *network.EventResponseReceived:
			mu.Lock()
			if ep, ok := byRequest[e.RequestID]; ok {
				ep.Status = int(e.Response.Status)
			}
			mu.Unlock()
		}
	})

	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("capture api %s: %w", url, err)
	}

	mu.Lock()
	defer mu.Unlock()
	endpoints := make([]Endpoint, 0, len(order))
	for _, id := range order {
		endpoints = append(endpoints, *byRequest[id])
	}
	b.log.Info("api traffic captured", "url", url, "endpoints", len(endpoints))
	return endpoints, nil
}

// NormalizeEndpoint strips a host prefix and guarantees a leading slash.
// "https://app.example.com/api/users" and "api/users" both become
// "/api/users".
func NormalizeEndpoint(raw string) string {
	ep := strings.TrimSpace(raw)
	if ep == "" {
		return "/"
	}
	for _, scheme := range []string{"http://", "https://"} {
		if strings.HasPrefix(ep, scheme) {
			rest := ep[len(scheme):]
			if i := strings.IndexByte(rest, '/'); i >= 0 {
				ep = rest[i:]
			} else {
				ep = "/"
			}
			break
		}
	}
	if !strings.HasPrefix(ep, "/") {
		ep = "/" + ep
	}
	return ep
}
