package pdf

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/cv-studio/internal/cv"
)

// DefaultPrintTimeout bounds a single PDF print run.
const DefaultPrintTimeout = 60 * time.Second

// ChromeExporter prints CVs to PDF through a headless Chrome instance.
// Requires Chrome/Chromium to be installed on the system.
type ChromeExporter struct {
	Timeout time.Duration
}

// NewChromeExporter returns an exporter with the default timeout.
func NewChromeExporter() *ChromeExporter {
	return &ChromeExporter{Timeout: DefaultPrintTimeout}
}

// Export renders the document to HTML and prints it to A4 PDF bytes.
func (e *ChromeExporter) Export(ctx context.Context, doc *cv.Document) ([]byte, error) {
	html, err := RenderHTML(doc)
	if err != nil {
		return nil, err
	}
	return e.printHTML(ctx, html)
}

func (e *ChromeExporter) printHTML(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := e.Timeout
	if timeout == 0 {
		timeout = DefaultPrintTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdfBytes []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("data:text/html,"+url.PathEscape(html)),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBytes, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27). // A4 inches
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}
	return pdfBytes, nil
}
