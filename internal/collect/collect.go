// Package collect fetches web pages and gathers their headlines, one sentence
// per line, as input for the parser.
package collect

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sonnert/SyntacticParser/internal/htmlutil"
)

// DefaultUserAgent is sent when Collector.UserAgent is empty.
const DefaultUserAgent = "Mozilla/5.0 (compatible; syntacticparser-collect/1.0)"

// DefaultMaxBytes caps how much of a page is read.
const DefaultMaxBytes = 5 * 1024 * 1024

// httpClient is the interface used for HTTP requests (allows testing).
type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns a client with a timeout that follows at most five
// redirects.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}

// Page is the outcome of fetching one URL.
type Page struct {
	URL       string
	Headlines []string
	Err       error
}

// Collector fetches pages concurrently and extracts their headlines.
type Collector struct {
	Client    httpClient
	UserAgent string
	// Concurrency is the number of pages fetched at once; values below 1
	// mean one.
	Concurrency int
	// Limiter spaces out requests; nil means no limit.
	Limiter  *rate.Limiter
	MaxBytes int64
}

// Collect fetches every URL and returns one Page per URL, in input order. A
// failed page carries its error in Page.Err; only cancellation of ctx fails
// the whole collection.
func (c *Collector) Collect(ctx context.Context, urls []string) ([]Page, error) {
	pages := make([]Page, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Concurrency, 1))
	for i, u := range urls {
		g.Go(func() error {
			if c.Limiter != nil {
				if err := c.Limiter.Wait(ctx); err != nil {
					return err
				}
			}
			headlines, err := c.headlines(ctx, u)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				slog.Warn("Failed to fetch", "url", u, "error", err)
			} else {
				slog.Debug("Collected", "url", u, "headlines", len(headlines))
			}
			pages[i] = Page{URL: u, Headlines: headlines, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

func (c *Collector) headlines(ctx context.Context, rawURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	limit := c.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	doc, err := htmlutil.LoadHTML(io.LimitReader(resp.Body, limit), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	return htmlutil.Headlines(doc), nil
}

// LoadURLs reads one URL per line, skipping blank lines and '#' comments.
// Bare domains get an https:// prefix.
func LoadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "http://") && !strings.HasPrefix(line, "https://") {
			line = "https://" + line
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

// WriteHeadlines writes the headlines of the successful pages, one per line,
// each page introduced by a "# <url>" comment line. It returns the number of
// headlines written.
func WriteHeadlines(w io.Writer, pages []Page) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	for _, p := range pages {
		if p.Err != nil || len(p.Headlines) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(bw, "# %s\n", p.URL); err != nil {
			return n, err
		}
		for _, h := range p.Headlines {
			if _, err := fmt.Fprintln(bw, h); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, bw.Flush()
}
