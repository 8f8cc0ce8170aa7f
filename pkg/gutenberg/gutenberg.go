// Package gutenberg retrieves plain-text book bodies from a Project
// Gutenberg style archive: search by title, follow the first matching book
// page, and download its "Plain Text UTF-8" file.
package gutenberg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// DefaultBaseURL is the public archive queried when none is configured.
const DefaultBaseURL = "https://www.gutenberg.org"

// ErrNotFound is returned when a title search finds no book with a
// plain-text file.
var ErrNotFound = errors.New("book not found in archive")

// Client fetches search pages, book pages and text bodies from the archive.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different archive root. Tests use this
// with httptest servers.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient returns a Client for the public archive unless options say
// otherwise.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		userAgent:  "bookfreq/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchTitle looks a title up on the archive's search page and returns the
// URL of the first matching book's plain-text file. Returns ErrNotFound when
// no search result carries a "Plain Text UTF-8" link.
func (c *Client) SearchTitle(ctx context.Context, title string) (string, error) {
	searchURL := fmt.Sprintf("%s/ebooks/search/?query=%s", c.baseURL, url.QueryEscape(title))

	doc, _, err := c.getDocument(ctx, searchURL)
	if err != nil {
		return "", fmt.Errorf("failed to search archive: %w", err)
	}

	var textURL string
	var pageErr error
	doc.Find("li.booklink a[href]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}

		bookPageURL, err := c.resolve(searchURL, href)
		if err != nil {
			return true
		}

		textURL, pageErr = c.findPlainTextLink(ctx, bookPageURL)
		if pageErr != nil {
			return false
		}
		return textURL == "" // keep going until a result has a text link
	})
	if pageErr != nil {
		return "", pageErr
	}
	if textURL == "" {
		return "", ErrNotFound
	}

	return textURL, nil
}

// findPlainTextLink fetches a book page and returns the href of its
// "Plain Text UTF-8" anchor, or "" when the page has none.
func (c *Client) findPlainTextLink(ctx context.Context, bookPageURL string) (string, error) {
	doc, _, err := c.getDocument(ctx, bookPageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch book page: %w", err)
	}

	var href string
	doc.Find("a[href]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !strings.Contains(strings.TrimSpace(s.Text()), "Plain Text UTF-8") {
			return true
		}
		href, _ = s.Attr("href")
		return false
	})
	if href == "" {
		return "", nil
	}

	return c.resolve(bookPageURL, href)
}

// FetchText downloads a text body. Plain-text responses are returned
// verbatim; HTML responses are distilled to readable text first, so direct
// URLs that serve a web page still work. The returned status code is the
// final HTTP status, 0 on transport errors.
func (c *Client) FetchText(ctx context.Context, rawURL string) (string, int, error) {
	body, contentType, status, err := c.get(ctx, rawURL)
	if err != nil {
		return "", status, err
	}

	if strings.Contains(contentType, "text/html") {
		parsedURL, err := url.Parse(rawURL)
		if err != nil {
			return "", status, fmt.Errorf("failed to parse URL: %w", err)
		}
		parser := readability.NewParser()
		article, err := parser.Parse(strings.NewReader(string(body)), parsedURL)
		if err != nil {
			return "", status, fmt.Errorf("failed to extract text from HTML: %w", err)
		}
		return article.TextContent, status, nil
	}

	return string(body), status, nil
}

// get performs one GET and returns the body, content type and status code.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", resp.StatusCode, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.Header.Get("Content-Type"), resp.StatusCode, nil
}

// getDocument performs one GET and parses the body as HTML.
func (c *Client) getDocument(ctx context.Context, rawURL string) (*goquery.Document, int, error) {
	body, _, status, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, status, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, status, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, status, nil
}

// resolve joins a possibly relative href against the page it appeared on.
func (c *Client) resolve(pageURL, href string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse page URL: %w", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("failed to parse href: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}
