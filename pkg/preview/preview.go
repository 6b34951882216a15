// Package preview fetches a seller profile page and extracts just enough
// metadata to confirm the URL points at the profile the user meant, before
// any scoring request is made.
package preview

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/html"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:83.0) Gecko/20100101 Firefox/83.0"

// Preview is the page metadata shown to the user.
type Preview struct {
	Title       string
	Description string
	ImageURL    string
}

// Fetcher fetches profile page previews.
type Fetcher struct {
	client *retryablehttp.Client
}

func NewFetcher() *Fetcher {
	c := retryablehttp.NewClient()
	c.Logger = log.New(io.Discard, "", 0)
	c.RetryMax = 2
	c.HTTPClient.Timeout = 15 * time.Second
	return &Fetcher{client: c}
}

// Fetch downloads the page and pulls og: metadata, falling back to the HTML
// <title> element when the page carries no OpenGraph tags.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Preview, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return Parse(string(body)), nil
}

// Parse extracts preview metadata from an HTML document.
func Parse(body string) *Preview {
	p := &Preview{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err == nil {
		p.Title = metaContent(doc, `meta[property="og:title"]`)
		p.Description = metaContent(doc, `meta[property="og:description"]`)
		if p.Description == "" {
			p.Description = metaContent(doc, `meta[name="description"]`)
		}
		p.ImageURL = metaContent(doc, `meta[property="og:image"]`)
	}

	if p.Title == "" {
		if title, ok := htmlTitle(body); ok {
			p.Title = title
		}
	}
	return p
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func htmlTitle(body string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return "", false
	}
	title, ok := traverse(doc)
	return strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(title, "\n", " "), "\r", " ")), ok
}

func isTitleElement(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "title"
}

func traverse(n *html.Node) (string, bool) {
	if isTitleElement(n) {
		if n.FirstChild != nil {
			return n.FirstChild.Data, true
		}
		return "", true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result, ok := traverse(c); ok {
			return result, ok
		}
	}
	return "", false
}
