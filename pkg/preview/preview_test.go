package preview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseOpenGraph(t *testing.T) {
	body := `<html><head>
		<title>fallback title</title>
		<meta property="og:title" content="Jane's Gadgets on Jiji">
		<meta property="og:description" content="Phones and accessories in Lagos">
		<meta property="og:image" content="https://cdn.example.com/shop.jpg">
	</head><body></body></html>`

	p := Parse(body)
	if p.Title != "Jane's Gadgets on Jiji" {
		t.Errorf("unexpected title %q", p.Title)
	}
	if p.Description != "Phones and accessories in Lagos" {
		t.Errorf("unexpected description %q", p.Description)
	}
	if p.ImageURL != "https://cdn.example.com/shop.jpg" {
		t.Errorf("unexpected image %q", p.ImageURL)
	}
}

func TestParseFallsBackToTitleTag(t *testing.T) {
	body := `<html><head>
		<title>
			Jane's Gadgets | Jiji
		</title>
		<meta name="description" content="Seller profile">
	</head><body></body></html>`

	p := Parse(body)
	if p.Title != "Jane's Gadgets | Jiji" {
		t.Errorf("unexpected title %q", p.Title)
	}
	if p.Description != "Seller profile" {
		t.Errorf("unexpected description %q", p.Description)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	p := Parse("")
	if p.Title != "" || p.Description != "" || p.ImageURL != "" {
		t.Errorf("expected empty preview, got %+v", p)
	}
}

func TestFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("expected a user agent header")
		}
		w.Write([]byte(`<html><head><meta property="og:title" content="Shop Page"></head></html>`))
	}))
	defer ts.Close()

	p, err := NewFetcher().Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p.Title != "Shop Page" {
		t.Errorf("unexpected title %q", p.Title)
	}
}
