// Package news scrapes football headlines from a configurable HTML page.
package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/matchday/pkg/config"
	"github.com/wonny/matchday/pkg/httputil"
	"github.com/wonny/matchday/pkg/logger"
)

// Item is one headline
type Item struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published,omitempty"`
}

// Feed is the scraped page
type Feed struct {
	Items  []Item `json:"items"`
	Source string `json:"source"`
}

// Scraper extracts headlines with CSS selectors
// ⭐ SSOT: news page parsing happens only here
type Scraper struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.NewsConfig
}

// NewScraper creates a scraper for cfg.URL
func NewScraper(httpClient *httputil.Client, cfg config.NewsConfig, log *logger.Logger) *Scraper {
	if cfg.Limit <= 0 {
		cfg.Limit = 20
	}
	return &Scraper{
		httpClient: httpClient,
		logger:     log.Component("news"),
		cfg:        cfg,
	}
}

// Fetch downloads and parses the configured page
func (s *Scraper) Fetch(ctx context.Context) (Feed, error) {
	html, err := s.fetchHTML(ctx)
	if err != nil {
		return Feed{}, err
	}

	items, err := s.Parse(strings.NewReader(html))
	if err != nil {
		return Feed{}, err
	}

	s.logger.WithField("count", len(items)).Debug("Scraped headlines")
	return Feed{Items: items, Source: sourceName(s.cfg.URL)}, nil
}

func (s *Scraper) fetchHTML(ctx context.Context) (string, error) {
	resp, err := s.httpClient.Get(ctx, s.cfg.URL)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

// Parse extracts up to Limit headlines. Items without a title or link are skipped,
// duplicate links are kept once, and relative links are resolved against the page URL.
func (s *Scraper) Parse(r io.Reader) ([]Item, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, _ := url.Parse(s.cfg.URL)
	seen := make(map[string]bool)
	items := []Item{}

	doc.Find(s.cfg.ItemSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		title := strings.Join(strings.Fields(sel.Find(s.cfg.TitleSelector).First().Text()), " ")

		link, ok := sel.Find(s.cfg.LinkSelector).First().Attr("href")
		if !ok && goquery.NodeName(sel) == "a" {
			link, ok = sel.Attr("href")
		}
		if title == "" || !ok || strings.TrimSpace(link) == "" {
			return true
		}

		link = resolve(base, strings.TrimSpace(link))
		if seen[link] {
			return true
		}
		seen[link] = true

		published, _ := sel.Find("time").First().Attr("datetime")
		items = append(items, Item{Title: title, Link: link, Published: published})

		return len(items) < s.cfg.Limit
	})

	return items, nil
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func sourceName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimPrefix(u.Host, "www.")
}
