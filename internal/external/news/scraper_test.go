package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/matchday/pkg/config"
	"github.com/wonny/matchday/pkg/httputil"
	"github.com/wonny/matchday/pkg/logger"
)

const page = `<html><body>
<article><a href="/sport/football/1"><h3>Arsenal  win
 the derby</h3></a><time datetime="2024-05-01T10:00:00Z">1h</time></article>
<article><a href="https://other.example.com/2"><h3>Salah signs new deal</h3></a></article>
<article><h3>No link here</h3></article>
<article><a href="/sport/football/1"><h3>Arsenal win the derby (dup)</h3></a></article>
<article><a href="/sport/football/3"><h3>Third story</h3></a></article>
</body></html>`

func newScraper(url string, limit int) *Scraper {
	cfg := config.NewsConfig{
		URL:           url,
		ItemSelector:  "article",
		TitleSelector: "h3",
		LinkSelector:  "a",
		Limit:         limit,
	}
	return NewScraper(httputil.New(logger.Nop()).DisableRetry(), cfg, logger.Nop())
}

func TestScraper_Parse(t *testing.T) {
	s := newScraper("https://www.bbc.com/sport/football", 10)

	items, err := s.Parse(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, Item{
		Title:     "Arsenal win the derby",
		Link:      "https://www.bbc.com/sport/football/1",
		Published: "2024-05-01T10:00:00Z",
	}, items[0])
	assert.Equal(t, "https://other.example.com/2", items[1].Link)
	assert.Equal(t, "Third story", items[2].Title)
}

func TestScraper_ParseLimit(t *testing.T) {
	s := newScraper("https://www.bbc.com/sport/football", 2)

	items, err := s.Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestScraper_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	feed, err := newScraper(srv.URL, 10).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, feed.Items, 3)
	assert.Equal(t, strings.TrimPrefix(srv.URL, "http://"), feed.Source)
}

func TestScraper_FetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newScraper(srv.URL, 10).Fetch(context.Background())
	assert.Error(t, err)
}

func TestService_LatestCached(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	svc := NewService(newScraper(srv.URL, 10), time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		feed, err := svc.Latest(ctx)
		require.NoError(t, err)
		assert.Len(t, feed.Items, 3)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	n, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
