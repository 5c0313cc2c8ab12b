package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/htmlmeta"
	metahttp "github.com/fwojciec/htmlmeta/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const urlset = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">%s</urlset>`

func urlsetOf(paths ...string) string {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString("<url><loc>{{BASE}}" + p + "</loc></url>\n")
	}
	return strings.Replace(urlset, "%s", b.String(), 1)
}

func TestSitemapService_DiscoverURLs_FromRobotsTxt(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/robots.txt":  "User-agent: *\nDisallow: /private/\nSitemap: {{BASE}}/pages.xml\n",
		"/pages.xml":   urlsetOf("/blog/intro", "/blog/guide"),
		"/sitemap.xml": urlsetOf("/not-used"),
	})
	defer srv.Close()

	svc := metahttp.NewSitemapService(nil)
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/blog/intro", srv.URL + "/blog/guide"}, urls)
}

func TestSitemapService_DiscoverURLs_RobotsDirectiveIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/robots.txt": "SITEMAP: {{BASE}}/a.xml\nsitemap:{{BASE}}/b.xml\n",
		"/a.xml":      urlsetOf("/page1"),
		"/b.xml":      urlsetOf("/page2"),
	})
	defer srv.Close()

	urls, err := metahttp.NewSitemapService(nil).DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/page1", srv.URL + "/page2"}, urls)
}

func TestSitemapService_DiscoverURLs_FallbackToSitemapXML(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": urlsetOf("/page1"),
	})
	defer srv.Close()

	urls, err := metahttp.NewSitemapService(nil).DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/page1"}, urls)
}

func TestSitemapService_DiscoverURLs_SitemapIndex(t *testing.T) {
	t.Parallel()

	index := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-blog.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-shop.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap.xml</loc></sitemap>
</sitemapindex>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml":      index,
		"/sitemap-blog.xml": urlsetOf("/blog/intro", "/shared"),
		"/sitemap-shop.xml": urlsetOf("/shop/item", "/shared"),
	})
	defer srv.Close()

	urls, err := metahttp.NewSitemapService(nil).DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/blog/intro", srv.URL + "/shared", srv.URL + "/shop/item"}, urls)
}

func TestSitemapService_DiscoverURLs_PathPrefix(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": urlsetOf("/blog", "/blog/post", "/blogroll", "/about"),
	})
	defer srv.Close()

	urls, err := metahttp.NewSitemapService(nil).DiscoverURLs(context.Background(), srv.URL+"/blog", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/blog", srv.URL + "/blog/post"}, urls)
}

func TestSitemapService_DiscoverURLs_WithFilter(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": urlsetOf("/docs/intro", "/docs/internal/debug", "/blog/post1", "/docs/guide"),
	})
	defer srv.Close()

	filter, err := htmlmeta.NewURLFilter([]string{`/docs/`}, []string{`/internal/`})
	require.NoError(t, err)

	urls, err := metahttp.NewSitemapService(nil).DiscoverURLs(context.Background(), srv.URL, filter)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/docs/intro", srv.URL + "/docs/guide"}, urls)
}

func TestSitemapService_DiscoverURLs_InvalidXML(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": "this is not a sitemap",
	})
	defer srv.Close()

	_, err := metahttp.NewSitemapService(nil).DiscoverURLs(context.Background(), srv.URL, nil)

	require.Error(t, err)
}

func TestSitemapService_DiscoverURLs_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := metahttp.NewSitemapService(nil).DiscoverURLs(context.Background(), "example.com", nil)

	require.Error(t, err)
	assert.Equal(t, htmlmeta.EINVALID, htmlmeta.ErrorCode(err))
}

func TestSitemapService_DiscoverURLs_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": urlsetOf("/page1"),
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := metahttp.NewSitemapService(nil).DiscoverURLs(ctx, srv.URL, nil)

	require.ErrorIs(t, err, context.Canceled)
}

func TestSitemapService_DiscoverURLs_NoSitemapFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{})
	defer srv.Close()

	urls, err := metahttp.NewSitemapService(nil).DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.NotNil(t, urls)
	assert.Empty(t, urls)
}

func TestSitemapService_UsesFetcher(t *testing.T) {
	t.Parallel()

	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sitemap.xml" {
			ua = r.Header.Get("User-Agent")
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	svc := metahttp.NewSitemapService(metahttp.NewFetcher(metahttp.WithUserAgents("sitemap-bot")))
	_, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, "sitemap-bot", ua)
}

// newTestServer creates a test HTTP server with the given path->content mapping.
// Content strings may contain {{BASE}} which is replaced with the server URL.
func newTestServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if r.URL.Path == "/robots.txt" {
			w.Header().Set("Content-Type", "text/plain")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))

	return srv
}
