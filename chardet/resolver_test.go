package chardet_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/fwojciec/htmlmeta"
	"github.com/fwojciec/htmlmeta/chardet"
	"github.com/fwojciec/htmlmeta/mock"
	"github.com/fwojciec/htmlmeta/regexp"
	"github.com/stretchr/testify/assert"
)

func noCharset() *mock.CharsetResolver {
	return &mock.CharsetResolver{
		ResolveFn: func(string, http.Header) (string, bool) {
			return "", false
		},
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("declared charset wins", func(t *testing.T) {
		t.Parallel()

		inner := &mock.CharsetResolver{
			ResolveFn: func(string, http.Header) (string, bool) {
				return "windows-1251", true
			},
		}

		cs, ok := chardet.NewResolver(inner).Resolve("<p>Привет, мир! Привет, мир!</p>", nil)

		assert.True(t, ok)
		assert.Equal(t, "windows-1251", cs)
	})

	t.Run("sniffs utf-8 when nothing is declared", func(t *testing.T) {
		t.Parallel()

		html := "<html><body><p>" + strings.Repeat("Съешь же ещё этих мягких французских булок. ", 10) + "</p></body></html>"

		cs, ok := chardet.NewResolver(noCharset()).Resolve(html, nil)

		assert.True(t, ok)
		assert.Equal(t, "utf-8", cs)
	})

	t.Run("rejects guesses below the threshold", func(t *testing.T) {
		t.Parallel()

		html := "<p>" + strings.Repeat("Съешь же ещё этих мягких французских булок. ", 10) + "</p>"

		_, ok := chardet.NewResolver(noCharset(), chardet.WithThreshold(101)).Resolve(html, nil)

		assert.False(t, ok)
	})

	t.Run("passes html and header to the wrapped resolver", func(t *testing.T) {
		t.Parallel()

		header := http.Header{"Content-Type": {"text/html; charset=koi8-r"}}
		var gotHTML string
		var gotHeader http.Header
		inner := &mock.CharsetResolver{
			ResolveFn: func(html string, h http.Header) (string, bool) {
				gotHTML, gotHeader = html, h
				return "koi8-r", true
			},
		}

		_, _ = chardet.NewResolver(inner).Resolve("<p>x</p>", header)

		assert.Equal(t, "<p>x</p>", gotHTML)
		assert.Equal(t, header, gotHeader)
	})

	t.Run("enables extraction of undeclared utf-8 pages", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("Съешь же ещё этих мягких французских булок. ", 10)
		html := "<title>Булки</title><meta name=\"description\" content=\"" + body + "\">"

		extractor := regexp.NewExtractor(regexp.WithResolver(chardet.NewResolver(regexp.NewResolver())))
		meta := extractor.Extract(htmlmeta.Input{HTML: html})

		assert.Equal(t, "Булки", meta.Title())
		assert.Equal(t, body, meta.Value("description"))
	})
}
