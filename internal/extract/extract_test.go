// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/digest-engine/pkg/types"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Story</title><style>p { color: red; }</style></head>
<body>
  <nav><a href="/">Home</a><a href="/world">World</a></nav>
  <div class="sidebar">
    <p>Trending now: unrelated headlines and promo links everywhere.</p>
  </div>
  <article class="story-body">
    <h1>Council approves new transit plan</h1>
    <p>The city council voted on Tuesday to approve a sweeping transit plan
    that will add four new light rail lines over the next decade.</p>
    <p>Officials said construction on the first line is expected to begin
    next spring, with service starting within three years.</p>
    <p>Critics argued the financing model leans too heavily on fare revenue
    projections that have not recovered since the pandemic.</p>
  </article>
  <footer>Copyright example.test</footer>
  <script>trackPageview();</script>
</body>
</html>`

func TestArticleText(t *testing.T) {
	text, err := ArticleText(articlePage)
	require.NoError(t, err)

	assert.Contains(t, text, "Council approves new transit plan")
	assert.Contains(t, text, "four new light rail lines")
	assert.NotContains(t, text, "Trending now")
	assert.NotContains(t, text, "trackPageview")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "Copyright example.test")
}

func TestArticleTextNoCandidates(t *testing.T) {
	text, err := ArticleText("<html><body><p>Just a lone paragraph here.</p></body></html>")
	require.NoError(t, err)
	assert.Contains(t, text, "Just a lone paragraph here.")
}

func TestArticleTextEmpty(t *testing.T) {
	text, err := ArticleText("")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestScoreElementPrefersContent(t *testing.T) {
	html := `<html><body>
	  <div class="sidebar widget"><p>short</p></div>
	  <article class="post-content"><p>` + strings.Repeat("word ", 200) + `</p></article>
	</body></html>`

	text, err := ArticleText(html)
	require.NoError(t, err)
	assert.Contains(t, text, "word word")
	assert.NotContains(t, text, "short")
}

func TestExtract(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(articlePage))
	}))
	defer ts.Close()

	e := NewExtractor(types.ExtractConfig{}, ts.Client())
	res, err := e.Extract(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Greater(t, res.WordCount, 20)
	assert.Contains(t, res.Text, "transit plan")
}

func TestExtractTooShort(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body><div class="content"><p>Too short.</p></div></body></html>`))
	}))
	defer ts.Close()

	e := NewExtractor(types.ExtractConfig{}, ts.Client())
	res, err := e.Extract(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, 2, res.WordCount)
}

func TestExtractHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	e := NewExtractor(types.ExtractConfig{}, ts.Client())
	_, err := e.Extract(context.Background(), ts.URL)
	assert.Error(t, err)
}
