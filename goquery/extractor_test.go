package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/medcrawl"
	"github.com/fwojciec/medcrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	para1 = "El asma es una enfermedad crónica que inflama y estrecha las vías respiratorias."
	para2 = "Los síntomas incluyen sibilancias, dificultad para respirar y opresión en el pecho."
	para3 = "El tratamiento combina medicamentos de control a largo plazo y de alivio rápido."
)

func okResult(url, body string) *medcrawl.FetchResult {
	return &medcrawl.FetchResult{URL: url, FinalURL: url, Status: medcrawl.StatusOK, Code: 200, Body: []byte(body)}
}

func newExtractor(t *testing.T, src *medcrawl.Source) *goquery.Extractor {
	t.Helper()
	e, err := goquery.NewExtractor(src)
	require.NoError(t, err)
	return e
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("classifies a page with enough prose as an article", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Asma | MedlinePlus</title></head><body>
<nav><a href="/a">A</a></nav>
<article><h1>Asma</h1><p>` + para1 + `</p><p>Corto</p><p>` + para2 + `</p><p>` + para3 + `</p></article>
</body></html>`

		page := newExtractor(t, &medcrawl.Source{Name: "test"}).Extract(okResult("https://example.com/asma", html))

		article, ok := page.(*medcrawl.Article)
		require.True(t, ok, "got %T", page)
		assert.Equal(t, "Asma", article.Title)
		assert.Equal(t, "article", article.Strategy)
		assert.Equal(t, []string{para1, para2, para3}, article.Paragraphs)
	})

	t.Run("reads the site container before generic markers", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article><p>` + para1 + `</p></article>
<div id="topic-summary"><p>` + para1 + `</p><p>` + para2 + `</p><p>` + para3 + `</p></div>
</body></html>`

		src := &medcrawl.Source{Name: "test", ContainerSelectors: []string{"#topic-summary"}}
		page := newExtractor(t, src).Extract(okResult("https://example.com/asma", html))

		article, ok := page.(*medcrawl.Article)
		require.True(t, ok, "got %T", page)
		assert.Equal(t, "site:#topic-summary", article.Strategy)
		assert.Len(t, article.Paragraphs, 3)
	})

	t.Run("two fragments are not enough for an article", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><p>` + para1 + `</p><p>` + para2 + `</p>
<ul><li><a href="/topic/1">Tema uno</a></li><li><a href="/topic/2">Tema dos</a></li></ul>
</main></body></html>`

		page := newExtractor(t, &medcrawl.Source{Name: "test"}).Extract(okResult("https://example.com/list", html))

		index, ok := page.(*medcrawl.Index)
		require.True(t, ok, "got %T", page)
		assert.Equal(t, []medcrawl.Link{
			{Label: "Tema uno", URL: "https://example.com/topic/1"},
			{Label: "Tema dos", URL: "https://example.com/topic/2"},
		}, index.Links)
	})

	t.Run("resolves index links against the final URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><a href="topic">Tema</a><a href="/start">Inicio</a></main></body></html>`
		result := &medcrawl.FetchResult{
			URL:      "https://example.com/start",
			FinalURL: "https://example.com/es/",
			Status:   medcrawl.StatusOK,
			Code:     200,
			Body:     []byte(html),
		}

		page := newExtractor(t, &medcrawl.Source{Name: "test"}).Extract(result)

		index, ok := page.(*medcrawl.Index)
		require.True(t, ok, "got %T", page)
		assert.Equal(t, []medcrawl.Link{{Label: "Tema", URL: "https://example.com/es/topic"}}, index.Links)
	})

	t.Run("applies the source path pattern to page links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><a href="/es/professional/x">Profesional</a><a href="/es/home/x">Hogar</a></main></body></html>`
		src := &medcrawl.Source{Name: "msd", LinkPathPattern: "/professional/"}

		page := newExtractor(t, src).Extract(okResult("https://example.com/es", html))

		index, ok := page.(*medcrawl.Index)
		require.True(t, ok, "got %T", page)
		require.Len(t, index.Links, 1)
		assert.Equal(t, "Profesional", index.Links[0].Label)
	})

	t.Run("ignores navigation links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><nav><a href="/a">A</a><a href="/b">B</a></nav><main><p>Corto</p></main></body></html>`

		page := newExtractor(t, &medcrawl.Source{Name: "test"}).Extract(okResult("https://example.com/", html))

		assert.IsType(t, &medcrawl.Blocked{}, page)
	})

	t.Run("classifies an HTTP error without content as blocked", func(t *testing.T) {
		t.Parallel()

		result := &medcrawl.FetchResult{
			URL:    "https://example.com/x",
			Status: medcrawl.StatusHTTPError,
			Code:   403,
			Body:   []byte("<html><body><h1>Access denied</h1>" + strings.Repeat("<p>denied</p>", 50) + "</body></html>"),
		}

		page := newExtractor(t, &medcrawl.Source{Name: "test"}).Extract(result)

		blocked, ok := page.(*medcrawl.Blocked)
		require.True(t, ok, "got %T", page)
		assert.Equal(t, 403, blocked.Code)
	})

	t.Run("classifies an HTTP error with prose as blocked", func(t *testing.T) {
		t.Parallel()

		result := &medcrawl.FetchResult{
			URL:    "https://example.com/x",
			Status: medcrawl.StatusHTTPError,
			Code:   403,
			Body:   []byte("<html><body><article><p>" + para1 + "</p><p>" + para2 + "</p><p>" + para3 + "</p></article></body></html>"),
		}

		page := newExtractor(t, &medcrawl.Source{Name: "test"}).Extract(result)

		blocked, ok := page.(*medcrawl.Blocked)
		require.True(t, ok, "got %T", page)
		assert.Equal(t, 403, blocked.Code)
	})

	t.Run("finds index links outside the located container", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString(`<html><body><div><p>Elija un tema.</p></div><ul>`)
		for i := 1; i <= 8; i++ {
			b.WriteString(`<li><a href="/topic/` + string(rune('a'+i-1)) + `">Tema de salud número ` + string(rune('0'+i)) + `</a></li>`)
		}
		b.WriteString(`</ul></body></html>`)
		require.Greater(t, b.Len(), goquery.MinBodySize)

		page := newExtractor(t, &medcrawl.Source{Name: "universal"}).Extract(okResult("https://example.com/temas", b.String()))

		index, ok := page.(*medcrawl.Index)
		require.True(t, ok, "got %T", page)
		require.Len(t, index.Links, 8)
		assert.Equal(t, "https://example.com/topic/a", index.Links[0].URL)
		assert.Equal(t, "Tema de salud número 1", index.Links[0].Label)
	})

	t.Run("classifies a tiny body as blocked", func(t *testing.T) {
		t.Parallel()

		page := newExtractor(t, &medcrawl.Source{Name: "test"}).Extract(okResult("https://example.com/x", "<html><body>captcha</body></html>"))

		blocked, ok := page.(*medcrawl.Blocked)
		require.True(t, ok, "got %T", page)
		assert.Equal(t, 200, blocked.Code)
	})

	t.Run("classifies a large page without prose or links as empty", func(t *testing.T) {
		t.Parallel()

		html := "<html><body><main>" + strings.Repeat("<p>corto</p>", 40) + "</main></body></html>"

		page := newExtractor(t, &medcrawl.Source{Name: "test"}).Extract(okResult("https://example.com/x", html))

		assert.IsType(t, &medcrawl.Empty{}, page)
	})

	t.Run("classifies transport failures as blocked without parsing", func(t *testing.T) {
		t.Parallel()

		for _, status := range []medcrawl.FetchStatus{medcrawl.StatusTransportError, medcrawl.StatusTimeout} {
			result := &medcrawl.FetchResult{URL: "https://example.com/x", Status: status}

			page := newExtractor(t, &medcrawl.Source{Name: "test"}).Extract(result)

			blocked, ok := page.(*medcrawl.Blocked)
			require.True(t, ok, "got %T", page)
			assert.Zero(t, blocked.Code)
		}
	})

	t.Run("honors the strictness threshold", func(t *testing.T) {
		t.Parallel()

		// 35 characters each: kept when lenient, dropped when normal.
		short := strings.Repeat("x", 35)
		html := "<html><body><article><p>" + short + "</p><p>" + short + "</p><p>" + short + "</p></article></body></html>"

		lenient := newExtractor(t, &medcrawl.Source{Name: "test", Strictness: medcrawl.StrictnessLenient})
		normal := newExtractor(t, &medcrawl.Source{Name: "test", Strictness: medcrawl.StrictnessNormal})

		assert.IsType(t, &medcrawl.Article{}, lenient.Extract(okResult("https://example.com/x", html)))
		assert.NotEqual(t, medcrawl.KindArticle, normal.Extract(okResult("https://example.com/x", html)).Kind())
	})
}

func TestNewExtractor(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid path pattern", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor(&medcrawl.Source{Name: "test", LinkPathPattern: "(["})

		require.Error(t, err)
	})
}

func TestIndexLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<nav><a href="/spanish/menu.html">Menu</a></nav>
<section id="index">
<ul>
<li><a href="/spanish/acne.html">Acné</a></li>
<li><a href="/spanish/allergy.html">Alergia</a></li>
<li><a href="/spanish/allergy.html">Alergia (duplicado)</a></li>
<li><a href="/spanish/asthma.html">Asma</a></li>
</ul>
</section>
<div class="other"><a href="/spanish/other.html">Otro</a></div>
</body></html>`

	t.Run("applies the index selector", func(t *testing.T) {
		t.Parallel()

		e, err := goquery.NewIndexLinkExtractor(&medcrawl.Source{Name: "test", IndexLinkSelector: "#index li a"})
		require.NoError(t, err)

		links, err := e.ExtractLinks([]byte(html), "https://medlineplus.gov/spanish/healthtopics_a.html")

		require.NoError(t, err)
		assert.Equal(t, []medcrawl.Link{
			{Label: "Acné", URL: "https://medlineplus.gov/spanish/acne.html"},
			{Label: "Alergia", URL: "https://medlineplus.gov/spanish/allergy.html"},
			{Label: "Asma", URL: "https://medlineplus.gov/spanish/asthma.html"},
		}, links)
	})

	t.Run("caps links at the source limit", func(t *testing.T) {
		t.Parallel()

		e, err := goquery.NewIndexLinkExtractor(&medcrawl.Source{Name: "test", IndexLinkSelector: "#index li a", LinkLimit: 2})
		require.NoError(t, err)

		links, err := e.ExtractLinks([]byte(html), "https://medlineplus.gov/spanish/healthtopics_a.html")

		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "Alergia", links[1].Label)
	})

	t.Run("never returns pruned navigation links", func(t *testing.T) {
		t.Parallel()

		e, err := goquery.NewIndexLinkExtractor(&medcrawl.Source{Name: "test"})
		require.NoError(t, err)

		links, err := e.ExtractLinks([]byte(html), "https://medlineplus.gov/spanish/healthtopics_a.html")

		require.NoError(t, err)
		for _, l := range links {
			assert.NotEqual(t, "Menu", l.Label)
		}
		assert.Len(t, links, 4)
	})
}
