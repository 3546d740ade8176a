package goquery_test

import (
	"testing"

	"github.com/fwojciec/medcrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	t.Parallel()

	t.Run("removes boilerplate elements", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><style>p{}</style><script>var x;</script></head>
<body>
<header><a href="/">Home</a></header>
<nav><a href="/a">A</a></nav>
<main><p>Contenido</p><aside>Relacionado</aside></main>
<footer>Pie</footer>
</body></html>`

		doc, err := goquery.NewDocument([]byte(html))

		require.NoError(t, err)
		root := doc.Selection()
		assert.Equal(t, 0, root.Find("nav, header, footer, script, style, aside").Length())
		assert.Equal(t, "Contenido", root.Find("main").Text())
	})

	t.Run("captures the title before pruning", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Asma | Sitio</title></head>
<body><header><h1>Asma</h1></header><main><p>Texto</p></main></body></html>`

		doc, err := goquery.NewDocument([]byte(html))

		require.NoError(t, err)
		assert.Equal(t, "Asma", doc.Title())
		assert.Equal(t, 0, doc.Selection().Find("h1").Length())
	})

	t.Run("prefers the heading inside the main content", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div><h1>MedlinePlus</h1></div>
<main><h1>Diabetes  tipo
 2</h1></main></body></html>`

		doc, err := goquery.NewDocument([]byte(html))

		require.NoError(t, err)
		assert.Equal(t, "Diabetes tipo 2", doc.Title())
	})

	t.Run("falls back to the title element", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title> Gripe </title></head><body><p>Texto</p></body></html>`

		doc, err := goquery.NewDocument([]byte(html))

		require.NoError(t, err)
		assert.Equal(t, "Gripe", doc.Title())
	})

	t.Run("returns empty title when page has none", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocument([]byte(`<p>Texto</p>`))

		require.NoError(t, err)
		assert.Empty(t, doc.Title())
	})
}

func TestDocument_Prune(t *testing.T) {
	t.Parallel()

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><nav>Menu</nav><article><p>Uno</p><p>Dos</p></article></body></html>`
		doc, err := goquery.NewDocument([]byte(html))
		require.NoError(t, err)

		before, err := doc.Selection().Html()
		require.NoError(t, err)

		doc.Prune()
		doc.Prune()

		after, err := doc.Selection().Html()
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Equal(t, 2, doc.Selection().Find("p").Length())
	})
}
