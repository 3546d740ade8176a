package medcrawl

// PageKind identifies the variant of a Page.
type PageKind int

// Page kinds.
const (
	KindArticle PageKind = iota
	KindIndex
	KindEmpty
	KindBlocked
)

// String returns the lower-case kind name.
func (k PageKind) String() string {
	switch k {
	case KindArticle:
		return "article"
	case KindIndex:
		return "index"
	case KindEmpty:
		return "empty"
	case KindBlocked:
		return "blocked"
	}
	return "unknown"
}

// Page is the classification of one fetched page. It is a closed union:
// the only implementations are *Article, *Index, *Empty and *Blocked.
// Callers switch on the concrete type to reach the payload.
type Page interface {
	Kind() PageKind
	page()
}

// Article is a page whose primary value is prose about a single topic.
type Article struct {
	// Title is the page heading, when one was found.
	Title string

	// Paragraphs holds the retained text fragments in document order.
	Paragraphs []string

	// Strategy names the container strategy that matched.
	Strategy string
}

// Index is a page whose primary value is a list of links to topic pages.
type Index struct {
	Links []Link
}

// Empty is a page that yielded neither content nor links.
type Empty struct{}

// Blocked is a page that yielded nothing and looks like an error or
// anti-scraping response. Code is the HTTP status, zero when no response
// was received.
type Blocked struct {
	Code int
}

func (*Article) Kind() PageKind { return KindArticle }
func (*Index) Kind() PageKind   { return KindIndex }
func (*Empty) Kind() PageKind   { return KindEmpty }
func (*Blocked) Kind() PageKind { return KindBlocked }

func (*Article) page() {}
func (*Index) page()   {}
func (*Empty) page()   {}
func (*Blocked) page() {}

// Link is an anchor resolved to an absolute URL.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// PageExtractor turns a fetch result into a classified Page.
// Implementations never fail; anything unusable becomes *Empty or *Blocked.
type PageExtractor interface {
	Extract(result *FetchResult) Page
}

// LinkExtractor enumerates topic links on a page known to be an index.
// The returned links are absolute, deduplicated by URL, and never point
// back at pageURL.
type LinkExtractor interface {
	ExtractLinks(body []byte, pageURL string) ([]Link, error)
}

// ExtractorFactory builds the extractors for a source profile.
type ExtractorFactory interface {
	PageExtractor(src *Source) (PageExtractor, error)
	LinkExtractor(src *Source) (LinkExtractor, error)
}
