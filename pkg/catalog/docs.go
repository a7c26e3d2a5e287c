package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/utc"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/agentstation/bootdrift/pkg/constants"
	"github.com/agentstation/bootdrift/pkg/errors"
)

// DocsSource scrapes the "Dependency Versions" appendix of the Spring Boot
// reference documentation. The first table body lists managed coordinates,
// the second lists the version properties that override them.
type DocsSource struct {
	urlTemplate string
	client      *http.Client
}

// DocsOption configures a DocsSource.
type DocsOption func(*DocsSource)

// WithURLTemplate sets the page URL; %s is replaced by the release tag.
func WithURLTemplate(tmpl string) DocsOption {
	return func(s *DocsSource) {
		if tmpl != "" {
			s.urlTemplate = tmpl
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) DocsOption {
	return func(s *DocsSource) {
		if client != nil {
			s.client = client
		}
	}
}

// NewDocsSource creates a source for docs.spring.io.
func NewDocsSource(opts ...DocsOption) *DocsSource {
	s := &DocsSource{
		urlTemplate: constants.DefaultDocsURLTemplate,
		client:      &http.Client{Timeout: constants.DefaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source.
func (s *DocsSource) Name() string {
	return constants.DocsSourceName
}

// URL returns the page address for tag.
func (s *DocsSource) URL(tag string) string {
	if strings.Contains(s.urlTemplate, "%s") {
		return fmt.Sprintf(s.urlTemplate, tag)
	}
	return s.urlTemplate
}

// Fetch downloads and parses the version tables for tag.
// A missing page yields an error matching errors.ErrNotFound.
func (s *DocsSource) Fetch(ctx context.Context, tag string) (*Catalog, error) {
	if tag == "" {
		return nil, errors.NewValidationError("tag", tag, "release tag is required")
	}
	url := s.URL(tag)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", url, err)
	}
	req.Header.Set("User-Agent", constants.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, errors.WrapAPI(s.Name(), 0, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &errors.APIError{
			Source:     s.Name(),
			Endpoint:   url,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	cat, err := ParseDocs(resp.Body)
	if err != nil {
		return nil, errors.WrapParse("html", url, err)
	}
	cat.Tag = tag
	cat.FetchedAt = utc.Now()
	return cat, nil
}

// ParseDocs extracts entries and property names from a dependency versions page.
func ParseDocs(r io.Reader) (*Catalog, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	bodies := findAll(doc, atom.Tbody)
	cat := Empty("")

	if len(bodies) > 0 {
		for _, row := range rows(bodies[0]) {
			if len(row) < 3 || row[0] == "" || row[1] == "" {
				continue
			}
			cat.Entries = append(cat.Entries, Entry{Group: row[0], Name: row[1], Version: row[2]})
		}
	}
	if len(bodies) > 1 {
		for _, row := range rows(bodies[1]) {
			if len(row) < 2 || row[1] == "" {
				continue
			}
			cat.Properties = append(cat.Properties, row[1])
		}
	}
	return cat, nil
}

func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// rows returns the trimmed cell text of every row in a table body.
func rows(tbody *html.Node) [][]string {
	var out [][]string
	for tr := tbody.FirstChild; tr != nil; tr = tr.NextSibling {
		if tr.Type != html.ElementNode || tr.DataAtom != atom.Tr {
			continue
		}
		var cells []string
		for td := tr.FirstChild; td != nil; td = td.NextSibling {
			if td.Type == html.ElementNode && (td.DataAtom == atom.Td || td.DataAtom == atom.Th) {
				cells = append(cells, strings.TrimSpace(text(td)))
			}
		}
		if len(cells) > 0 {
			out = append(out, cells)
		}
	}
	return out
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
