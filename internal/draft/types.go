package draft

import (
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrMissingNode is wrapped by every LookupError caused by a node the
// layout expects but the document does not have.
var ErrMissingNode = errors.New("expected node is missing")

// LookupError reports which lookup failed while walking the document.
// Index is -1 when the failure is outside of any entry.
type LookupError struct {
	Layout string
	Index  int
	Lookup string
	Err    error
}

func (e *LookupError) Error() string {
	where := "document"
	if e.Index >= 0 {
		where = fmt.Sprintf("entry %d", e.Index)
	}
	return fmt.Sprintf("%s layout: %s: lookup %s: %v", e.Layout, where, e.Lookup, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func missing(layout string, index int, lookup string) *LookupError {
	return &LookupError{Layout: layout, Index: index, Lookup: lookup, Err: ErrMissingNode}
}

// ImageRef is an <img> inside an entry that may point at an asset file.
type ImageRef struct {
	Node    *html.Node
	Src     string
	HasSrc  bool
	Classes []string
}

// Entry is one draftable item. Node and Content point into the parsed
// document, mutating them mutates the document.
type Entry struct {
	Index int
	// Name is the display name used in diagnostics, it may be empty.
	Name    string
	Node    *html.Node
	Content []*html.Node
	Images  []ImageRef
}

// DisplayName returns Name, or `#<index>` when the entry has none.
func (e Entry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("#%d", e.Index)
}

// Layout knows where the entries of one input format live and how they are
// numbered.
type Layout interface {
	Name() string
	// Locate finds every entry of the document, in document order.
	Locate(doc *goquery.Document) ([]Entry, error)
	// Strip removes the nodes of an entry that must not reach the output.
	Strip(entry *Entry) error
}
