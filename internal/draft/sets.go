package draft

import (
	"fmt"
	"strconv"
	"strings"

	"draftkit/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const DefaultHeaderRowClass = "statrow-head"

// SetsLayout is the indexed draft page: entries are the children of the
// first <ol> of the first <div> carrying a `value` attribute, which is
// also their output index. Only the stats rows of an entry are kept.
//
// Entries sharing a value are not detected, the later one overwrites the
// earlier output.
type SetsLayout struct {
	// HeaderRowClass marks stats rows that are skipped entirely.
	HeaderRowClass string
}

func (SetsLayout) Name() string {
	return "sets"
}

func (l SetsLayout) headerRowClass() string {
	if l.HeaderRowClass == "" {
		return DefaultHeaderRowClass
	}
	return l.HeaderRowClass
}

func (l SetsLayout) Locate(doc *goquery.Document) ([]Entry, error) {
	div := doc.Find("div").First()
	if div.Length() == 0 {
		return nil, missing(l.Name(), -1, "div")
	}
	container := div.Find("ol").First()
	if container.Length() == 0 {
		return nil, missing(l.Name(), -1, "div ol")
	}

	var entries []Entry
	for _, node := range htmlutil.ElementChildren(container.Nodes[0]) {
		value, ok := htmlutil.Attr(node, "value")
		if !ok {
			continue
		}
		index, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, &LookupError{Layout: l.Name(), Index: -1, Lookup: fmt.Sprintf("value %q", value), Err: err}
		}
		entry, err := l.entry(index, node)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (l SetsLayout) entry(index int, item *html.Node) (Entry, error) {
	sel := goquery.NewDocumentFromNode(item).Selection

	if sel.Find("div.setchart").Length() == 0 {
		return Entry{}, missing(l.Name(), index, "div.setchart")
	}
	stats := sel.Find("div.setcol.setcol-stats").First()
	if stats.Length() == 0 {
		return Entry{}, missing(l.Name(), index, "div.setcol.setcol-stats")
	}
	statsDiv := htmlutil.FindFirst(stats.Nodes[0], "div")
	if statsDiv == nil {
		return Entry{}, missing(l.Name(), index, "div.setcol-stats div")
	}
	button := htmlutil.FindFirst(statsDiv, "button")
	if button == nil {
		return Entry{}, missing(l.Name(), index, "div.setcol-stats div button")
	}

	var rows []*html.Node
	for _, row := range htmlutil.ElementChildren(button) {
		if htmlutil.HasClass(row, l.headerRowClass()) {
			continue
		}
		rows = append(rows, row)
	}

	return Entry{
		Index:   index,
		Node:    item,
		Content: rows,
	}, nil
}

// Strip removes the first <em> of every stats row, and the first <small>
// when there is one.
func (l SetsLayout) Strip(entry *Entry) error {
	for _, row := range entry.Content {
		em := htmlutil.FindFirst(row, "em")
		if em == nil {
			return missing(l.Name(), entry.Index, "statrow em")
		}
		htmlutil.Detach(em)

		small := htmlutil.FindFirst(row, "small")
		if small != nil {
			htmlutil.Detach(small)
		}
	}
	return nil
}
