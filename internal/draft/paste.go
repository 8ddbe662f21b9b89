package draft

import (
	"draftkit/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// PasteLayout is the pokepaste export: every <article> directly under
// <body> is an entry, numbered in document order.
//
//	<article>
//	  <div><img class="img-pokemon" src="/img/pokemon/445-0.png"><img class="img-item" src="..."></div>
//	  <div><pre><span class="type-dragon">Garchomp</span> @ ...</pre></div>
//	</article>
type PasteLayout struct{}

func (PasteLayout) Name() string {
	return "paste"
}

func (l PasteLayout) Locate(doc *goquery.Document) ([]Entry, error) {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil, missing(l.Name(), -1, "body")
	}

	var entries []Entry
	for _, node := range htmlutil.ElementChildren(body.Nodes[0]) {
		if node.Data != "article" {
			continue
		}
		entry, err := l.entry(len(entries), node)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (l PasteLayout) entry(index int, article *html.Node) (Entry, error) {
	pre := htmlutil.FindFirst(article, "pre")
	if pre == nil {
		return Entry{}, missing(l.Name(), index, "pre")
	}
	span := htmlutil.FindFirst(pre, "span")
	if span == nil {
		return Entry{}, missing(l.Name(), index, "pre span")
	}
	name, ok := htmlutil.FirstContent(span)
	if !ok {
		return Entry{}, missing(l.Name(), index, "pre span text")
	}

	div := htmlutil.FindFirst(article, "div")
	if div == nil {
		return Entry{}, missing(l.Name(), index, "div")
	}
	var images []ImageRef
	for _, child := range htmlutil.ElementChildren(div) {
		if child.Data != "img" {
			continue
		}
		src, hasSrc := htmlutil.Attr(child, "src")
		images = append(images, ImageRef{
			Node:    child,
			Src:     src,
			HasSrc:  hasSrc,
			Classes: htmlutil.Classes(child),
		})
	}

	return Entry{
		Index:   index,
		Name:    htmlutil.NormalizeText(name),
		Node:    article,
		Content: htmlutil.Children(article),
		Images:  images,
	}, nil
}

func (PasteLayout) Strip(*Entry) error {
	return nil
}
