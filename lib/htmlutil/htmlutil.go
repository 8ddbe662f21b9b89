package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// NormalizeText strips non-printable characters, trims the ends and collapses
// inner whitespace runs into a single space.
func NormalizeText(text string) string {
	text = removeNonPrintable(text)
	text = strings.Trim(text, " \t\n\r")
	text = innerWhitespace.ReplaceAllString(text, " ")
	return text
}

// FirstContent returns the text of the first child of a node, the node
// equivalent of `contents[0]`.
func FirstContent(node *html.Node) (string, bool) {
	if node == nil || node.FirstChild == nil {
		return "", false
	}
	first := node.FirstChild
	if first.Type == html.TextNode {
		return first.Data, true
	}
	return GetText(first), true
}

func Attr(node *html.Node, key string) (string, bool) {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr replaces the value of an attribute, appending it when absent.
func SetAttr(node *html.Node, key, val string) {
	for i, a := range node.Attr {
		if a.Key == key {
			node.Attr[i].Val = val
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: val})
}

// Classes splits the class attribute of a node into its tokens.
func Classes(node *html.Node) []string {
	class, _ := Attr(node, "class")
	return strings.Fields(class)
}

func HasClass(node *html.Node, class string) bool {
	for _, c := range Classes(node) {
		if c == class {
			return true
		}
	}
	return false
}

// ElementChildren returns the direct children of a node that are elements.
func ElementChildren(node *html.Node) []*html.Node {
	var out []*html.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			out = append(out, child)
		}
	}
	return out
}

// Children returns every direct child of a node, text and comments included.
func Children(node *html.Node) []*html.Node {
	var out []*html.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, child)
	}
	return out
}

// Detach removes a node from its parent, it is a no-op on a detached node.
func Detach(node *html.Node) {
	if node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
}

// textEscaper escapes text content the way the draft pages were originally
// serialized, quotes are left as is.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// elements whose text html.Render writes unescaped
var rawTextElements = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true, "noscript": true,
	"plaintext": true, "script": true, "style": true, "xmp": true,
}

// leadingNewlineDropped reports whether the parser drops a leading newline
// from this text, html.Render only writes it back for text nodes.
func leadingNewlineDropped(n *html.Node) bool {
	p := n.Parent
	if p == nil || p.FirstChild != n || p.Type != html.ElementNode {
		return false
	}
	switch p.Data {
	case "pre", "listing", "textarea":
		return strings.HasPrefix(n.Data, "\n")
	}
	return false
}

// markRawText turns every escapable text node under `root` into a raw node
// holding its escaped text, the returned func restores the tree.
func markRawText(root *html.Node) (restore func()) {
	var nodes []*html.Node
	var original []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if n.Parent == nil || n.Parent.Type != html.ElementNode || !rawTextElements[n.Parent.Data] {
				nodes = append(nodes, n)
				original = append(original, n.Data)
				n.Type = html.RawNode
				n.Data = textEscaper.Replace(n.Data)
				if leadingNewlineDropped(n) {
					n.Data = "\n" + n.Data
				}
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return func() {
		for i, n := range nodes {
			n.Type = html.TextNode
			n.Data = original[i]
		}
	}
}

// Render serializes nodes back to markup, concatenated in order. Text only
// has `&`, `<` and `>` escaped.
func Render(nodes []*html.Node) (string, error) {
	var buffer bytes.Buffer
	for _, n := range nodes {
		restore := markRawText(n)
		err := html.Render(&buffer, n)
		restore()
		if err != nil {
			return "", err
		}
	}
	return buffer.String(), nil
}

// FindFirst returns the first descendant element of `node` (depth first,
// document order) with the given tag, or nil.
func FindFirst(node *html.Node, tag string) *html.Node {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == tag {
			return child
		}
		found := FindFirst(child, tag)
		if found != nil {
			return found
		}
	}
	return nil
}
