// Package xmltree provides a minimal element tree and a deterministic
// serializer for schema-bound XML documents. Elements carry ordered
// attributes and either text content or ordered child elements, never both.
package xmltree

import "strings"

// Attr is a single element attribute. Attributes render in insertion order.
type Attr struct {
	Key   string
	Value string
}

// Node is a named element in the document tree.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Element creates a new element with the given name.
func Element(name string) *Node {
	return &Node{Name: name}
}

// Attr appends an attribute and returns the node for chaining.
func (n *Node) Attr(key, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
	return n
}

// SetText sets the text content and returns the node for chaining.
// A node with text content must not also carry children.
func (n *Node) SetText(text string) *Node {
	n.Text = text
	return n
}

// Child appends child elements in order and returns the node for chaining.
func (n *Node) Child(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Options controls serialization.
type Options struct {
	// Indent is the number of spaces added per nesting level.
	Indent int
}

// Render serializes the tree rooted at n to a well-formed XML string.
// Child elements render one per line with increasing indentation; text
// content renders inline; elements with neither text nor children use the
// self-closing form. Rendering the same tree twice yields identical output.
func Render(n *Node, opts Options) string {
	var b strings.Builder
	render(&b, n, 0, opts.Indent)
	return b.String()
}

func render(b *strings.Builder, n *Node, depth, indent int) {
	pad := strings.Repeat(" ", depth*indent)

	b.WriteString(pad)
	b.WriteByte('<')
	b.WriteString(n.Name)
	for _, attr := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(attr.Value))
		b.WriteByte('"')
	}

	switch {
	case len(n.Children) > 0:
		b.WriteString(">\n")
		for _, child := range n.Children {
			render(b, child, depth+1, indent)
			b.WriteByte('\n')
		}
		b.WriteString(pad)
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteByte('>')
	case n.Text != "":
		b.WriteByte('>')
		b.WriteString(escapeText(n.Text))
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteByte('>')
	default:
		b.WriteString("/>")
	}
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
