package xmltree

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
)

func TestRender_TextElement(t *testing.T) {
	n := Element("TIN").SetText("0123456789")

	got := Render(n, Options{Indent: 4})
	want := "<TIN>0123456789</TIN>"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_SelfClosingWhenEmpty(t *testing.T) {
	got := Render(Element("AddInfo"), Options{Indent: 4})
	if got != "<AddInfo/>" {
		t.Errorf("expected self-closing element, got %q", got)
	}
}

func TestRender_NestedIndentation(t *testing.T) {
	root := Element("Bulk").Child(
		Element("List").Child(
			Element("Item").SetText("a"),
			Element("Item").SetText("b"),
		),
		Element("Empty"),
	)

	got := Render(root, Options{Indent: 2})
	want := strings.Join([]string{
		"<Bulk>",
		"  <List>",
		"    <Item>a</Item>",
		"    <Item>b</Item>",
		"  </List>",
		"  <Empty/>",
		"</Bulk>",
	}, "\n")
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestRender_AttributesInInsertionOrder(t *testing.T) {
	n := Element("Root").
		Attr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance").
		Attr("xsi:noNamespaceSchemaLocation", "TaxInvoice.xsd").
		SetText("x")

	got := Render(n, Options{Indent: 4})
	want := `<Root xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:noNamespaceSchemaLocation="TaxInvoice.xsd">x</Root>`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_EscapesTextContent(t *testing.T) {
	n := Element("Name").SetText(`PT Maju & <Rekan> "Sejahtera"`)

	got := Render(n, Options{Indent: 4})
	if !strings.Contains(got, "PT Maju &amp; &lt;Rekan&gt;") {
		t.Errorf("expected escaped text content, got %q", got)
	}
	if strings.Contains(got, "& <") {
		t.Errorf("raw markup characters leaked into output: %q", got)
	}
}

func TestRender_EscapesAttributeValues(t *testing.T) {
	n := Element("Doc").Attr("title", `say "hi" & <go>`)

	got := Render(n, Options{Indent: 4})
	want := `<Doc title="say &quot;hi&quot; &amp; &lt;go&gt;"/>`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_Deterministic(t *testing.T) {
	root := Element("Root").Attr("a", "1").Child(
		Element("Child").SetText("v"),
		Element("Other"),
	)

	first := Render(root, Options{Indent: 4})
	second := Render(root, Options{Indent: 4})
	if first != second {
		t.Error("expected byte-identical output across renders")
	}
}

func TestRender_OutputIsWellFormed(t *testing.T) {
	root := Element("Bulk").Attr("注", "漢 & 字").Child(
		Element("Entry").SetText(`uncontrolled <input> & "quotes"`),
		Element("Placeholder"),
	)

	rendered := Render(root, Options{Indent: 4})

	doc := etree.NewDocument()
	if err := doc.ReadFromString(rendered); err != nil {
		t.Fatalf("rendered document is not well-formed XML: %v\n%s", err, rendered)
	}

	entry := doc.Root().SelectElement("Entry")
	if entry == nil {
		t.Fatal("expected Entry element after re-parse")
	}
	if entry.Text() != `uncontrolled <input> & "quotes"` {
		t.Errorf("escaped text did not round-trip, got %q", entry.Text())
	}
}
