package export

import "arthakarya/ms_coretax_exporter/internal/xmltree"

// Fixed root attributes required by the tax authority schema.
const (
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "TaxInvoice.xsd"
)

// documentIndent is the indentation width of the rendered bulk document.
const documentIndent = 4

// BuildDocument converts a validated payload into the TaxInvoiceBulk
// element tree. The element names, order, fixed values, and the empty
// placeholder elements (AddInfo, CustomDoc, RefDesc, FacilityStamp,
// BuyerDocumentNumber, BuyerName, BuyerAdress) are a compatibility
// contract with the tax authority schema and must not change.
func BuildDocument(payload Payload) *xmltree.Node {
	invoices := make([]*xmltree.Node, 0, len(payload.Invoices))
	for _, inv := range payload.Invoices {
		invoices = append(invoices, buildTaxInvoice(payload, inv))
	}

	return xmltree.Element("TaxInvoiceBulk").
		Attr("xmlns:xsi", xsiNamespace).
		Attr("xsi:noNamespaceSchemaLocation", schemaLocation).
		Child(
			xmltree.Element("TIN").SetText(payload.VAT),
			xmltree.Element("ListOfTaxInvoice").Child(invoices...),
		)
}

func buildTaxInvoice(payload Payload, inv PayloadInvoice) *xmltree.Node {
	items := make([]*xmltree.Node, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, buildGoodService(item))
	}

	return xmltree.Element("TaxInvoice").Child(
		xmltree.Element("TaxInvoiceDate").SetText(payload.Date),
		xmltree.Element("TaxInvoiceOpt").SetText("Normal"),
		xmltree.Element("TrxCode").SetText("04"),
		xmltree.Element("AddInfo"),
		xmltree.Element("CustomDoc"),
		xmltree.Element("RefDesc"),
		xmltree.Element("FacilityStamp"),
		xmltree.Element("SellerIDTKU").SetText(payload.IDTKU),
		xmltree.Element("BuyerTin").SetText(inv.Client.VAT),
		xmltree.Element("BuyerDocument").SetText("TIN"),
		xmltree.Element("BuyerCountry").SetText("IND"),
		xmltree.Element("BuyerDocumentNumber"),
		xmltree.Element("BuyerName"),
		xmltree.Element("BuyerAdress"),
		xmltree.Element("BuyerEmail").SetText(inv.Client.Email),
		xmltree.Element("BuyerIDTKU").SetText(inv.Client.IDTKU),
		xmltree.Element("ListOfGoodService").Child(items...),
	)
}

func buildGoodService(item PayloadItem) *xmltree.Node {
	return xmltree.Element("GoodService").Child(
		xmltree.Element("Opt").SetText("A"),
		xmltree.Element("Code").SetText("000000"),
		xmltree.Element("Name").SetText(item.Name),
		xmltree.Element("Unit").SetText("UM.0021"),
		xmltree.Element("Price").SetText(item.Price),
		xmltree.Element("Qty").SetText(item.Quantity),
		xmltree.Element("TotalDiscount").SetText(item.Discount),
		xmltree.Element("TaxBase").SetText(item.TaxBase),
		xmltree.Element("OtherTaxBase").SetText(item.OtherTaxBase),
		xmltree.Element("VATRate").SetText("12"),
		xmltree.Element("VAT").SetText(item.VAT),
		xmltree.Element("STLGRate").SetText("0"),
		xmltree.Element("STLG").SetText("0"),
	)
}

// GenerateXML builds the document tree for a payload and renders it with
// the bulk file's fixed indentation.
func GenerateXML(payload Payload) string {
	return xmltree.Render(BuildDocument(payload), xmltree.Options{Indent: documentIndent})
}
