// Package export implements the invoice-to-tax-document pipeline: it
// validates raw invoices, computes per-line-item tax figures, and turns the
// result into a bulk tax-invoice XML document accepted by the tax authority.
package export

import (
	"strconv"
	"time"

	"arthakarya/ms_coretax_exporter/internal/core/invoice"

	"github.com/shopspring/decimal"
)

// Payload is the validated, computed intermediate form between raw
// invoices and the XML document. It is built fresh per export request and
// never persisted.
type Payload struct {
	VAT      string
	IDTKU    string
	Date     string
	Invoices []PayloadInvoice
}

// PayloadInvoice is one validated invoice with computed line items.
type PayloadInvoice struct {
	ID     string
	Client PayloadClient
	Items  []PayloadItem
}

// PayloadClient carries the buyer identity fields used by the document.
type PayloadClient struct {
	Name  string
	Email string
	VAT   string
	IDTKU string
}

// PayloadItem is a line item with its computed tax figures, already
// formatted as the fixed two-decimal strings the document requires.
type PayloadItem struct {
	Name         string
	Price        string
	Quantity     string
	Total        string
	Discount     string
	TaxBase      string
	OtherTaxBase string
	VAT          string
}

var (
	hundred    = decimal.NewFromInt(100)
	eleven     = decimal.NewFromInt(11)
	twelve     = decimal.NewFromInt(12)
	vatPercent = decimal.NewFromInt(12)
)

// BuildPayload validates every invoice and computes the tax figures for
// each line item, preserving input order. Validation is fail-fast at batch
// level: all invoices are checked before any computation begins, and the
// first violation rejects the whole batch with a ValidationError.
// referenceDate is wall-clock input supplied by the caller.
func BuildPayload(company invoice.Company, invoices []invoice.Invoice, referenceDate time.Time) (Payload, error) {
	for _, inv := range invoices {
		if inv.Client.VATNumber == "" {
			return Payload{}, &ValidationError{Client: inv.Client.Name, Field: FieldVATNumber}
		}
		if inv.Client.FirstContactEmail() == "" {
			return Payload{}, &ValidationError{Client: inv.Client.Name, Field: FieldEmail}
		}
	}

	payload := Payload{
		VAT:      company.Settings.VATNumber,
		IDTKU:    company.Settings.IDTKU(),
		Date:     referenceDate.Format("2006-01-02"),
		Invoices: make([]PayloadInvoice, 0, len(invoices)),
	}

	for _, inv := range invoices {
		entry := PayloadInvoice{
			ID: inv.ID,
			Client: PayloadClient{
				Name:  inv.Client.Name,
				Email: inv.Client.FirstContactEmail(),
				VAT:   inv.Client.VATNumber,
				IDTKU: inv.Client.IDTKU(),
			},
			Items: make([]PayloadItem, 0, len(inv.LineItems)),
		}
		for _, item := range inv.LineItems {
			entry.Items = append(entry.Items, computeItem(item))
		}
		payload.Invoices = append(payload.Invoices, entry)
	}

	return payload, nil
}

// computeItem derives the five tax figures for a line item. Arithmetic
// runs at full decimal precision; the two-decimal formatting happens once,
// here at the payload boundary. StringFixed rounds half away from zero.
func computeItem(item invoice.LineItem) PayloadItem {
	cost := decimal.NewFromFloat(item.Cost)
	discountPct := decimal.NewFromFloat(item.Discount)

	total := cost.Mul(decimal.NewFromInt(int64(item.Quantity)))
	discount := total.Mul(discountPct).Div(hundred)
	taxBase := total.Sub(discount)
	otherTaxBase := taxBase.Mul(eleven).Div(twelve)
	vat := otherTaxBase.Mul(vatPercent).Div(hundred)

	return PayloadItem{
		Name:         item.ProductKey,
		Price:        cost.StringFixed(2),
		Quantity:     strconv.Itoa(item.Quantity),
		Total:        total.StringFixed(2),
		Discount:     discount.StringFixed(2),
		TaxBase:      taxBase.StringFixed(2),
		OtherTaxBase: otherTaxBase.StringFixed(2),
		VAT:          vat.StringFixed(2),
	}
}
