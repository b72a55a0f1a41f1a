package invoice

// idtkuSuffix is the fixed sub-identifier code the tax office appends to a
// VAT number to form an IDTKU.
const idtkuSuffix = "000000"

// Company represents the seller entity as returned by the upstream
// invoicing API. Only the first company record is used per export.
type Company struct {
	Settings CompanySettings `json:"settings"`
}

// CompanySettings carries the company-level tax identity.
type CompanySettings struct {
	Name      string `json:"name"`
	VATNumber string `json:"vat_number"`
}

// IDTKU derives the tax-office sub-identifier for the company.
func (s CompanySettings) IDTKU() string {
	return s.VATNumber + idtkuSuffix
}

// Invoice represents one sale to be reported. Amount and TotalTaxes are
// pre-computed upstream and used for display only; the export pipeline
// recomputes all tax figures from the line items.
type Invoice struct {
	ID         string     `json:"id"`
	Amount     float64    `json:"amount"`
	TotalTaxes float64    `json:"total_taxes"`
	Date       string     `json:"date"`
	Client     Client     `json:"client"`
	LineItems  []LineItem `json:"line_items"`
}

// Client is the buyer on an invoice.
type Client struct {
	Name      string    `json:"name"`
	VATNumber string    `json:"vat_number"`
	Contacts  []Contact `json:"contacts"`
}

// IDTKU derives the tax-office sub-identifier for the client.
func (c Client) IDTKU() string {
	return c.VATNumber + idtkuSuffix
}

// FirstContactEmail returns the email of the first contact, or the empty
// string when the client has no contacts.
func (c Client) FirstContactEmail() string {
	if len(c.Contacts) == 0 {
		return ""
	}
	return c.Contacts[0].Email
}

// Contact is a client contact. Only the first contact's email participates
// in tax reporting.
type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// LineItem is a single good or service on an invoice. Discount is a
// percentage between 0 and 100.
type LineItem struct {
	ProductKey string  `json:"product_key"`
	Cost       float64 `json:"cost"`
	Quantity   int     `json:"quantity"`
	Discount   float64 `json:"discount"`
}
