package export

import (
	"errors"
	"fmt"
)

// Fields a client record can fail validation on.
const (
	FieldVATNumber = "vat_number"
	FieldEmail     = "email"
)

var (
	// ErrNoCompany indicates the upstream service returned no company record.
	ErrNoCompany = errors.New("no company record available")
	// ErrEmptySelection indicates an export was requested without any
	// matching invoices.
	ErrEmptySelection = errors.New("no invoices selected for export")
)

// ValidationError reports an invoice whose client is missing a field
// required for tax reporting. The whole batch is rejected; nothing is
// partially exported.
type ValidationError struct {
	Client string
	Field  string
}

func (e *ValidationError) Error() string {
	switch e.Field {
	case FieldVATNumber:
		return fmt.Sprintf("Client %s does not have a VAT number", e.Client)
	case FieldEmail:
		return fmt.Sprintf("Client %s does not have an email", e.Client)
	default:
		return fmt.Sprintf("Client %s is missing %s", e.Client, e.Field)
	}
}
