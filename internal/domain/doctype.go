package domain

// DefaultDocumentLabel is returned for (module, code) pairs without a
// mapping. The classification is a total function: no pair is ever an
// error.
const DefaultDocumentLabel = "Other Document"

// DocumentClass maps one (module, transaction code) pair to its
// human-readable document type label.
type DocumentClass struct {
	Module string
	Code   int
	Label  string
}

// documentClasses is the fixed classification table. Order matters:
// the detail query generates its CASE expression in this order.
var documentClasses = []DocumentClass{
	{Module: "GL", Code: 1, Label: "Opening Entry"},
	{Module: "GL", Code: 2, Label: "Journal Voucher"},
	{Module: "GL", Code: 3, Label: "Closing Entry"},
	{Module: "AR", Code: 1, Label: "Sales Invoice"},
	{Module: "AR", Code: 2, Label: "Sales Return"},
	{Module: "AR", Code: 3, Label: "Receipt"},
	{Module: "AP", Code: 1, Label: "Purchase Invoice"},
	{Module: "AP", Code: 2, Label: "Purchase Return"},
	{Module: "AP", Code: 3, Label: "Payment"},
	{Module: "BK", Code: 1, Label: "Bank Receipt"},
	{Module: "BK", Code: 2, Label: "Bank Payment"},
	{Module: "BK", Code: 3, Label: "Bank Transfer"},
	{Module: "CQ", Code: 1, Label: "Cheque Received"},
	{Module: "CQ", Code: 2, Label: "Cheque Issued"},
	{Module: "CQ", Code: 3, Label: "Cheque Returned"},
	{Module: "ST", Code: 1, Label: "Stock Receipt"},
	{Module: "ST", Code: 2, Label: "Stock Issue"},
}

// DocumentClasses returns the classification table in generation order.
func DocumentClasses() []DocumentClass {
	out := make([]DocumentClass, len(documentClasses))
	copy(out, documentClasses)
	return out
}

// DocumentTypeLabel classifies a (module, code) pair, falling back to
// DefaultDocumentLabel for unmapped pairs.
func DocumentTypeLabel(module string, code int) string {
	for _, dc := range documentClasses {
		if dc.Module == module && dc.Code == code {
			return dc.Label
		}
	}
	return DefaultDocumentLabel
}
