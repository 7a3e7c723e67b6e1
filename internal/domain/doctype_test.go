package domain

import "testing"

func TestDocumentTypeLabel(t *testing.T) {
	tests := []struct {
		name     string
		module   string
		code     int
		expected string
	}{
		{name: "journal voucher", module: "GL", code: 2, expected: "Journal Voucher"},
		{name: "sales invoice", module: "AR", code: 1, expected: "Sales Invoice"},
		{name: "bank transfer", module: "BK", code: 3, expected: "Bank Transfer"},
		{name: "cheque returned", module: "CQ", code: 3, expected: "Cheque Returned"},
		{name: "unmapped code falls back", module: "ST", code: 3, expected: DefaultDocumentLabel},
		{name: "unmapped module falls back", module: "ZZ", code: 1, expected: DefaultDocumentLabel},
		{name: "empty module falls back", module: "", code: 0, expected: DefaultDocumentLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DocumentTypeLabel(tt.module, tt.code); got != tt.expected {
				t.Errorf("DocumentTypeLabel(%q, %d) = %q, expected %q", tt.module, tt.code, got, tt.expected)
			}
		})
	}
}

func TestDocumentClassesIsACopy(t *testing.T) {
	classes := DocumentClasses()
	if len(classes) == 0 {
		t.Fatal("expected a non-empty classification table")
	}

	classes[0].Label = "mutated"
	if DocumentClasses()[0].Label == "mutated" {
		t.Error("DocumentClasses must return a copy")
	}
}
