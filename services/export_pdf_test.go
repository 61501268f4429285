package services

import (
	"testing"
)

func TestGeneratePDF_Quote(t *testing.T) {
	data := BuildExportData("Nguyen Residence", sampleQuoteLines())
	data.CompanyName = "Catalog Quote"
	data.CustomerName = "Mr. Nguyen"
	data.ReferenceNumber = "Q-001"
	data.CreatedDate = "2026-01-15"

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGeneratePDF_EmptyItems(t *testing.T) {
	result, err := GeneratePDF(BuildExportData("Empty Quote", nil))
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestGeneratePDF_ManyLines(t *testing.T) {
	var lines []QuoteLine
	for i := 0; i < 60; i++ {
		lines = append(lines, sampleQuoteLines()...)
	}

	result, err := GeneratePDF(BuildExportData("Large Quote", lines))
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"whole number", 10, "10"},
		{"zero", 0, "0"},
		{"decimal", 10.5, "10.50"},
		{"small decimal", 0.25, "0.25"},
		{"large whole", 1000, "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatQty(tt.input)
			if got != tt.want {
				t.Errorf("formatQty(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
