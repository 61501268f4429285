package services

import (
	"bytes"
	"fmt"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// opt builds an option without dimensions.
func opt(id, columnID, name string, price float64) Option {
	return Option{ID: id, ColumnID: columnID, Name: name, UnitPrice: price}
}

// dimOpt builds an option carrying dimensions.
func dimOpt(id, columnID, name string, price, w, h, d float64) Option {
	o := opt(id, columnID, name, price)
	o.Dimensions = &Dimensions{Width: w, Height: h, Depth: d}
	return o
}

// windowCatalog is the two-column scenario used across engine tests:
// Material with prices 100k/120k/0 and Handle with 50k/0.
func windowCatalog() Catalog {
	return Catalog{
		Categories: []Category{
			{ID: "cat-alu", Name: "Aluminum", IsPrimary: true},
			{ID: "cat-acc", Name: "Accessories"},
		},
		Columns: []Column{
			{ID: "col-material", CategoryID: "cat-alu", Name: "Material", IsPrimary: true},
			{ID: "col-handle", CategoryID: "cat-acc", Name: "Handle"},
		},
		Options: []Option{
			opt("m0", "col-material", "Xingfa", 100000),
			opt("m1", "col-material", "Viet Phap", 120000),
			opt("m2", "col-material", "Generic", 0),
			opt("h0", "col-handle", "Lever", 50000),
			opt("h1", "col-handle", "None", 0),
		},
		Structures: []Structure{
			{
				ID:          "st-window",
				CategoryID:  "cat-alu",
				Name:        "Sliding Window",
				ColumnOrder: []string{"col-material", "col-handle"},
				Separator:   " - ",
				IsDefault:   true,
			},
		},
	}
}

// wideColumns returns n columns of three candidates each, priced so that
// every pick has a distinct total.
func wideColumns(n int) []ColumnCandidates {
	cols := make([]ColumnCandidates, n)
	for i := range cols {
		colID := fmt.Sprintf("c%d", i)
		cols[i] = ColumnCandidates{
			ColumnID: colID,
			Candidates: []Option{
				opt(colID+"-a", colID, colID+" A", float64(100*(i+1))),
				opt(colID+"-b", colID, colID+" B", float64(100*(i+1)+10)),
				opt(colID+"-c", colID, colID+" C", 0),
			},
		}
	}
	return cols
}
