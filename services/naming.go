package services

import "strings"

// CombinationName joins the display names of the chosen options in column
// order with the separator exactly as configured. Columns without a chosen
// option are skipped.
func CombinationName(options map[string]Option, columnOrder []string, separator string) string {
	names := make([]string, 0, len(columnOrder))
	for _, id := range columnOrder {
		if o, ok := options[id]; ok {
			names = append(names, o.Name)
		}
	}
	return strings.Join(names, separator)
}

// SelectionName is CombinationName over an active single-pick selection.
func SelectionName(active map[string]SelectedOption, columnOrder []string, separator string) string {
	names := make([]string, 0, len(columnOrder))
	for _, id := range columnOrder {
		if so, ok := active[id]; ok {
			names = append(names, so.OptionName)
		}
	}
	return strings.Join(names, separator)
}
