package services

import "testing"

func TestCombinationName(t *testing.T) {
	options := map[string]Option{
		"color":   opt("o2", "color", "White", 0),
		"profile": opt("o1", "profile", "Xingfa 55", 0),
		"glass":   opt("o3", "glass", "Tempered 8mm", 0),
	}
	order := []string{"profile", "color", "glass"}

	tests := []struct {
		name      string
		order     []string
		separator string
		expect    string
	}{
		{"dash", order, " - ", "Xingfa 55 - White - Tempered 8mm"},
		{"no spacing added", order, "/", "Xingfa 55/White/Tempered 8mm"},
		{"decorative separator kept verbatim", order, " ★ ", "Xingfa 55 ★ White ★ Tempered 8mm"},
		{"empty separator", order, "", "Xingfa 55WhiteTempered 8mm"},
		{"missing option skipped", []string{"profile", "handle", "glass"}, " - ", "Xingfa 55 - Tempered 8mm"},
		{"order follows structure", []string{"glass", "profile"}, " - ", "Tempered 8mm - Xingfa 55"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CombinationName(options, tt.order, tt.separator)
			if got != tt.expect {
				t.Errorf("CombinationName() = %q, want %q", got, tt.expect)
			}
			if again := CombinationName(options, tt.order, tt.separator); again != got {
				t.Errorf("CombinationName() not deterministic: %q vs %q", got, again)
			}
		})
	}
}

func TestSelectionName(t *testing.T) {
	active := map[string]SelectedOption{
		"b": {ColumnID: "b", OptionName: "Second"},
		"a": {ColumnID: "a", OptionName: "First"},
	}
	if got := SelectionName(active, []string{"a", "b"}, " | "); got != "First | Second" {
		t.Errorf("SelectionName() = %q", got)
	}
	if got := SelectionName(nil, []string{"a"}, " | "); got != "" {
		t.Errorf("SelectionName(nil) = %q, want empty", got)
	}
}
