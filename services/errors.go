package services

import "errors"

// User-facing rejections returned by the engine. Handlers show the message
// as-is.
var (
	ErrNothingChecked     = errors.New("select at least one combination to add")
	ErrCheckedUnavailable = errors.New("the selected combinations are no longer available")
	ErrEmptyName          = errors.New("choose at least one option before adding a line")
	ErrUnknownCombination = errors.New("combination is no longer available")
	ErrUnknownStructure   = errors.New("structure not found")
	ErrNoStructure        = errors.New("no structure selected")
	ErrCatalogLoading     = errors.New("catalog is still loading")
	ErrNoCombinations     = errors.New("no combinations possible for this structure")
)
