package impetus

import "errors"

// Construction errors. Nothing else in the package returns an error.
var (
	// ErrSourceNotFound indicates the source selector matched no element.
	ErrSourceNotFound = errors.New("impetus: source not found")

	// ErrNoUpdateFunc indicates Options.OnUpdate was not set.
	ErrNoUpdateFunc = errors.New("impetus: update function not defined")

	// ErrInvalidOption indicates a numeric option outside its valid range.
	ErrInvalidOption = errors.New("impetus: invalid option")
)
