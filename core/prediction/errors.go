package prediction

import "errors"

// ErrInvalidInput is returned when Predict receives an empty dataset, a
// non-positive k or a query with non-finite attributes.
var ErrInvalidInput = errors.New("invalid prediction input")
