package stylemap

import "errors"

// ErrInvalidRule indicates a style-map rule could not be parsed.
var ErrInvalidRule = errors.New("invalid style map rule")
