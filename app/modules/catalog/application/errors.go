package catalogservice

import "errors"

// ErrGameNotFound is returned when an id does not match any catalog entry.
var ErrGameNotFound = errors.New("game not found")
