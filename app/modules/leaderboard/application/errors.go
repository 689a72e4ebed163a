package leaderboardservice

import "errors"

// ErrGameNotFound is returned when a ranking is requested for an id outside the catalog.
var ErrGameNotFound = errors.New("game not found")
