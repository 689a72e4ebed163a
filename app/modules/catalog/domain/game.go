package catalogdomain

import (
	"errors"
	"fmt"
	"strconv"
)

// GameID uniquely identifies a game in the catalog.
type GameID int

// ErrInvalidGameID is returned when an identifier is not a positive integer.
var ErrInvalidGameID = errors.New("invalid game id")

// ParseGameID parses a path segment into a GameID. Only plain decimal positive
// integers are accepted; "3abc", "+3" and "03x" are rejected.
func ParseGameID(s string) (GameID, error) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGameID, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGameID, s)
	}
	return GameID(n), nil
}

// String returns the decimal form of the id.
func (id GameID) String() string {
	return strconv.Itoa(int(id))
}

// Game is one catalog entry.
type Game struct {
	ID          GameID `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	GameURL     string `json:"gameUrl"`
	Year        int    `json:"year"`
	Players     string `json:"players"` // player-count range, e.g. "1-2"
	Genre       string `json:"genre"`
}
