package catalogdomain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateGameID is returned by NewCatalog when two games share an id.
var ErrDuplicateGameID = errors.New("duplicate game id")

// Catalog is the immutable process-wide game list. It is safe for concurrent reads
// without locking: nothing mutates it after NewCatalog returns.
type Catalog struct {
	games []Game
	byID  map[GameID]int
}

// NewCatalog validates and copies games. Ids must be positive and unique; order is kept.
func NewCatalog(games []Game) (*Catalog, error) {
	c := &Catalog{
		games: make([]Game, len(games)),
		byID:  make(map[GameID]int, len(games)),
	}
	for i, g := range games {
		if g.ID <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidGameID, g.ID)
		}
		if _, exists := c.byID[g.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateGameID, g.ID)
		}
		c.byID[g.ID] = i
		c.games[i] = g
	}
	return c, nil
}

// All returns a copy of every game in seed order.
func (c *Catalog) All() []Game {
	out := make([]Game, len(c.games))
	copy(out, c.games)
	return out
}

// Find returns the game with the given id.
func (c *Catalog) Find(id GameID) (Game, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Game{}, false
	}
	return c.games[i], true
}

// ByGenre returns the games whose genre equals genre, ignoring case. Partial matches
// never count. The result is empty, not nil, when nothing matches.
func (c *Catalog) ByGenre(genre string) []Game {
	out := []Game{}
	for _, g := range c.games {
		if strings.EqualFold(g.Genre, genre) {
			out = append(out, g)
		}
	}
	return out
}

// Len returns the number of games.
func (c *Catalog) Len() int {
	return len(c.games)
}
