package catalogdomain

// DefaultGames is the catalog the service starts with.
func DefaultGames() []Game {
	return []Game{
		{
			ID:          1,
			Name:        "Super Mario Bros",
			Description: "Classic platformer adventure",
			Thumbnail:   "/images/mario.png",
			GameURL:     "/games/mario",
			Year:        1985,
			Players:     "1-2",
			Genre:       "Platformer",
		},
		{
			ID:          2,
			Name:        "Pac-Man",
			Description: "Eat dots and avoid ghosts",
			Thumbnail:   "/images/pacman.png",
			GameURL:     "/games/pacman",
			Year:        1980,
			Players:     "1",
			Genre:       "Arcade",
		},
		{
			ID:          3,
			Name:        "Space Invaders",
			Description: "Defend Earth from alien invasion",
			Thumbnail:   "/images/spaceinvaders.png",
			GameURL:     "/games/spaceinvaders",
			Year:        1978,
			Players:     "1-2",
			Genre:       "Shooter",
		},
		{
			ID:          4,
			Name:        "Tetris",
			Description: "Arrange falling blocks",
			Thumbnail:   "/images/tetris.png",
			GameURL:     "/games/tetris",
			Year:        1984,
			Players:     "1",
			Genre:       "Puzzle",
		},
		{
			ID:          5,
			Name:        "Snake",
			Description: "Grow your snake without hitting walls",
			Thumbnail:   "/images/snake.png",
			GameURL:     "/games/snake",
			Year:        1976,
			Players:     "1",
			Genre:       "Arcade",
		},
	}
}

// MustDefaultCatalog builds the catalog from DefaultGames and panics if the seed is invalid.
func MustDefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultGames())
	if err != nil {
		panic(err)
	}
	return c
}
