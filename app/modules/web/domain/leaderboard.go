package webdomain

import (
	leaderboarddomain "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GameOption is one entry of the leaderboard game selector.
type GameOption struct {
	ID   int
	Name string
}

// DefaultLeaderboardGame is selected when no valid game is requested.
const DefaultLeaderboardGame = 1

// LeaderboardGames is the fixed selector list. It does not depend on the catalog fetch.
var LeaderboardGames = []GameOption{
	{ID: 1, Name: "Super Mario Bros"},
	{ID: 2, Name: "Pac-Man"},
	{ID: 3, Name: "Space Invaders"},
	{ID: 4, Name: "Tetris"},
	{ID: 5, Name: "Snake"},
}

// SelectLeaderboardGame returns id when it is in LeaderboardGames, otherwise the default.
func SelectLeaderboardGame(id int) int {
	for _, g := range LeaderboardGames {
		if g.ID == id {
			return id
		}
	}
	return DefaultLeaderboardGame
}

// Medal returns the badge for a rank.
func Medal(rank int) string {
	return leaderboarddomain.Medal(rank)
}

var scorePrinter = message.NewPrinter(language.English)

// FormatScore renders a score with thousands separators, e.g. 99,999.
func FormatScore(score int64) string {
	return scorePrinter.Sprintf("%d", score)
}
