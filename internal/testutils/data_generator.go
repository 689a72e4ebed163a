// Package testutils generates random catalog and leaderboard data for tests.
package testutils

import (
	"sort"
	"strconv"
	"strings"
	"time"

	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	leaderboarddomain "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/domain"
	"github.com/brianvoe/gofakeit/v6"
)

// TestDataGenerator provides methods to create test data
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(s),
		seed:  s,
	}
}

// Seed returns the seed, for reproducing a failing run.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

var genres = []string{"Arcade", "Platformer", "Shooter", "Puzzle", "Racing", "Fighting"}

// GenerateGames creates count games with ids 1..count.
func (g *TestDataGenerator) GenerateGames(count int) []catalogdomain.Game {
	games := make([]catalogdomain.Game, count)
	for i := 0; i < count; i++ {
		slug := strings.ToLower(g.faker.LetterN(8))
		games[i] = catalogdomain.Game{
			ID:          catalogdomain.GameID(i + 1),
			Name:        g.faker.AppName(),
			Description: g.faker.Sentence(6),
			Thumbnail:   "/images/" + slug + ".png",
			GameURL:     "/games/" + slug,
			Year:        g.faker.Number(1971, 1999),
			Players:     g.faker.RandomString([]string{"1", "1-2", "1-4"}),
			Genre:       genres[g.faker.Number(0, len(genres)-1)],
		}
	}
	return games
}

// GeneratePlayerTag creates a three letter arcade tag.
func (g *TestDataGenerator) GeneratePlayerTag() string {
	return strings.ToUpper(g.faker.LetterN(3))
}

// GenerateSubmissions creates count whole-number submissions against the seeded game ids.
func (g *TestDataGenerator) GenerateSubmissions(count int) []leaderboarddomain.Submission {
	subs := make([]leaderboarddomain.Submission, count)
	for i := range subs {
		subs[i] = leaderboarddomain.Submission{
			GameID: strconv.Itoa(g.faker.Number(1, 5)),
			Player: g.GeneratePlayerTag(),
			Score:  float64(g.faker.Number(0, 999999)),
		}
	}
	return subs
}

// GenerateRanking creates count entries ranked 1..count by descending score.
func (g *TestDataGenerator) GenerateRanking(count int) []leaderboarddomain.Entry {
	subs := g.GenerateSubmissions(count)
	sort.Slice(subs, func(i, j int) bool { return subs[i].Score > subs[j].Score })

	entries := make([]leaderboarddomain.Entry, count)
	for i, s := range subs {
		entries[i] = leaderboarddomain.Entry{Rank: i + 1, Player: s.Player, Score: int64(s.Score)}
	}
	return entries
}
