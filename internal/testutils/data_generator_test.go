package testutils

import (
	"testing"

	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGames_BuildsValidCatalog(t *testing.T) {
	games := NewTestDataGenerator(1).GenerateGames(20)

	c, err := catalogdomain.NewCatalog(games)
	require.NoError(t, err)
	assert.Equal(t, 20, c.Len())
}

func TestGenerator_IsDeterministicPerSeed(t *testing.T) {
	a := NewTestDataGenerator(9).GenerateRanking(10)
	b := NewTestDataGenerator(9).GenerateRanking(10)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different rankings (-a +b):\n%s", diff)
	}
}

func TestGenerateRanking_Ordered(t *testing.T) {
	entries := NewTestDataGenerator(3).GenerateRanking(15)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
		assert.Len(t, e.Player, 3)
		if i > 0 {
			assert.LessOrEqual(t, e.Score, entries[i-1].Score)
		}
	}

	for _, s := range NewTestDataGenerator(3).GenerateSubmissions(15) {
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.Contains(t, []string{"1", "2", "3", "4", "5"}, s.GameID)
	}
}
