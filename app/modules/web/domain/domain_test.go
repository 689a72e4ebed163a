package webdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaySession_Scenario(t *testing.T) {
	var s PlaySession
	assert.Equal(t, StateIdle, s.Current().State)

	s = s.Start()
	assert.Equal(t, StatePlaying, s.State)
	assert.Equal(t, int64(0), s.Score)

	var err error
	for i := 0; i < 2; i++ {
		s, err = s.Increment()
		require.NoError(t, err)
	}
	assert.Equal(t, int64(200), s.Score)

	s, err = s.End()
	require.NoError(t, err)
	assert.Equal(t, StateIdle, s.State)
	assert.Equal(t, int64(200), s.Score)
	assert.True(t, s.GameOver)
}

func TestPlaySession_StartResets(t *testing.T) {
	s := PlaySession{State: StatePlaying, Score: 700}
	s = s.Start()
	assert.Equal(t, PlaySession{State: StatePlaying}, s)

	s = PlaySession{State: StateIdle, Score: 300, GameOver: true}.Start()
	assert.Equal(t, PlaySession{State: StatePlaying}, s)
}

func TestPlaySession_IdleTransitions(t *testing.T) {
	tests := []struct {
		name string
		op   func(PlaySession) (PlaySession, error)
	}{
		{name: "increment", op: PlaySession.Increment},
		{name: "end", op: PlaySession.End},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := PlaySession{State: StateIdle, Score: 400, GameOver: true}
			after, err := tt.op(before)
			assert.ErrorIs(t, err, ErrNotPlaying)
			assert.Equal(t, before, after)
		})
	}
}

func TestSelectLeaderboardGame(t *testing.T) {
	assert.Equal(t, 3, SelectLeaderboardGame(3))
	assert.Equal(t, DefaultLeaderboardGame, SelectLeaderboardGame(0))
	assert.Equal(t, DefaultLeaderboardGame, SelectLeaderboardGame(6))
}

func TestFormatScoreAndMedal(t *testing.T) {
	assert.Equal(t, "99,999", FormatScore(99999))
	assert.Equal(t, "1,000,000", FormatScore(1000000))
	assert.Equal(t, "0", FormatScore(0))

	assert.Equal(t, "🥇", Medal(1))
	assert.Equal(t, "🥈", Medal(2))
	assert.Equal(t, "🥉", Medal(3))
	assert.Equal(t, "🏅", Medal(4))
}
