package webdomain

import "errors"

// ScoreIncrement is the score added by one increment.
const ScoreIncrement int64 = 100

// ErrNotPlaying is returned when increment or end is applied to an idle session.
var ErrNotPlaying = errors.New("no game in progress")

// PlayState is the state of a play session.
type PlayState string

const (
	StateIdle    PlayState = "idle"
	StatePlaying PlayState = "playing"
)

// PlaySession is the per-browser play state for one game. The zero value is idle
// with score 0.
//
//	idle --start--> playing --increment--> playing
//	playing --end--> idle (final score surfaced)
type PlaySession struct {
	State PlayState
	Score int64
	// GameOver is set by End and cleared by Start.
	GameOver bool
}

// Current returns the session with an empty state normalised to idle.
func (s PlaySession) Current() PlaySession {
	if s.State == "" {
		s.State = StateIdle
	}
	return s
}

// Playing reports whether a game is in progress.
func (s PlaySession) Playing() bool {
	return s.State == StatePlaying
}

// Start begins a new game. It is allowed from any state and always resets the score.
func (s PlaySession) Start() PlaySession {
	return PlaySession{State: StatePlaying}
}

// Increment adds ScoreIncrement to a running game.
func (s PlaySession) Increment() (PlaySession, error) {
	if !s.Playing() {
		return s.Current(), ErrNotPlaying
	}
	s.Score += ScoreIncrement
	return s, nil
}

// End stops a running game. Score keeps the final value.
func (s PlaySession) End() (PlaySession, error) {
	if !s.Playing() {
		return s.Current(), ErrNotPlaying
	}
	return PlaySession{State: StateIdle, Score: s.Score, GameOver: true}, nil
}
