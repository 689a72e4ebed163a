package leaderboarddomain

import (
	"time"
)

// ScoreSubmittedV1 is published for every score submission.
const ScoreSubmittedV1 = "arcade.leaderboard.score.submitted.v1"

// UnknownGame names a submission whose game id does not resolve.
const UnknownGame = "unknown"

// Submission is a player's claimed score. Nothing is validated: GameID is the raw
// path segment and the zero values stand in for missing fields.
type Submission struct {
	GameID string
	Player string
	Score  float64
}

// ScoreSubmittedPayloadV1 describes an acknowledged submission. It is logged and discarded.
type ScoreSubmittedPayloadV1 struct {
	GameID      string    `json:"gameId"`
	GameName    string    `json:"gameName"`
	Player      string    `json:"player"`
	Score       float64   `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}
