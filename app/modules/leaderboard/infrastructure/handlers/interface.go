package leaderboardhandlers

import (
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers defines the leaderboard HTTP and event handlers.
type Handlers interface {
	HandleGetLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleSubmitScore(w http.ResponseWriter, r *http.Request)
	HandleChart(w http.ResponseWriter, r *http.Request)

	// HandleScoreSubmitted writes the operational log line for a submission.
	HandleScoreSubmitted(msg *message.Message) error
}
