package cataloghandlers

import (
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers defines the catalog HTTP and event handlers.
type Handlers interface {
	// HandleListGames serves GET /api/games.
	HandleListGames(w http.ResponseWriter, r *http.Request)

	// HandleGetGame serves GET /api/games/{id}.
	HandleGetGame(w http.ResponseWriter, r *http.Request)

	// HandleListGamesByGenre serves GET /api/games/genre/{genre}.
	HandleListGamesByGenre(w http.ResponseWriter, r *http.Request)

	// HandleRecordPlay serves POST /api/games/{id}/play.
	HandleRecordPlay(w http.ResponseWriter, r *http.Request)

	// HandleGamePlayed writes the operational log line for a play event.
	HandleGamePlayed(msg *message.Message) error
}
