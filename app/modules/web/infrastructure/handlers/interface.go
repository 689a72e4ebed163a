package webhandlers

import "net/http"

// Handlers serves the web frontend views.
type Handlers interface {
	HandleGameList(w http.ResponseWriter, r *http.Request)
	HandleRetry(w http.ResponseWriter, r *http.Request)
	HandleGameDetail(w http.ResponseWriter, r *http.Request)
	HandleStartPlay(w http.ResponseWriter, r *http.Request)
	HandleIncrementScore(w http.ResponseWriter, r *http.Request)
	HandleEndPlay(w http.ResponseWriter, r *http.Request)
	HandleLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleNotFound(w http.ResponseWriter, r *http.Request)
}
