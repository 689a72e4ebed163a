package webhandlers

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	webservice "github.com/Black-And-White-Club/retro-arcade/app/modules/web/application"
	webdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/web/domain"
	"github.com/Black-And-White-Club/retro-arcade/app/shared/attr"
	"github.com/Black-And-White-Club/retro-arcade/pkg/arcadeclient"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "arcade_session"

	MessageCatalogFailed     = "Failed to load games. Please try again later."
	MessageLeaderboardFailed = "Failed to load leaderboard. Please try again later."
)

type listPage struct {
	Title        string
	State        string
	Games        []arcadeclient.Game
	ErrorMessage string
}

type detailPage struct {
	Title   string
	Loading bool
	Game    arcadeclient.Game
	Session webdomain.PlaySession
}

type leaderboardPage struct {
	Title        string
	Options      []webdomain.GameOption
	Selected     int
	Entries      []arcadeclient.LeaderboardEntry
	ChartURL     string
	ErrorMessage string
}

// WebHandlers implements the Handlers interface.
type WebHandlers struct {
	service webservice.Service
	logger  *slog.Logger
	pages   *pages
}

// NewWebHandlers creates a new WebHandlers instance. Templates are parsed here and a
// broken template panics at startup.
func NewWebHandlers(service webservice.Service, logger *slog.Logger) *WebHandlers {
	return &WebHandlers{
		service: service,
		logger:  logger,
		pages:   loadPages(),
	}
}

func (h *WebHandlers) HandleGameList(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Catalog()
	page := listPage{
		Title: "Games",
		State: snap.State.String(),
		Games: snap.Games,
	}
	if snap.State == webservice.CatalogFailed {
		page.ErrorMessage = MessageCatalogFailed
	}
	h.render(w, r, h.pages.games, http.StatusOK, page)
}

// HandleRetry re-triggers a failed catalog fetch and sends the browser back to the list.
func (h *WebHandlers) HandleRetry(w http.ResponseWriter, r *http.Request) {
	if h.service.RetryCatalog() {
		h.logger.InfoContext(r.Context(), "Catalog fetch retried", attr.ExtractRequestID(r.Context()))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleGameDetail renders the detail view and reports the play in the background.
func (h *WebHandlers) HandleGameDetail(w http.ResponseWriter, r *http.Request) {
	game, ok := h.resolveGame(r)
	if !ok {
		h.render(w, r, h.pages.game, http.StatusOK, detailPage{Title: "Loading", Loading: true})
		return
	}

	sid := h.sessionID(w, r)
	h.service.RecordPlayAsync(r.Context(), game.ID)
	h.renderDetail(w, r, game, h.service.Session(sid, game.ID))
}

func (h *WebHandlers) HandleStartPlay(w http.ResponseWriter, r *http.Request) {
	h.handleSession(w, r, func(sid string, gameID int) (webdomain.PlaySession, error) {
		return h.service.StartPlay(sid, gameID), nil
	})
}

func (h *WebHandlers) HandleIncrementScore(w http.ResponseWriter, r *http.Request) {
	h.handleSession(w, r, h.service.IncrementScore)
}

func (h *WebHandlers) HandleEndPlay(w http.ResponseWriter, r *http.Request) {
	h.handleSession(w, r, h.service.EndPlay)
}

// handleSession applies a play session transition and renders the detail view in
// place, so the play is not reported again.
func (h *WebHandlers) handleSession(
	w http.ResponseWriter,
	r *http.Request,
	transition func(sessionID string, gameID int) (webdomain.PlaySession, error),
) {
	game, ok := h.resolveGame(r)
	if !ok {
		h.render(w, r, h.pages.game, http.StatusNotFound, detailPage{Title: "Loading", Loading: true})
		return
	}

	sid := h.sessionID(w, r)
	session, err := transition(sid, game.ID)
	if err != nil && !errors.Is(err, webdomain.ErrNotPlaying) {
		h.logger.ErrorContext(r.Context(), "Play session transition failed",
			attr.ExtractRequestID(r.Context()),
			attr.Int("game_id", game.ID),
			attr.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.renderDetail(w, r, game, session)
}

func (h *WebHandlers) renderDetail(w http.ResponseWriter, r *http.Request, game arcadeclient.Game, session webdomain.PlaySession) {
	h.render(w, r, h.pages.game, http.StatusOK, detailPage{
		Title:   game.Name,
		Game:    game,
		Session: session,
	})
}

// HandleLeaderboard fetches the ranking for ?game=N on every request.
func (h *WebHandlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	selected := webdomain.DefaultLeaderboardGame
	if v := r.URL.Query().Get("game"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			selected = webdomain.SelectLeaderboardGame(n)
		}
	}

	page := leaderboardPage{
		Title:    "Leaderboard",
		Options:  webdomain.LeaderboardGames,
		Selected: selected,
		ChartURL: h.service.ChartURL(selected),
	}

	entries, err := h.service.Leaderboard(r.Context(), selected)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		page.ErrorMessage = MessageLeaderboardFailed
	}
	page.Entries = entries

	h.render(w, r, h.pages.leaderboard, http.StatusOK, page)
}

func (h *WebHandlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.pages.notFound, http.StatusNotFound, struct{ Title string }{Title: "Not found"})
}

func (h *WebHandlers) resolveGame(r *http.Request) (arcadeclient.Game, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return arcadeclient.Game{}, false
	}
	return h.service.FindGame(id)
}

// sessionID returns the browser's session id, issuing a new cookie when it is
// missing or malformed.
func (h *WebHandlers) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *WebHandlers) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, status int, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render page",
			attr.ExtractRequestID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

var _ Handlers = (*WebHandlers)(nil)
