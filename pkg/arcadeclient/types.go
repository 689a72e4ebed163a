package arcadeclient

// Game mirrors the catalog entry returned by the API.
type Game struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	GameURL     string `json:"gameUrl"`
	Year        int    `json:"year"`
	Players     string `json:"players"`
	Genre       string `json:"genre"`
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Score  int64  `json:"score"`
}

// Health is the liveness probe response.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type gamesResponse struct {
	envelope
	Count int    `json:"count"`
	Games []Game `json:"games"`
}

type gameResponse struct {
	envelope
	Game Game `json:"game"`
}

type leaderboardResponse struct {
	envelope
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type scoreRequest struct {
	Player string `json:"player"`
	Score  int64  `json:"score"`
}

// successFlag lets the generic helpers check the envelope of any response type.
type successFlag interface {
	ok() (bool, string)
}

func (e envelope) ok() (bool, string) { return e.Success, e.Message }
