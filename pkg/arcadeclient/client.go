// Package arcadeclient is a typed HTTP client for the arcade API.
package arcadeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// APIError is returned for non-2xx responses and for bodies with success:false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("arcade api: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to one API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListGames returns the whole catalog.
func (c *Client) ListGames(ctx context.Context) ([]Game, error) {
	res, err := getJSON[gamesResponse](ctx, c, "/api/games")
	if err != nil {
		return nil, err
	}
	return res.Games, nil
}

// GetGame returns one game. Unknown ids yield an error for which IsNotFound is true.
func (c *Client) GetGame(ctx context.Context, id int) (Game, error) {
	res, err := getJSON[gameResponse](ctx, c, "/api/games/"+strconv.Itoa(id))
	if err != nil {
		return Game{}, err
	}
	return res.Game, nil
}

// ListGamesByGenre returns games whose genre matches, ignoring case.
func (c *Client) ListGamesByGenre(ctx context.Context, genre string) ([]Game, error) {
	res, err := getJSON[gamesResponse](ctx, c, "/api/games/genre/"+url.PathEscape(genre))
	if err != nil {
		return nil, err
	}
	return res.Games, nil
}

// RecordPlay reports one play of a game.
func (c *Client) RecordPlay(ctx context.Context, id int) error {
	_, err := postJSON[struct{}, envelope](ctx, c, "/api/games/"+strconv.Itoa(id)+"/play", nil)
	return err
}

// GetLeaderboard returns the ranking for a game.
func (c *Client) GetLeaderboard(ctx context.Context, gameID int) ([]LeaderboardEntry, error) {
	res, err := getJSON[leaderboardResponse](ctx, c, "/api/leaderboard/"+strconv.Itoa(gameID))
	if err != nil {
		return nil, err
	}
	return res.Leaderboard, nil
}

// SubmitScore submits a score for a game.
func (c *Client) SubmitScore(ctx context.Context, gameID int, player string, score int64) error {
	_, err := postJSON[scoreRequest, envelope](ctx, c, "/api/leaderboard/"+strconv.Itoa(gameID), &scoreRequest{
		Player: player,
		Score:  score,
	})
	return err
}

// ChartURL returns the absolute URL of a game's leaderboard chart.
func (c *Client) ChartURL(gameID int) string {
	return c.baseURL + "/api/leaderboard/" + strconv.Itoa(gameID) + "/chart.png"
}

// Health calls the liveness endpoint.
func (c *Client) Health(ctx context.Context) (Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return Health{}, err
	}
	var h Health
	if err := c.do(req, &h); err != nil {
		return Health{}, err
	}
	return h, nil
}

// getJSON performs a GET request and decodes the JSON response.
func getJSON[T successFlag](ctx context.Context, c *Client, path string) (T, error) {
	var result T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return result, err
	}
	req.Header.Set("Accept", "application/json")

	if err := c.do(req, &result); err != nil {
		return result, err
	}
	if ok, msg := result.ok(); !ok {
		return result, &APIError{StatusCode: http.StatusOK, Message: msg}
	}
	return result, nil
}

// postJSON performs a POST request with an optional JSON body and decodes the JSON response.
func postJSON[Req any, Res successFlag](ctx context.Context, c *Client, path string, body *Req) (Res, error) {
	var result Res

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return result, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return result, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.do(req, &result); err != nil {
		return result, err
	}
	if ok, msg := result.ok(); !ok {
		return result, &APIError{StatusCode: http.StatusOK, Message: msg}
	}
	return result, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("arcade api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("arcade api: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var env envelope
		if json.Unmarshal(bodyBytes, &env) == nil && env.Message != "" {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("arcade api: decode %s: %w", req.URL.Path, err)
	}
	return nil
}
