// Package remote pulls players and matches from a league web API.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pable/doubles-league/internal/model"
)

// DefaultPageSize is the match page size requested when none is given.
const DefaultPageSize = 100

// Client is a minimal client for the league web API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient returns a client for the API rooted at baseURL. token is sent as
// a bearer token when non-empty.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Player is one entry from /api/players.
type Player struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	TgID *int64 `json:"tg_id"`
}

// Match is one entry from /api/matches.
type Match struct {
	ID     int64     `json:"id"`
	Date   time.Time `json:"date"`
	Type   string    `json:"type"`
	TeamA  []int64   `json:"team_a"`
	TeamB  []int64   `json:"team_b"`
	ScoreA int       `json:"score_a"`
	ScoreB int       `json:"score_b"`
}

// MatchPage is one page of /api/matches, newest first.
type MatchPage struct {
	Matches    []Match `json:"matches"`
	Pagination struct {
		Page       int  `json:"page"`
		Limit      int  `json:"limit"`
		Total      int  `json:"total"`
		TotalPages int  `json:"totalPages"`
		HasMore    bool `json:"hasMore"`
	} `json:"pagination"`
}

// get performs an authenticated GET and JSON-decodes the (possibly
// compressed) response body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", EncodingZstd+", "+EncodingGzip)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("GET %s: HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := Decompress(resp.Body, resp.Header.Get("Content-Encoding"))
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

// GetPlayers returns every registered player.
func (c *Client) GetPlayers(ctx context.Context) ([]Player, error) {
	var players []Player
	if err := c.get(ctx, "/api/players", &players); err != nil {
		return nil, err
	}
	return players, nil
}

// GetMatchPage returns one page of matches. Pages are 1-based.
func (c *Client) GetMatchPage(ctx context.Context, page, limit int) (*MatchPage, error) {
	var p MatchPage
	if err := c.get(ctx, fmt.Sprintf("/api/matches?page=%d&limit=%d", page, limit), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchLeague downloads all players and walks every match page, returning
// domain values ready for storage.
func (c *Client) FetchLeague(ctx context.Context, pageSize int) ([]model.Player, []model.Match, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	rp, err := c.GetPlayers(ctx)
	if err != nil {
		return nil, nil, err
	}
	players := make([]model.Player, 0, len(rp))
	for _, p := range rp {
		players = append(players, model.Player{ID: p.ID, Name: p.Name, ExternalID: p.TgID})
	}

	var matches []model.Match
	seen := make(map[int64]bool)
	for page := 1; ; page++ {
		mp, err := c.GetMatchPage(ctx, page, pageSize)
		if err != nil {
			return nil, nil, err
		}
		for _, rm := range mp.Matches {
			// A match inserted mid-walk shifts later pages by one.
			if seen[rm.ID] {
				continue
			}
			seen[rm.ID] = true
			m, err := rm.toModel()
			if err != nil {
				return nil, nil, err
			}
			matches = append(matches, m)
		}
		if !mp.Pagination.HasMore || len(mp.Matches) == 0 {
			break
		}
	}
	return players, model.SortChronological(matches), nil
}

func (m Match) toModel() (model.Match, error) {
	t, err := model.ParseMatchType(m.Type)
	if err != nil {
		return model.Match{}, fmt.Errorf("match %d: %w", m.ID, err)
	}
	return model.Match{
		ID:     m.ID,
		Date:   m.Date.UTC(),
		Type:   t,
		TeamA:  m.TeamA,
		TeamB:  m.TeamB,
		ScoreA: m.ScoreA,
		ScoreB: m.ScoreB,
	}, nil
}
