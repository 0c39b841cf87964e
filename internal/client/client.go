// Package client is a small typed client for the arena HTTP API and
// its live watch stream. The watch command uses it; only the endpoints
// that need no authentication are covered.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mkrivenko/snake-arena/internal/game"
)

// ErrNotFound reports that the requested player is not live.
var ErrNotFound = errors.New("client: not found")

// ErrStreamClosed reports that the server ended a watch stream cleanly.
var ErrStreamClosed = errors.New("client: stream closed")

// Client talks to one arena server.
type Client struct {
	base string
	http *http.Client
}

// New creates a client for the server at base, e.g.
// "http://localhost:8080".
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// envelope is the {success, data, error} wrapper every JSON endpoint
// responds with.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("client: build request for %s: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: get %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("client: decode %s: %w", path, err)
	}
	if !env.Success {
		if env.Error != nil {
			return fmt.Errorf("client: %s: %s", path, *env.Error)
		}
		return fmt.Errorf("client: %s: status %d", path, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("client: decode %s: %w", path, err)
		}
	}
	return nil
}

// Players lists everyone currently live, most watched first.
func (c *Client) Players(ctx context.Context) ([]game.LivePlayer, error) {
	var data struct {
		Players []game.LivePlayer `json:"players"`
	}
	if err := c.get(ctx, "/live/players", &data); err != nil {
		return nil, err
	}
	return data.Players, nil
}

// Player fetches one live player's current snapshot.
func (c *Client) Player(ctx context.Context, id string) (*game.LivePlayer, error) {
	var p game.LivePlayer
	if err := c.get(ctx, "/live/players/"+url.PathEscape(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Watch opens the live frame stream for one player. The server paces
// the frames; read them with Next until it reports ErrStreamClosed.
func (c *Client) Watch(ctx context.Context, id string) (*Stream, error) {
	wsBase := "ws" + strings.TrimPrefix(c.base, "http")
	u := wsBase + "/live/players/" + url.PathEscape(id) + "/watch"

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("client: dial %s: %w", u, err)
	}
	return &Stream{conn: conn}, nil
}

// Stream is one live watch feed. Frames arrive at whatever pace the
// server sends them.
type Stream struct {
	conn *websocket.Conn
}

// Next blocks until the next frame arrives. It returns ErrStreamClosed
// once the server ends the stream cleanly.
func (s *Stream) Next() (game.LivePlayer, error) {
	var p game.LivePlayer
	if err := s.conn.ReadJSON(&p); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return game.LivePlayer{}, ErrStreamClosed
		}
		return game.LivePlayer{}, fmt.Errorf("client: watch stream broke: %w", err)
	}
	return p, nil
}

// Close tears the stream down; a blocked Next unblocks with an error.
func (s *Stream) Close() error {
	return s.conn.Close()
}
