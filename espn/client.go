package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/msto2/bid-tool/model"
)

// DefaultURL is the address of the league data backend when ESPN_API_URL is
// not set, a small service that wraps the ESPN fantasy API and serves team
// and free-agent data as JSON.
const DefaultURL = "http://localhost:8000"

type Client interface {
	// Teams returns every franchise in the league with their records.
	Teams(ctx context.Context) ([]model.Team, error)
	// FreeAgents returns the current free agents for a single position.
	FreeAgents(ctx context.Context, pos model.Position) ([]model.Player, error)
	// FreeAgentIDs returns the union of free-agent player ids across every
	// biddable position. Positions are queried concurrently and individual
	// failures are tolerated; an error is returned only when every single
	// query failed, so callers can tell "backend down" from "empty pool".
	FreeAgentIDs(ctx context.Context) (map[int]struct{}, error)
	// PlayerStats proxies the raw stats document for one player.
	PlayerStats(ctx context.Context, playerID string) (json.RawMessage, error)
	// FreeAgentStatus reports whether a single player is still biddable.
	FreeAgentStatus(ctx context.Context, playerID string) (*model.FreeAgentStatus, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New(url string) (Client, error) {
	if url == "" {
		url = DefaultURL
	}
	c := &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
	return c, nil
}

// NewForTest returns a Client that talks to the given URL instead of the
// real backend.
func NewForTest(url string) Client {
	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *client) Teams(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	if err := c.getJSON(ctx, fmt.Sprintf("%s/teams", c.url), &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *client) FreeAgents(ctx context.Context, pos model.Position) ([]model.Player, error) {
	var parsed []espnPlayer
	url := fmt.Sprintf("%s/free-agents-%s", c.url, positionPath(pos))
	if err := c.getJSON(ctx, url, &parsed); err != nil {
		return nil, err
	}

	result := make([]model.Player, 0, len(parsed))
	for _, p := range parsed {
		result = append(result, *p.toPlayer())
	}
	return result, nil
}

func (c *client) FreeAgentIDs(ctx context.Context) (map[int]struct{}, error) {
	var (
		mu        sync.Mutex
		ids       = make(map[int]struct{})
		succeeded int
	)

	var wg sync.WaitGroup
	for _, pos := range model.BiddablePositions {
		wg.Add(1)
		go func(pos model.Position) {
			defer wg.Done()
			players, err := c.FreeAgents(ctx, pos)
			if err != nil {
				// A single failed position contributes nothing, the
				// other queries still count.
				return
			}
			mu.Lock()
			defer mu.Unlock()
			succeeded++
			for _, p := range players {
				ids[p.ID] = struct{}{}
			}
		}(pos)
	}
	wg.Wait()

	if succeeded == 0 {
		return nil, fmt.Errorf("all %d free-agent position queries failed", len(model.BiddablePositions))
	}
	return ids, nil
}

func (c *client) PlayerStats(ctx context.Context, playerID string) (json.RawMessage, error) {
	var stats json.RawMessage
	url := fmt.Sprintf("%s/player-stats/%s", c.url, playerID)
	if err := c.getJSON(ctx, url, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *client) FreeAgentStatus(ctx context.Context, playerID string) (*model.FreeAgentStatus, error) {
	var status model.FreeAgentStatus
	url := fmt.Sprintf("%s/player-free-agent-status/%s", c.url, playerID)
	if err := c.getJSON(ctx, url, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error parsing response from backend: %w", err)
	}
	return nil
}
