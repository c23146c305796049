package testutils

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/msto2/bid-tool/model"
)

//go:embed espndata
var espndata embed.FS

// FakeESPNServer stands in for the league data backend. The free-agent pool
// is mutable so tests can sign players and watch bids get reconciled away.
type FakeESPNServer struct {
	s *httptest.Server

	mu           sync.Mutex
	agents       map[model.Position][]model.Player
	failing      bool
	failingPos   map[model.Position]bool
	agentQueries int
}

func NewFakeESPNServer() *FakeESPNServer {
	f := &FakeESPNServer{
		agents:     loadDefaultPool(),
		failingPos: make(map[model.Position]bool),
	}

	r := chi.NewRouter()
	r.Get("/teams", teamsHandler)
	r.Get("/free-agents-{pos}", f.freeAgentsHandler)
	r.Get("/player-stats/{playerID}", playerStatsHandler)
	r.Get("/player-free-agent-status/{playerID}", f.freeAgentStatusHandler)

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeESPNServer) Close() {
	f.s.Close()
}

func (f *FakeESPNServer) URL() string {
	return f.s.URL
}

// SetFreeAgents replaces the pool for one position.
func (f *FakeESPNServer) SetFreeAgents(pos model.Position, players []model.Player) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.agents[pos] = players
}

// RemovePlayer drops a player from every position pool, simulating the
// player being signed or otherwise leaving the free-agent list.
func (f *FakeESPNServer) RemovePlayer(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for pos, players := range f.agents {
		kept := players[:0]
		for _, p := range players {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		f.agents[pos] = kept
	}
}

// SetFailing makes every free-agent query return a 500 until reset.
func (f *FakeESPNServer) SetFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

// SetFailingPosition makes free-agent queries for a single position return a
// 500 while the other positions keep working.
func (f *FakeESPNServer) SetFailingPosition(pos model.Position, failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failingPos[pos] = failing
}

// FreeAgentQueries reports how many free-agent requests have been served,
// which lets tests assert on cache hits vs refreshes.
func (f *FakeESPNServer) FreeAgentQueries() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.agentQueries
}

func (f *FakeESPNServer) freeAgentsHandler(w http.ResponseWriter, r *http.Request) {
	pos := model.ParsePosition(chi.URLParam(r, "pos"))

	f.mu.Lock()
	failing := f.failing || f.failingPos[pos]
	f.agentQueries++
	players := make([]model.Player, len(f.agents[pos]))
	copy(players, f.agents[pos])
	f.mu.Unlock()

	if failing {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, players)
}

func (f *FakeESPNServer) freeAgentStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	free := false
	for _, players := range f.agents {
		for _, p := range players {
			if p.ID == id {
				free = true
			}
		}
	}
	f.mu.Unlock()

	writeJSON(w, model.FreeAgentStatus{
		PlayerID:    id,
		IsFreeAgent: free,
		IsRostered:  !free,
	})
}

func teamsHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "teams.json")
}

func playerStatsHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "player_stats.json")
}

func loadDefaultPool() map[model.Position][]model.Player {
	b, err := espndata.ReadFile("espndata/free_agents.json")
	if err != nil {
		log.Fatalf("error reading espndata/free_agents.json: %v", err)
	}

	var parsed map[model.Position][]model.Player
	if err := json.Unmarshal(b, &parsed); err != nil {
		log.Fatalf("error parsing espndata/free_agents.json: %v", err)
	}
	return parsed
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := espndata.ReadFile(fmt.Sprintf("espndata/%s", name))
	if err != nil {
		log.Printf("error reading espndata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
