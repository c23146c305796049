package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/msto2/bid-tool/espn"
	"github.com/msto2/bid-tool/ledger"
	"github.com/msto2/bid-tool/model"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error string `json:"error"`
}

type createBidResponse struct {
	Success bool       `json:"success"`
	Bid     *model.Bid `json:"bid"`
}

type deleteBidResponse struct {
	Success bool `json:"success"`
}

func listBidsHandler(bids *ledger.Ledger, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, bids.List(r.Context()))
	}
}

func createBidHandler(bids *ledger.Ledger, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var bid model.Bid
		if err := json.NewDecoder(r.Body).Decode(&bid); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid bid data"})
			return
		}

		stored, err := bids.Create(r.Context(), bid)
		if err != nil {
			var ve *ledger.ValidationError
			switch {
			case errors.As(err, &ve):
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid bid data"})
			case errors.Is(err, ledger.ErrPlayerNotEligible):
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: "Player is no longer available"})
			default:
				log.Printf("error saving bid: %v", err)
				render.JSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to save bid"})
			}
			return
		}

		render.JSON(w, http.StatusOK, createBidResponse{Success: true, Bid: stored})
	}
}

func deleteBidHandler(bids *ledger.Ledger, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "Bid ID required"})
			return
		}

		if err := bids.Delete(r.Context(), id); err != nil {
			if errors.Is(err, ledger.ErrBidNotFound) {
				render.JSON(w, http.StatusNotFound, errorResponse{Error: "Bid not found"})
			} else {
				log.Printf("error deleting bid: %v", err)
				render.JSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to delete bid"})
			}
			return
		}

		render.JSON(w, http.StatusOK, deleteBidResponse{Success: true})
	}
}

func teamsHandler(espnClient espn.Client, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := espnClient.Teams(r.Context())
		if err != nil {
			log.Printf("error fetching teams: %v", err)
			render.JSON(w, http.StatusBadGateway, errorResponse{Error: "Failed to fetch teams"})
			return
		}
		render.JSON(w, http.StatusOK, teams)
	}
}

func freeAgentsHandler(espnClient espn.Client, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pos := model.ParsePosition(r.URL.Query().Get("position"))
		if pos == model.POS_UNKNOWN {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "Unknown position"})
			return
		}

		players, err := espnClient.FreeAgents(r.Context(), pos)
		if err != nil {
			log.Printf("error fetching free agents for %s: %v", pos, err)
			render.JSON(w, http.StatusBadGateway, errorResponse{Error: "Failed to fetch free agents"})
			return
		}
		render.JSON(w, http.StatusOK, players)
	}
}

func playerStatsHandler(espnClient espn.Client, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")
		stats, err := espnClient.PlayerStats(r.Context(), playerID)
		if err != nil {
			log.Printf("error fetching stats for player %s: %v", playerID, err)
			render.JSON(w, http.StatusBadGateway, errorResponse{Error: "Failed to fetch player stats"})
			return
		}
		render.JSON(w, http.StatusOK, stats)
	}
}

func freeAgentStatusHandler(espnClient espn.Client, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")
		status, err := espnClient.FreeAgentStatus(r.Context(), playerID)
		if err != nil {
			log.Printf("error fetching free-agent status for player %s: %v", playerID, err)
			render.JSON(w, http.StatusBadGateway, errorResponse{Error: "Failed to fetch player free agent status"})
			return
		}
		render.JSON(w, http.StatusOK, status)
	}
}
