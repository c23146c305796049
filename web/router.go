package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/msto2/bid-tool/espn"
	"github.com/msto2/bid-tool/ledger"
	"github.com/msto2/bid-tool/live"
	"github.com/unrolled/render"
)

func getRouter(bids *ledger.Ledger, hub *live.Hub, espnClient espn.Client, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		// The streaming endpoints stay outside the timeout group, a
		// deadline would sever every viewer after a few seconds.
		r.Get("/events", sseHandler(hub))
		r.Get("/ws", wsHandler(hub))

		r.Group(func(r chi.Router) {
			// Set a timeout value on the request context (ctx), that will
			// signal through ctx.Done() that the request has timed out and
			// further processing should be stopped.
			r.Use(middleware.Timeout(10 * time.Second))

			r.Route("/bids", func(r chi.Router) {
				r.Get("/", listBidsHandler(bids, render))
				r.Post("/", createBidHandler(bids, render))
				r.Delete("/", deleteBidHandler(bids, render))
			})

			r.Get("/teams", teamsHandler(espnClient, render))
			r.Get("/free-agents", freeAgentsHandler(espnClient, render))
			r.Get("/player-stats/{playerID}", playerStatsHandler(espnClient, render))
			r.Get("/player-free-agent-status/{playerID}", freeAgentStatusHandler(espnClient, render))

			r.Post("/send-code", sendCodeHandler(render))
		})
	})

	return r
}
