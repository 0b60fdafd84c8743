package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/farhanrmdhni/portfolio-backend/database"
	"github.com/farhanrmdhni/portfolio-backend/storage"
)

type statusHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          database.Database
	storage     *storage.Client
	startupTime time.Time
}

func newStatusHandler(db database.Database, storageClient *storage.Client, startupTime time.Time) statusHandler {
	logger := log.With().Str("handlerName", "statusHandler").Logger()

	return statusHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		storage:     storageClient,
		startupTime: startupTime,
	}
}

// statusResponse tells the frontend whether it should render the setup
// notice instead of live data.
type statusResponse struct {
	Status     string          `json:"status"`
	Configured map[string]bool `json:"configured"`
	Uptime     string          `json:"uptime"`
	StartedAt  time.Time       `json:"started_at"`
}

// getStatus reports configuration state and uptime.
func (h statusHandler) getStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if !h.db.Ready() {
			status = "unconfigured"
		}

		h.responder.WriteJSON(w, statusResponse{
			Status: status,
			Configured: map[string]bool{
				"database": h.db.Ready(),
				"storage":  h.storage.Configured(),
			},
			Uptime:    time.Since(h.startupTime).Round(time.Second).String(),
			StartedAt: h.startupTime,
		})
	}
}
