package handler

import (
	"context"
	"net/http"
	"time"

	httputil "slotbook/pkg/http"
	"slotbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
)

type HealthHandler struct {
	mongoClient *mongo.Client
	log         *logger.Logger
}

// NewHealthHandler reports process health. The mongo client is optional; the
// in-memory deployment has nothing to ping.
func NewHealthHandler(mongoClient *mongo.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		mongoClient: mongoClient,
		log:         log,
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, map[string]string{"status": "ok"}); err != nil {
		h.log.Error("failed to write health response", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.mongoClient != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.mongoClient.Ping(ctx, nil); err != nil {
			h.log.Error("Readiness check failed", "error", err)
			if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
			}); writeErr != nil {
				h.log.Error("failed to write readiness response", "error", writeErr)
			}
			return
		}
	}

	if err := httputil.WriteSuccess(w, map[string]string{"status": "ready"}); err != nil {
		h.log.Error("failed to write readiness response", "error", err)
	}
}
