package handler

import (
	"net/http"
	"net/url"
	"time"

	"slotbook/internal/orders/service"
	httputil "slotbook/pkg/http"
	"slotbook/pkg/logger"
	"slotbook/pkg/model"
	"slotbook/pkg/timeconv"

	"github.com/julienschmidt/httprouter"
)

type OrderHandler struct {
	service service.OrderService
	log     *logger.Logger
}

func NewOrderHandler(service service.OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

func (h *OrderHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/available-date", h.AvailableDate)
	router.POST("/order/:userId/:date", h.Submit)
	router.GET("/orders", h.List)
}

// AvailableDate advertises the earliest bookable slot. The instant is
// canonical; the timezone parameter only selects the offset it is rendered
// with, so clients in any zone agree on the same point in time.
func (h *OrderHandler) AvailableDate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	timezone := r.URL.Query().Get("timezone")

	instant, err := h.service.NextAvailable(r.Context(), timezone)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "AvailableDate", "error", writeErr)
		}
		return
	}

	local, err := timeconv.ToLocal(instant, timezone)
	if err != nil {
		// Unreachable after validation; keep the canonical rendering.
		local = instant
	}

	if err := httputil.WriteSuccess(w, map[string]string{
		"availableDate": local.Format(time.RFC3339),
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "AvailableDate", "error", err)
	}
}

type ordersResponse struct {
	Orders []*model.Order `json:"orders"`
}

func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userId")
	rawDate := ps.ByName("date")
	if unescaped, err := url.PathUnescape(rawDate); err == nil {
		rawDate = unescaped
	}

	orders, err := h.service.Place(r.Context(), userID, rawDate)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusCreated, ordersResponse{Orders: orders}); err != nil {
		h.log.Error("failed to write created response", "handler", "Submit", "error", err)
	}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, ordersResponse{Orders: orders}); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}
