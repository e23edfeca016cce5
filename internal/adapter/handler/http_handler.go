package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rl1809/kaos-order/internal/core/domain"
	"github.com/rl1809/kaos-order/internal/core/service"
)

type HTTPHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
	sessionTTL   time.Duration
}

func NewHTTPHandler(orderService *service.OrderService, logger *zap.Logger, sessionTTL time.Duration) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{orderService: orderService, logger: logger, sessionTTL: sessionTTL}
}

// Routes mounts the HTML form and the JSON API on r.
func (h *HTTPHandler) Routes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Get("/", h.FormPage)
	r.Post("/", h.FormAction)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.Catalog)
		r.Get("/size-chart", h.SizeChart)

		r.Post("/sessions", h.StartSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", h.GetForm)
			r.Patch("/customer", h.UpdateCustomer)
			r.Post("/items", h.AddItem)
			r.Patch("/items/{itemID}", h.UpdateItem)
			r.Delete("/items/{itemID}", h.RemoveItem)
			r.Get("/summary", h.Summary)
			r.Post("/submit", h.Submit)
		})
	})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog())
}

func (h *HTTPHandler) SizeChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SizeChartResponse{
		Rows:  domain.SizeChart,
		Guide: domain.SizeChartGuide,
		Tip:   domain.SizeChartTip,
	})
}

func (h *HTTPHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	sessionID, form, err := h.orderService.StartSession(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, SessionResponse{SessionID: sessionID, Form: mapForm(form)})
}

func (h *HTTPHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	form, err := h.orderService.Form(r.Context(), sessionID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: sessionID, Form: mapForm(form)})
}

func (h *HTTPHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	form, err := h.orderService.UpdateCustomer(r.Context(), sessionID, service.CustomerUpdate{
		Name:  req.CustomerName,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: sessionID, Form: mapForm(form)})
}

func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.orderService.AddItem(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *HTTPHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	item, err := h.orderService.UpdateItem(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "itemID"), req.toUpdate())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// RemoveItem answers 200 even when the last item is kept; the response says
// whether anything was removed.
func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	removed, err := h.orderService.RemoveItem(r.Context(), sessionID, chi.URLParam(r, "itemID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	form, err := h.orderService.Form(r.Context(), sessionID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RemoveItemResponse{Removed: removed, Form: mapForm(form)})
}

// Summary answers 204 while there is nothing to summarize.
func (h *HTTPHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, ok, err := h.orderService.Summary(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *HTTPHandler) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := h.orderService.Submit(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapHandoff(result))
}

func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingContactInfo):
		writeError(w, http.StatusUnprocessableEntity, "missing_contact_info", domain.UserMessage(err))
	case errors.Is(err, domain.ErrNoValidProducts):
		writeError(w, http.StatusUnprocessableEntity, "no_valid_products", domain.UserMessage(err))
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", "")
	case errors.Is(err, service.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item_not_found", "")
	case errors.Is(err, service.ErrAlreadySubmitted):
		writeError(w, http.StatusConflict, "already_submitted", "")
	default:
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
