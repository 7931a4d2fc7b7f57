package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/storefront/internal/cancellog"
	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/storefront/core/lifecycle"
	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
	"github.com/jcmexdev/storefront/internal/storefront/core/pricing"
	"github.com/jcmexdev/storefront/internal/storefront/infra/adapters/repository"
	"github.com/jcmexdev/storefront/internal/storefront/infra/httpx/middlewares"
)

// Handler serves the storefront HTTP API: price quotes, order views, and
// cancellation requests.
type Handler struct {
	products  ports.ProductRepository
	orders    ports.OrderRepository
	cancel    ports.CancellationService
	cancelLog cancellog.Repository // nil-safe: prompt transitions are not persisted if nil
}

// NewHandler initializes the handler with its repositories, the cancellation
// backend, and the audit log.
func NewHandler(products ports.ProductRepository, orders ports.OrderRepository, cancel ports.CancellationService, cancelLog cancellog.Repository) *Handler {
	return &Handler{
		products:  products,
		orders:    orders,
		cancel:    cancel,
		cancelLog: cancelLog,
	}
}

// Quote computes the itemized price for a configured product.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	product, err := h.products.Product(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product_not_found", "")
			return
		}
		writeError(w, http.StatusBadGateway, "catalog_error", err.Error())
		return
	}

	result, err := pricing.Compose(
		product.BasePriceGross,
		pricing.Selection(req.Selections),
		product.CustomOptions,
		req.ServiceIDs,
		product.Services,
		req.Quantity,
	)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidQuantity) {
			writeError(w, http.StatusUnprocessableEntity, "invalid_quantity", "quantity must be at least 1")
			return
		}
		writeError(w, http.StatusInternalServerError, "pricing_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, mapQuoteToResponse(productID, result))
}

// OrderView returns the status badge, progress, timeline, and permitted
// actions for one order.
func (h *Handler) OrderView(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	order, err := h.orders.Order(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order_not_found", "")
			return
		}
		writeError(w, http.StatusBadGateway, "order_service_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, mapOrderToView(order.ID, order.Status, lifecycle.PermittedActions(order.Status, order.PaymentMethod, order.PaymentStatus)))
}

// RequestCancellation opens a cancellation prompt for the order and submits
// the customer's reason. An empty reason never reaches the backend.
//
// The prompt is a per-customer dialog: each request gets its own instance, so
// concurrent customers can never replace or submit each other's requests.
func (h *Handler) RequestCancellation(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	requestID := middlewares.RequestID(r.Context())

	var req CancellationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if _, err := h.orders.Order(r.Context(), orderID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order_not_found", "")
			return
		}
		writeError(w, http.StatusBadGateway, "order_service_error", err.Error())
		return
	}

	prompt := lifecycle.NewPrompt(h.cancel, h.cancelLog)
	prompt.Open(r.Context(), orderID)

	if err := prompt.Submit(r.Context(), req.Reason); err != nil {
		if errors.Is(err, lifecycle.ErrReasonRequired) {
			writeError(w, http.StatusUnprocessableEntity, "reason_required", "cancellation reason must not be empty")
			return
		}
		slog.ErrorContext(r.Context(), "cancellation rejected", "request_id", requestID, "order_id", orderID, "error", err)
		writeError(w, http.StatusBadGateway, "cancellation_rejected", err.Error())
		return
	}

	slog.InfoContext(r.Context(), "cancellation submitted", "request_id", requestID, "order_id", orderID)
	writeJSON(w, http.StatusAccepted, CancellationResponse{
		OrderID: orderID,
		State:   string(prompt.State()),
	})
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func mapQuoteToResponse(productID string, res pricing.Result) QuoteResponse {
	return QuoteResponse{
		ProductID:     productID,
		Currency:      string(res.BasePrice.Currency),
		BasePrice:     res.BasePrice.StringFixed(2),
		OptionsDelta:  res.OptionsDelta.StringFixed(2),
		ServicesDelta: res.ServicesDelta.StringFixed(2),
		UnitPrice:     res.UnitPrice.StringFixed(2),
		LineTotal:     res.LineTotal.StringFixed(2),
		Quantity:      res.Quantity,
	}
}

func mapOrderToView(id string, status entity.OrderStatus, actions lifecycle.ActionSet) OrderViewResponse {
	view := OrderViewResponse{
		ID:       id,
		Status:   string(status),
		Label:    lifecycle.DisplayLabel(status),
		Progress: lifecycle.Progress(status),
		Actions:  mapActions(actions),
	}

	for _, step := range lifecycle.Timeline(status) {
		view.Timeline = append(view.Timeline, TimelineStepResponse{
			Status:    string(step.Status),
			Label:     step.Label,
			Completed: step.IsCompleted,
			Active:    step.IsActive,
			Pending:   step.IsPending,
		})
	}

	return view
}

// mapActions renders the action set in a fixed order so the response is
// deterministic.
func mapActions(actions lifecycle.ActionSet) []string {
	out := make([]string, 0, len(actions))
	for _, a := range []lifecycle.Action{lifecycle.ActionCancel, lifecycle.ActionCompletePayment} {
		if actions[a] {
			out = append(out, string(a))
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
