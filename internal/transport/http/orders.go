package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Dandy22/Arenaku/internal/app"
	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/google/uuid"
)

// CheckoutOrchestrator is the minimal interface the order endpoints need.
type CheckoutOrchestrator interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, role domain.Role, info app.CustomerInfo) (domain.Order, error)
	GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (domain.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	ListAllOrders(ctx context.Context, role domain.Role) ([]domain.Order, error)
}

// HandleOrders serves POST /orders (checkout) and GET /orders.
func HandleOrders(svc CheckoutOrchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := identityFromRequest(w, r)
		if !ok {
			return
		}

		switch r.Method {
		case http.MethodGet:
			orders, err := svc.ListUserOrders(r.Context(), ident.UserID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, ordersResponse(orders))
		case http.MethodPost:
			var req createOrderRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			order, err := svc.CreateOrder(r.Context(), ident.UserID, ident.Role, app.CustomerInfo{
				Name:  req.CustomerName,
				Phone: req.CustomerPhone,
				Email: req.CustomerEmail,
				Notes: req.Notes,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toOrderResponse(order))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleOrder serves GET /orders/{id}.
func HandleOrder(svc CheckoutOrchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		ident, ok := identityFromRequest(w, r)
		if !ok {
			return
		}

		orderID, ok := parseOrderPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		order, err := svc.GetOrderByID(r.Context(), ident.UserID, orderID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponse(order))
	}
}

// HandleAdminOrders serves GET /admin/orders.
func HandleAdminOrders(svc CheckoutOrchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		ident, ok := identityFromRequest(w, r)
		if !ok {
			return
		}

		orders, err := svc.ListAllOrders(r.Context(), ident.Role)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ordersResponse(orders))
	}
}

func parseOrderPath(path string) (uuid.UUID, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "orders" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

type createOrderRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	Notes         string `json:"notes"`
}

type orderItemResponse struct {
	ID        string `json:"id"`
	FieldID   string `json:"field_id"`
	Date      string `json:"date"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Price     int64  `json:"price"`
}

type orderResponse struct {
	ID          string              `json:"id"`
	Status      string              `json:"status"`
	TotalAmount int64               `json:"total_amount"`
	Items       []orderItemResponse `json:"items"`
	Payment     *paymentResponse    `json:"payment,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

func toOrderResponse(order domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:        item.ID.String(),
			FieldID:   item.Slot.FieldID.String(),
			Date:      item.Slot.Date.Format("2006-01-02"),
			StartHour: item.Slot.StartHour,
			EndHour:   item.Slot.EndHour,
			Price:     item.Price,
		})
	}

	resp := orderResponse{
		ID:          order.ID.String(),
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		Items:       items,
		CreatedAt:   order.CreatedAt,
	}
	if order.Payment != nil {
		payment := toPaymentResponse(*order.Payment)
		resp.Payment = &payment
	}
	return resp
}

func ordersResponse(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}
	return out
}
