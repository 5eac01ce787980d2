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

// CartManager is the minimal interface the cart endpoints need.
type CartManager interface {
	AddToCart(ctx context.Context, userID uuid.UUID, role domain.Role, in app.AddToCartInput) (domain.CartItem, error)
	RemoveFromCart(ctx context.Context, userID, itemID uuid.UUID) error
	GetCart(ctx context.Context, userID uuid.UUID) ([]domain.CartItem, error)
}

// HandleCart serves GET /cart and POST /cart.
func HandleCart(svc CartManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := identityFromRequest(w, r)
		if !ok {
			return
		}

		switch r.Method {
		case http.MethodGet:
			items, err := svc.GetCart(r.Context(), ident.UserID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, cartItemsResponse(items))
		case http.MethodPost:
			var req addToCartRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			fieldID, err := uuid.Parse(req.FieldID)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidID, "invalid field id")
				return
			}

			item, err := svc.AddToCart(r.Context(), ident.UserID, ident.Role, app.AddToCartInput{
				FieldID:   fieldID,
				Date:      req.Date,
				StartHour: req.StartHour,
				EndHour:   req.EndHour,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toCartItemResponse(item))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleCartItem serves DELETE /cart/{id}.
func HandleCartItem(svc CartManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		ident, ok := identityFromRequest(w, r)
		if !ok {
			return
		}

		itemID, ok := parseCartItemPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if err := svc.RemoveFromCart(r.Context(), ident.UserID, itemID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseCartItemPath(path string) (uuid.UUID, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "cart" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

type addToCartRequest struct {
	FieldID   string `json:"field_id"`
	Date      string `json:"date"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
}

type cartItemResponse struct {
	ID        string    `json:"id"`
	FieldID   string    `json:"field_id"`
	Date      string    `json:"date"`
	StartHour int       `json:"start_hour"`
	EndHour   int       `json:"end_hour"`
	CreatedAt time.Time `json:"created_at"`
}

func toCartItemResponse(item domain.CartItem) cartItemResponse {
	return cartItemResponse{
		ID:        item.ID.String(),
		FieldID:   item.Slot.FieldID.String(),
		Date:      item.Slot.Date.Format("2006-01-02"),
		StartHour: item.Slot.StartHour,
		EndHour:   item.Slot.EndHour,
		CreatedAt: item.CreatedAt,
	}
}

func cartItemsResponse(items []domain.CartItem) []cartItemResponse {
	out := make([]cartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toCartItemResponse(item))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
