package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Dandy22/Arenaku/internal/app"
	"github.com/Dandy22/Arenaku/internal/domain"
)

// FieldCatalog is the minimal interface the field endpoints need.
type FieldCatalog interface {
	CreateField(ctx context.Context, role domain.Role, in app.CreateFieldInput) (domain.Field, error)
	ListFields(ctx context.Context) ([]domain.Field, error)
}

// HandleFields serves GET /fields and POST /fields.
func HandleFields(svc FieldCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fields, err := svc.ListFields(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, fieldsResponse(fields))
		case http.MethodPost:
			ident, ok := identityFromRequest(w, r)
			if !ok {
				return
			}

			var req createFieldRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			field, err := svc.CreateField(r.Context(), ident.Role, app.CreateFieldInput{
				Name:  req.Name,
				Price: req.Price,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toFieldResponse(field))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type createFieldRequest struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type fieldResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func toFieldResponse(field domain.Field) fieldResponse {
	return fieldResponse{
		ID:        field.ID.String(),
		Name:      field.Name,
		Price:     field.Price,
		CreatedAt: field.CreatedAt,
	}
}

func fieldsResponse(fields []domain.Field) []fieldResponse {
	out := make([]fieldResponse, 0, len(fields))
	for _, field := range fields {
		out = append(out, toFieldResponse(field))
	}
	return out
}
