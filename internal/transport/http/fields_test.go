package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dandy22/Arenaku/internal/app"
	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/google/uuid"
)

func TestHandleFields_List(t *testing.T) {
	t.Parallel()

	field := domain.Field{ID: uuid.New(), Name: "Lapangan Futsal A", Price: 150_000}
	svc := &stubFieldService{fields: []domain.Field{field}}

	// Listing is public: no identity headers needed.
	req := httptest.NewRequest(http.MethodGet, "/fields", nil)
	rec := httptest.NewRecorder()
	HandleFields(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"name":"Lapangan Futsal A"`) {
		t.Fatalf("expected field in response, got %q", rec.Body.String())
	}
}

func TestHandleFields_Create(t *testing.T) {
	t.Parallel()

	field := domain.Field{ID: uuid.New(), Name: "Lapangan Futsal A", Price: 150_000}
	validBody := `{"name":"Lapangan Futsal A","price":150000}`

	tests := []struct {
		name           string
		body           string
		role           string
		noIdentity     bool
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "vendor creates field",
			body:           validBody,
			role:           "VENDOR",
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing identity",
			body:           validBody,
			noIdentity:     true,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid json",
			body:           `{"name":`,
			role:           "VENDOR",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "customer is forbidden",
			body:           validBody,
			role:           "CUSTOMER",
			serviceErr:     domain.ErrForbiddenRole,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "empty name",
			body:           `{"name":"","price":150000}`,
			role:           "VENDOR",
			serviceErr:     domain.ErrFieldNameRequired,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid price",
			body:           `{"name":"Lapangan","price":0}`,
			role:           "VENDOR",
			serviceErr:     domain.ErrInvalidPrice,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubFieldService{field: field, err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/fields", bytes.NewBufferString(tt.body))
			if !tt.noIdentity {
				req = withIdentity(req, tt.role)
			}
			rec := httptest.NewRecorder()

			HandleFields(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

type stubFieldService struct {
	field  domain.Field
	fields []domain.Field
	err    error
}

func (s *stubFieldService) CreateField(_ context.Context, _ domain.Role, _ app.CreateFieldInput) (domain.Field, error) {
	if s.err != nil {
		return domain.Field{}, s.err
	}
	return s.field, nil
}

func (s *stubFieldService) ListFields(_ context.Context) ([]domain.Field, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.fields, nil
}
