package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dandy22/Arenaku/internal/domain"
)

func TestIdentityFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userID   string
		role     string
		wantOK   bool
		wantRole domain.Role
	}{
		{
			name:     "valid customer",
			userID:   testUserID.String(),
			role:     "CUSTOMER",
			wantOK:   true,
			wantRole: domain.RoleCustomer,
		},
		{
			name:     "valid admin",
			userID:   testUserID.String(),
			role:     "ADMIN",
			wantOK:   true,
			wantRole: domain.RoleAdmin,
		},
		{
			name:   "missing user id",
			role:   "CUSTOMER",
			wantOK: false,
		},
		{
			name:   "missing role",
			userID: testUserID.String(),
			wantOK: false,
		},
		{
			name:   "malformed user id",
			userID: "not-a-uuid",
			role:   "CUSTOMER",
			wantOK: false,
		},
		{
			name:   "unknown role",
			userID: testUserID.String(),
			role:   "SUPERUSER",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/cart", nil)
			if tt.userID != "" {
				req.Header.Set("X-User-ID", tt.userID)
			}
			if tt.role != "" {
				req.Header.Set("X-User-Role", tt.role)
			}
			rec := httptest.NewRecorder()

			ident, ok := identityFromRequest(rec, req)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !tt.wantOK {
				if rec.Code != http.StatusUnauthorized {
					t.Fatalf("expected status 401, got %d", rec.Code)
				}
				return
			}
			if ident.UserID != testUserID {
				t.Fatalf("expected user id %s, got %s", testUserID, ident.UserID)
			}
			if ident.Role != tt.wantRole {
				t.Fatalf("expected role %s, got %s", tt.wantRole, ident.Role)
			}
		})
	}
}
