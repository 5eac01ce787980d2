package http

import (
	"net/http"

	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/google/uuid"
)

const (
	userIDHeader   = "X-User-ID"
	userRoleHeader = "X-User-Role"
)

// identity is the caller context resolved by the auth gateway upstream.
// Token verification happens before requests reach this service; here the
// identity arrives as trusted headers.
type identity struct {
	UserID uuid.UUID
	Role   domain.Role
}

func identityFromRequest(w http.ResponseWriter, r *http.Request) (identity, bool) {
	rawID := r.Header.Get(userIDHeader)
	rawRole := r.Header.Get(userRoleHeader)
	if rawID == "" || rawRole == "" {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing identity headers")
		return identity{}, false
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "invalid user id")
		return identity{}, false
	}
	role, ok := domain.ToRole(rawRole)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "invalid user role")
		return identity{}, false
	}

	return identity{UserID: userID, Role: role}, true
}
