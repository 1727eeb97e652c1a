package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
	"legalease.backend/internal/usecases"
	"legalease.backend/pkg/utils"
)

type adminServiceStub struct {
	lawyersFn func(ctx context.Context) ([]*entities.Profile, error)
	usersFn   func(ctx context.Context, search string, p utils.PaginationParams) ([]*entities.Profile, int64, error)
	setRoleFn func(ctx context.Context, actor usecases.Actor, userID uuid.UUID, role entities.UserRole) (*entities.Profile, error)
}

func (s adminServiceStub) ListLawyers(ctx context.Context) ([]*entities.Profile, error) {
	return s.lawyersFn(ctx)
}
func (s adminServiceStub) ListUsers(ctx context.Context, search string, p utils.PaginationParams) ([]*entities.Profile, int64, error) {
	return s.usersFn(ctx, search, p)
}
func (s adminServiceStub) SetRole(ctx context.Context, actor usecases.Actor, userID uuid.UUID, role entities.UserRole) (*entities.Profile, error) {
	return s.setRoleFn(ctx, actor, userID, role)
}

func TestAdminHandler_Lists(t *testing.T) {
	var gotSearch string
	var gotPage utils.PaginationParams
	stub := adminServiceStub{
		lawyersFn: func(context.Context) ([]*entities.Profile, error) {
			return []*entities.Profile{{ID: uuid.New(), Role: entities.UserRoleLawyer}}, nil
		},
		usersFn: func(_ context.Context, search string, p utils.PaginationParams) ([]*entities.Profile, int64, error) {
			gotSearch, gotPage = search, p
			return []*entities.Profile{{ID: uuid.New()}}, 41, nil
		},
	}
	h := NewAdminHandler(stub)
	r := newRouter()
	r.GET("/api/admin/lawyers", h.ListLawyers)
	r.GET("/api/admin/users", h.ListUsers)

	w := doJSON(r, http.MethodGet, "/api/admin/lawyers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["lawyers"], 1)

	w = doJSON(r, http.MethodGet, "/api/admin/users?search=ada&page=3&limit=500", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada", gotSearch)
	assert.Equal(t, utils.PaginationParams{Page: 3, Limit: utils.MaxPageLimit}, gotPage)
	meta := decode(t, w)["pagination"].(map[string]interface{})
	assert.EqualValues(t, 41, meta["totalCount"])
}

func TestAdminHandler_UpdateRole(t *testing.T) {
	adminID := uuid.New()
	stub := adminServiceStub{
		setRoleFn: func(_ context.Context, actor usecases.Actor, userID uuid.UUID, role entities.UserRole) (*entities.Profile, error) {
			if actor.ID == userID {
				return nil, domainerrors.BadRequest("You cannot change your own role")
			}
			if !role.Valid() {
				return nil, domainerrors.BadRequest("Invalid role")
			}
			return &entities.Profile{ID: userID, Role: role}, nil
		},
	}
	h := NewAdminHandler(stub)
	r := newRouter()
	r.PUT("/api/admin/users/:id/role", asUser(adminID, entities.UserRoleAdmin), h.UpdateRole)

	target := uuid.New()
	w := doJSON(r, http.MethodPut, "/api/admin/users/"+target.String()+"/role", map[string]string{"role": "lawyer"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Role updated successfully", body["message"])
	assert.Equal(t, "lawyer", body["profile"].(map[string]interface{})["role"])

	for name, tc := range map[string]struct {
		path string
		body interface{}
	}{
		"bad id":       {"/api/admin/users/not-a-uuid/role", map[string]string{"role": "lawyer"}},
		"missing role": {"/api/admin/users/" + target.String() + "/role", `{}`},
		"unknown role": {"/api/admin/users/" + target.String() + "/role", map[string]string{"role": "judge"}},
		"own role":     {"/api/admin/users/" + adminID.String() + "/role", map[string]string{"role": "user"}},
	} {
		w := doJSON(r, http.MethodPut, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}
