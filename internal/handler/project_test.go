package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectboard/projectboard-go/internal/model"
)

func TestCreateProject(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "a@x.com", "secret1")
	token := api.signIn(t, "a@x.com", "secret1")

	rec := api.do(t, http.MethodPost, "/api/projects", map[string]string{
		"title":       "Website",
		"description": "company site",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodeResponse[model.ProjectResponse](t, rec)
	assert.Equal(t, "Website", resp.Title)
	require.NotNil(t, resp.Owner)
	assert.Equal(t, "a@x.com", resp.Owner.Email)
}

func TestCreateProject_MissingTitle(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "a@x.com", "secret1")
	token := api.signIn(t, "a@x.com", "secret1")

	rec := api.do(t, http.MethodPost, "/api/projects", map[string]string{
		"description": "no title",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProjects_RequiresAuth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/projects", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListProjects_IncludesOwner(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "a@x.com", "secret1")
	token := api.signIn(t, "a@x.com", "secret1")

	rec := api.do(t, http.MethodPost, "/api/projects", map[string]string{"title": "One"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/projects", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	projects := decodeResponse[[]model.ProjectResponse](t, rec)
	require.Len(t, projects, 1)
	require.NotNil(t, projects[0].Owner)
	assert.Equal(t, "a@x.com", projects[0].Owner.Email)
}

func TestGetProject_Missing(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "a@x.com", "secret1")
	token := api.signIn(t, "a@x.com", "secret1")

	rec := api.do(t, http.MethodGet, "/api/projects/999", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProject_ForbiddenForNonOwner(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "owner@x.com", "secret1")
	api.register(t, "other@x.com", "secret2")
	ownerToken := api.signIn(t, "owner@x.com", "secret1")
	otherToken := api.signIn(t, "other@x.com", "secret2")

	rec := api.do(t, http.MethodPost, "/api/projects", map[string]string{"title": "Mine"}, ownerToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeResponse[model.ProjectResponse](t, rec)

	path := fmt.Sprintf("/api/projects/%d", created.ID)

	rec = api.do(t, http.MethodPut, path, map[string]string{"title": "Stolen"}, otherToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodPut, path, map[string]string{"title": "Renamed"}, ownerToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeResponse[model.ProjectResponse](t, rec)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestDeleteProject(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "a@x.com", "secret1")
	token := api.signIn(t, "a@x.com", "secret1")

	rec := api.do(t, http.MethodPost, "/api/projects", map[string]string{"title": "Doomed"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeResponse[model.ProjectResponse](t, rec)

	path := fmt.Sprintf("/api/projects/%d", created.ID)

	rec = api.do(t, http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
