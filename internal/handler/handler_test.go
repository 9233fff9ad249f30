package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/projectboard/projectboard-go/internal/middleware"
	"github.com/projectboard/projectboard-go/internal/repository"
	"github.com/projectboard/projectboard-go/internal/repository/repositorytest"
	"github.com/projectboard/projectboard-go/internal/service"
)

const testSecret = "test-secret"

// testAPI wires the full route table over an in-memory database, mirroring
// the wiring in cmd/api.
type testAPI struct {
	router http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := repositorytest.NewDB(t)

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo, testSecret, 30*24*time.Hour)
	userService := service.NewUserService(userRepo)
	projectService := service.NewProjectService(projectRepo)

	authHandler := NewAuthHandler(authService, 365*24*time.Hour)
	userHandler := NewUserHandler(userService)
	projectHandler := NewProjectHandler(projectService)
	greetingHandler := NewGreetingHandler()

	r := chi.NewRouter()

	r.Route("/api/hello", func(r chi.Router) {
		r.Get("/", greetingHandler.HandleGet)
		r.Post("/", greetingHandler.HandlePost)
		r.Put("/{helloId}", greetingHandler.HandlePut)
		r.Delete("/{helloId}", greetingHandler.HandleDelete)
	})

	r.Post("/api/signin", authHandler.HandleSignIn)
	r.Post("/api/users", userHandler.HandleRegister)
	r.Get("/api/users", userHandler.HandleList)

	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(authService))
		r.Post("/api/signout", authHandler.HandleSignOut)

		r.Put("/api/users/{userId}", userHandler.HandleUpdate)
		r.Delete("/api/users/{userId}", userHandler.HandleDelete)

		r.Get("/api/projects", projectHandler.HandleList)
		r.Post("/api/projects", projectHandler.HandleCreate)
		r.Get("/api/projects/{projectId}", projectHandler.HandleGet)
		r.Put("/api/projects/{projectId}", projectHandler.HandleUpdate)
		r.Delete("/api/projects/{projectId}", projectHandler.HandleDelete)
	})

	return &testAPI{router: r}
}

// do performs a request against the test router. A non-empty token is sent as
// a Bearer credential.
func (a *testAPI) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) register(t *testing.T, email, password string) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/users", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (a *testAPI) signIn(t *testing.T, email, password string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/signin", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AuthToken string `json:"authToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AuthToken)
	return resp.AuthToken
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
