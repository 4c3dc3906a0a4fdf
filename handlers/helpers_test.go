package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"school-admin/auth"
	"school-admin/handlers"
	"school-admin/middleware"
	"school-admin/store"
)

const (
	testSecret   = "test-secret"
	demoUsername = "demo"
	demoPassword = "password"
	demoName     = "Demo User"
)

// newTestApp wires the full route table against an in-memory store, the
// same way main.go wires it against Postgres.
func newTestApp() (*fiber.App, *store.MemoryStore, *auth.TokenService) {
	tokens := auth.NewTokenService(testSecret, time.Hour)
	credentials := auth.StaticCredentials{
		Username:    demoUsername,
		Password:    demoPassword,
		DisplayName: demoName,
	}

	memStore := store.NewMemoryStore()
	authHandler := handlers.NewAuthHandler(tokens, credentials)
	studentHandler := handlers.NewStudentHandler(memStore)

	app := fiber.New()
	api := app.Group("/api")

	api.Post("/login", authHandler.Login)
	api.Get("/protected", middleware.RequireAuth(tokens), authHandler.Protected)

	studentRoutes := api.Group("/students", middleware.RequireAuth(tokens))
	studentRoutes.Get("/", studentHandler.List)
	studentRoutes.Post("/", studentHandler.Create)
	studentRoutes.Get("/:id", studentHandler.Get)
	studentRoutes.Put("/:id", studentHandler.Update)
	studentRoutes.Delete("/:id", studentHandler.Delete)

	return app, memStore, tokens
}

// doRequest sends a JSON request through Fiber's in-process test transport.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return v
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Errorf("status = %d, want %d", resp.StatusCode, want)
	}
}

// login runs the demo login and returns the issued token.
func login(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp := doRequest(t, app, http.MethodPost, "/api/login", "", map[string]string{
		"username": demoUsername,
		"password": demoPassword,
	})
	wantStatus(t, resp, http.StatusOK)

	body := decodeBody[struct {
		Token string `json:"token"`
	}](t, resp)
	if body.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return body.Token
}
