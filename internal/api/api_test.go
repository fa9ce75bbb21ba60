package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-api/internal/api"
	"github.com/portfolio-api/internal/auth"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/mocks"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/service"
	"github.com/rs/zerolog"
)

const testToken = "test-session-token"

type testEnv struct {
	router *gin.Engine
	repos  *repository.Repositories
	auth   *mocks.MockAuthService
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Auth: config.AuthConfig{
			BaseURL:        "http://localhost:3000",
			CookieName:     "portfolio_session",
			SessionTTL:     7 * 24 * time.Hour,
			UpdateAge:      24 * time.Hour,
			CookieCacheTTL: 5 * time.Minute,
			SignUpEnabled:  true,
		},
		Admin:       config.AdminConfig{DraftTTL: 30 * time.Minute},
		Maintenance: config.MaintenanceConfig{SessionPurgeSchedule: "@hourly"},
	}
}

func setupTestRouter(t *testing.T, seed func(*repository.Repositories)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := mocks.NewMockRepositories()
	if seed != nil {
		seed(repos)
	}

	services := service.NewServices(repos, testConfig(), zerolog.Nop())
	mockAuth := mocks.NewMockAuthService()
	mockAuth.Passwords["alice"] = "correct-horse"
	mockAuth.AddSession(testToken, "alice")
	services.Auth = mockAuth

	return &testEnv{
		router: api.NewRouter(services, testConfig(), zerolog.Nop()),
		repos:  repos,
		auth:   mockAuth,
	}
}

func seedContent(repos *repository.Repositories) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	published := created.Add(time.Hour)

	repos.Projects = mocks.NewMockProjectRepository(
		models.Project{ID: 1, Title: "Dungeon Crawler", Description: "Roguelike in Unity", Technologies: []string{"Unity", "C#"}, Featured: true, CreatedAt: created},
		models.Project{ID: 2, Title: "Shader Lab", Description: "GLSL experiments", Technologies: []string{"GLSL"}, CreatedAt: created},
	)
	repos.Posts = mocks.NewMockPostRepository(
		models.Post{ID: 1, Title: "Hello", Slug: "hello", Content: "First post", Published: true, PublishedAt: &published, CreatedAt: created},
		models.Post{ID: 2, Title: "Draft", Slug: "draft", Content: "Not yet", CreatedAt: created},
	)
	repos.Messages = mocks.NewMockMessageRepository(
		models.ContactMessage{ID: 1, Name: "Bob", Email: "bob@example.com", Subject: "Hi", Message: "Hello there", CreatedAt: created},
	)
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	return e.doWith(method, path, body, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "portfolio_session", Value: testToken})
	})
}

func (e *testEnv) doWith(method, path string, body any, prepare func(*http.Request)) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if prepare != nil {
		prepare(req)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return response
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.doWith("GET", "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	response := decode(t, w)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "portfolio-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestRequestID(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.doWith("GET", "/health", nil, func(req *http.Request) {
		req.Header.Set(api.RequestIDHeader, "abc-123")
	})
	if got := w.Header().Get(api.RequestIDHeader); got != "abc-123" {
		t.Errorf("Expected request id to be echoed, got %q", got)
	}

	w = env.doWith("GET", "/health", nil, nil)
	if got := w.Header().Get(api.RequestIDHeader); len(got) != 36 {
		t.Errorf("Expected a minted uuid, got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.doWith("OPTIONS", "/api/contact", nil, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected site origin, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Expected credentials to be allowed, got %q", got)
	}
}

func TestSubmitContact(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.doWith("POST", "/api/contact", models.ContactRequest{
		Name:    "  Ada  ",
		Email:   "Ada@Example.COM",
		Subject: "Collaboration",
		Message: "Let's build a game",
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	response := decode(t, w)
	if response["success"] != true {
		t.Errorf("Expected success true, got %v", response["success"])
	}
	if response["message"] != "Message envoyé avec succès" {
		t.Errorf("Unexpected message %v", response["message"])
	}
	if response["id"].(float64) != 1 {
		t.Errorf("Expected id 1, got %v", response["id"])
	}

	stored := env.repos.Messages.(*mocks.MockMessageRepository).Items
	if len(stored) != 1 {
		t.Fatalf("Expected 1 stored message, got %d", len(stored))
	}
	if stored[0].Name != "Ada" || stored[0].Email != "ada@example.com" {
		t.Errorf("Expected trimmed name and lowercased email, got %q %q", stored[0].Name, stored[0].Email)
	}
}

func TestSubmitContact_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		wantMsg string
	}{
		{
			name:    "missing subject",
			body:    models.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "Hi"},
			wantMsg: "Tous les champs obligatoires doivent être remplis",
		},
		{
			name:    "whitespace only message",
			body:    models.ContactRequest{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "   "},
			wantMsg: "Tous les champs obligatoires doivent être remplis",
		},
		{
			name:    "invalid email",
			body:    models.ContactRequest{Name: "Ada", Email: "ada@example", Subject: "Hi", Message: "Hello"},
			wantMsg: "Format d'email invalide",
		},
		{
			name:    "malformed json",
			body:    `{"name": "Ada"`,
			wantMsg: "Tous les champs obligatoires doivent être remplis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestRouter(t, nil)

			w := env.doWith("POST", "/api/contact", tt.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}
			if got := decode(t, w)["error"]; got != tt.wantMsg {
				t.Errorf("Expected error %q, got %v", tt.wantMsg, got)
			}
			if n := len(env.repos.Messages.(*mocks.MockMessageRepository).Items); n != 0 {
				t.Errorf("Expected nothing stored, got %d messages", n)
			}
		})
	}
}

func TestSubmitContact_StoreFailure(t *testing.T) {
	env := setupTestRouter(t, nil)
	env.repos.Messages.(*mocks.MockMessageRepository).CreateError = errors.New("connection refused")

	w := env.doWith("POST", "/api/contact", models.ContactRequest{
		Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello",
	}, nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Erreur interne du serveur") {
		t.Errorf("Expected generic error, got %s", body)
	}
	if strings.Contains(body, "connection refused") {
		t.Errorf("Internal detail leaked: %s", body)
	}
}

func TestContact_GetNotAllowed(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.doWith("GET", "/api/contact", nil, nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != "Méthode non autorisée" {
		t.Errorf("Unexpected error %v", got)
	}
}

func TestSignIn(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.doWith("POST", "/api/auth/sign-in", map[string]string{
		"username": "alice",
		"password": "correct-horse",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "portfolio_session" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("Expected session cookie")
	}
	if cookie.Value != "token-alice" {
		t.Errorf("Expected issued token, got %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("Expected HttpOnly cookie")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("Expected SameSite=Lax, got %v", cookie.SameSite)
	}
	if cookie.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Errorf("Expected 7 day max age, got %d", cookie.MaxAge)
	}
}

func TestSignIn_FailuresAreGeneric(t *testing.T) {
	env := setupTestRouter(t, nil)

	for _, body := range []map[string]string{
		{"username": "alice", "password": "wrong-password"},
		{"username": "nobody", "password": "correct-horse"},
	} {
		w := env.doWith("POST", "/api/auth/sign-in", body, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected status 401, got %d", w.Code)
		}
		if got := decode(t, w)["error"]; got != auth.ErrInvalidCredentials.Error() {
			t.Errorf("Expected generic message, got %v", got)
		}
	}
}

func TestSignUp(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.doWith("POST", "/api/auth/sign-up", map[string]string{
		"email":    "carol@example.com",
		"password": "long-enough",
		"name":     "Carol",
		"username": "carol",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	env.auth.SignUpErr = auth.ErrSignUpDisabled
	w = env.doWith("POST", "/api/auth/sign-up", map[string]string{
		"email": "dave@example.com", "password": "long-enough", "name": "Dave", "username": "dave",
	}, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 when sign-up is disabled, got %d", w.Code)
	}

	env.auth.SignUpErr = auth.ErrUserExists
	w = env.doWith("POST", "/api/auth/sign-up", map[string]string{
		"email": "carol@example.com", "password": "long-enough", "name": "Carol", "username": "carol",
	}, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for an existing user, got %d", w.Code)
	}
}

func TestSession(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.do("GET", "/api/auth/session", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 with cookie, got %d", w.Code)
	}
	user := decode(t, w)["user"].(map[string]interface{})
	if user["username"] != "alice" {
		t.Errorf("Expected alice, got %v", user["username"])
	}

	w = env.doWith("GET", "/api/auth/session", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+testToken)
	})
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 with bearer token, got %d", w.Code)
	}

	w = env.doWith("GET", "/api/auth/session", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without token, got %d", w.Code)
	}
}

func TestSession_RefreshReissuesCookie(t *testing.T) {
	env := setupTestRouter(t, nil)

	sessionCookie := func(w *httptest.ResponseRecorder) *http.Cookie {
		for _, c := range w.Result().Cookies() {
			if c.Name == "portfolio_session" {
				return c
			}
		}
		return nil
	}

	w := env.do("GET", "/api/auth/session", nil)
	if c := sessionCookie(w); c != nil {
		t.Errorf("Expected no cookie for an unrefreshed session, got %q", c.Value)
	}

	env.auth.Sessions[testToken].Refreshed = true
	for _, path := range []string{"/api/auth/session", "/admin/api/dashboard"} {
		w := env.do("GET", path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", path, w.Code)
		}
		c := sessionCookie(w)
		if c == nil {
			t.Fatalf("%s: expected refreshed session cookie", path)
		}
		if c.Value != testToken || c.MaxAge != int((7*24*time.Hour).Seconds()) || !c.HttpOnly {
			t.Errorf("%s: unexpected cookie %+v", path, c)
		}
	}
}

func TestSignOut(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.do("POST", "/api/auth/sign-out", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if len(env.auth.SignOuts) != 1 || env.auth.SignOuts[0] != testToken {
		t.Errorf("Expected sign-out of %q, got %v", testToken, env.auth.SignOuts)
	}

	w = env.do("GET", "/admin/api/dashboard", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 after sign-out, got %d", w.Code)
	}
}

func TestAdmin_RequiresSession(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	for _, path := range []string{"/admin/api/dashboard", "/admin/api/projects", "/admin/api/messages/1"} {
		w := env.doWith("GET", path, nil, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected status 401, got %d", path, w.Code)
		}
	}
}

func TestAdmin_ListAndFilter(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	tests := []struct {
		path    string
		wantLen int
	}{
		{"/admin/api/projects", 2},
		{"/admin/api/projects?facet=featured", 1},
		{"/admin/api/projects?q=unity", 1},
		{"/admin/api/projects?q=UNITY&facet=regular", 0},
		{"/admin/api/posts?facet=draft", 1},
		{"/admin/api/messages?facet=unread", 1},
	}

	for _, tt := range tests {
		w := env.do("GET", tt.path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", tt.path, w.Code)
		}
		data := decode(t, w)["data"].([]interface{})
		if len(data) != tt.wantLen {
			t.Errorf("%s: expected %d items, got %d", tt.path, tt.wantLen, len(data))
		}
	}

	w := env.do("GET", "/admin/api/projects?facet=archived", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown facet, got %d", w.Code)
	}
}

func TestAdmin_GetItem(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	w := env.do("GET", "/admin/api/projects/2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if got := decode(t, w)["title"]; got != "Shader Lab" {
		t.Errorf("Expected Shader Lab, got %v", got)
	}

	if w := env.do("GET", "/admin/api/projects/99", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if w := env.do("GET", "/admin/api/projects/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid id, got %d", w.Code)
	}
	if w := env.do("GET", "/admin/api/widgets", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown kind, got %d", w.Code)
	}
}

func TestAdmin_CreateThroughForm(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	w := env.do("POST", "/admin/api/projects/form", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Open form: expected status 200, got %d", w.Code)
	}
	if got := decode(t, w)["mode"]; got != "creating" {
		t.Errorf("Expected creating form, got %v", got)
	}

	w = env.do("PATCH", "/admin/api/projects/form", map[string]any{
		"title":        "Space Explorer VR",
		"description":  "VR space sim",
		"technologies": []string{"Unreal", "C++"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Patch: expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do("POST", "/admin/api/projects/form/save", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Save: expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	saved := decode(t, w)
	if saved["id"].(float64) != 3 {
		t.Errorf("Expected id 3, got %v", saved["id"])
	}

	if w := env.do("GET", "/admin/api/projects/form", nil); w.Code != http.StatusConflict {
		t.Errorf("Expected form to be closed after save, got %d", w.Code)
	}
	if n := len(env.repos.Projects.(*mocks.MockProjectRepository).Items); n != 3 {
		t.Errorf("Expected 3 stored projects, got %d", n)
	}
}

func TestAdmin_InvalidSaveReportsFields(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	env.do("POST", "/admin/api/projects/form", nil)
	env.do("PATCH", "/admin/api/projects/form", map[string]any{"title": "   "})

	w := env.do("POST", "/admin/api/projects/form/save", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	if _, ok := decode(t, w)["fields"]; !ok {
		t.Error("Expected per-field errors")
	}

	if w := env.do("GET", "/admin/api/projects/form", nil); w.Code != http.StatusOK {
		t.Errorf("Expected form to stay open, got %d", w.Code)
	}
	if n := len(env.repos.Projects.(*mocks.MockProjectRepository).Items); n != 2 {
		t.Errorf("Expected store unchanged, got %d projects", n)
	}
}

func TestAdmin_EditPostKeepsCreatedAt(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	w := env.do("POST", "/admin/api/posts/2/form", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Open edit: expected status 200, got %d", w.Code)
	}
	form := decode(t, w)
	if form["mode"] != "editing" || form["item_id"].(float64) != 2 {
		t.Errorf("Unexpected form %v", form)
	}

	env.do("PATCH", "/admin/api/posts/form", map[string]any{"content": "Now finished", "published": true})
	w = env.do("POST", "/admin/api/posts/form/save", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Save: expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	saved := decode(t, w)
	if saved["created_at"] != "2024-03-01T10:00:00Z" {
		t.Errorf("Expected created_at untouched, got %v", saved["created_at"])
	}
	if saved["published_at"] == nil {
		t.Error("Expected published_at to be stamped")
	}
}

func TestAdmin_DuplicateSlugConflicts(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	env.do("POST", "/admin/api/posts/form", nil)
	env.do("PATCH", "/admin/api/posts/form", map[string]any{"title": "Hello", "content": "Again"})

	w := env.do("POST", "/admin/api/posts/form/save", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdmin_MessagesHaveNoForm(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	if w := env.do("POST", "/admin/api/messages/form", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestAdmin_Toggle(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	w := env.do("POST", "/admin/api/projects/2/toggle/featured", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if decode(t, w)["featured"] != true {
		t.Error("Expected project to be featured")
	}

	if w := env.do("POST", "/admin/api/projects/2/toggle/pinned", nil); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown flag, got %d", w.Code)
	}
	if w := env.do("POST", "/admin/api/projects/42/toggle/featured", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for missing item, got %d", w.Code)
	}
}

func TestAdmin_DeleteRequiresConfirmation(t *testing.T) {
	env := setupTestRouter(t, seedContent)
	store := env.repos.Projects.(*mocks.MockProjectRepository)

	w := env.do("DELETE", "/admin/api/projects/1", nil)
	if w.Code != http.StatusPreconditionRequired {
		t.Fatalf("Expected status 428, got %d", w.Code)
	}
	if len(store.Items) != 2 {
		t.Errorf("Expected nothing deleted, got %d projects", len(store.Items))
	}

	w = env.do("DELETE", "/admin/api/projects/1?confirm=true", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}
	if len(store.Items) != 1 || store.Items[0].ID != 2 {
		t.Errorf("Expected only project 2 to remain, got %+v", store.Items)
	}

	if w := env.do("DELETE", "/admin/api/projects/1?confirm=true", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 on second delete, got %d", w.Code)
	}
}

func TestAdmin_StatsAndDashboard(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	w := env.do("GET", "/admin/api/posts/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	stats := decode(t, w)
	if stats["total"].(float64) != 2 {
		t.Errorf("Expected 2 posts, got %v", stats["total"])
	}
	counts := stats["counts"].(map[string]interface{})
	if counts["published"].(float64) != 1 || counts["drafts"].(float64) != 1 {
		t.Errorf("Unexpected counts %v", counts)
	}

	w = env.do("GET", "/admin/api/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	dashboard := decode(t, w)
	for _, kind := range []string{"projects", "posts", "skills", "messages"} {
		if _, ok := dashboard[kind]; !ok {
			t.Errorf("Expected %s in dashboard", kind)
		}
	}
}

func TestAdmin_Export(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	w := env.do("GET", "/admin/api/messages/export?format=csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected CSV content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "bob@example.com") {
		t.Errorf("Expected message in export, got %s", w.Body.String())
	}

	w = env.do("GET", "/admin/api/projects/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n"); len(lines) != 2 {
		t.Errorf("Expected 2 NDJSON lines, got %d", len(lines))
	}

	if w := env.do("GET", "/admin/api/projects/export?format=csv", nil); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for projects CSV, got %d", w.Code)
	}
	if w := env.do("GET", "/admin/api/projects/export?format=xml", nil); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown format, got %d", w.Code)
	}
}

func TestAdmin_ReplyToMessage(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	if w := env.do("POST", "/admin/api/messages/1/reply", map[string]string{"body": "  "}); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty reply, got %d", w.Code)
	}

	w := env.do("POST", "/admin/api/messages/1/reply", map[string]string{"body": "Thanks Bob"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if decode(t, w)["replied"] != true {
		t.Error("Expected message to be marked replied")
	}

	if w := env.do("POST", "/admin/api/messages/9/reply", map[string]string{"body": "Hi"}); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestPublicPosts(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	w := env.doWith("GET", "/api/posts", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if data := decode(t, w)["data"].([]interface{}); len(data) != 1 {
		t.Errorf("Expected only the published post, got %d", len(data))
	}

	if w := env.doWith("GET", "/api/posts/hello", nil, nil); w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w := env.doWith("GET", "/api/posts/draft", nil, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for a draft, got %d", w.Code)
	}
}

func TestPublicProjects(t *testing.T) {
	env := setupTestRouter(t, seedContent)

	w := env.doWith("GET", "/api/projects?featured=true", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	data := decode(t, w)["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("Expected 1 featured project, got %d", len(data))
	}
	if data[0].(map[string]interface{})["title"] != "Dungeon Crawler" {
		t.Errorf("Unexpected project %v", data[0])
	}
}
