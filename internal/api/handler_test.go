package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/zangerai/zanger/internal/assist"
	"github.com/zangerai/zanger/internal/auth"
	"github.com/zangerai/zanger/internal/config"
	"github.com/zangerai/zanger/internal/history"
	"github.com/zangerai/zanger/internal/legalinfo"
	"github.com/zangerai/zanger/internal/nav"
	"github.com/zangerai/zanger/internal/prefs"
	"github.com/zangerai/zanger/internal/registry"
	"github.com/zangerai/zanger/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	kv, err := store.NewBadgerInMemory()
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	ctx := context.Background()
	authMgr := auth.NewManager(kv, auth.Credentials{Username: "beka", Password: "2123", Role: "Главный Юрист РК"})
	prefStore := prefs.NewStore(ctx, kv)
	reg := registry.New(registry.SeedCases()...)
	log := history.NewLog(ctx, kv, history.DefaultLimit)
	router := nav.New(reg, log)

	legal, err := legalinfo.Load()
	if err != nil {
		t.Fatalf("Failed to load legal resources: %v", err)
	}

	assistSvc, err := assist.NewService(kv, config.GenerationConfig{})
	if err != nil {
		t.Fatalf("Failed to init assist service: %v", err)
	}
	t.Cleanup(assistSvc.Close)

	h := NewHandler(authMgr, prefStore, reg, log, router, assistSvc, legal)
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func login(t *testing.T, srv *httptest.Server) {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/login", map[string]string{"username": "beka", "password": "2123"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Login failed with status %d", resp.StatusCode)
	}
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"foo": "bar"})

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got["foo"] != "bar" {
		t.Errorf("Expected foo=bar, got %v", got["foo"])
	}
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/login", map[string]string{"username": "beka", "password": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong password, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/login", map[string]string{"username": "beka", "password": "2123"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var session struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("Failed to decode session: %v", err)
	}
	if session.Username != "beka" || session.Role != "Главный Юрист РК" || session.ID == "" {
		t.Errorf("Unexpected session: %+v", session)
	}
}

func TestRequireSession(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/cases", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 while logged out, got %d", resp.StatusCode)
	}

	login(t, srv)
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/cases", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 after login, got %d", resp.StatusCode)
	}
}

func TestCreateCaseValidation(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/cases", map[string]string{"fio": "Тестов Тест", "iin": "12345"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d", resp.StatusCode)
	}

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Fields["iin"] != "must contain exactly 12 digits" {
		t.Errorf("Expected iin message, got %q", body.Fields["iin"])
	}

	// Nothing was created.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/cases", nil)
	var cases []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&cases); err != nil {
		t.Fatalf("Failed to decode cases: %v", err)
	}
	if len(cases) != 3 {
		t.Errorf("Expected 3 seed cases, got %d", len(cases))
	}
}

func TestCreateCaseSuccess(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/cases", map[string]string{
		"fio":               "Тестов Тест Тестович",
		"iin":               "123456789012",
		"organization":      "ТОО \"Тест\"",
		"investigator":      "Иванов И.И.",
		"registration_date": "2024-01-01",
		"qualification":     "Мошенничество (ст. 190 УК РК)",
		"damage_amount":     "5000000",
		"description":       "Тестовое дело",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	var created struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode case: %v", err)
	}
	if created.Type != "Экономическое преступление" {
		t.Errorf("Expected economic crime type, got %q", created.Type)
	}
	if created.Status != "Active" {
		t.Errorf("Expected Active status, got %q", created.Status)
	}

	// The new case became selected.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/navigation", nil)
	var state struct {
		SelectedCaseID string `json:"selectedCaseId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("Failed to decode navigation state: %v", err)
	}
	if state.SelectedCaseID != created.ID {
		t.Errorf("Expected selected case %s, got %s", created.ID, state.SelectedCaseID)
	}
}

func TestSelectUnknownCaseIsNoOp(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/cases/case-999/select", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var state struct {
		SelectedCaseID string `json:"selectedCaseId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if state.SelectedCaseID != "" {
		t.Errorf("Expected no selection, got %s", state.SelectedCaseID)
	}
}

func TestNavigateThreadsContext(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/navigate", map[string]interface{}{
		"section": "aiSystem",
		"context": map[string]interface{}{
			"type": "qualification",
			"data": map[string]string{"qualification": "ст. 190 УК РК", "article": "190"},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	// The context survives a hop to another section.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/navigate", map[string]interface{}{"section": "cases"})
	var state struct {
		ActiveSection string          `json:"activeSection"`
		Context       json.RawMessage `json:"context"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if state.ActiveSection != "cases" {
		t.Errorf("Expected cases section, got %s", state.ActiveSection)
	}
	if !bytes.Contains(state.Context, []byte(`"qualification"`)) {
		t.Errorf("Expected qualification context to survive, got %s", state.Context)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	// Selecting a case in a generating section records history.
	doJSON(t, http.MethodPost, srv.URL+"/api/navigate", map[string]string{"section": "aiSystem"})
	doJSON(t, http.MethodPost, srv.URL+"/api/cases/case-001/select", map[string]string{"documentType": "Обвинительный акт"})

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/history", nil)
	var entries []struct {
		ID           string `json:"id"`
		CaseID       string `json:"caseId"`
		DocumentType string `json:"documentType"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("Failed to decode history: %v", err)
	}
	if len(entries) != 1 || entries[0].CaseID != "case-001" || entries[0].DocumentType != "Обвинительный акт" {
		t.Fatalf("Unexpected history: %+v", entries)
	}

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/history/"+entries[0].ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", resp.StatusCode)
	}

	// Removing it again still succeeds.
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/history/"+entries[0].ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected 204 for absent id, got %d", resp.StatusCode)
	}
}

func TestPreferencesEndpoints(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/preferences/theme", map[string]string{"theme": "ttc"})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/preferences/theme", map[string]string{"theme": "neon"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid theme, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/preferences", nil)
	var prefsResp struct {
		Language string `json:"language"`
		Theme    string `json:"theme"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&prefsResp); err != nil {
		t.Fatalf("Failed to decode preferences: %v", err)
	}
	if prefsResp.Theme != "ttc" || prefsResp.Language != "ru" {
		t.Errorf("Unexpected preferences: %+v", prefsResp)
	}
}

func TestLegalEndpoints(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/legal/crc-rk", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/legal/missing", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}
