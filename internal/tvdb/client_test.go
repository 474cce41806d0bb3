package tvdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func loginHandler(token string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.APIKey == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		resp := loginResponse{Status: "success"}
		resp.Data.Token = token
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{APIKey: "test-key"})
	if client.baseURL != DefaultURL {
		t.Errorf("expected default URL, got %s", client.baseURL)
	}
	if client.language != DefaultLanguage {
		t.Errorf("expected default language, got %s", client.language)
	}

	client = NewClient(Config{URL: "http://local:8080", Language: "jpn"})
	if client.baseURL != "http://local:8080" {
		t.Errorf("expected configured URL, got %s", client.baseURL)
	}
	if client.language != "jpn" {
		t.Errorf("expected configured language, got %s", client.language)
	}
}

func TestSeriesInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			loginHandler("test-token")(w, r)
		case "/series/123":
			if r.Header.Get("Authorization") != "Bearer test-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			resp := seriesResponse{Status: "success", Data: seriesData{
				ID:     123,
				Name:   "My Show",
				Status: seriesStatus{Name: "Continuing"},
			}}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(resp)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, APIKey: "key"})
	info, err := client.SeriesInfo(context.Background(), 123)
	if err != nil {
		t.Fatalf("SeriesInfo failed: %v", err)
	}
	if info.ID != 123 || info.Name != "My Show" || info.Status != "Continuing" {
		t.Errorf("unexpected series info: %+v", info)
	}
}

func TestSeriesInfoBadKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, APIKey: "wrong"})
	if _, err := client.SeriesInfo(context.Background(), 1); err == nil {
		t.Error("expected error for rejected credentials")
	}
}

func TestAllEpisodesPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			loginHandler("test-token")(w, r)
			return
		}
		if !strings.HasPrefix(r.URL.Path, "/series/42/episodes/default/eng") {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		resp := episodePageResponse{Status: "success"}
		switch r.URL.Query().Get("page") {
		case "0":
			resp.Data.Episodes = []episodeData{
				{ID: 1, Name: "Alpha", Number: 1, SeasonNumber: 1},
				{ID: 2, Name: "Beta", Number: 2, SeasonNumber: 1},
			}
			resp.Links.Next = "/series/42/episodes/default/eng?page=1"
		case "1":
			resp.Data.Episodes = []episodeData{
				{ID: 3, Name: "", Number: 3, SeasonNumber: 1},
			}
		default:
			t.Errorf("unexpected page request: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, APIKey: "key"})
	episodes, err := client.AllEpisodes(context.Background(), 42)
	if err != nil {
		t.Fatalf("AllEpisodes failed: %v", err)
	}
	if len(episodes) != 3 {
		t.Fatalf("expected 3 episodes across pages, got %d", len(episodes))
	}
	if episodes[0].Title != "Alpha" || episodes[0].Number != 1 {
		t.Errorf("unexpected first episode: %+v", episodes[0])
	}
	if episodes[2].Title != "Episode 3" {
		t.Errorf("expected fallback title for unnamed episode, got %q", episodes[2].Title)
	}
}

func TestTokenRefreshAfterUnauthorized(t *testing.T) {
	loginCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			loginCalls++
			loginHandler(fmt.Sprintf("token-%d", loginCalls))(w, r)
			return
		}

		// Only the second token is accepted, as if the first expired.
		if r.Header.Get("Authorization") != "Bearer token-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		resp := seriesResponse{Status: "success", Data: seriesData{ID: 7, Name: "Show"}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, APIKey: "key"})
	info, err := client.SeriesInfo(context.Background(), 7)
	if err != nil {
		t.Fatalf("SeriesInfo failed after refresh: %v", err)
	}
	if info.Name != "Show" {
		t.Errorf("unexpected series info: %+v", info)
	}
	if loginCalls != 2 {
		t.Errorf("expected exactly 2 logins (initial + refresh), got %d", loginCalls)
	}
}

func TestAuthenticateRequiresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := loginResponse{Status: "failure"}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, APIKey: "key"})
	if err := client.Authenticate(context.Background()); err == nil {
		t.Error("expected error when login response has no token")
	}
}
