package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))

	tests := []struct {
		name             string
		database         Pinger
		activity         Pinger
		expectedStatus   int
		expectedHealth   string
		expectedDatabase string
		expectedActivity string
	}{
		{
			name:             "all healthy",
			database:         fakePinger{},
			activity:         fakePinger{},
			expectedStatus:   http.StatusOK,
			expectedHealth:   "healthy",
			expectedDatabase: "healthy",
			expectedActivity: "healthy",
		},
		{
			name:             "unhealthy database",
			database:         fakePinger{err: errors.New("database is locked")},
			activity:         fakePinger{},
			expectedStatus:   http.StatusServiceUnavailable,
			expectedHealth:   "degraded",
			expectedDatabase: "unhealthy",
			expectedActivity: "healthy",
		},
		{
			name:             "unhealthy activity feed",
			database:         fakePinger{},
			activity:         fakePinger{err: errors.New("redis connection refused")},
			expectedStatus:   http.StatusServiceUnavailable,
			expectedHealth:   "degraded",
			expectedDatabase: "healthy",
			expectedActivity: "unhealthy",
		},
		{
			name:             "no activity feed",
			database:         fakePinger{},
			expectedStatus:   http.StatusOK,
			expectedHealth:   "healthy",
			expectedDatabase: "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.database, tt.activity, logger)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}

			if rr.Header().Get("Content-Type") != "application/json" {
				t.Errorf("Expected Content-Type application/json, got %s", rr.Header().Get("Content-Type"))
			}

			var response HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}

			if response.Status != tt.expectedHealth {
				t.Errorf("Expected status '%s', got '%s'", tt.expectedHealth, response.Status)
			}

			if response.Service != "sultan-admin" {
				t.Errorf("Expected service 'sultan-admin', got '%s'", response.Service)
			}

			if got := response.Components["database"]; got != tt.expectedDatabase {
				t.Errorf("Expected database status '%s', got '%s'", tt.expectedDatabase, got)
			}

			activity, exists := response.Components["activity"]
			if tt.expectedActivity == "" {
				if exists {
					t.Errorf("Expected no activity component, got '%s'", activity)
				}
			} else if activity != tt.expectedActivity {
				t.Errorf("Expected activity status '%s', got '%s'", tt.expectedActivity, activity)
			}

			// Check timestamp is recent
			timeDiff := time.Since(response.Timestamp)
			if timeDiff > time.Second {
				t.Errorf("Health check timestamp seems old: %v", timeDiff)
			}
		})
	}
}

func TestHealthHandler_Routed(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var response HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Components["database"] != "healthy" || response.Components["activity"] != "healthy" {
		t.Errorf("Expected healthy components, got %v", response.Components)
	}
}
