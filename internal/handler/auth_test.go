package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anbuchelva/cams/internal/auth"
	"github.com/anbuchelva/cams/internal/domain"
	"github.com/anbuchelva/cams/internal/middleware"
	"github.com/anbuchelva/cams/internal/repository"
	"github.com/anbuchelva/cams/internal/store"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *repository.Users) {
	t.Helper()
	users := repository.NewUsers(store.NewMemory())
	tokens := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	return NewAuthHandler(users, tokens), users
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	h, _ := newAuthHandler(t)

	tests := []struct {
		name string
		body RegisterRequest
		want int
	}{
		{"valid", RegisterRequest{Name: "A", Email: "a@college.edu", Password: "password123", Department: "CSE"}, http.StatusCreated},
		{"missing fields", RegisterRequest{Email: "b@college.edu"}, http.StatusBadRequest},
		{"outside email", RegisterRequest{Name: "C", Email: "c@gmail.com", Password: "password123", Department: "CSE"}, http.StatusBadRequest},
		{"duplicate email", RegisterRequest{Name: "A", Email: "a@college.edu", Password: "password123", Department: "CSE"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Register, "/api/auth/register", tt.body)
			if rec.Code != tt.want {
				t.Fatalf("got %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec := postJSON(t, h.Register, "/api/auth/register", RegisterRequest{
		Name: "A", Email: "a@college.edu", Password: "password123", Department: "CSE",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}

	t.Run("valid credentials", func(t *testing.T) {
		rec := postJSON(t, h.Login, "/api/auth/login", LoginRequest{Email: "a@college.edu", Password: "password123"})
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d, want %d", rec.Code, http.StatusOK)
		}

		var resp LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Token == "" {
			t.Error("token missing from response")
		}
		if resp.User.Email != "a@college.edu" {
			t.Errorf("user email = %q", resp.User.Email)
		}
		if bytes.Contains(rec.Body.Bytes(), []byte("password")) {
			t.Error("response leaks password material")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(t, h.Login, "/api/auth/login", LoginRequest{Email: "a@college.edu", Password: "wrong"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("got %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := postJSON(t, h.Login, "/api/auth/login", LoginRequest{Email: "nobody@college.edu", Password: "password123"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("got %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := postJSON(t, h.Login, "/api/auth/login", LoginRequest{Email: "a@college.edu"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("got %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestVerifyEndpoint(t *testing.T) {
	h, _ := newAuthHandler(t)

	claims := domain.Claims{ID: "u-1", Email: "a@college.edu", Name: "A"}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), claims))
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp map[string]domain.Claims
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["user"] != claims {
		t.Fatalf("claims = %+v, want %+v", resp["user"], claims)
	}
}
