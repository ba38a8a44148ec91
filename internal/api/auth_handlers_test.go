package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cytoscape/cyweb/internal/models"
	"github.com/cytoscape/cyweb/internal/testutil"
)

func TestAuthHandlers(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	router := server.Router()

	// Pre-create a user for login tests
	testutil.GetAuthCookie(t, server, "staffer", "password123", "staff")

	t.Run("Successful Login", func(t *testing.T) {
		payload := `{"username":"staffer", "password":"password123"}`
		req, _ := http.NewRequest("POST", "/api/users/login", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if status := rr.Code; status != http.StatusOK {
			t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
		}

		foundCookie := false
		for _, cookie := range rr.Result().Cookies() {
			if cookie.Name == "session_token" {
				foundCookie = true
				if cookie.Value == "" {
					t.Error("session token cookie is empty")
				}
				if !cookie.HttpOnly {
					t.Error("session cookie is not HttpOnly")
				}
			}
		}
		if !foundCookie {
			t.Error("session_token cookie not found in response")
		}
	})

	t.Run("Login with Wrong Password", func(t *testing.T) {
		payload := `{"username":"staffer", "password":"wrongpassword"}`
		req, _ := http.NewRequest("POST", "/api/users/login", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if status := rr.Code; status != http.StatusUnauthorized {
			t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
		}
	})

	t.Run("Login with Unknown User", func(t *testing.T) {
		payload := `{"username":"nobody", "password":"password123"}`
		req, _ := http.NewRequest("POST", "/api/users/login", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if status := rr.Code; status != http.StatusUnauthorized {
			t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
		}
	})

	t.Run("Get Me (Authenticated)", func(t *testing.T) {
		userCookie := testutil.GetAuthCookie(t, server, "me_user", "password123", "staff")

		req, _ := http.NewRequest("GET", "/api/users/me", nil)
		req.AddCookie(userCookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if status := rr.Code; status != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v want %v %s", status, http.StatusOK, rr.Body.String())
		}

		var user models.User
		if err := json.Unmarshal(rr.Body.Bytes(), &user); err != nil {
			t.Fatalf("Could not unmarshal response body: %v", err)
		}
		if user.Username != "me_user" {
			t.Errorf("Expected username 'me_user', got '%s'", user.Username)
		}
		if user.Role != "staff" {
			t.Errorf("Expected role 'staff', got '%s'", user.Role)
		}
	})

	t.Run("Get Me (Unauthenticated)", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/users/me", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if status := rr.Code; status != http.StatusUnauthorized {
			t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
		}
	})

	t.Run("Logout Invalidates Session", func(t *testing.T) {
		userCookie := testutil.GetAuthCookie(t, server, "bye_user", "password123", "staff")

		req, _ := http.NewRequest("POST", "/api/users/logout", nil)
		req.AddCookie(userCookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if status := rr.Code; status != http.StatusOK {
			t.Fatalf("logout returned wrong status code: got %v want %v", status, http.StatusOK)
		}

		// The old cookie must no longer authenticate.
		req, _ = http.NewRequest("GET", "/api/users/me", nil)
		req.AddCookie(userCookie)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if status := rr.Code; status != http.StatusUnauthorized {
			t.Errorf("session still valid after logout: got %v want %v", status, http.StatusUnauthorized)
		}
	})
}
