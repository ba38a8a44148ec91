package store_test

import (
	"testing"
	"time"

	"github.com/cytoscape/cyweb/internal/store"
	"github.com/cytoscape/cyweb/internal/testutil"
)

func TestUserStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	t.Run("Create and Get User", func(t *testing.T) {
		user, err := s.CreateUser("staffer", "hashedpassword", "staff")
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.Username != "staffer" || user.Role != "staff" {
			t.Errorf("Created user data incorrect: %+v", user)
		}

		fetched, err := s.GetUserByUsername("staffer")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if fetched.ID != user.ID {
			t.Errorf("Expected user ID %d, got %d", user.ID, fetched.ID)
		}
		if fetched.PasswordHash != "hashedpassword" {
			t.Error("Password hash not stored")
		}
	})

	t.Run("Duplicate Username Rejected", func(t *testing.T) {
		if _, err := s.CreateUser("staffer", "otherhash", "staff"); err == nil {
			t.Error("Expected an error for a duplicate username")
		}
	})

	t.Run("Count Users", func(t *testing.T) {
		count, err := s.CountUsers()
		if err != nil {
			t.Fatalf("CountUsers failed: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 user, got %d", count)
		}
	})
}

func TestSessions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	user, err := s.CreateUser("staffer", "hash", "staff")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("Create and Resolve Session", func(t *testing.T) {
		token, err := s.CreateSession(user.ID)
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if token == "" {
			t.Fatal("Expected a non-empty session token")
		}

		resolved, err := s.GetUserFromSession(token)
		if err != nil {
			t.Fatalf("GetUserFromSession failed: %v", err)
		}
		if resolved.ID != user.ID {
			t.Errorf("Session resolved to user %d, want %d", resolved.ID, user.ID)
		}
	})

	t.Run("Invalid Token Rejected", func(t *testing.T) {
		if _, err := s.GetUserFromSession("bogus"); err == nil {
			t.Error("Expected an error for an unknown token")
		}
	})

	t.Run("Delete Session", func(t *testing.T) {
		token, _ := s.CreateSession(user.ID)
		if err := s.DeleteSession(token); err != nil {
			t.Fatalf("DeleteSession failed: %v", err)
		}
		if _, err := s.GetUserFromSession(token); err == nil {
			t.Error("Deleted session still resolves")
		}
	})

	t.Run("Expired Sessions Cleaned Up", func(t *testing.T) {
		token, _ := s.CreateSession(user.ID)
		_, err := db.Exec("UPDATE sessions SET expiry = ? WHERE token = ?", time.Now().Add(-time.Hour), token)
		if err != nil {
			t.Fatalf("Failed to backdate session: %v", err)
		}

		deleted, err := s.DeleteExpiredSessions()
		if err != nil {
			t.Fatalf("DeleteExpiredSessions failed: %v", err)
		}
		if deleted < 1 {
			t.Errorf("Expected at least 1 deleted session, got %d", deleted)
		}
		if _, err := s.GetUserFromSession(token); err == nil {
			t.Error("Expired session still resolves after cleanup")
		}
	})
}
