package usecase

import (
	"context"
	"strings"
	"testing"

	"cinevibe/internal/dto/request"
	"cinevibe/pkg/utils"

	"go.uber.org/zap"
)

func newAuthFixture() (AuthService, *fakeUserRepo, *fakeSessionRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	films := newFakeFilmRepo()
	repo := newTestRepository(users, sessions, films, newFakeReviewRepo(users, films))

	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 1}}
	return NewAuthService(repo, config, zap.NewNop()), users, sessions
}

func TestRegisterLoginFlow(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &request.RegisterRequest{Username: "alice", Password: "Passw0rd"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.Username != "alice" {
		t.Errorf("username = %q, want alice", resp.Username)
	}
	if resp.Token != "" {
		t.Errorf("register should not hand out a session token, got %q", resp.Token)
	}

	// Duplicate username rejected
	if _, err := svc.Register(ctx, &request.RegisterRequest{Username: "alice", Password: "Passw0rd"}); err == nil {
		t.Fatal("duplicate register should fail")
	} else if !strings.Contains(err.Error(), "already taken") {
		t.Errorf("duplicate register error = %v, want username already taken", err)
	}

	// Wrong password yields the generic message
	if _, err := svc.Login(ctx, &request.LoginRequest{Username: "alice", Password: "WrongPassword1"}); err == nil {
		t.Fatal("login with wrong password should fail")
	} else if err.Error() != "invalid credentials" {
		t.Errorf("wrong-password error = %q, want %q", err.Error(), "invalid credentials")
	}

	// Unknown user yields the same generic message
	if _, err := svc.Login(ctx, &request.LoginRequest{Username: "mallory", Password: "Passw0rd"}); err == nil {
		t.Fatal("login with unknown user should fail")
	} else if err.Error() != "invalid credentials" {
		t.Errorf("unknown-user error = %q, want %q", err.Error(), "invalid credentials")
	}

	// Correct credentials create a session
	login, err := svc.Login(ctx, &request.LoginRequest{Username: "alice", Password: "Passw0rd"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Token == "" {
		t.Error("login should return a session token")
	}
	if login.Username != "alice" {
		t.Errorf("login username = %q, want alice", login.Username)
	}
}

func TestRegisterPasswordStrength(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	tests := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no uppercase", "passw0rd"},
		{"no digit", "Password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &request.RegisterRequest{Username: "bob", Password: tt.password})
			if err == nil {
				t.Fatalf("register with %s password should fail", tt.name)
			}
			if !strings.Contains(err.Error(), "validation failed") {
				t.Errorf("error = %v, want validation failure", err)
			}
		})
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &request.RegisterRequest{Username: "carol", Password: "Secret99X"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	login, err := svc.Login(ctx, &request.LoginRequest{Username: "carol", Password: "Secret99X"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, login.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if s, _ := sessions.FindValidSession(ctx, login.Token); s != nil {
		t.Error("session should be invalid after logout")
	}

	// Second logout on the same token fails
	if err := svc.Logout(ctx, login.Token); err == nil {
		t.Error("logout of a revoked session should fail")
	}
}
