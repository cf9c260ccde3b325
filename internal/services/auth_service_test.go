package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/mateoAlonso06/educatech-api/internal/auth"
	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/validator"
)

func newTestAuthService(t *testing.T) (AuthService, *mockRepository, *auth.TokenManager) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newMockRepository()
	tokens := auth.NewTokenManager("test-secret", "educatech-test", time.Hour)
	service := NewAuthService(repo, logger, validator.New(), tokens)
	return service, repo, tokens
}

func seedCredentials(t *testing.T, repo *mockRepository, email, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	return repo.addUser(&models.User{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  hash,
		Role:      models.RoleStudent,
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a verifiable token", func(t *testing.T) {
		service, repo, tokens := newTestAuthService(t)
		user := seedCredentials(t, repo, "ada@example.com", "correct-horse")

		resp, err := service.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Token == "" {
			t.Fatal("Expected a token")
		}
		if resp.User.ID != user.ID {
			t.Errorf("Expected user %d, got %d", user.ID, resp.User.ID)
		}

		claims, err := tokens.Parse(resp.Token)
		if err != nil {
			t.Fatalf("Issued token does not parse: %v", err)
		}
		if claims.UserID != user.ID || claims.Role != models.RoleStudent {
			t.Errorf("Unexpected claims: %+v", claims)
		}
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		service, repo, _ := newTestAuthService(t)
		seedCredentials(t, repo, "ada@example.com", "correct-horse")

		_, err := service.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "wrong-password"})
		if CodeOf(err) != CodeUnauthorized {
			t.Fatalf("Expected unauthorized, got %v", err)
		}
	})

	t.Run("unknown email is unauthorized, not not-found", func(t *testing.T) {
		service, _, _ := newTestAuthService(t)

		_, err := service.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
		if CodeOf(err) != CodeUnauthorized {
			t.Fatalf("Expected unauthorized, got %v", err)
		}
		if IsNotFound(err) {
			t.Error("Login must not reveal whether the account exists")
		}
	})
}
