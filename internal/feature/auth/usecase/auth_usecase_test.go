package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"counter_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// UpsertByEmailFunc is called when the UpsertByEmail method is invoked.
	UpsertByEmailFunc func(ctx context.Context, user *entity.User) (*entity.User, error)
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(ctx context.Context, id uint) (*entity.User, error)
}

func (m *mockUserRepository) UpsertByEmail(ctx context.Context, user *entity.User) (*entity.User, error) {
	if m.UpsertByEmailFunc != nil {
		return m.UpsertByEmailFunc(ctx, user)
	}
	user.ID = 1
	return user, nil // Default: success
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

// mockTokenGenerator is a mock implementation of the TokenGenerator interface.
type mockTokenGenerator struct {
	GenerateTokenFunc func(userID uint, email string) (string, error)
}

func (m *mockTokenGenerator) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "mock-session-token", nil
}

func TestAuthUsecase_Setup(t *testing.T) {
	t.Run("default user is upserted with a bcrypt hash", func(t *testing.T) {
		var captured *entity.User
		mockRepo := &mockUserRepository{
			UpsertByEmailFunc: func(ctx context.Context, user *entity.User) (*entity.User, error) {
				captured = user
				user.ID = 1
				return user, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		user, err := uc.Setup(context.Background())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != DefaultEmail {
			t.Errorf("expected email %q, got %q", DefaultEmail, user.Email)
		}
		if captured == nil {
			t.Fatal("repository was not called")
		}
		if captured.Password == defaultPassword {
			t.Error("password is not hashed")
		}
		// Verify that it's a valid bcrypt hash of the default password
		if err := bcrypt.CompareHashAndPassword([]byte(captured.Password), []byte(defaultPassword)); err != nil {
			t.Errorf("invalid bcrypt hash: %v", err)
		}
		cost, err := bcrypt.Cost([]byte(captured.Password))
		if err != nil {
			t.Fatalf("failed to read bcrypt cost: %v", err)
		}
		if cost != bcryptCost {
			t.Errorf("expected cost %d, got %d", bcryptCost, cost)
		}
	})

	t.Run("repository upsert failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockUserRepository{
			UpsertByEmailFunc: func(ctx context.Context, user *entity.User) (*entity.User, error) {
				return nil, expectedErr
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		_, err := uc.Setup(context.Background())

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error '%v', got: %v", expectedErr, err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	// Hashed password for testing
	password := "admin"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:       1,
		Email:    "admin@example.com",
		Password: string(hashedPassword),
	}

	t.Run("successful login returns user id and token", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}
		mockTokens := &mockTokenGenerator{
			GenerateTokenFunc: func(userID uint, email string) (string, error) {
				if userID != testUser.ID || email != testUser.Email {
					t.Errorf("unexpected userID or email: got userID=%d, email=%s", userID, email)
				}
				return "mock-session-token", nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockTokens)
		userID, token, err := uc.Login(context.Background(), testUser.Email, password)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if userID != testUser.ID {
			t.Errorf("expected userID %d, got %d", testUser.ID, userID)
		}
		if token != "mock-session-token" {
			t.Errorf("expected token 'mock-session-token', got: '%s'", token)
		}
	})

	t.Run("user not found", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenGenerator{})
		_, _, err := uc.Login(context.Background(), "wrong@example.com", password)

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("incorrect password", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		_, _, err := uc.Login(context.Background(), testUser.Email, "wrong-password")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("unknown user and bad password are indistinguishable", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}
		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})

		_, _, errUnknown := uc.Login(context.Background(), "nobody@example.com", password)
		_, _, errBadPass := uc.Login(context.Background(), testUser.Email, "wrong-password")

		if errUnknown.Error() != errBadPass.Error() {
			t.Errorf("errors differ: %q vs %q", errUnknown, errBadPass)
		}
	})

	t.Run("token generation failure is tolerated", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}
		mockTokens := &mockTokenGenerator{
			GenerateTokenFunc: func(userID uint, email string) (string, error) {
				return "", errors.New("signing secret is empty")
			},
		}

		uc := NewAuthUsecase(mockRepo, mockTokens)
		userID, token, err := uc.Login(context.Background(), testUser.Email, password)

		// Login still succeeds with the bearer id alone
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if userID != testUser.ID {
			t.Errorf("expected userID %d, got %d", testUser.ID, userID)
		}
		if token != "" {
			t.Errorf("expected empty token, got %q", token)
		}
	})
}
