package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openshare/shareit/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name      string
		input     CreateUserInput
		wantErr   error
		setupRepo func(*MockUserRepository)
	}{
		{
			name:  "success",
			input: CreateUserInput{Name: "Alice", Email: "alice@example.com"},
		},
		{
			name:    "blank name",
			input:   CreateUserInput{Name: "   ", Email: "alice@example.com"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "blank email",
			input:   CreateUserInput{Name: "Alice", Email: ""},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "malformed email",
			input:   CreateUserInput{Name: "Alice", Email: "not-an-email"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "duplicate email",
			input:   CreateUserInput{Name: "Alice", Email: "taken@example.com"},
			wantErr: domain.ErrEmailTaken,
			setupRepo: func(m *MockUserRepository) {
				m.AddUser(7, "Bob", "taken@example.com")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockUserRepository()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}
			svc := NewUserService(repo, zerolog.Nop())

			user, err := svc.Create(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID == 0 {
				t.Error("expected assigned ID")
			}
			if user.Email != tt.input.Email {
				t.Errorf("expected email %s, got %s", tt.input.Email, user.Email)
			}
		})
	}
}

func TestUserService_Update(t *testing.T) {
	tests := []struct {
		name     string
		id       int64
		input    UpdateUserInput
		wantErr  error
		wantName string
		wantMail string
	}{
		{
			name:     "update both fields",
			id:       1,
			input:    UpdateUserInput{Name: strPtr("Alicia"), Email: strPtr("alicia@example.com")},
			wantName: "Alicia",
			wantMail: "alicia@example.com",
		},
		{
			name:     "nil fields keep current values",
			id:       1,
			input:    UpdateUserInput{},
			wantName: "Alice",
			wantMail: "alice@example.com",
		},
		{
			name:     "blank fields keep current values",
			id:       1,
			input:    UpdateUserInput{Name: strPtr("  "), Email: strPtr("")},
			wantName: "Alice",
			wantMail: "alice@example.com",
		},
		{
			name:    "unknown user",
			id:      99,
			input:   UpdateUserInput{Name: strPtr("Ghost")},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name:    "email taken by another user",
			id:      1,
			input:   UpdateUserInput{Email: strPtr("bob@example.com")},
			wantErr: domain.ErrEmailTaken,
		},
		{
			name:    "malformed email",
			id:      1,
			input:   UpdateUserInput{Email: strPtr("bogus")},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockUserRepository()
			repo.AddUser(1, "Alice", "alice@example.com")
			repo.AddUser(2, "Bob", "bob@example.com")
			svc := NewUserService(repo, zerolog.Nop())

			user, err := svc.Update(context.Background(), tt.id, tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Name != tt.wantName {
				t.Errorf("expected name %s, got %s", tt.wantName, user.Name)
			}
			if user.Email != tt.wantMail {
				t.Errorf("expected email %s, got %s", tt.wantMail, user.Email)
			}
		})
	}
}

func TestUserService_Get(t *testing.T) {
	repo := NewMockUserRepository()
	repo.AddUser(1, "Alice", "alice@example.com")
	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Alice" {
		t.Errorf("expected Alice, got %s", user.Name)
	}

	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := NewMockUserRepository()
	repo.AddUser(1, "Alice", "alice@example.com")
	svc := NewUserService(repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(context.Background(), 1); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound after delete, got %v", err)
	}

	// deleting again is not an error
	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}

func TestUserService_List(t *testing.T) {
	repo := NewMockUserRepository()
	repo.AddUser(1, "Alice", "alice@example.com")
	repo.AddUser(2, "Bob", "bob@example.com")
	svc := NewUserService(repo, zerolog.Nop())

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}
