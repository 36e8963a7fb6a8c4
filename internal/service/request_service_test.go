package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/openshare/shareit/internal/domain"
)

type requestFixture struct {
	users    *MockUserRepository
	items    *MockItemRepository
	requests *MockRequestRepository
	svc      *RequestService
}

func newRequestFixture() *requestFixture {
	f := &requestFixture{
		users:    NewMockUserRepository(),
		items:    NewMockItemRepository(),
		requests: NewMockRequestRepository(),
	}
	f.svc = NewRequestService(f.requests, f.items, f.users, zerolog.Nop())
	f.users.AddUser(1, "Alice", "alice@example.com")
	f.users.AddUser(2, "Bob", "bob@example.com")
	return f
}

func TestRequestService_Create(t *testing.T) {
	tests := []struct {
		name        string
		userID      int64
		description string
		wantErr     error
	}{
		{name: "success", userID: 1, description: "need a drill"},
		{name: "blank description", userID: 1, description: "  ", wantErr: domain.ErrValidation},
		{
			name:        "description too long",
			userID:      1,
			description: strings.Repeat("x", domain.MaxRequestDescriptionLen+1),
			wantErr:     domain.ErrValidation,
		},
		{name: "unknown user", userID: 9, description: "need a drill", wantErr: domain.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRequestFixture()

			details, err := f.svc.Create(context.Background(), tt.userID, tt.description)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if details.ID == 0 {
				t.Error("expected assigned ID")
			}
			if details.Created.IsZero() {
				t.Error("expected creation timestamp")
			}
			if details.Items == nil || len(details.Items) != 0 {
				t.Errorf("expected empty items slice, got %v", details.Items)
			}
		})
	}
}

func TestRequestService_ListForRequester(t *testing.T) {
	f := newRequestFixture()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	f.requests.AddRequest(1, 1, "need a drill", base)
	f.requests.AddRequest(2, 1, "need a saw", base.Add(time.Hour))
	f.requests.AddRequest(3, 2, "need a ladder", base.Add(2*time.Hour))

	reqID := int64(1)
	f.items.AddItem(1, 2, "Drill", true).RequestID = &reqID

	details, err := f.svc.ListForRequester(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(details))
	}
	if details[0].ID != 2 || details[1].ID != 1 {
		t.Errorf("expected newest first, got %d then %d", details[0].ID, details[1].ID)
	}
	if len(details[1].Items) != 1 || details[1].Items[0].ID != 1 {
		t.Errorf("expected item 1 fulfilling request 1, got %v", details[1].Items)
	}
	if len(details[0].Items) != 0 {
		t.Errorf("expected no items on request 2, got %v", details[0].Items)
	}

	if _, err := f.svc.ListForRequester(context.Background(), 9); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRequestService_ListOthers(t *testing.T) {
	f := newRequestFixture()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	f.requests.AddRequest(1, 1, "need a drill", base)
	f.requests.AddRequest(2, 2, "need a saw", base.Add(time.Hour))
	f.requests.AddRequest(3, 2, "need a ladder", base.Add(2*time.Hour))

	details, err := f.svc.ListOthers(context.Background(), 1, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(details))
	}
	if details[0].ID != 3 || details[1].ID != 2 {
		t.Errorf("expected newest first, got %d then %d", details[0].ID, details[1].ID)
	}

	// own requests never appear
	for _, d := range details {
		if d.RequesterID == 1 {
			t.Errorf("request %d belongs to the caller", d.ID)
		}
	}

	// pagination window
	page, err := f.svc.ListOthers(context.Background(), 1, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 1 || page[0].ID != 2 {
		t.Errorf("expected request 2 on second page, got %v", page)
	}
}

func TestRequestService_GetByID(t *testing.T) {
	f := newRequestFixture()
	f.requests.AddRequest(1, 1, "need a drill", time.Now())

	details, err := f.svc.GetByID(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.ID != 1 {
		t.Errorf("expected request 1, got %d", details.ID)
	}

	if _, err := f.svc.GetByID(context.Background(), 9, 2); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound, got %v", err)
	}
	if _, err := f.svc.GetByID(context.Background(), 1, 9); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
