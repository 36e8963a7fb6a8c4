package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/openshare/shareit/internal/domain"
)

type itemFixture struct {
	users    *MockUserRepository
	items    *MockItemRepository
	requests *MockRequestRepository
	bookings *MockBookingRepository
	comments *MockCommentRepository
	svc      *ItemService
}

func newItemFixture() *itemFixture {
	f := &itemFixture{
		users:    NewMockUserRepository(),
		items:    NewMockItemRepository(),
		requests: NewMockRequestRepository(),
		bookings: NewMockBookingRepository(),
		comments: NewMockCommentRepository(),
	}
	f.svc = NewItemService(f.items, f.users, f.requests, f.bookings, f.comments, zerolog.Nop())
	return f
}

func TestItemService_Create(t *testing.T) {
	requestID := int64(5)

	tests := []struct {
		name    string
		input   CreateItemInput
		wantErr error
		setup   func(*itemFixture)
	}{
		{
			name:  "success",
			input: CreateItemInput{OwnerID: 1, Name: "Drill", Description: "Cordless drill", Available: true},
			setup: func(f *itemFixture) { f.users.AddUser(1, "Alice", "alice@example.com") },
		},
		{
			name:  "success with request link",
			input: CreateItemInput{OwnerID: 1, Name: "Drill", Description: "Cordless drill", Available: true, RequestID: &requestID},
			setup: func(f *itemFixture) {
				f.users.AddUser(1, "Alice", "alice@example.com")
				f.requests.AddRequest(5, 2, "need a drill", time.Now())
			},
		},
		{
			name:    "blank name",
			input:   CreateItemInput{OwnerID: 1, Name: " ", Description: "d", Available: true},
			wantErr: domain.ErrValidation,
			setup:   func(f *itemFixture) { f.users.AddUser(1, "Alice", "alice@example.com") },
		},
		{
			name:    "blank description",
			input:   CreateItemInput{OwnerID: 1, Name: "Drill", Description: "", Available: true},
			wantErr: domain.ErrValidation,
			setup:   func(f *itemFixture) { f.users.AddUser(1, "Alice", "alice@example.com") },
		},
		{
			name:    "unknown owner",
			input:   CreateItemInput{OwnerID: 9, Name: "Drill", Description: "d", Available: true},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name:    "unknown request",
			input:   CreateItemInput{OwnerID: 1, Name: "Drill", Description: "d", Available: true, RequestID: &requestID},
			wantErr: domain.ErrRequestNotFound,
			setup:   func(f *itemFixture) { f.users.AddUser(1, "Alice", "alice@example.com") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newItemFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			details, err := f.svc.Create(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if details.Item.ID == 0 {
				t.Error("expected assigned ID")
			}
			if details.Item.OwnerID != tt.input.OwnerID {
				t.Errorf("expected owner %d, got %d", tt.input.OwnerID, details.Item.OwnerID)
			}
		})
	}
}

func TestItemService_Update(t *testing.T) {
	available := false

	tests := []struct {
		name    string
		userID  int64
		itemID  int64
		input   UpdateItemInput
		wantErr error
	}{
		{
			name:   "owner updates availability",
			userID: 1,
			itemID: 1,
			input:  UpdateItemInput{Available: &available},
		},
		{
			name:   "owner updates name",
			userID: 1,
			itemID: 1,
			input:  UpdateItemInput{Name: strPtr("Hammer drill")},
		},
		{
			name:    "non-owner rejected",
			userID:  2,
			itemID:  1,
			input:   UpdateItemInput{Name: strPtr("Stolen")},
			wantErr: domain.ErrNotOwner,
		},
		{
			name:    "unknown item",
			userID:  1,
			itemID:  9,
			input:   UpdateItemInput{},
			wantErr: domain.ErrItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newItemFixture()
			f.users.AddUser(1, "Alice", "alice@example.com")
			f.items.AddItem(1, 1, "Drill", true)

			details, err := f.svc.Update(context.Background(), tt.userID, tt.itemID, tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.input.Name != nil && details.Item.Name != *tt.input.Name {
				t.Errorf("expected name %s, got %s", *tt.input.Name, details.Item.Name)
			}
			if tt.input.Available != nil && details.Item.Available != *tt.input.Available {
				t.Errorf("expected available %v, got %v", *tt.input.Available, details.Item.Available)
			}
		})
	}
}

func TestItemService_Get_BookingsOwnerOnly(t *testing.T) {
	f := newItemFixture()
	f.users.AddUser(1, "Alice", "alice@example.com")
	f.users.AddUser(2, "Bob", "bob@example.com")
	f.items.AddItem(1, 1, "Drill", true)

	now := time.Now()
	f.bookings.AddBooking(1, 1, 2, now.Add(-48*time.Hour), now.Add(-24*time.Hour), domain.StatusApproved)
	f.bookings.AddBooking(2, 1, 2, now.Add(24*time.Hour), now.Add(48*time.Hour), domain.StatusApproved)

	owner, err := f.svc.Get(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner.LastBooking == nil || owner.LastBooking.ID != 1 {
		t.Errorf("expected last booking 1, got %+v", owner.LastBooking)
	}
	if owner.NextBooking == nil || owner.NextBooking.ID != 2 {
		t.Errorf("expected next booking 2, got %+v", owner.NextBooking)
	}

	visitor, err := f.svc.Get(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if visitor.LastBooking != nil || visitor.NextBooking != nil {
		t.Error("expected no booking info for non-owner")
	}
}

func TestItemService_ListForOwner(t *testing.T) {
	f := newItemFixture()
	f.users.AddUser(1, "Alice", "alice@example.com")
	f.users.AddUser(2, "Bob", "bob@example.com")
	f.items.AddItem(1, 1, "Drill", true)
	f.items.AddItem(2, 1, "Saw", true)
	f.items.AddItem(3, 2, "Ladder", true)

	now := time.Now()
	f.bookings.AddBooking(1, 1, 2, now.Add(-48*time.Hour), now.Add(-24*time.Hour), domain.StatusApproved)
	f.bookings.AddBooking(2, 1, 2, now.Add(24*time.Hour), now.Add(48*time.Hour), domain.StatusApproved)
	// rejected bookings never surface in the annotations
	f.bookings.AddBooking(3, 2, 2, now.Add(-24*time.Hour), now.Add(-12*time.Hour), domain.StatusRejected)

	details, err := f.svc.ListForOwner(context.Background(), 1, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 items, got %d", len(details))
	}
	if details[0].Item.ID != 1 || details[1].Item.ID != 2 {
		t.Errorf("expected items ordered by ID, got %d then %d", details[0].Item.ID, details[1].Item.ID)
	}
	if details[0].LastBooking == nil || details[0].LastBooking.ID != 1 {
		t.Errorf("expected last booking 1 on item 1, got %+v", details[0].LastBooking)
	}
	if details[0].NextBooking == nil || details[0].NextBooking.ID != 2 {
		t.Errorf("expected next booking 2 on item 1, got %+v", details[0].NextBooking)
	}
	if details[1].LastBooking != nil || details[1].NextBooking != nil {
		t.Error("expected no approved bookings on item 2")
	}

	if _, err := f.svc.ListForOwner(context.Background(), 9, 0, 10); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestItemService_Search(t *testing.T) {
	f := newItemFixture()
	f.users.AddUser(1, "Alice", "alice@example.com")
	f.items.AddItem(1, 1, "Cordless Drill", true)
	f.items.AddItem(2, 1, "drill press", true)
	f.items.AddItem(3, 1, "Broken Drill", false)
	f.items.AddItem(4, 1, "Ladder", true)

	tests := []struct {
		name    string
		text    string
		wantIDs []int64
	}{
		{name: "case-insensitive match", text: "dRiLl", wantIDs: []int64{1, 2}},
		{name: "blank text short-circuits", text: "   ", wantIDs: nil},
		{name: "no match", text: "kayak", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details, err := f.svc.Search(context.Background(), tt.text, 0, 10)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(details) != len(tt.wantIDs) {
				t.Fatalf("expected %d items, got %d", len(tt.wantIDs), len(details))
			}
			for i, id := range tt.wantIDs {
				if details[i].Item.ID != id {
					t.Errorf("expected item %d at position %d, got %d", id, i, details[i].Item.ID)
				}
			}
		})
	}
}

func TestItemService_AddComment(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		userID  int64
		itemID  int64
		text    string
		wantErr error
		setup   func(*itemFixture)
	}{
		{
			name:   "past booker may comment",
			userID: 2,
			itemID: 1,
			text:   "worked great",
			setup: func(f *itemFixture) {
				f.bookings.AddBooking(1, 1, 2, now.Add(-48*time.Hour), now.Add(-24*time.Hour), domain.StatusApproved)
			},
		},
		{
			name:   "past rejected booking still qualifies",
			userID: 2,
			itemID: 1,
			text:   "never got it",
			setup: func(f *itemFixture) {
				f.bookings.AddBooking(1, 1, 2, now.Add(-48*time.Hour), now.Add(-24*time.Hour), domain.StatusRejected)
			},
		},
		{
			name:    "ongoing booking does not qualify",
			userID:  2,
			itemID:  1,
			text:    "too early",
			wantErr: domain.ErrCommentNotAllowed,
			setup: func(f *itemFixture) {
				f.bookings.AddBooking(1, 1, 2, now.Add(-time.Hour), now.Add(time.Hour), domain.StatusApproved)
			},
		},
		{
			name:    "no booking at all",
			userID:  2,
			itemID:  1,
			text:    "drive-by",
			wantErr: domain.ErrCommentNotAllowed,
		},
		{
			name:    "blank text",
			userID:  2,
			itemID:  1,
			text:    "  ",
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown item",
			userID:  2,
			itemID:  9,
			text:    "hello",
			wantErr: domain.ErrItemNotFound,
		},
		{
			name:    "unknown user",
			userID:  9,
			itemID:  1,
			text:    "hello",
			wantErr: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newItemFixture()
			f.users.AddUser(1, "Alice", "alice@example.com")
			f.users.AddUser(2, "Bob", "bob@example.com")
			f.items.AddItem(1, 1, "Drill", true)
			if tt.setup != nil {
				tt.setup(f)
			}

			comment, err := f.svc.AddComment(context.Background(), tt.userID, tt.itemID, tt.text)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if comment.Text != tt.text {
				t.Errorf("expected text %q, got %q", tt.text, comment.Text)
			}
			if comment.AuthorID != tt.userID {
				t.Errorf("expected author %d, got %d", tt.userID, comment.AuthorID)
			}
		})
	}
}
