package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openshare/shareit/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "user not found", err: domain.ErrUserNotFound, want: http.StatusNotFound},
		{name: "item not found", err: domain.ErrItemNotFound, want: http.StatusNotFound},
		{name: "request not found", err: domain.ErrRequestNotFound, want: http.StatusNotFound},
		{name: "booking not found", err: domain.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "own item booking", err: domain.ErrOwnItemBooking, want: http.StatusNotFound},
		{name: "not owner", err: domain.ErrNotOwner, want: http.StatusForbidden},
		{name: "validation", err: domain.ValidationError("blank"), want: http.StatusBadRequest},
		{name: "unavailable item", err: domain.ErrItemUnavailable, want: http.StatusBadRequest},
		{name: "invalid period", err: domain.ErrInvalidPeriod, want: http.StatusBadRequest},
		{name: "already decided", err: domain.ErrAlreadyDecided, want: http.StatusBadRequest},
		{name: "comment not allowed", err: domain.ErrCommentNotAllowed, want: http.StatusBadRequest},
		{name: "email taken", err: domain.ErrEmailTaken, want: http.StatusConflict},
		{name: "unexpected", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestSharerID(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    int64
		wantErr bool
	}{
		{name: "valid", header: "42", want: 42},
		{name: "missing", header: "", wantErr: true},
		{name: "not a number", header: "abc", wantErr: true},
		{name: "zero", header: "0", wantErr: true},
		{name: "negative", header: "-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/items", nil)
			if tt.header != "" {
				r.Header.Set(userIDHeader, tt.header)
			}

			got, err := sharerID(r)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantFrom int
		wantSize int
		wantErr  bool
	}{
		{name: "defaults", query: "", wantFrom: 0, wantSize: 10},
		{name: "explicit", query: "from=20&size=5", wantFrom: 20, wantSize: 5},
		{name: "negative from", query: "from=-1", wantErr: true},
		{name: "zero size", query: "size=0", wantErr: true},
		{name: "garbage", query: "from=x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/items?"+tt.query, nil)

			from, size, err := pagination(r)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if from != tt.wantFrom || size != tt.wantSize {
				t.Errorf("expected (%d, %d), got (%d, %d)", tt.wantFrom, tt.wantSize, from, size)
			}
		})
	}
}
