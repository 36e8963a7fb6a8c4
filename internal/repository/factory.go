// Package repository provides the data access layer for ShareIt.
// This file contains the aggregate handed to the service layer and the
// health-check contract each backend satisfies.
package repository

import "context"

// Repositories holds all repository instances for one backend.
type Repositories struct {
	User    UserRepository
	Item    ItemRepository
	Request RequestRepository
	Booking BookingRepository
	Comment CommentRepository
}

// DatabaseHealth is an interface for database health checks.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Close() error
}
