package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/repository"
)

// =============================================================================
// Mock User Repository
// =============================================================================

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	users     map[int64]*domain.User
	nextID    int64
	createErr error
	getErr    error
	updateErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, exists := m.users[id]; exists {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, exists := m.users[user.ID]; !exists {
		return domain.ErrUserNotFound
	}
	for _, u := range m.users {
		if u.ID != user.ID && u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	delete(m.users, id)
	return nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var result []*domain.User
	for _, u := range m.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// AddUser seeds a user with a fixed ID.
func (m *MockUserRepository) AddUser(id int64, name, email string) *domain.User {
	u := &domain.User{ID: id, Name: name, Email: email}
	m.users[id] = u
	if id >= m.nextID {
		m.nextID = id + 1
	}
	return u
}

// =============================================================================
// Mock Item Repository
// =============================================================================

// MockItemRepository is a mock implementation of repository.ItemRepository.
type MockItemRepository struct {
	items     map[int64]*domain.Item
	nextID    int64
	createErr error
	getErr    error
}

func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{
		items:  make(map[int64]*domain.Item),
		nextID: 1,
	}
}

func (m *MockItemRepository) Create(ctx context.Context, item *domain.Item) error {
	if m.createErr != nil {
		return m.createErr
	}
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return nil
}

func (m *MockItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if item, exists := m.items[id]; exists {
		return item, nil
	}
	return nil, domain.ErrItemNotFound
}

func (m *MockItemRepository) Update(ctx context.Context, item *domain.Item) error {
	if _, exists := m.items[item.ID]; !exists {
		return domain.ErrItemNotFound
	}
	m.items[item.ID] = item
	return nil
}

func (m *MockItemRepository) ListByOwner(ctx context.Context, ownerID int64, page repository.Page) ([]*domain.Item, error) {
	var result []*domain.Item
	for _, item := range m.items {
		if item.OwnerID == ownerID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return paginate(result, page), nil
}

func (m *MockItemRepository) Search(ctx context.Context, text string, page repository.Page) ([]*domain.Item, error) {
	needle := strings.ToLower(text)
	var result []*domain.Item
	for _, item := range m.items {
		if !item.Available {
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return paginate(result, page), nil
}

func (m *MockItemRepository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*domain.Item, error) {
	wanted := make(map[int64]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}
	var result []*domain.Item
	for _, item := range m.items {
		if item.RequestID != nil && wanted[*item.RequestID] {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return *result[i].RequestID < *result[j].RequestID })
	return result, nil
}

// AddItem seeds an item with a fixed ID.
func (m *MockItemRepository) AddItem(id, ownerID int64, name string, available bool) *domain.Item {
	item := &domain.Item{ID: id, OwnerID: ownerID, Name: name, Description: name + " description", Available: available}
	m.items[id] = item
	if id >= m.nextID {
		m.nextID = id + 1
	}
	return item
}

// =============================================================================
// Mock Request Repository
// =============================================================================

// MockRequestRepository is a mock implementation of repository.RequestRepository.
type MockRequestRepository struct {
	requests  map[int64]*domain.ItemRequest
	nextID    int64
	createErr error
	getErr    error
}

func NewMockRequestRepository() *MockRequestRepository {
	return &MockRequestRepository{
		requests: make(map[int64]*domain.ItemRequest),
		nextID:   1,
	}
}

func (m *MockRequestRepository) Create(ctx context.Context, req *domain.ItemRequest) error {
	if m.createErr != nil {
		return m.createErr
	}
	req.ID = m.nextID
	m.nextID++
	m.requests[req.ID] = req
	return nil
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if req, exists := m.requests[id]; exists {
		return req, nil
	}
	return nil, domain.ErrRequestNotFound
}

func (m *MockRequestRepository) ListByRequester(ctx context.Context, userID int64) ([]*domain.ItemRequest, error) {
	var result []*domain.ItemRequest
	for _, req := range m.requests {
		if req.RequesterID == userID {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Created.After(result[j].Created) })
	return result, nil
}

func (m *MockRequestRepository) ListOthers(ctx context.Context, userID int64, page repository.Page) ([]*domain.ItemRequest, error) {
	var result []*domain.ItemRequest
	for _, req := range m.requests {
		if req.RequesterID != userID {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Created.After(result[j].Created) })
	return paginate(result, page), nil
}

// AddRequest seeds a request with a fixed ID.
func (m *MockRequestRepository) AddRequest(id, requesterID int64, description string, created time.Time) *domain.ItemRequest {
	req := &domain.ItemRequest{ID: id, RequesterID: requesterID, Description: description, Created: created}
	m.requests[id] = req
	if id >= m.nextID {
		m.nextID = id + 1
	}
	return req
}

// =============================================================================
// Mock Booking Repository
// =============================================================================

// MockBookingRepository is a mock implementation of repository.BookingRepository.
// Item ownership for ListByOwner is resolved through the owners map.
type MockBookingRepository struct {
	bookings  map[int64]*domain.Booking
	owners    map[int64]int64 // itemID -> ownerID
	nextID    int64
	createErr error
	getErr    error
	updateErr error
}

func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[int64]*domain.Booking),
		owners:   make(map[int64]int64),
		nextID:   1,
	}
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	booking.ID = m.nextID
	m.nextID++
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if b, exists := m.bookings[id]; exists {
		return b, nil
	}
	return nil, domain.ErrBookingNotFound
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	b, exists := m.bookings[id]
	if !exists {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (m *MockBookingRepository) ListByBooker(ctx context.Context, bookerID int64, state domain.BookingState, now time.Time, page repository.Page) ([]*domain.Booking, error) {
	return m.list(func(b *domain.Booking) bool { return b.BookerID == bookerID }, state, now, page), nil
}

func (m *MockBookingRepository) ListByOwner(ctx context.Context, ownerID int64, state domain.BookingState, now time.Time, page repository.Page) ([]*domain.Booking, error) {
	return m.list(func(b *domain.Booking) bool { return m.owners[b.ItemID] == ownerID }, state, now, page), nil
}

func (m *MockBookingRepository) list(match func(*domain.Booking) bool, state domain.BookingState, now time.Time, page repository.Page) []*domain.Booking {
	var result []*domain.Booking
	for _, b := range m.bookings {
		if !match(b) || !inState(b, state, now) {
			continue
		}
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start.After(result[j].Start) })
	return paginate(result, page)
}

func inState(b *domain.Booking, state domain.BookingState, now time.Time) bool {
	switch state {
	case domain.StateAll:
		return true
	case domain.StateCurrent:
		return !b.Start.After(now) && b.End.After(now)
	case domain.StatePast:
		return b.End.Before(now)
	case domain.StateFuture:
		return b.Start.After(now)
	case domain.StateWaiting:
		return b.Status == domain.StatusWaiting
	case domain.StateRejected:
		return b.Status == domain.StatusRejected
	}
	return false
}

func (m *MockBookingRepository) FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	var last *domain.Booking
	for _, b := range m.bookings {
		if b.ItemID != itemID || b.Status != domain.StatusApproved || b.Start.After(now) {
			continue
		}
		if last == nil || b.Start.After(last.Start) {
			last = b
		}
	}
	return last, nil
}

func (m *MockBookingRepository) FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	var next *domain.Booking
	for _, b := range m.bookings {
		if b.ItemID != itemID || b.Status != domain.StatusApproved || !b.Start.After(now) {
			continue
		}
		if next == nil || b.Start.Before(next.Start) {
			next = b
		}
	}
	return next, nil
}

func (m *MockBookingRepository) ListApprovedForItems(ctx context.Context, itemIDs []int64) ([]*domain.Booking, error) {
	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.Status == domain.StatusApproved && wanted[b.ItemID] {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start.Before(result[j].Start) })
	return result, nil
}

func (m *MockBookingRepository) HasPastBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	for _, b := range m.bookings {
		if b.BookerID == bookerID && b.ItemID == itemID && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

// AddBooking seeds a booking with a fixed ID.
func (m *MockBookingRepository) AddBooking(id, itemID, bookerID int64, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	b := &domain.Booking{ID: id, ItemID: itemID, BookerID: bookerID, Start: start, End: end, Status: status}
	m.bookings[id] = b
	if id >= m.nextID {
		m.nextID = id + 1
	}
	return b
}

// SetOwner records the owner of an item for ListByOwner filtering.
func (m *MockBookingRepository) SetOwner(itemID, ownerID int64) {
	m.owners[itemID] = ownerID
}

// =============================================================================
// Mock Comment Repository
// =============================================================================

// MockCommentRepository is a mock implementation of repository.CommentRepository.
type MockCommentRepository struct {
	comments  map[int64]*domain.Comment
	nextID    int64
	createErr error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		comments: make(map[int64]*domain.Comment),
		nextID:   1,
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.createErr != nil {
		return m.createErr
	}
	comment.ID = m.nextID
	m.nextID++
	m.comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) ListByItem(ctx context.Context, itemID int64) ([]*domain.Comment, error) {
	return m.ListByItems(ctx, []int64{itemID})
}

func (m *MockCommentRepository) ListByItems(ctx context.Context, itemIDs []int64) ([]*domain.Comment, error) {
	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var result []*domain.Comment
	for _, c := range m.comments {
		if wanted[c.ItemID] {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// paginate applies the page window to a pre-sorted slice.
func paginate[T any](s []T, page repository.Page) []T {
	offset := page.Offset()
	if offset >= len(s) {
		return nil
	}
	end := offset + page.Size
	if end > len(s) {
		end = len(s)
	}
	return s[offset:end]
}
