package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mightcoding/ISSAConnect/internal/domain"
)

// mockUserRepository is an in-memory UserRepository
type mockUserRepository struct {
	mu          sync.Mutex
	users       map[string]*domain.User
	createError error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (r *mockUserRepository) add(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
}

func (r *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if r.createError != nil {
		return r.createError
	}
	r.add(user)
	return nil
}

func (r *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *mockUserRepository) Exists(ctx context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.add(user)
	return nil
}

func (r *mockUserRepository) UpdatePermissions(ctx context.Context, id string, canCreateContent bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.CanCreateContent = canCreateContent
	return nil
}

func (r *mockUserRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.AvatarURL = avatarURL
	return nil
}

func (r *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].DateJoined.Before(users[j].DateJoined) })
	return users, nil
}

// mockSessionRepository is an in-memory SessionRepository
type mockSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (r *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *mockSessionRepository) GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.RefreshToken == token {
			return s, nil
		}
	}
	return nil, nil
}

func (r *mockSessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *mockSessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

// mockNewsRepository is an in-memory NewsRepository
type mockNewsRepository struct {
	mu    sync.Mutex
	items map[string]*domain.News
}

func newMockNewsRepository() *mockNewsRepository {
	return &mockNewsRepository{items: make(map[string]*domain.News)}
}

func (r *mockNewsRepository) Create(ctx context.Context, news *domain.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[news.ID] = news
	return nil
}

func (r *mockNewsRepository) GetByID(ctx context.Context, id string) (*domain.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copied := *n
	return &copied, nil
}

func (r *mockNewsRepository) List(ctx context.Context, limit int) ([]*domain.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*domain.News, 0, len(r.items))
	for _, n := range r.items {
		items = append(items, n)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *mockNewsRepository) Update(ctx context.Context, news *domain.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[news.ID]; !ok {
		return domain.ErrNewsNotFound
	}
	r.items[news.ID] = news
	return nil
}

func (r *mockNewsRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNewsNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *mockNewsRepository) IncrementViews(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok {
		return 0, domain.ErrNewsNotFound
	}
	n.Views++
	return n.Views, nil
}

// mockEventRepository is an in-memory EventRepository
type mockEventRepository struct {
	mu    sync.Mutex
	items map[string]*domain.Event
}

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{items: make(map[string]*domain.Event)}
}

func (r *mockEventRepository) add(event *domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[event.ID] = event
}

func (r *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.add(event)
	return nil
}

func (r *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (r *mockEventRepository) List(ctx context.Context, limit int) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*domain.Event, 0, len(r.items))
	for _, e := range r.items {
		items = append(items, e)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *mockEventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*domain.Event, 0, len(r.items))
	for _, e := range r.items {
		items = append(items, e)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (r *mockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	r.items[event.ID] = event
	return nil
}

func (r *mockEventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.items, id)
	return nil
}

type registrationKey struct {
	eventID string
	userID  string
}

// mockRegistrationRepository is an in-memory registration ledger. Register
// holds one lock across the capacity check and the insert, mirroring the
// row-lock transaction of the real implementation, so concurrent calls
// serialize the same way.
type mockRegistrationRepository struct {
	mu     sync.Mutex
	rows   map[registrationKey]*domain.Registration
	events *mockEventRepository
	users  *mockUserRepository
}

func newMockRegistrationRepository(events *mockEventRepository, users *mockUserRepository) *mockRegistrationRepository {
	return &mockRegistrationRepository{
		rows:   make(map[registrationKey]*domain.Registration),
		events: events,
		users:  users,
	}
}

func (r *mockRegistrationRepository) Register(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, _ := r.events.GetByID(ctx, eventID)
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	key := registrationKey{eventID: eventID, userID: userID}
	if _, ok := r.rows[key]; ok {
		return nil, domain.ErrAlreadyRegistered
	}

	count := 0
	for k := range r.rows {
		if k.eventID == eventID {
			count++
		}
	}
	if count >= event.Capacity {
		return nil, domain.ErrEventFull
	}

	reg := &domain.Registration{
		ID:           uuid.New().String(),
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: time.Now(),
	}
	r.rows[key] = reg
	return reg, nil
}

func (r *mockRegistrationRepository) Remove(ctx context.Context, eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := registrationKey{eventID: eventID, userID: userID}
	if _, ok := r.rows[key]; !ok {
		return domain.ErrNotRegistered
	}
	delete(r.rows, key)
	return nil
}

func (r *mockRegistrationRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[registrationKey{eventID: eventID, userID: userID}]
	return ok, nil
}

func (r *mockRegistrationRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for k := range r.rows {
		if k.eventID == eventID {
			count++
		}
	}
	return count, nil
}

func (r *mockRegistrationRepository) CountByEvents(ctx context.Context, eventIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(eventIDs))
	for _, id := range eventIDs {
		count, _ := r.CountByEvent(ctx, id)
		if count > 0 {
			counts[id] = count
		}
	}
	return counts, nil
}

func (r *mockRegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var registrants []*domain.Registrant
	for k, reg := range r.rows {
		if k.eventID != eventID {
			continue
		}
		entry := &domain.Registrant{
			RegistrationID: reg.ID,
			UserID:         reg.UserID,
			RegisteredAt:   reg.RegisteredAt,
		}
		if u := r.users.users[reg.UserID]; u != nil {
			entry.Username = u.Username
			entry.FullName = u.DisplayName()
			entry.Email = u.Email
			entry.AvatarURL = u.AvatarURL
		}
		registrants = append(registrants, entry)
	}
	sort.Slice(registrants, func(i, j int) bool {
		return registrants[i].RegisteredAt.Before(registrants[j].RegisteredAt)
	})
	return registrants, nil
}

// test fixture helpers

func newTestUser(username string) *domain.User {
	now := time.Now()
	return &domain.User{
		ID:         uuid.New().String(),
		Username:   username,
		Email:      username + "@example.com",
		FirstName:  "Test",
		LastName:   "User",
		IsActive:   true,
		DateJoined: now,
		UpdatedAt:  now,
	}
}

func newTestEvent(authorID string, capacity int) *domain.Event {
	now := time.Now()
	return &domain.Event{
		ID:          uuid.New().String(),
		Title:       "Go Meetup",
		Description: "An evening of talks",
		Category:    "Workshop",
		Excerpt:     "An evening of talks",
		StartsAt:    now.Add(48 * time.Hour),
		Location:    "Main Hall",
		Capacity:    capacity,
		TicketPrice: "Free",
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
