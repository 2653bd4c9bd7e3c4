package service

import (
	"context"
	"sync"
	"testing"

	"github.com/mightcoding/ISSAConnect/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationFixture struct {
	svc       RegistrationService
	users     *mockUserRepository
	events    *mockEventRepository
	ledger    *mockRegistrationRepository
	admin     *domain.User
	member    *domain.User
	secondary *domain.User
}

func newRegistrationFixture(t *testing.T) *registrationFixture {
	t.Helper()

	users := newMockUserRepository()
	events := newMockEventRepository()
	ledger := newMockRegistrationRepository(events, users)

	admin := newTestUser("admin")
	admin.IsStaff = true
	member := newTestUser("alice")
	secondary := newTestUser("bob")
	users.add(admin)
	users.add(member)
	users.add(secondary)

	return &registrationFixture{
		svc:       NewRegistrationService(ledger, events, users),
		users:     users,
		events:    events,
		ledger:    ledger,
		admin:     admin,
		member:    member,
		secondary: secondary,
	}
}

func TestRegistrationService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("fills an event to capacity", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 2)
		f.events.add(event)

		resp, err := f.svc.Register(ctx, event.ID, f.member.ID)
		require.NoError(t, err)
		assert.True(t, resp.Registered)
		assert.Equal(t, 1, resp.CurrentRegistrations)
		assert.Equal(t, 1, resp.AvailableSpots)
		assert.False(t, resp.IsFull)

		resp, err = f.svc.Register(ctx, event.ID, f.secondary.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.CurrentRegistrations)
		assert.Equal(t, 0, resp.AvailableSpots)
		assert.True(t, resp.IsFull)

		third := newTestUser("carol")
		f.users.add(third)
		_, err = f.svc.Register(ctx, event.ID, third.ID)
		assert.ErrorIs(t, err, domain.ErrEventFull)
	})

	t.Run("capacity zero admits nobody", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 0)
		f.events.add(event)

		_, err := f.svc.Register(ctx, event.ID, f.member.ID)
		assert.ErrorIs(t, err, domain.ErrEventFull)
	})

	t.Run("capacity one boundary", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 1)
		f.events.add(event)

		_, err := f.svc.Register(ctx, event.ID, f.member.ID)
		require.NoError(t, err)

		_, err = f.svc.Register(ctx, event.ID, f.secondary.ID)
		assert.ErrorIs(t, err, domain.ErrEventFull)
	})

	t.Run("duplicate registration rejected", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 10)
		f.events.add(event)

		_, err := f.svc.Register(ctx, event.ID, f.member.ID)
		require.NoError(t, err)

		_, err = f.svc.Register(ctx, event.ID, f.member.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)

		count, _ := f.ledger.CountByEvent(ctx, event.ID)
		assert.Equal(t, 1, count)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newRegistrationFixture(t)
		_, err := f.svc.Register(ctx, "missing-event", f.member.ID)
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 10)
		f.events.add(event)

		_, err := f.svc.Register(ctx, event.ID, "missing-user")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("concurrent same pair yields one success", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 100)
		f.events.add(event)

		const attempts = 20
		var wg sync.WaitGroup
		errs := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.svc.Register(ctx, event.ID, f.member.ID)
			}(i)
		}
		wg.Wait()

		successes := 0
		for _, err := range errs {
			if err == nil {
				successes++
			} else {
				assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
			}
		}
		assert.Equal(t, 1, successes)

		count, _ := f.ledger.CountByEvent(ctx, event.ID)
		assert.Equal(t, 1, count)
	})

	t.Run("concurrent different users never overrun capacity", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 5)
		f.events.add(event)

		const attempts = 20
		var wg sync.WaitGroup
		errs := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			u := newTestUser("user" + string(rune('a'+i)))
			f.users.add(u)
			wg.Add(1)
			go func(i int, userID string) {
				defer wg.Done()
				_, errs[i] = f.svc.Register(ctx, event.ID, userID)
			}(i, u.ID)
		}
		wg.Wait()

		successes := 0
		for _, err := range errs {
			if err == nil {
				successes++
			} else {
				assert.ErrorIs(t, err, domain.ErrEventFull)
			}
		}
		assert.Equal(t, 5, successes)

		count, _ := f.ledger.CountByEvent(ctx, event.ID)
		assert.Equal(t, 5, count)
	})
}

func TestRegistrationService_Unregister(t *testing.T) {
	ctx := context.Background()

	t.Run("frees the spot", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 1)
		f.events.add(event)

		_, err := f.svc.Register(ctx, event.ID, f.member.ID)
		require.NoError(t, err)

		resp, err := f.svc.Unregister(ctx, event.ID, f.member.ID)
		require.NoError(t, err)
		assert.False(t, resp.Registered)
		assert.Equal(t, 0, resp.CurrentRegistrations)
		assert.Equal(t, 1, resp.AvailableSpots)
		assert.False(t, resp.IsFull)

		// The freed spot is immediately usable by someone else
		_, err = f.svc.Register(ctx, event.ID, f.secondary.ID)
		assert.NoError(t, err)
	})

	t.Run("second unregister fails", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 5)
		f.events.add(event)

		_, err := f.svc.Register(ctx, event.ID, f.member.ID)
		require.NoError(t, err)

		_, err = f.svc.Unregister(ctx, event.ID, f.member.ID)
		require.NoError(t, err)

		_, err = f.svc.Unregister(ctx, event.ID, f.member.ID)
		assert.ErrorIs(t, err, domain.ErrNotRegistered)
	})

	t.Run("never registered", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 5)
		f.events.add(event)

		_, err := f.svc.Unregister(ctx, event.ID, f.member.ID)
		assert.ErrorIs(t, err, domain.ErrNotRegistered)
	})

	t.Run("register after unregister round trip", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 3)
		f.events.add(event)

		_, err := f.svc.Register(ctx, event.ID, f.member.ID)
		require.NoError(t, err)
		_, err = f.svc.Unregister(ctx, event.ID, f.member.ID)
		require.NoError(t, err)
		resp, err := f.svc.Register(ctx, event.ID, f.member.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.CurrentRegistrations)
	})
}

func TestRegistrationService_ListRegistrations(t *testing.T) {
	ctx := context.Background()

	t.Run("privileged caller sees enriched ledger", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 10)
		f.events.add(event)

		_, err := f.svc.Register(ctx, event.ID, f.member.ID)
		require.NoError(t, err)
		_, err = f.svc.Register(ctx, event.ID, f.secondary.ID)
		require.NoError(t, err)

		resp, err := f.svc.ListRegistrations(ctx, f.admin.ID, event.ID)
		require.NoError(t, err)
		assert.Equal(t, event.ID, resp.EventID)
		assert.Equal(t, 2, resp.CurrentRegistrations)
		require.Len(t, resp.Registrants, 2)
		assert.Equal(t, "alice", resp.Registrants[0].Username)
		assert.Equal(t, "alice@example.com", resp.Registrants[0].Email)
	})

	t.Run("regular member denied", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 10)
		f.events.add(event)

		_, err := f.svc.ListRegistrations(ctx, f.member.ID, event.ID)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newRegistrationFixture(t)
		_, err := f.svc.ListRegistrations(ctx, f.admin.ID, "missing-event")
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

func TestRegistrationService_RemoveRegistrant(t *testing.T) {
	ctx := context.Background()

	t.Run("admin removal frees the spot", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 1)
		f.events.add(event)

		_, err := f.svc.Register(ctx, event.ID, f.member.ID)
		require.NoError(t, err)

		resp, err := f.svc.RemoveRegistrant(ctx, f.admin.ID, event.ID, f.member.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.CurrentRegistrations)
		assert.Equal(t, 1, resp.AvailableSpots)

		_, err = f.svc.Register(ctx, event.ID, f.secondary.ID)
		assert.NoError(t, err)
	})

	t.Run("regular member denied", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 5)
		f.events.add(event)

		_, err := f.svc.Register(ctx, event.ID, f.secondary.ID)
		require.NoError(t, err)

		_, err = f.svc.RemoveRegistrant(ctx, f.member.ID, event.ID, f.secondary.ID)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("absent registration", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 5)
		f.events.add(event)

		_, err := f.svc.RemoveRegistrant(ctx, f.admin.ID, event.ID, f.member.ID)
		assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)
	})
}

func TestRegistrationService_EventsOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("reports fill percentage per event", func(t *testing.T) {
		f := newRegistrationFixture(t)
		event := newTestEvent(f.admin.ID, 3)
		f.events.add(event)
		empty := newTestEvent(f.admin.ID, 0)
		empty.Title = "Closed Doors"
		f.events.add(empty)

		_, err := f.svc.Register(ctx, event.ID, f.member.ID)
		require.NoError(t, err)

		overview, err := f.svc.EventsOverview(ctx, f.admin.ID)
		require.NoError(t, err)
		require.Len(t, overview, 2)

		byID := make(map[string]float64, len(overview))
		full := make(map[string]bool, len(overview))
		for _, row := range overview {
			byID[row.EventID] = row.RegistrationPercent
			full[row.EventID] = row.IsFull
		}
		assert.InDelta(t, 33.3, byID[event.ID], 0.001)
		assert.False(t, full[event.ID])
		// Capacity zero reports 0% and full, not a division blowup
		assert.Equal(t, 0.0, byID[empty.ID])
		assert.True(t, full[empty.ID])
	})

	t.Run("covers the whole catalogue", func(t *testing.T) {
		f := newRegistrationFixture(t)
		for i := 0; i < 12; i++ {
			f.events.add(newTestEvent(f.admin.ID, 5))
		}

		overview, err := f.svc.EventsOverview(ctx, f.admin.ID)
		require.NoError(t, err)
		assert.Len(t, overview, 12)
	})

	t.Run("regular member denied", func(t *testing.T) {
		f := newRegistrationFixture(t)
		_, err := f.svc.EventsOverview(ctx, f.member.ID)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}
