package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/airport-dashboard/internal/datasource"
	"github.com/spec-kit/airport-dashboard/internal/domain"
	"github.com/spec-kit/airport-dashboard/internal/events"
	"github.com/spec-kit/airport-dashboard/internal/repository"

	"go.uber.org/zap"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
	order []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.ID] = *user
	r.order = append(r.order, user.ID)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, id := range r.order {
		user, ok := r.users[id]
		if !ok {
			continue
		}
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.AirportCode != nil {
			if user.AirportCode == nil || *user.AirportCode != *filter.AirportCode {
				continue
			}
		}
		out = append(out, user)
	}
	return out, nil
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// fakeNotificationRepo is an in-memory NotificationRepository with the same
// first-write-wins acknowledge semantics as the Postgres one.
type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications map[string]domain.StaffNotification
	order         []string
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[string]domain.StaffNotification{}}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *domain.StaffNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	r.notifications[n.ID] = *n
	r.order = append(r.order, n.ID)
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*domain.StaffNotification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &n, nil
}

func (r *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, onlyPending bool) ([]domain.StaffNotification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.StaffNotification
	for _, id := range r.order {
		n := r.notifications[id]
		if n.RecipientID != recipientID {
			continue
		}
		if onlyPending && n.Status != domain.NotificationPending {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeNotificationRepo) ListBySender(ctx context.Context, senderID string) ([]domain.StaffNotification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.StaffNotification
	for _, id := range r.order {
		n := r.notifications[id]
		if n.SenderID == senderID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) Acknowledge(ctx context.Context, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok || n.Status != domain.NotificationPending {
		return false, nil
	}
	n.Status = domain.NotificationAcknowledged
	n.AcknowledgedAt = &at
	r.notifications[id] = n
	return true, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *recordingDispatcher) ofType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

func testAggregator(providers map[string]datasource.Provider) *datasource.Aggregator {
	logger := zap.NewNop()
	return datasource.NewAggregator(providers, time.Second, datasource.NewCache(nil, 0, logger), logger)
}

func conveyorAggregator(belts []datasource.Payload, alerts []datasource.Payload) *datasource.Aggregator {
	return testAggregator(map[string]datasource.Provider{
		datasource.DatasetLiveConveyors: datasource.ProviderFunc(func(ctx context.Context, airportCode string) (datasource.Payload, error) {
			return datasource.Payload{"conveyor_belts": belts, "ai_alerts": alerts}, nil
		}),
	})
}
