package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*entity.User
	order   []string
	listErr error
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		_ = r.Create(context.Background(), u)
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, ok := r.users[key]; ok {
		return repository.ErrEmailExists
	}
	user.ID = uint(len(r.order) + 1)
	r.users[key] = user
	r.order = append(r.order, key)
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*entity.User, 0, len(r.order))
	for _, key := range r.order {
		cp := *r.users[key]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdatePreference(ctx context.Context, email string, pref entity.NotificationPreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return repository.ErrNotFound
	}
	u.NotificationPreference = pref
	return nil
}

type fakeFlightRepo struct {
	byEmail   map[string][]*entity.Flight
	failFor   map[string]error
	searchHit []*entity.Flight
	lastQuery entity.FlightSearch
}

func newFakeFlightRepo() *fakeFlightRepo {
	return &fakeFlightRepo{byEmail: make(map[string][]*entity.Flight), failFor: make(map[string]error)}
}

func (r *fakeFlightRepo) Search(ctx context.Context, query entity.FlightSearch) ([]*entity.Flight, error) {
	r.lastQuery = query
	return r.searchHit, nil
}

func (r *fakeFlightRepo) FindByUserEmail(ctx context.Context, email string) ([]*entity.Flight, error) {
	if err := r.failFor[email]; err != nil {
		return nil, err
	}
	return r.byEmail[email], nil
}

type fakeStatusRepo struct {
	mu        sync.Mutex
	rows      map[string]map[string]entity.FlightSnapshot
	upsertErr error
	pruned    int
}

func newFakeStatusRepo() *fakeStatusRepo {
	return &fakeStatusRepo{rows: make(map[string]map[string]entity.FlightSnapshot)}
}

func (r *fakeStatusRepo) set(email string, s entity.FlightSnapshot) {
	if r.rows[email] == nil {
		r.rows[email] = make(map[string]entity.FlightSnapshot)
	}
	r.rows[email][s.FlightNumber] = s
}

func (r *fakeStatusRepo) get(email, flightNumber string) (entity.FlightSnapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[email][flightNumber]
	return s, ok
}

func (r *fakeStatusRepo) FindByEmail(ctx context.Context, email string) ([]*entity.PreviousFlightStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.PreviousFlightStatus, 0)
	for _, s := range r.rows[email] {
		out = append(out, &entity.PreviousFlightStatus{Email: email, FlightSnapshot: s})
	}
	return out, nil
}

func (r *fakeStatusRepo) Upsert(ctx context.Context, email string, snapshots []entity.FlightSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for _, s := range snapshots {
		r.set(email, s)
	}
	return nil
}

func (r *fakeStatusRepo) DeleteOrphaned(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruned++
	return 0, nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	records []*entity.DeliveryRecord
	saveErr error
}

func (r *fakeHistoryRepo) Save(ctx context.Context, record *entity.DeliveryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records = append(r.records, record)
	return nil
}

func (r *fakeHistoryRepo) FindByUserEmail(ctx context.Context, email string, limit int) ([]*entity.DeliveryRecord, error) {
	return nil, errors.New("not implemented")
}

type recordingSender struct {
	mu      sync.Mutex
	channel entity.NotificationPreference
	sent    []*entity.Notification
	err     error
}

func (s *recordingSender) Channel() entity.NotificationPreference { return s.channel }

func (s *recordingSender) Send(ctx context.Context, n *entity.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return s.err
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type mapRouter map[entity.NotificationPreference]repository.NotificationSender

func (m mapRouter) Register(sender repository.NotificationSender) { m[sender.Channel()] = sender }

func (m mapRouter) SenderFor(p entity.NotificationPreference) repository.NotificationSender {
	return m[p]
}

type plainComposer struct{}

func (plainComposer) Compose(s entity.FlightSnapshot) (string, string) {
	return "Flight Status Update", "Flight " + s.FlightNumber + " has an update: Status=" + s.Status
}
