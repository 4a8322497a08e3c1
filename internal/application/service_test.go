package application

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reciclaqui/backend/internal/application/eventhandler"
	"github.com/reciclaqui/backend/internal/domain/entity"
	"github.com/reciclaqui/backend/internal/domain/event"
	"github.com/reciclaqui/backend/internal/domain/repository"
	"github.com/reciclaqui/backend/internal/domain/service"
)

// ---- in-memory repositories ----

type memoryUserRepo struct {
	users map[string]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*entity.User)}
}

func (r *memoryUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memoryUserRepo) Save(ctx context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *memoryUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email.Value(), email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memoryUserRepo) FindByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type memoryCollectionRepo struct {
	collections map[string]*entity.Collection
}

func newMemoryCollectionRepo() *memoryCollectionRepo {
	return &memoryCollectionRepo{collections: make(map[string]*entity.Collection)}
}

func (r *memoryCollectionRepo) Create(ctx context.Context, c *entity.Collection) error {
	r.collections[c.ID] = c
	return nil
}

func (r *memoryCollectionRepo) Save(ctx context.Context, c *entity.Collection) error {
	if _, ok := r.collections[c.ID]; !ok {
		return repository.ErrNotFound
	}
	r.collections[c.ID] = c
	return nil
}

func (r *memoryCollectionRepo) FindByID(ctx context.Context, id string) (*entity.Collection, error) {
	return r.collections[id], nil
}

func (r *memoryCollectionRepo) FindByUserID(ctx context.Context, userID string) ([]*entity.Collection, error) {
	var out []*entity.Collection
	for _, c := range r.collections {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryCollectionRepo) FindPendingByUserID(ctx context.Context, userID string) ([]*entity.Collection, error) {
	var out []*entity.Collection
	for _, c := range r.collections {
		if c.UserID == userID && c.IsPending() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryCollectionRepo) FindAll(ctx context.Context) ([]*entity.Collection, error) {
	out := make([]*entity.Collection, 0, len(r.collections))
	for _, c := range r.collections {
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryCollectionRepo) SummaryByMaterial(ctx context.Context) ([]repository.MaterialSummary, error) {
	byMaterial := make(map[string]*repository.MaterialSummary)
	for _, c := range r.collections {
		if c.Status != entity.CollectionAccepted {
			continue
		}
		s, ok := byMaterial[c.Material.String()]
		if !ok {
			s = &repository.MaterialSummary{Material: c.Material.String()}
			byMaterial[c.Material.String()] = s
		}
		s.Collections++
		s.TotalUnits += c.Quantity
		s.TotalPoints += c.Points
	}
	out := make([]repository.MaterialSummary, 0, len(byMaterial))
	for _, s := range byMaterial {
		out = append(out, *s)
	}
	return out, nil
}

type memoryPointsRepo struct {
	entries []*entity.PointsEntry
}

func (r *memoryPointsRepo) Create(ctx context.Context, e *entity.PointsEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *memoryPointsRepo) FindByUserID(ctx context.Context, userID string) ([]*entity.PointsEntry, error) {
	var out []*entity.PointsEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// memoryUoW mirrors the transactional unit of work without a database:
// on success it publishes the buffered events and clears them; on error
// nothing is published.
type memoryUoW struct {
	publisher *event.Publisher
}

func (u *memoryUoW) Execute(ctx context.Context, work func(ctx context.Context) (repository.WorkResult, error)) (any, error) {
	res, err := work(ctx)
	if err != nil {
		return nil, err
	}
	var events []event.Event
	for _, agg := range res.Aggregates {
		events = append(events, agg.UncommittedEvents()...)
	}
	if len(events) > 0 {
		u.publisher.Publish(ctx, events)
		for _, agg := range res.Aggregates {
			agg.ClearEvents()
		}
	}
	return res.Result, nil
}

// ---- fixtures ----

type fixture struct {
	users       *memoryUserRepo
	collections *memoryCollectionRepo
	points      *memoryPointsRepo
	publisher   *event.Publisher
	colSvc      *CollectionService
	userSvc     *UserService
	pointsSvc   *PointsService
	operator    *entity.User
	recycler    *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logrus.New()

	f := &fixture{
		users:       newMemoryUserRepo(),
		collections: newMemoryCollectionRepo(),
		points:      &memoryPointsRepo{},
		publisher:   event.NewPublisher(logger),
	}
	f.publisher.Register("CollectionAccepted", eventhandler.NewPointsLedgerHandler(f.points, logger))
	f.publisher.Register("CollectionRejected", eventhandler.NewRejectionLogHandler(logger))

	uow := &memoryUoW{publisher: f.publisher}
	f.colSvc = NewCollectionService(f.collections, f.users, service.NewCollectionDomainService(), uow, nil, "", logger)
	f.userSvc = NewUserService(f.users, uow, nil, nil, nil, "", logger)
	f.pointsSvc = NewPointsService(f.points)

	operator, err := entity.NewUser("Coop", "coop@reciclaqui.dev", "password123", entity.RoleEcoOperator, "ecoponto-1")
	require.NoError(t, err)
	operator.ClearEvents()
	recycler, err := entity.NewUser("Joana", "joana@reciclaqui.dev", "password123", entity.RoleRecycler, "")
	require.NoError(t, err)
	recycler.ClearEvents()

	require.NoError(t, f.users.Create(context.Background(), operator))
	require.NoError(t, f.users.Create(context.Background(), recycler))
	f.operator = operator
	f.recycler = recycler
	return f
}

func declare(t *testing.T, f *fixture, material string, quantity int) *DeclareRecyclingResult {
	t.Helper()
	res, err := f.colSvc.DeclareRecycling(context.Background(), DeclareRecyclingInput{
		OperatorID:   f.operator.ID,
		UserID:       f.recycler.ID,
		MaterialType: material,
		Quantity:     quantity,
	})
	require.NoError(t, err)
	return res
}

// ---- tests ----

func TestDeclareRecycling(t *testing.T) {
	f := newFixture(t)

	res := declare(t, f, "PLASTICO", 5)
	assert.Equal(t, "Recycling declared successfully. Awaiting user acceptance.", res.Message)
	assert.Equal(t, "PENDING", res.Collection.Status)
	assert.Equal(t, 50, res.Collection.Points)

	stored, err := f.collections.FindByID(context.Background(), res.Collection.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	// events were flushed by the unit of work
	assert.Empty(t, stored.UncommittedEvents())
}

func TestDeclareRecycling_Guards(t *testing.T) {
	f := newFixture(t)

	// recyclers cannot declare
	_, err := f.colSvc.DeclareRecycling(context.Background(), DeclareRecyclingInput{
		OperatorID:   f.recycler.ID,
		UserID:       f.recycler.ID,
		MaterialType: "PLASTICO",
		Quantity:     5,
	})
	assert.ErrorIs(t, err, entity.ErrRoleMismatch)

	// unknown users
	_, err = f.colSvc.DeclareRecycling(context.Background(), DeclareRecyclingInput{
		OperatorID:   "missing",
		UserID:       f.recycler.ID,
		MaterialType: "PLASTICO",
		Quantity:     5,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRespondToCollection_Accept(t *testing.T) {
	f := newFixture(t)
	declared := declare(t, f, "PLASTICO", 5)

	res, err := f.colSvc.RespondToCollection(context.Background(), RespondToCollectionInput{
		CollectionID: declared.Collection.ID,
		UserID:       f.recycler.ID,
		Accept:       true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Collection accepted! 50 points added to your account.", res.Message)
	assert.Equal(t, "ACCEPTED", res.Collection.Status)

	user, err := f.users.FindByID(context.Background(), f.recycler.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, user.Balance.Value())

	// the ledger handler ran after publication
	entries, err := f.points.FindByUserID(context.Background(), f.recycler.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 50, entries[0].Points)
	assert.Equal(t, declared.Collection.ID, entries[0].CollectionID)

	total, err := f.pointsSvc.Total(context.Background(), f.recycler.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, total)
}

func TestRespondToCollection_Reject(t *testing.T) {
	f := newFixture(t)
	declared := declare(t, f, "VIDRO", 2)

	res, err := f.colSvc.RespondToCollection(context.Background(), RespondToCollectionInput{
		CollectionID: declared.Collection.ID,
		UserID:       f.recycler.ID,
		Accept:       false,
		Reason:       "contaminated",
	})
	require.NoError(t, err)

	assert.Equal(t, "Collection rejected.", res.Message)
	assert.Equal(t, "REJECTED", res.Collection.Status)

	user, _ := f.users.FindByID(context.Background(), f.recycler.ID)
	assert.Equal(t, 0, user.Balance.Value())
	entries, _ := f.points.FindByUserID(context.Background(), f.recycler.ID)
	assert.Empty(t, entries)
}

func TestRespondToCollection_Guards(t *testing.T) {
	f := newFixture(t)
	declared := declare(t, f, "METAL", 3)

	_, err := f.colSvc.RespondToCollection(context.Background(), RespondToCollectionInput{
		CollectionID: declared.Collection.ID,
		UserID:       f.operator.ID,
		Accept:       true,
	})
	assert.ErrorIs(t, err, entity.ErrRoleMismatch)

	_, err = f.colSvc.RespondToCollection(context.Background(), RespondToCollectionInput{
		CollectionID: "missing",
		UserID:       f.recycler.ID,
		Accept:       true,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// respond once, then again
	_, err = f.colSvc.RespondToCollection(context.Background(), RespondToCollectionInput{
		CollectionID: declared.Collection.ID,
		UserID:       f.recycler.ID,
		Accept:       true,
	})
	require.NoError(t, err)
	_, err = f.colSvc.RespondToCollection(context.Background(), RespondToCollectionInput{
		CollectionID: declared.Collection.ID,
		UserID:       f.recycler.ID,
		Accept:       true,
	})
	assert.ErrorIs(t, err, entity.ErrAlreadyResponded)

	// no double credit
	user, _ := f.users.FindByID(context.Background(), f.recycler.ID)
	assert.Equal(t, 36, user.Balance.Value())
}

func TestCollectionQueries(t *testing.T) {
	f := newFixture(t)
	first := declare(t, f, "PLASTICO", 5)
	declare(t, f, "PAPEL", 4)

	pending, err := f.colSvc.PendingForUser(context.Background(), f.recycler.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = f.colSvc.RespondToCollection(context.Background(), RespondToCollectionInput{
		CollectionID: first.Collection.ID,
		UserID:       f.recycler.ID,
		Accept:       true,
	})
	require.NoError(t, err)

	pending, err = f.colSvc.PendingForUser(context.Background(), f.recycler.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := f.colSvc.ForUser(context.Background(), f.recycler.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	summary, err := f.colSvc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, "PLASTICO", summary[0].Material)
	assert.Equal(t, 50, summary[0].TotalPoints)
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	view, err := f.userSvc.Register(context.Background(), RegisterUserInput{
		Name:     "New User",
		Email:    "new@reciclaqui.dev",
		Password: "password123",
		Role:     "RECYCLER",
	})
	require.NoError(t, err)
	assert.Equal(t, "RECYCLER", view.Role)
	assert.Equal(t, 0, view.PointsBalance)

	// duplicate email
	_, err = f.userSvc.Register(context.Background(), RegisterUserInput{
		Name:     "Again",
		Email:    "new@reciclaqui.dev",
		Password: "password123",
		Role:     "RECYCLER",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// bad role
	_, err = f.userSvc.Register(context.Background(), RegisterUserInput{
		Name:     "Nope",
		Email:    "nope@reciclaqui.dev",
		Password: "password123",
		Role:     "ADMIN",
	})
	assert.ErrorIs(t, err, entity.ErrRoleMismatch)
}

func TestRedeemPoints(t *testing.T) {
	f := newFixture(t)
	declared := declare(t, f, "PLASTICO", 5)
	_, err := f.colSvc.RespondToCollection(context.Background(), RespondToCollectionInput{
		CollectionID: declared.Collection.ID,
		UserID:       f.recycler.ID,
		Accept:       true,
	})
	require.NoError(t, err)

	res, err := f.userSvc.RedeemPoints(context.Background(), RedeemPointsInput{
		UserID:      f.recycler.ID,
		Points:      30,
		Description: "bus ticket",
	})
	require.NoError(t, err)
	assert.Equal(t, 20, res.RemainingPoints)

	// insufficient balance leaves everything untouched
	_, err = f.userSvc.RedeemPoints(context.Background(), RedeemPointsInput{
		UserID:      f.recycler.ID,
		Points:      100,
		Description: "too much",
	})
	require.Error(t, err)

	user, _ := f.users.FindByID(context.Background(), f.recycler.ID)
	assert.Equal(t, 20, user.Balance.Value())
}
