package contacts

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/BearBump/LlantaBox/internal/apperr"
	"github.com/BearBump/LlantaBox/internal/broker/events"
	"github.com/BearBump/LlantaBox/internal/broker/messages"
	"github.com/BearBump/LlantaBox/internal/models"
	"github.com/BearBump/LlantaBox/internal/services/failover"
	"github.com/BearBump/LlantaBox/internal/storage/memshop"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// flakyRepo: memshop, который умеет «падать» как недоступная БД.
type flakyRepo struct {
	*memshop.Store
	mu   sync.Mutex
	down bool
}

func newFlaky() *flakyRepo { return &flakyRepo{Store: memshop.New(nil)} }

func (f *flakyRepo) setDown(v bool) {
	f.mu.Lock()
	f.down = v
	f.mu.Unlock()
}

func (f *flakyRepo) err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errors.New("dial tcp: connection refused")
	}
	return nil
}

func (f *flakyRepo) CreateContact(ctx context.Context, m *models.ContactMessage) error {
	if err := f.err(); err != nil {
		return err
	}
	return f.Store.CreateContact(ctx, m)
}

func (f *flakyRepo) ListContacts(ctx context.Context) ([]*models.ContactMessage, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	return f.Store.ListContacts(ctx)
}

func (f *flakyRepo) GetContact(ctx context.Context, id string) (*models.ContactMessage, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	return f.Store.GetContact(ctx, id)
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(ctx context.Context, topic string, key, value []byte) error {
	return m.Called(ctx, topic, key, value).Error(0)
}

func strPtr(s string) *string { return &s }

func TestSubmit_ValidationErrors(t *testing.T) {
	db := newFlaky()
	s := New(db, memshop.New(nil), Policy{BestEffortAck: true}, nil, failover.Options{})
	ctx := context.Background()

	_, err := s.Submit(ctx, models.ContactInput{Name: "  ", Email: "bad", Message: ""})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, MsgRequired, ve.Message)
	require.Equal(t, []string{"name", "message"}, ve.Fields)

	_, err = s.Submit(ctx, models.ContactInput{Name: "Ana", Email: "bad", Message: "hi"})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, MsgInvalidEmail, ve.Message)
	require.Equal(t, []string{"email"}, ve.Fields)

	_, err = s.Submit(ctx, models.ContactInput{Name: "Ana", Email: "", Message: "hi"})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, []string{"email"}, ve.Fields)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestSubmit_NormalizesAndPersists(t *testing.T) {
	db := newFlaky()
	s := New(db, memshop.New(nil), Policy{BestEffortAck: true}, nil, failover.Options{})
	fixed := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	rec, err := s.Submit(context.Background(), models.ContactInput{
		Name:    "  Ana Ruiz ",
		Email:   " Test@Example.com ",
		Phone:   strPtr("  "),
		Message: " Need 2 tires  ",
	})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, fixed, rec.Timestamp)

	got, err := db.Store.GetContact(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana Ruiz", got.Name)
	require.Equal(t, "test@example.com", got.Email)
	require.Nil(t, got.Phone)
	require.Equal(t, "Need 2 tires", got.Message)
	require.Equal(t, models.ContactStatusNew, got.Status)
	require.Equal(t, fixed, got.CreatedAt)
}

func TestSubmit_DBDown_BestEffortAck(t *testing.T) {
	db := newFlaky()
	mem := memshop.New(nil)
	s := New(db, mem, Policy{BestEffortAck: true}, nil, failover.Options{})
	ctx := context.Background()

	db.setDown(true)
	rec, err := s.Submit(ctx, models.ContactInput{Name: "Ana", Email: "ana@example.com", Phone: strPtr("555"), Message: "hi"})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)

	held, err := mem.GetContact(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "555", *held.Phone)

	// пока БД лежит, читаем из fallback
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// после восстановления сообщение всё ещё видно
	db.setDown(false)
	rec2, err := s.Submit(ctx, models.ContactInput{Name: "Luis", Email: "luis@example.com", Message: "hola"})
	require.NoError(t, err)

	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	ids := []string{list[0].ID, list[1].ID}
	require.Contains(t, ids, rec.ID)
	require.Contains(t, ids, rec2.ID)

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana", got.Name)
}

func TestSubmit_DBDown_StrictPolicy(t *testing.T) {
	db := newFlaky()
	mem := memshop.New(nil)
	s := New(db, mem, Policy{BestEffortAck: false}, nil, failover.Options{})
	db.setDown(true)

	_, err := s.Submit(context.Background(), models.ContactInput{Name: "Ana", Email: "ana@example.com", Message: "hi"})
	require.ErrorIs(t, err, apperr.ErrStoreUnavailable)

	held, err := mem.ListContacts(context.Background())
	require.NoError(t, err)
	require.Empty(t, held)
}

func TestList_NewestFirst(t *testing.T) {
	s := New(nil, memshop.New(nil), Policy{BestEffortAck: true}, nil, failover.Options{})
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	step := 0
	s.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	var ids []string
	for i := 0; i < 3; i++ {
		rec, err := s.Submit(context.Background(), models.ContactInput{Name: "n", Email: "a@b.co", Message: "m"})
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestGet_NotFound(t *testing.T) {
	s := New(newFlaky(), memshop.New(nil), Policy{BestEffortAck: true}, nil, failover.Options{})
	_, err := s.Get(context.Background(), "missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSubmit_UniqueIDs(t *testing.T) {
	s := New(nil, memshop.New(nil), Policy{BestEffortAck: true}, nil, failover.Options{})

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[string]struct{}{}
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := s.Submit(context.Background(), models.ContactInput{Name: "n", Email: "a@b.co", Message: "m"})
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			ids[rec.ID] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Len(t, ids, 100)
}

func TestSubmit_PublishesEvent(t *testing.T) {
	pm := &publisherMock{}
	pm.On("Publish", mock.Anything, "shop.submissions", []byte("ana@example.com"), mock.MatchedBy(func(v []byte) bool {
		var ev messages.SubmissionEvent
		if err := json.Unmarshal(v, &ev); err != nil {
			return false
		}
		return ev.Kind == messages.KindContactReceived && ev.Store == "fallback" && ev.Status == models.ContactStatusNew
	})).Return(nil).Once()
	em := events.NewEmitter(pm, "shop.submissions", time.Second, nil)

	s := New(nil, memshop.New(nil), Policy{BestEffortAck: true}, em, failover.Options{})
	_, err := s.Submit(context.Background(), models.ContactInput{Name: "Ana", Email: "ANA@example.com", Message: "hi"})
	require.NoError(t, err)

	em.Flush()
	pm.AssertExpectations(t)
}
