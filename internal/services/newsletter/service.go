package newsletter

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/BearBump/LlantaBox/internal/apperr"
	"github.com/BearBump/LlantaBox/internal/broker/events"
	"github.com/BearBump/LlantaBox/internal/broker/messages"
	"github.com/BearBump/LlantaBox/internal/models"
	"github.com/BearBump/LlantaBox/internal/services/failover"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	MsgEmailRequired = "Email is required"
	MsgInvalidEmail  = "Please provide a valid email address"
)

type Repository interface {
	GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	// CreateSubscriber возвращает apperr.ErrAlreadyExists, если email занят.
	CreateSubscriber(ctx context.Context, sub *models.Subscriber) error
	UpdateSubscriberStatus(ctx context.Context, email, status string, at time.Time) (*models.Subscriber, error)
	ListSubscribers(ctx context.Context) ([]*models.Subscriber, error)
}

type Policy struct {
	BestEffortAck bool
}

type Service struct {
	stores *failover.Runner[Repository]
	policy Policy
	events *events.Emitter
	log    *zap.Logger

	now   func() time.Time
	newID func() string
}

func New(primary, fallback Repository, policy Policy, emitter *events.Emitter, opts failover.Options) *Service {
	return &Service{
		stores: failover.NewRunner(primary, primary != nil, fallback, opts),
		policy: policy,
		events: emitter,
		log:    logger(opts),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Subscribe переводит email в active: нет строки, создаём; unsubscribed
// реактивируем ту же строку; active не трогаем.
func (s *Service) Subscribe(ctx context.Context, email, source string) (*models.SubscriptionReceipt, error) {
	email, err := checkEmail(email, true)
	if err != nil {
		return nil, err
	}
	source = strings.TrimSpace(source)
	if source == "" {
		source = models.DefaultSubscriberSource
	}

	rec, src, err := failover.Write(ctx, s.stores, "subscribe", s.policy.BestEffortAck, func(ctx context.Context, r Repository) (*models.SubscriptionReceipt, error) {
		return s.subscribe(ctx, r, email, source)
	})
	if err != nil {
		return nil, errors.Wrap(err, "subscribe")
	}
	if rec.Outcome != models.SubscriptionAlreadyActive {
		s.emit(ctx, rec.ID, email, models.SubscriberStatusActive, src, rec.Timestamp)
	}
	return rec, nil
}

func (s *Service) subscribe(ctx context.Context, r Repository, email, source string) (*models.SubscriptionReceipt, error) {
	// Вторая попытка нужна, если параллельный запрос успел вставить тот же email.
	for attempt := 0; attempt < 2; attempt++ {
		existing, err := r.GetSubscriberByEmail(ctx, email)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			rec, err := s.create(ctx, r, email, source)
			if errors.Is(err, apperr.ErrAlreadyExists) {
				continue
			}
			return rec, err

		case err != nil:
			return nil, err

		case existing.Status == models.SubscriberStatusActive:
			return &models.SubscriptionReceipt{ID: existing.ID, Email: email, Timestamp: existing.CreatedAt, Outcome: models.SubscriptionAlreadyActive}, nil

		default:
			upd, err := r.UpdateSubscriberStatus(ctx, email, models.SubscriberStatusActive, s.now().UTC())
			if err != nil {
				return nil, err
			}
			return &models.SubscriptionReceipt{ID: upd.ID, Email: email, Timestamp: upd.UpdatedAt, Outcome: models.SubscriptionReactivated}, nil
		}
	}
	return nil, errors.Errorf("subscriber %s changed concurrently", email)
}

// create вставляет строку для email, которого нет в r. Если r это БД, а email
// был принят fallback'ом во время простоя, строка переносится в БД с прежним
// id, и ответ такой же, как для существующей строки.
func (s *Service) create(ctx context.Context, r Repository, email, source string) (*models.SubscriptionReceipt, error) {
	now := s.now().UTC()
	sub := &models.Subscriber{
		ID:        s.newID(),
		Email:     email,
		Status:    models.SubscriberStatusActive,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	rec := &models.SubscriptionReceipt{Email: email, Timestamp: now, Outcome: models.SubscriptionCreated}

	held := s.held(ctx, email)
	if held != nil {
		sub.ID, sub.Source, sub.CreatedAt = held.ID, held.Source, held.CreatedAt
		if held.Status == models.SubscriberStatusActive {
			sub.UpdatedAt = held.UpdatedAt
			rec.Timestamp, rec.Outcome = held.CreatedAt, models.SubscriptionAlreadyActive
		} else {
			rec.Outcome = models.SubscriptionReactivated
		}
	}

	if err := r.CreateSubscriber(ctx, sub); err != nil {
		return nil, err
	}
	if rec.Outcome == models.SubscriptionReactivated {
		// fallback не должен расходиться с БД, если она снова упадёт
		if _, err := s.stores.Fallback().UpdateSubscriberStatus(ctx, email, models.SubscriberStatusActive, now); err != nil {
			s.log.Warn("sync held subscriber", zap.String("email", email), zap.Error(err))
		}
	}
	rec.ID = sub.ID
	return rec, nil
}

// held ищет строку, принятую fallback'ом, только когда fn работает с БД.
func (s *Service) held(ctx context.Context, email string) *models.Subscriber {
	if failover.SourceFrom(ctx) != failover.SourcePrimary {
		return nil
	}
	sub, err := s.stores.Fallback().GetSubscriberByEmail(ctx, email)
	if err != nil {
		return nil
	}
	return sub
}

// Unsubscribe помечает строку unsubscribed. Строки не удаляются.
func (s *Service) Unsubscribe(ctx context.Context, email string) (*models.Subscriber, error) {
	email, err := checkEmail(email, false)
	if err != nil {
		return nil, err
	}

	unsubscribe := func(ctx context.Context, r Repository) (*models.Subscriber, error) {
		return r.UpdateSubscriberStatus(ctx, email, models.SubscriberStatusUnsubscribed, s.now().UTC())
	}
	sub, src, err := failover.Write(ctx, s.stores, "unsubscribe", s.policy.BestEffortAck, unsubscribe)
	if errors.Is(err, apperr.ErrNotFound) && src == failover.SourcePrimary {
		// подписка могла попасть в fallback во время простоя БД
		sub, err = unsubscribe(ctx, s.stores.Fallback())
		src = failover.SourceFallback
	}
	if err != nil {
		return nil, errors.Wrap(err, "unsubscribe")
	}
	s.emit(ctx, sub.ID, email, sub.Status, src, sub.UpdatedAt)
	return sub, nil
}

// List отдаёт подписчиков, новых первыми, и подмешивает строки из fallback,
// чьих email нет в БД.
func (s *Service) List(ctx context.Context) ([]*models.Subscriber, error) {
	list, src, err := failover.Read(ctx, s.stores, "list subscribers", func(ctx context.Context, r Repository) ([]*models.Subscriber, error) {
		return r.ListSubscribers(ctx)
	})
	if err != nil {
		return nil, err
	}
	if src == failover.SourcePrimary {
		if held, err := s.stores.Fallback().ListSubscribers(ctx); err == nil && len(held) > 0 {
			list = mergeSubscribers(list, held)
		}
	}
	if list == nil {
		list = []*models.Subscriber{}
	}
	return list, nil
}

func (s *Service) emit(ctx context.Context, id, email, status string, src failover.Source, at time.Time) {
	s.events.Emit(ctx, messages.SubmissionEvent{
		Kind:       messages.KindNewsletterChanged,
		ID:         id,
		Email:      email,
		Status:     status,
		Store:      string(src),
		OccurredAt: at,
	})
}

func checkEmail(raw string, format bool) (string, error) {
	email := models.NormalizeEmail(raw)
	if email == "" {
		return "", apperr.NewValidation(MsgEmailRequired, "email")
	}
	if format && !models.ValidEmail(email) {
		return "", apperr.NewValidation(MsgInvalidEmail, "email")
	}
	return email, nil
}

func mergeSubscribers(primary, held []*models.Subscriber) []*models.Subscriber {
	seen := make(map[string]struct{}, len(primary))
	out := make([]*models.Subscriber, 0, len(primary)+len(held))
	for _, sub := range primary {
		seen[sub.Email] = struct{}{}
		out = append(out, sub)
	}
	for _, sub := range held {
		if _, ok := seen[sub.Email]; !ok {
			out = append(out, sub)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func logger(opts failover.Options) *zap.Logger {
	if opts.Logger == nil {
		return zap.NewNop()
	}
	return opts.Logger
}
