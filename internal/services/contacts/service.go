package contacts

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
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
)

const (
	MsgRequired     = "Name, email, and message are required"
	MsgInvalidEmail = "Please provide a valid email address"
)

type Repository interface {
	CreateContact(ctx context.Context, m *models.ContactMessage) error
	ListContacts(ctx context.Context) ([]*models.ContactMessage, error)
	GetContact(ctx context.Context, id string) (*models.ContactMessage, error)
}

type Policy struct {
	// При ошибке записи в БД заявка уходит в fallback, а вызывающий
	// получает успех.
	BestEffortAck bool
}

type Service struct {
	stores *failover.Runner[Repository]
	policy Policy
	events *events.Emitter

	now   func() time.Time
	newID func() string
}

func New(primary, fallback Repository, policy Policy, emitter *events.Emitter, opts failover.Options) *Service {
	return &Service{
		stores: failover.NewRunner(primary, primary != nil, fallback, opts),
		policy: policy,
		events: emitter,
		now:    time.Now,
		newID:  func() string { return ulid.Make().String() },
	}
}

func (s *Service) Submit(ctx context.Context, in models.ContactInput) (*models.ContactReceipt, error) {
	m, err := validate(in)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	m.ID = s.newID()
	m.Status = models.ContactStatusNew
	m.CreatedAt = now
	m.UpdatedAt = now

	_, src, err := failover.Write(ctx, s.stores, "create contact", s.policy.BestEffortAck, func(ctx context.Context, r Repository) (struct{}, error) {
		return struct{}{}, r.CreateContact(ctx, m)
	})
	if err != nil {
		return nil, errors.Wrap(err, "submit contact")
	}

	s.events.Emit(ctx, messages.SubmissionEvent{
		Kind:       messages.KindContactReceived,
		ID:         m.ID,
		Email:      m.Email,
		Status:     m.Status,
		Store:      string(src),
		OccurredAt: now,
	})
	return &models.ContactReceipt{ID: m.ID, Timestamp: now}, nil
}

// List отдаёт все обращения, новые первыми. Обращения, принятые fallback'ом
// во время простоя, подмешиваются к ответу БД.
func (s *Service) List(ctx context.Context) ([]*models.ContactMessage, error) {
	list, src, err := failover.Read(ctx, s.stores, "list contacts", func(ctx context.Context, r Repository) ([]*models.ContactMessage, error) {
		return r.ListContacts(ctx)
	})
	if err != nil {
		return nil, err
	}
	if src == failover.SourcePrimary {
		if held, err := s.stores.Fallback().ListContacts(ctx); err == nil && len(held) > 0 {
			list = mergeContacts(list, held)
		}
	}
	if list == nil {
		list = []*models.ContactMessage{}
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.ContactMessage, error) {
	m, src, err := failover.Read(ctx, s.stores, "get contact", func(ctx context.Context, r Repository) (*models.ContactMessage, error) {
		return r.GetContact(ctx, id)
	})
	if errors.Is(err, apperr.ErrNotFound) && src == failover.SourcePrimary {
		return s.stores.Fallback().GetContact(ctx, id)
	}
	return m, err
}

func validate(in models.ContactInput) (*models.ContactMessage, error) {
	name := strings.TrimSpace(in.Name)
	email := models.NormalizeEmail(in.Email)
	message := strings.TrimSpace(in.Message)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return nil, apperr.NewValidation(MsgRequired, missing...)
	}
	if !models.ValidEmail(email) {
		return nil, apperr.NewValidation(MsgInvalidEmail, "email")
	}

	var phone *string
	if in.Phone != nil {
		if p := strings.TrimSpace(*in.Phone); p != "" {
			phone = &p
		}
	}
	return &models.ContactMessage{Name: name, Email: email, Phone: phone, Message: message}, nil
}

func mergeContacts(primary, held []*models.ContactMessage) []*models.ContactMessage {
	seen := make(map[string]struct{}, len(primary))
	out := make([]*models.ContactMessage, 0, len(primary)+len(held))
	for _, m := range primary {
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	for _, m := range held {
		if _, ok := seen[m.ID]; !ok {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
