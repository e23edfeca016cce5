package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/kaos-order/internal/core/domain"
	"github.com/rl1809/kaos-order/internal/core/handoff"
	"github.com/rl1809/kaos-order/internal/port"
)

var (
	ErrSessionNotFound  = port.ErrSessionNotFound
	ErrItemNotFound     = errors.New("item not found")
	ErrAlreadySubmitted = errors.New("order already submitted")
)

const lockStripes = 64

// Metrics receives service level events.
type Metrics interface {
	SessionStarted()
	SubmissionAccepted(items, quantity int)
	SubmissionRejected(reason string)
}

type nopMetrics struct{}

func (nopMetrics) SessionStarted()             {}
func (nopMetrics) SubmissionAccepted(int, int) {}
func (nopMetrics) SubmissionRejected(string)   {}

// CustomerUpdate carries the customer fields of an edit. Nil fields are left
// untouched; Phone is normalized before it is stored.
type CustomerUpdate struct {
	Name  *string `json:"customer_name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

type Option func(*OrderService)

func WithIDFunc(f domain.IDFunc) Option {
	return func(s *OrderService) { s.newID = f }
}

func WithClock(now func() time.Time) Option {
	return func(s *OrderService) { s.now = now }
}

func WithMetrics(m Metrics) Option {
	return func(s *OrderService) { s.metrics = m }
}

// WithNoticeDelay overrides how long after the handoff the customer is told
// it happened.
func WithNoticeDelay(d time.Duration) Option {
	return func(s *OrderService) { s.noticeDelay = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *OrderService) { s.logger = l }
}

// OrderService runs the order form of each session. Operations on one session
// are serialized; each loads the form, applies the edit and saves it back.
type OrderService struct {
	sessions    port.SessionRepository
	composer    *handoff.Composer
	newID       domain.IDFunc
	now         func() time.Time
	noticeDelay time.Duration
	metrics     Metrics
	logger      *zap.Logger
	locks       [lockStripes]sync.Mutex
}

func NewOrderService(sessions port.SessionRepository, composer *handoff.Composer, opts ...Option) *OrderService {
	s := &OrderService{
		sessions:    sessions,
		composer:    composer,
		newID:       func() string { return uuid.NewString() },
		now:         time.Now,
		noticeDelay: handoff.NoticeDelay,
		metrics:     nopMetrics{},
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *OrderService) lock(sessionID string) func() {
	mu := &s.locks[xxhash.Sum64String(sessionID)%lockStripes]
	mu.Lock()
	return mu.Unlock
}

// StartSession creates a fresh form holding one blank item.
func (s *OrderService) StartSession(ctx context.Context) (string, *domain.OrderForm, error) {
	sessionID := uuid.NewString()
	form := domain.NewOrderForm(s.newID, s.now())

	if err := s.sessions.Save(ctx, sessionID, form); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}

	s.metrics.SessionStarted()
	s.logger.Debug("session started", zap.String("session_id", sessionID))
	return sessionID, form, nil
}

func (s *OrderService) Form(ctx context.Context, sessionID string) (*domain.OrderForm, error) {
	return s.sessions.Load(ctx, sessionID)
}

func (s *OrderService) AddItem(ctx context.Context, sessionID string) (domain.LineItem, error) {
	var item domain.LineItem
	err := s.mutate(ctx, sessionID, func(f *domain.OrderForm) error {
		item = f.AddItem(s.newID)
		return nil
	})
	return item, err
}

// RemoveItem removes an item unless it is the last one. The boolean reports
// whether anything was removed; a refused removal is not an error.
func (s *OrderService) RemoveItem(ctx context.Context, sessionID, itemID string) (bool, error) {
	var removed bool
	err := s.mutate(ctx, sessionID, func(f *domain.OrderForm) error {
		removed = f.RemoveItem(itemID)
		return nil
	})
	return removed, err
}

// UpdateItem applies a partial edit to one item. Unknown item ids leave the
// form untouched and report ErrItemNotFound.
func (s *OrderService) UpdateItem(ctx context.Context, sessionID, itemID string, u domain.ItemUpdate) (domain.LineItem, error) {
	var item domain.LineItem
	err := s.mutate(ctx, sessionID, func(f *domain.OrderForm) error {
		var ok bool
		if item, ok = f.UpdateItem(itemID, u); !ok {
			return ErrItemNotFound
		}
		return nil
	})
	return item, err
}

func (s *OrderService) UpdateCustomer(ctx context.Context, sessionID string, u CustomerUpdate) (*domain.OrderForm, error) {
	var form *domain.OrderForm
	err := s.mutate(ctx, sessionID, func(f *domain.OrderForm) error {
		if u.Name != nil {
			f.SetCustomerName(*u.Name)
		}
		if u.Phone != nil {
			f.SetPhone(*u.Phone)
		}
		if u.Notes != nil {
			f.SetNotes(*u.Notes)
		}
		form = f
		return nil
	})
	return form, err
}

func (s *OrderService) Summary(ctx context.Context, sessionID string) (domain.Summary, bool, error) {
	form, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return domain.Summary{}, false, err
	}
	summary, ok := domain.BuildSummary(form)
	return summary, ok, nil
}

// Submit validates the form and builds the vendor handoff. On success the
// session is discarded; on a validation failure it is left as it was.
func (s *OrderService) Submit(ctx context.Context, sessionID string) (handoff.Handoff, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	form, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return handoff.Handoff{}, err
	}

	if err := form.Validate(); err != nil {
		s.metrics.SubmissionRejected(rejectReason(err))
		s.logger.Info("submission rejected", zap.String("session_id", sessionID), zap.Error(err))
		return handoff.Handoff{}, err
	}

	ok, err := s.sessions.Claim(ctx, sessionID)
	if err != nil {
		return handoff.Handoff{}, fmt.Errorf("claim session: %w", err)
	}
	if !ok {
		return handoff.Handoff{}, ErrAlreadySubmitted
	}

	h := handoff.New(s.composer.Compose(form))
	h.NoticeDelay = s.noticeDelay

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("discard submitted session", zap.String("session_id", sessionID), zap.Error(err))
	}

	valid := form.ValidItems()
	s.metrics.SubmissionAccepted(len(valid), domain.TotalQuantity(valid))
	s.logger.Info("order submitted",
		zap.String("session_id", sessionID),
		zap.Int("items", len(valid)),
		zap.Int("quantity", domain.TotalQuantity(valid)),
	)
	return h, nil
}

func (s *OrderService) mutate(ctx context.Context, sessionID string, fn func(*domain.OrderForm) error) error {
	unlock := s.lock(sessionID)
	defer unlock()

	form, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := fn(form); err != nil {
		return err
	}
	form.UpdatedAt = s.now()

	if err := s.sessions.Save(ctx, sessionID, form); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingContactInfo):
		return "missing_contact_info"
	case errors.Is(err, domain.ErrNoValidProducts):
		return "no_valid_products"
	default:
		return "other"
	}
}
