package testhelpers

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/domain"
)

type windowKey struct {
	contactID int64
	botID     int64
}

// MemStore is an in-memory stand-in for every repository plus the tx runner.
// WithTx serializes callers and rolls back on error.
type MemStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	transactions map[string]*domain.Transaction
	plans        map[int64]*domain.PaymentPlan
	contacts     map[int64]*domain.Contact
	bots         map[int64]*domain.Bot
	windows      map[windowKey]*domain.AccessWindow

	upsertErrs []error
	listErr    error
	Upserts    int
}

func NewMemStore() *MemStore {
	return &MemStore{
		transactions: map[string]*domain.Transaction{},
		plans:        map[int64]*domain.PaymentPlan{},
		contacts:     map[int64]*domain.Contact{},
		bots:         map[int64]*domain.Bot{},
		windows:      map[windowKey]*domain.AccessWindow{},
	}
}

// FailNextUpsert makes the next window upsert return err.
func (s *MemStore) FailNextUpsert(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertErrs = append(s.upsertErrs, err)
}

func (s *MemStore) FailListWindows(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listErr = err
}

func (s *MemStore) PutTransaction(tx *domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[tx.Token] = cloneTx(tx)
}

func (s *MemStore) PutPlan(p *domain.PaymentPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.plans[p.ID] = &cp
}

func (s *MemStore) PutContact(c *domain.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.contacts[c.ID] = &cp
}

func (s *MemStore) PutBot(b *domain.Bot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.bots[b.ID] = &cp
}

func (s *MemStore) PutWindow(w *domain.AccessWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[windowKey{w.ContactID, w.BotID}] = cloneWindow(w)
}

// Transaction returns a copy of the stored row, or nil.
func (s *MemStore) Transaction(token string) *domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.transactions[token]
	if !ok {
		return nil
	}
	return cloneTx(tx)
}

func (s *MemStore) Window(contactID, botID int64) *domain.AccessWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[windowKey{contactID, botID}]
	if !ok {
		return nil
	}
	return cloneWindow(w)
}

func (s *MemStore) WithTx(ctx context.Context, fn func(ctx context.Context, repos application.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	txSnap := maps.Clone(s.transactions)
	winSnap := maps.Clone(s.windows)
	s.mu.Unlock()

	err := fn(ctx, application.Repositories{Transactions: s, Plans: s, Windows: s})
	if err != nil {
		s.mu.Lock()
		s.transactions = txSnap
		s.windows = winSnap
		s.mu.Unlock()
	}
	return err
}

func (s *MemStore) FindByToken(_ context.Context, token string) (*domain.Transaction, error) {
	if tx := s.Transaction(token); tx != nil {
		return tx, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (s *MemStore) FindByTokenForUpdate(ctx context.Context, token string) (*domain.Transaction, error) {
	return s.FindByToken(ctx, token)
}

func (s *MemStore) AttachIntent(_ context.Context, tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.transactions[tx.Token]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	if stored.GatewayIntentID != nil && !stored.MatchesIntent(*tx.GatewayIntentID) {
		return domain.ErrIntentAlreadyAttached
	}
	for token, other := range s.transactions {
		if token != tx.Token && other.GatewayIntentID != nil && other.MatchesIntent(*tx.GatewayIntentID) {
			return domain.ErrIntentAlreadyAttached
		}
	}
	s.transactions[tx.Token] = cloneTx(tx)
	return nil
}

func (s *MemStore) Update(_ context.Context, tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[tx.Token]; !ok {
		return domain.ErrTransactionNotFound
	}
	s.transactions[tx.Token] = cloneTx(tx)
	return nil
}

func (s *MemStore) FindAwaitingReconciliation(_ context.Context, olderThan time.Duration, limit int) ([]*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-olderThan)
	var out []*domain.Transaction
	for _, tx := range s.transactions {
		if tx.GatewayIntentID == nil || tx.ReconcileAbandoned || !tx.UpdatedAt.Before(cutoff) {
			continue
		}
		if tx.NextReconcileAt != nil && tx.NextReconcileAt.After(now) {
			continue
		}
		if tx.Status == domain.StatusRequiresConfirmation || tx.Status == domain.StatusFailed {
			out = append(out, cloneTx(tx))
		}
	}
	sort.Slice(out, func(i, j int) bool { return reconcileDue(out[i]).Before(reconcileDue(out[j])) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStore) ScheduleReconciliation(_ context.Context, token string, attempts int, next *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.transactions[token]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	tx := cloneTx(stored)
	tx.ReconcileAttempts = attempts
	tx.NextReconcileAt = clonePtr(next)
	tx.ReconcileAbandoned = next == nil
	s.transactions[token] = tx
	return nil
}

func reconcileDue(tx *domain.Transaction) time.Time {
	if tx.NextReconcileAt != nil {
		return *tx.NextReconcileAt
	}
	return tx.UpdatedAt
}

func (s *MemStore) FindPlan(_ context.Context, planID int64) (*domain.PaymentPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[planID]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemStore) FindContact(_ context.Context, contactID int64) (*domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[contactID]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemStore) FindBot(_ context.Context, botID int64) (*domain.Bot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bots[botID]
	if !ok {
		return nil, domain.ErrBotNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *MemStore) ListBots(_ context.Context) ([]*domain.Bot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Bot, 0, len(s.bots))
	for _, b := range s.bots {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Find(_ context.Context, contactID, botID int64) (*domain.AccessWindow, error) {
	if w := s.Window(contactID, botID); w != nil {
		return w, nil
	}
	return nil, domain.ErrAccessWindowNotFound
}

func (s *MemStore) FindForUpdate(ctx context.Context, contactID, botID int64) (*domain.AccessWindow, error) {
	return s.Find(ctx, contactID, botID)
}

func (s *MemStore) Upsert(_ context.Context, w *domain.AccessWindow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.upsertErrs) > 0 {
		err := s.upsertErrs[0]
		s.upsertErrs = s.upsertErrs[1:]
		return err
	}
	s.Upserts++
	s.windows[windowKey{w.ContactID, w.BotID}] = cloneWindow(w)
	return nil
}

func (s *MemStore) ListTimeBoxed(_ context.Context, botID int64) ([]*domain.AccessWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*domain.AccessWindow
	for k, w := range s.windows {
		if k.botID == botID && w.ExpiresAt != nil {
			out = append(out, cloneWindow(w))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContactID < out[j].ContactID })
	return out, nil
}

func (s *MemStore) MarkExpiredNotified(_ context.Context, w *domain.AccessWindow, at time.Time) (bool, error) {
	return s.mark(w, func(stored *domain.AccessWindow) { stored.LastNotifiedExpiredAt = &at })
}

func (s *MemStore) MarkExpiringNotified(_ context.Context, w *domain.AccessWindow, at time.Time) (bool, error) {
	return s.mark(w, func(stored *domain.AccessWindow) { stored.LastNotifiedExpiringAt = &at })
}

func (s *MemStore) mark(w *domain.AccessWindow, set func(*domain.AccessWindow)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.windows[windowKey{w.ContactID, w.BotID}]
	if !ok || !sameTime(stored.ExpiresAt, w.ExpiresAt) {
		return false, nil
	}
	set(stored)
	return true, nil
}

func (s *MemStore) ListMembership(_ context.Context, botID int64) ([]application.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []application.Membership
	for _, c := range s.contacts {
		if c.BotID != botID {
			continue
		}
		m := application.Membership{Contact: *c}
		if w, ok := s.windows[windowKey{c.ID, botID}]; ok {
			m.Window = cloneWindow(w)
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Contact.ID < out[j].Contact.ID })
	return out, nil
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func cloneTx(tx *domain.Transaction) *domain.Transaction {
	cp := *tx
	cp.GatewayIntentID = clonePtr(tx.GatewayIntentID)
	cp.FailureReason = clonePtr(tx.FailureReason)
	cp.ConfirmedAt = clonePtr(tx.ConfirmedAt)
	cp.NextReconcileAt = clonePtr(tx.NextReconcileAt)
	return &cp
}

func cloneWindow(w *domain.AccessWindow) *domain.AccessWindow {
	cp := *w
	cp.ExpiresAt = clonePtr(w.ExpiresAt)
	cp.LastNotifiedExpiringAt = clonePtr(w.LastNotifiedExpiringAt)
	cp.LastNotifiedExpiredAt = clonePtr(w.LastNotifiedExpiredAt)
	return &cp
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
