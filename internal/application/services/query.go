package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/domain"
)

type TransactionSummary struct {
	Transaction *domain.Transaction
	Plan        *domain.PaymentPlan
}

type StatusEntry struct {
	Contact       domain.Contact
	Window        *domain.AccessWindow
	Status        domain.WindowStatus
	DaysRemaining int
}

type StatusSummary struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiring_soon"`
	NoPayment    int `json:"no_payment"`
}

type StatusReport struct {
	Entries []StatusEntry
	Summary StatusSummary
}

type QueryService struct {
	transactions application.TransactionRepository
	plans        application.PlanRepository
	bots         application.BotRepository
	windows      application.AccessWindowRepository
	now          func() time.Time
}

func NewQueryService(
	transactions application.TransactionRepository,
	plans application.PlanRepository,
	bots application.BotRepository,
	windows application.AccessWindowRepository,
) *QueryService {
	return &QueryService{
		transactions: transactions,
		plans:        plans,
		bots:         bots,
		windows:      windows,
		now:          time.Now,
	}
}

func (s *QueryService) WithClock(now func() time.Time) *QueryService {
	s.now = now
	return s
}

func (s *QueryService) Transaction(ctx context.Context, token string) (*TransactionSummary, error) {
	if err := validateCommand(CreateIntentCommand{Token: token}); err != nil {
		return nil, err
	}

	tx, err := s.transactions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, application.NewNotFoundError("transaction", err)
		}
		return nil, application.NewInternalError(err)
	}

	plan, err := s.plans.FindPlan(ctx, tx.PaymentPlanID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return nil, application.NewNotFoundError("payment plan", err)
		}
		return nil, application.NewInternalError(err)
	}

	return &TransactionSummary{Transaction: tx, Plan: plan}, nil
}

// Status lists every contact of a bot with its window bucket. The summary covers
// all contacts regardless of the filter.
func (s *QueryService) Status(ctx context.Context, q StatusQuery) (*StatusReport, error) {
	if err := validateCommand(q); err != nil {
		return nil, err
	}
	var filter domain.WindowStatus
	if q.Status != "" {
		parsed, ok := domain.ParseWindowStatus(q.Status)
		if !ok {
			return nil, application.NewInvalidInputError(fmt.Errorf("unknown status filter %q", q.Status))
		}
		filter = parsed
	}

	if _, err := s.bots.FindBot(ctx, q.BotID); err != nil {
		if errors.Is(err, domain.ErrBotNotFound) {
			return nil, application.NewNotFoundError("bot", err)
		}
		return nil, application.NewInternalError(err)
	}

	members, err := s.windows.ListMembership(ctx, q.BotID)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	now := s.now()
	threshold := domain.ThresholdDays(domain.DefaultThresholdDays)
	report := &StatusReport{Entries: make([]StatusEntry, 0, len(members))}

	for _, m := range members {
		status := domain.ClassifyWindow(m.Window, now, threshold)

		report.Summary.Total++
		switch status {
		case domain.WindowActive:
			report.Summary.Active++
		case domain.WindowExpired:
			report.Summary.Expired++
		case domain.WindowExpiringSoon:
			report.Summary.ExpiringSoon++
		case domain.WindowNoPayment:
			report.Summary.NoPayment++
		}

		if filter != "" && status != filter {
			continue
		}

		entry := StatusEntry{Contact: m.Contact, Window: m.Window, Status: status}
		if m.Window != nil {
			entry.DaysRemaining = m.Window.DaysRemaining(now)
		}
		report.Entries = append(report.Entries, entry)
	}

	return report, nil
}
