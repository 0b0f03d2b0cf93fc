package testhelpers

import (
	"testing"
	"time"

	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	MonthlyCycle  = domain.PaymentCycle{ID: 1, Name: "monthly", Days: 30, IsActive: true}
	LifetimeCycle = domain.PaymentCycle{ID: 2, Name: "lifetime", Days: 0, IsActive: true}
)

const (
	TestBotID       int64 = 100
	TestGroupChatID int64 = -1001234567890
)

// Fixture seeds a bot, a monthly plan and a contact.
type Fixture struct {
	Bot     *domain.Bot
	Plan    *domain.PaymentPlan
	Contact *domain.Contact
}

func Seed(store *MemStore) *Fixture {
	f := &Fixture{
		Bot:  &domain.Bot{ID: TestBotID, Name: "vip", Token: "123:abc", GroupChatID: TestGroupChatID},
		Plan: &domain.PaymentPlan{ID: 10, Title: "Monthly VIP", PriceCents: 1500, Currency: "usd", CycleID: MonthlyCycle.ID, Cycle: MonthlyCycle},
		Contact: &domain.Contact{
			ID: 1000, BotID: TestBotID, TelegramUserID: 555001, Username: "alice", FirstName: "Alice",
		},
	}
	store.PutBot(f.Bot)
	store.PutPlan(f.Plan)
	store.PutContact(f.Contact)
	return f
}

// NewPendingTransaction creates a transaction for the fixture's contact and plan.
func NewPendingTransaction(t *testing.T, store *MemStore, f *Fixture) *domain.Transaction {
	t.Helper()
	money, err := domain.NewMoney(f.Plan.PriceCents, f.Plan.Currency)
	require.NoError(t, err)
	tx, err := domain.NewTransaction(uuid.NewString(), uuid.NewString(), f.Plan.ID, f.Contact.ID, f.Bot.ID, money)
	require.NoError(t, err)
	store.PutTransaction(tx)
	return tx
}

// NewAwaitingTransaction is a pending transaction already bound to intentID.
func NewAwaitingTransaction(t *testing.T, store *MemStore, f *Fixture, intentID string) *domain.Transaction {
	t.Helper()
	tx := NewPendingTransaction(t, store, f)
	require.NoError(t, tx.AttachIntent(intentID))
	store.PutTransaction(tx)
	return tx
}

// SeedWindows adds n contacts to the bot, each with a window ending at expiresAt.
func SeedWindows(store *MemStore, botID int64, n int, firstContactID int64, expiresAt time.Time) []*domain.Contact {
	contacts := make([]*domain.Contact, 0, n)
	for i := range n {
		c := &domain.Contact{
			ID:             firstContactID + int64(i),
			BotID:          botID,
			TelegramUserID: 700000 + firstContactID + int64(i),
			FirstName:      "Member",
		}
		exp := expiresAt
		store.PutContact(c)
		store.PutWindow(&domain.AccessWindow{
			ContactID:     c.ID,
			BotID:         botID,
			PaymentPlanID: 10,
			TransactionID: uuid.NewString(),
			ExpiresAt:     &exp,
		})
		contacts = append(contacts, c)
	}
	return contacts
}
