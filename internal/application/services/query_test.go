package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/application/services"
	"github.com/DanielPopoola/groupgate/internal/application/services/testhelpers"
	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryService() (*services.QueryService, *testhelpers.MemStore, *testhelpers.Fixture) {
	store := testhelpers.NewMemStore()
	fixture := testhelpers.Seed(store)
	svc := services.NewQueryService(store, store, store, store).WithClock(func() time.Time { return fixedNow })
	return svc, store, fixture
}

func TestQueryTransaction(t *testing.T) {
	svc, store, fixture := newQueryService()
	tx := testhelpers.NewPendingTransaction(t, store, fixture)

	res, err := svc.Transaction(context.Background(), tx.Token)

	require.NoError(t, err)
	assert.Equal(t, tx.ID, res.Transaction.ID)
	assert.Equal(t, "Monthly VIP", res.Plan.Title)
	assert.Equal(t, 30, res.Plan.Cycle.Days)
}

func TestQueryTransaction_MalformedToken(t *testing.T) {
	svc, _, _ := newQueryService()

	_, err := svc.Transaction(context.Background(), "abc")

	assert.True(t, application.HasCode(err, application.ErrCodeInvalidInput))
}

func TestQueryStatus_SummaryIgnoresFilter(t *testing.T) {
	svc, store, _ := newQueryService()
	botID := testhelpers.TestBotID
	testhelpers.SeedWindows(store, botID, 2, 2000, fixedNow.Add(-day))
	testhelpers.SeedWindows(store, botID, 3, 3000, fixedNow.Add(3*day))
	testhelpers.SeedWindows(store, botID, 1, 4000, fixedNow.Add(40*day))
	store.PutContact(&domain.Contact{ID: 5000, BotID: botID, TelegramUserID: 9})
	store.PutWindow(&domain.AccessWindow{ContactID: 5000, BotID: botID, TransactionID: "life"})

	report, err := svc.Status(context.Background(), services.StatusQuery{BotID: botID, Status: "expiring_soon"})

	require.NoError(t, err)
	assert.Len(t, report.Entries, 3)
	for _, e := range report.Entries {
		assert.Equal(t, domain.WindowExpiringSoon, e.Status)
		assert.Equal(t, 3, e.DaysRemaining)
	}

	// Seed adds one contact without a window.
	assert.Equal(t, services.StatusSummary{Total: 8, Active: 2, Expired: 2, ExpiringSoon: 3, NoPayment: 1}, report.Summary)
}

func TestQueryStatus_RejectsUnknownFilter(t *testing.T) {
	svc, _, _ := newQueryService()

	_, err := svc.Status(context.Background(), services.StatusQuery{BotID: testhelpers.TestBotID, Status: "banned"})

	assert.True(t, application.HasCode(err, application.ErrCodeInvalidInput))
	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, `unknown status filter "banned"`, svcErr.Message)
}

func TestQueryStatus_UnknownBot(t *testing.T) {
	svc, _, _ := newQueryService()

	_, err := svc.Status(context.Background(), services.StatusQuery{BotID: 42})

	assert.True(t, application.HasCode(err, application.ErrCodeNotFound))
}
