package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/application/services"
	"github.com/DanielPopoola/groupgate/internal/application/services/testhelpers"
	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/DanielPopoola/groupgate/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var (
	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	fixedNow      = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	day           = 24 * time.Hour
)

type ConfirmServiceTestSuite struct {
	suite.Suite
	store   *testhelpers.MemStore
	fixture *testhelpers.Fixture
	gateway *mocks.MockGatewayClient
	service *services.ConfirmationService
}

func TestConfirmServiceSuite(t *testing.T) {
	suite.Run(t, new(ConfirmServiceTestSuite))
}

func (s *ConfirmServiceTestSuite) SetupTest() {
	s.store = testhelpers.NewMemStore()
	s.fixture = testhelpers.Seed(s.store)
	s.gateway = mocks.NewMockGatewayClient(s.T())
	s.service = services.NewConfirmationService(
		s.store, s.store, s.store, s.gateway, application.NopMetrics{}, discardLogger,
	).WithClock(func() time.Time { return fixedNow })
}

func (s *ConfirmServiceTestSuite) expectStatus(intentID, status string) *mocks.MockGatewayClient_GetIntentStatus_Call {
	return s.gateway.EXPECT().
		GetIntentStatus(mock.Anything, intentID).
		Return(&application.IntentStatusResponse{IntentID: intentID, Status: status}, nil)
}

// ============================================================================
// HAPPY PATH TESTS
// ============================================================================

func (s *ConfirmServiceTestSuite) Test_Confirm_Success_CreatesWindow() {
	tx := testhelpers.NewAwaitingTransaction(s.T(), s.store, s.fixture, "pi_ok")
	s.expectStatus("pi_ok", "succeeded").Once()

	res, err := s.service.Confirm(context.Background(), services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_ok"})

	s.Require().NoError(err)
	s.False(res.AlreadyConfirmed)
	s.Equal(domain.StatusSucceeded, res.Transaction.Status)
	s.Equal(fixedNow, *res.Transaction.ConfirmedAt)

	window := s.store.Window(s.fixture.Contact.ID, s.fixture.Bot.ID)
	s.Require().NotNil(window)
	s.Equal(fixedNow.Add(30*day), *window.ExpiresAt)
	s.Equal(tx.ID, window.TransactionID)
}

func (s *ConfirmServiceTestSuite) Test_Confirm_Twice_ExtendsOnce() {
	tx := testhelpers.NewAwaitingTransaction(s.T(), s.store, s.fixture, "pi_twice")
	s.expectStatus("pi_twice", "succeeded").Once()
	cmd := services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_twice"}

	first, err := s.service.Confirm(context.Background(), cmd)
	s.Require().NoError(err)

	second, err := s.service.Confirm(context.Background(), cmd)
	s.Require().NoError(err)

	s.True(second.AlreadyConfirmed)
	s.Equal(first.Transaction, second.Transaction)
	s.Equal(*first.Window.ExpiresAt, *second.Window.ExpiresAt)
	s.Equal(1, s.store.Upserts)
}

func (s *ConfirmServiceTestSuite) Test_Confirm_Concurrent_ExtendsOnce() {
	tx := testhelpers.NewAwaitingTransaction(s.T(), s.store, s.fixture, "pi_race")
	s.expectStatus("pi_race", "succeeded").Maybe()
	cmd := services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_race"}

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.Confirm(context.Background(), cmd)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}
	s.Equal(1, s.store.Upserts)
	s.Equal(fixedNow.Add(30*day), *s.store.Window(s.fixture.Contact.ID, s.fixture.Bot.ID).ExpiresAt)
}

func (s *ConfirmServiceTestSuite) Test_Confirm_Renewal_KeepsRemainingTime() {
	current := fixedNow.Add(5 * day)
	s.store.PutWindow(&domain.AccessWindow{
		ContactID: s.fixture.Contact.ID, BotID: s.fixture.Bot.ID, PaymentPlanID: s.fixture.Plan.ID,
		TransactionID: "previous", ExpiresAt: &current, LastNotifiedExpiringAt: &fixedNow,
	})
	tx := testhelpers.NewAwaitingTransaction(s.T(), s.store, s.fixture, "pi_renew")
	s.expectStatus("pi_renew", "succeeded").Once()

	res, err := s.service.Confirm(context.Background(), services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_renew"})

	s.Require().NoError(err)
	s.Equal(current.Add(30*day), *res.Window.ExpiresAt)
	s.Nil(res.Window.LastNotifiedExpiringAt)
}

// ============================================================================
// ERROR PATH TESTS
// ============================================================================

func (s *ConfirmServiceTestSuite) Test_Confirm_UnknownToken() {
	_, err := s.service.Confirm(context.Background(), services.ConfirmCommand{
		Token: "5b0e3f1c-4c55-4b8a-9a47-6f7f1d3c0a11", GatewayIntentID: "pi_x",
	})

	s.True(application.HasCode(err, application.ErrCodeNotFound))
}

func (s *ConfirmServiceTestSuite) Test_Confirm_MalformedToken_NoGatewayCall() {
	_, err := s.service.Confirm(context.Background(), services.ConfirmCommand{Token: "not-a-token", GatewayIntentID: "pi_x"})

	s.True(application.HasCode(err, application.ErrCodeInvalidInput))
}

func (s *ConfirmServiceTestSuite) Test_Confirm_IntentMismatch_NoMutation() {
	tx := testhelpers.NewAwaitingTransaction(s.T(), s.store, s.fixture, "pi_mine")
	before := s.store.Transaction(tx.Token)

	_, err := s.service.Confirm(context.Background(), services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_other"})

	s.True(application.HasCode(err, application.ErrCodeConflict))
	s.Equal(before, s.store.Transaction(tx.Token))
	s.Nil(s.store.Window(s.fixture.Contact.ID, s.fixture.Bot.ID))
}

func (s *ConfirmServiceTestSuite) Test_Confirm_NoIntentYet_IsConflict() {
	tx := testhelpers.NewPendingTransaction(s.T(), s.store, s.fixture)

	_, err := s.service.Confirm(context.Background(), services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_any"})

	s.True(application.HasCode(err, application.ErrCodeConflict))
}

func (s *ConfirmServiceTestSuite) Test_Confirm_RequiresAction() {
	tx := testhelpers.NewAwaitingTransaction(s.T(), s.store, s.fixture, "pi_3ds")
	s.expectStatus("pi_3ds", "requires_action").Once()

	_, err := s.service.Confirm(context.Background(), services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_3ds"})

	s.True(application.HasCode(err, application.ErrCodePendingAuthentication))
	s.Equal(domain.StatusRequiresConfirmation, s.store.Transaction(tx.Token).Status)
}

func (s *ConfirmServiceTestSuite) Test_Confirm_Declined_RecordsFailure() {
	tx := testhelpers.NewAwaitingTransaction(s.T(), s.store, s.fixture, "pi_decl")
	s.gateway.EXPECT().
		GetIntentStatus(mock.Anything, "pi_decl").
		Return(&application.IntentStatusResponse{IntentID: "pi_decl", Status: "requires_payment_method", FailureReason: "Your card was declined."}, nil).
		Once()

	_, err := s.service.Confirm(context.Background(), services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_decl"})

	svcErr, ok := application.IsServiceError(err)
	s.Require().True(ok)
	s.Equal(application.ErrCodeGatewayRejected, svcErr.Code)
	s.Equal("Your card was declined.", svcErr.Message)
	s.ErrorIs(err, domain.ErrPaymentDeclined)

	stored := s.store.Transaction(tx.Token)
	s.Equal(domain.StatusFailed, stored.Status)
	s.Equal("Your card was declined.", *stored.FailureReason)
}

func (s *ConfirmServiceTestSuite) Test_Confirm_Canceled() {
	tx := testhelpers.NewAwaitingTransaction(s.T(), s.store, s.fixture, "pi_cxl")
	s.expectStatus("pi_cxl", "canceled").Once()

	_, err := s.service.Confirm(context.Background(), services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_cxl"})
	s.True(application.HasCode(err, application.ErrCodeGatewayRejected))
	s.Equal(domain.StatusCanceled, s.store.Transaction(tx.Token).Status)

	_, err = s.service.Confirm(context.Background(), services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_cxl"})
	s.True(application.HasCode(err, application.ErrCodeInvalidState))
}

func (s *ConfirmServiceTestSuite) Test_Confirm_Processing_NoMutation() {
	tx := testhelpers.NewAwaitingTransaction(s.T(), s.store, s.fixture, "pi_proc")
	s.expectStatus("pi_proc", "processing").Once()

	_, err := s.service.Confirm(context.Background(), services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_proc"})

	s.True(application.HasCode(err, application.ErrCodeGatewayRejected))
	s.Equal(domain.StatusRequiresConfirmation, s.store.Transaction(tx.Token).Status)
}

func (s *ConfirmServiceTestSuite) Test_Confirm_UnknownGatewayStatus() {
	tx := testhelpers.NewAwaitingTransaction(s.T(), s.store, s.fixture, "pi_new")
	s.expectStatus("pi_new", "something_new").Once()

	_, err := s.service.Confirm(context.Background(), services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_new"})

	s.ErrorIs(err, domain.ErrUnknownGatewayStatus)
	s.Equal(domain.StatusRequiresConfirmation, s.store.Transaction(tx.Token).Status)
}

func (s *ConfirmServiceTestSuite) Test_Confirm_GatewayUnavailable_IsTransient() {
	tx := testhelpers.NewAwaitingTransaction(s.T(), s.store, s.fixture, "pi_down")
	s.gateway.EXPECT().
		GetIntentStatus(mock.Anything, "pi_down").
		Return(nil, &application.GatewayError{Code: "api_error", StatusCode: 503}).
		Once()

	_, err := s.service.Confirm(context.Background(), services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_down"})

	s.True(application.HasCode(err, application.ErrCodeTransientFailure))
}

// ============================================================================
// RECONCILIATION TESTS
// ============================================================================

func (s *ConfirmServiceTestSuite) Test_Confirm_PersistFailure_RequiresReconciliation_ThenRetryCompletes() {
	tx := testhelpers.NewAwaitingTransaction(s.T(), s.store, s.fixture, "pi_recon")
	s.expectStatus("pi_recon", "succeeded").Twice()
	s.store.FailNextUpsert(errors.New("connection reset by peer"))
	cmd := services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_recon"}

	_, err := s.service.Confirm(context.Background(), cmd)

	s.True(application.HasCode(err, application.ErrCodeReconciliationRequired))
	s.Equal(domain.StatusRequiresConfirmation, s.store.Transaction(tx.Token).Status)
	s.Nil(s.store.Window(s.fixture.Contact.ID, s.fixture.Bot.ID))

	res, err := s.service.Confirm(context.Background(), cmd)

	s.Require().NoError(err)
	s.Equal(domain.StatusSucceeded, res.Transaction.Status)
	s.Equal(fixedNow.Add(30*day), *s.store.Window(s.fixture.Contact.ID, s.fixture.Bot.ID).ExpiresAt)
}

func (s *ConfirmServiceTestSuite) Test_Confirm_PersistFailure_RearmsAbandonedReconciliation() {
	tx := testhelpers.NewAwaitingTransaction(s.T(), s.store, s.fixture, "pi_retry_card")
	s.Require().NoError(tx.Fail("Your card was declined."))
	s.store.PutTransaction(tx)
	s.Require().NoError(s.store.ScheduleReconciliation(context.Background(), tx.Token, 3, nil))

	// The member retried with another card on the same intent.
	s.expectStatus("pi_retry_card", "succeeded").Once()
	s.store.FailNextUpsert(errors.New("connection reset by peer"))

	_, err := s.service.Confirm(context.Background(), services.ConfirmCommand{Token: tx.Token, GatewayIntentID: "pi_retry_card"})

	s.True(application.HasCode(err, application.ErrCodeReconciliationRequired))
	stored := s.store.Transaction(tx.Token)
	s.Equal(domain.StatusFailed, stored.Status)
	s.False(stored.ReconcileAbandoned)
	s.Equal(0, stored.ReconcileAttempts)
	s.Require().NotNil(stored.NextReconcileAt)
	s.Equal(fixedNow, *stored.NextReconcileAt)
}
