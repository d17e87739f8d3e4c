package services_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/models"
	"github.com/Jayden7895/afyabora-app/repository"
	"github.com/Jayden7895/afyabora-app/services"
)

// memTxRepo is an in-memory transaction store with the same
// compare-and-set Transition semantics as the GORM implementation. It
// counts transitions so exactly-once completion is observable.
type memTxRepo struct {
	mu          sync.Mutex
	txs         map[string]*models.Transaction
	transitions int
}

func newMemTxRepo() *memTxRepo {
	return &memTxRepo{txs: make(map[string]*models.Transaction)}
}

func (m *memTxRepo) Create(_ context.Context, tx *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *tx
	m.txs[tx.CheckoutRequestID] = &cp
	return nil
}

func (m *memTxRepo) FindByID(_ context.Context, id string) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.txs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *tx
	return &cp, nil
}

func (m *memTxRepo) Transition(_ context.Context, id string, from, to models.TransactionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.txs[id]
	if !ok || tx.Status != from {
		return repository.ErrConflict
	}
	tx.Status = to
	m.transitions++
	return nil
}

func (m *memTxRepo) transitionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transitions
}

func newGateway(repo repository.TransactionRepository, delay time.Duration) *services.MpesaGateway {
	logger, _ := zap.NewDevelopment()
	return services.NewMpesaGateway(repo, delay, logger)
}

func TestInitiateSTKPush_CreatesPendingTransaction(t *testing.T) {
	repo := newMemTxRepo()
	gw := newGateway(repo, time.Hour)

	id, err := gw.InitiateSTKPush(context.Background(), "254712345678", 550)

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "ws_CO_"))

	tx, err := repo.FindByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, models.TransactionPending, tx.Status)
	assert.Equal(t, "254712345678", tx.PhoneNumber)
	assert.Equal(t, 550, tx.Amount)
}

func TestGateway_CompletesWithoutAnyPolling(t *testing.T) {
	repo := newMemTxRepo()
	gw := newGateway(repo, 20*time.Millisecond)

	id, err := gw.InitiateSTKPush(context.Background(), "254712345678", 550)
	assert.NoError(t, err)

	// Nobody queries in the meantime; the completion timer fires on its own.
	time.Sleep(100 * time.Millisecond)

	status, err := gw.QueryStatus(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, models.TransactionCompleted, status)
	assert.Equal(t, 1, repo.transitionCount())
}

func TestGateway_CompletionIsExactlyOnce(t *testing.T) {
	repo := newMemTxRepo()
	gw := newGateway(repo, 10*time.Millisecond)

	id, err := gw.InitiateSTKPush(context.Background(), "254712345678", 550)
	assert.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	// Repeated reads after completion are idempotent.
	for i := 0; i < 5; i++ {
		status, err := gw.QueryStatus(context.Background(), id)
		assert.NoError(t, err)
		assert.Equal(t, models.TransactionCompleted, status)
	}
	assert.Equal(t, 1, repo.transitionCount())
}

func TestGateway_CompletionSkipsAlreadyTerminal(t *testing.T) {
	repo := newMemTxRepo()
	gw := newGateway(repo, 15*time.Millisecond)

	id, err := gw.InitiateSTKPush(context.Background(), "254712345678", 550)
	assert.NoError(t, err)

	// The transaction fails before the simulated customer confirms. The
	// timer must not resurrect it.
	err = repo.Transition(context.Background(), id, models.TransactionPending, models.TransactionFailed)
	assert.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	status, err := gw.QueryStatus(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, models.TransactionFailed, status)
}

func TestQueryStatus_UnknownID(t *testing.T) {
	gw := newGateway(newMemTxRepo(), time.Hour)

	_, err := gw.QueryStatus(context.Background(), "ws_CO_does_not_exist")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInitiateSTKPush_UniqueRequestIDs(t *testing.T) {
	repo := newMemTxRepo()
	gw := newGateway(repo, time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id, err := gw.InitiateSTKPush(context.Background(), "254712345678", 100)
		assert.NoError(t, err)
		assert.False(t, seen[id], "duplicate checkout request id %s", id)
		seen[id] = true
	}
}
