package checking

import (
	"errors"
	"testing"
	"time"

	custom_error "supplyhouse/pkg/errors"
	"supplyhouse/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCheckingRepository struct {
	mock.Mock
}

func (m *MockCheckingRepository) InsertChecking(req CreateCheckingRequest) (*models.Checking, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Checking), args.Error(1)
}

func (m *MockCheckingRepository) GetChecking(checkingID int) (*models.Checking, error) {
	args := m.Called(checkingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Checking), args.Error(1)
}

func (m *MockCheckingRepository) UpdateCheckingStatus(tx *goqu.TxDatabase, checkingID int, status models.CheckingStatus) error {
	args := m.Called(tx, checkingID, status)
	return args.Error(0)
}

type MockLedgerWriter struct {
	mock.Mock
}

func (m *MockLedgerWriter) InsertTransfer(tx *goqu.TxDatabase, transferType models.TransferType) (int, error) {
	args := m.Called(tx, transferType)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerWriter) InsertTransferLines(tx *goqu.TxDatabase, transferID int, lines []models.CheckingLine) ([]models.InventTransferLine, error) {
	args := m.Called(tx, transferID, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventTransferLine), args.Error(1)
}

type stubTxRunner struct {
	tx *goqu.TxDatabase
}

func (s *stubTxRunner) RunInTransaction(fn func(tx *goqu.TxDatabase) error) error {
	return fn(s.tx)
}

func draftChecking(status models.CheckingStatus) *models.Checking {
	return &models.Checking{
		ID:          1,
		ReceiptDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:      status,
		Lines: []models.CheckingLine{
			{ID: 11, CheckingID: 1, SupplyItemID: 100, ReceivedQty: decimal.NewFromInt(10), UnitOfMeasure: "KG"},
		},
	}
}

func TestConcludeChecking(t *testing.T) {
	mockRepo := new(MockCheckingRepository)
	mockLedger := new(MockLedgerWriter)
	tx := new(goqu.TxDatabase)

	service := NewService(&stubTxRunner{tx: tx}, mockRepo, mockLedger, nil)

	checking := draftChecking(models.CheckingStatusDraft)
	checkingLineID := 11
	createdLines := []models.InventTransferLine{
		{ID: 21, TransferID: 7, SupplyItemID: 100, TransferQty: decimal.NewFromInt(10), UnitOfMeasure: "KG", CheckingLineID: &checkingLineID},
	}

	mockRepo.On("GetChecking", 1).Return(checking, nil).Once()
	mockLedger.On("InsertTransfer", tx, models.TransferTypeInbound).Return(7, nil).Once()
	mockLedger.On("InsertTransferLines", tx, 7, checking.Lines).Return(createdLines, nil).Once()
	mockRepo.On("UpdateCheckingStatus", tx, 1, models.CheckingStatusReceived).Return(nil).Once()

	transfer, err := service.ConcludeChecking(1)

	assert.NoError(t, err)
	assert.Equal(t, 7, transfer.ID)
	assert.Equal(t, models.TransferTypeInbound, transfer.TransferType)
	assert.Len(t, transfer.Lines, 1)
	assert.True(t, transfer.Lines[0].TransferQty.Equal(decimal.NewFromInt(10)))

	mockRepo.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

func TestRevertChecking(t *testing.T) {
	mockRepo := new(MockCheckingRepository)
	mockLedger := new(MockLedgerWriter)
	tx := new(goqu.TxDatabase)

	service := NewService(&stubTxRunner{tx: tx}, mockRepo, mockLedger, nil)

	checking := draftChecking(models.CheckingStatusReceived)

	mockRepo.On("GetChecking", 1).Return(checking, nil).Once()
	mockLedger.On("InsertTransfer", tx, models.TransferTypeOutbound).Return(8, nil).Once()
	mockLedger.On("InsertTransferLines", tx, 8, checking.Lines).Return([]models.InventTransferLine{}, nil).Once()
	mockRepo.On("UpdateCheckingStatus", tx, 1, models.CheckingStatusCancelled).Return(nil).Once()

	transfer, err := service.RevertChecking(1)

	assert.NoError(t, err)
	assert.Equal(t, models.TransferTypeOutbound, transfer.TransferType)

	mockRepo.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

func TestTransitionRejectsWrongStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     models.CheckingStatus
		transition func(*CheckingService, int) (*models.InventTransfer, error)
	}{
		{"conclude on received", models.CheckingStatusReceived, (*CheckingService).ConcludeChecking},
		{"conclude on cancelled", models.CheckingStatusCancelled, (*CheckingService).ConcludeChecking},
		{"revert on draft", models.CheckingStatusDraft, (*CheckingService).RevertChecking},
		{"revert on cancelled", models.CheckingStatusCancelled, (*CheckingService).RevertChecking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCheckingRepository)
			mockLedger := new(MockLedgerWriter)
			service := NewService(&stubTxRunner{}, mockRepo, mockLedger, nil)

			mockRepo.On("GetChecking", 1).Return(draftChecking(tt.status), nil).Once()

			_, err := tt.transition(service, 1)

			assert.Error(t, err)
			assert.True(t, custom_error.IsInvalidState(err))
			mockLedger.AssertNotCalled(t, "InsertTransfer", mock.Anything, mock.Anything)
		})
	}
}

func TestTransitionRejectsEmptyDocument(t *testing.T) {
	mockRepo := new(MockCheckingRepository)
	mockLedger := new(MockLedgerWriter)
	service := NewService(&stubTxRunner{}, mockRepo, mockLedger, nil)

	empty := draftChecking(models.CheckingStatusDraft)
	empty.Lines = nil

	mockRepo.On("GetChecking", 1).Return(empty, nil).Once()

	_, err := service.ConcludeChecking(1)

	assert.Error(t, err)
	assert.True(t, custom_error.IsEmptyDocument(err))
	mockLedger.AssertNotCalled(t, "InsertTransfer", mock.Anything, mock.Anything)
}

func TestTransitionFailsWhenCheckingMissing(t *testing.T) {
	mockRepo := new(MockCheckingRepository)
	service := NewService(&stubTxRunner{}, mockRepo, new(MockLedgerWriter), nil)

	mockRepo.On("GetChecking", 42).Return(nil, nil).Once()

	_, err := service.ConcludeChecking(42)

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrCheckingNotFound)
}

func TestTransitionAbortsOnStorageFailure(t *testing.T) {
	mockRepo := new(MockCheckingRepository)
	mockLedger := new(MockLedgerWriter)
	tx := new(goqu.TxDatabase)
	service := NewService(&stubTxRunner{tx: tx}, mockRepo, mockLedger, nil)

	mockRepo.On("GetChecking", 1).Return(draftChecking(models.CheckingStatusDraft), nil).Once()
	mockLedger.On("InsertTransfer", tx, models.TransferTypeInbound).Return(0, errors.New("connection reset")).Once()

	_, err := service.ConcludeChecking(1)

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "UpdateCheckingStatus", mock.Anything, mock.Anything, mock.Anything)
}
