package batch

import (
	"errors"
	"sort"
	"testing"

	"supplyhouse/internal/ledger"
	"supplyhouse/pkg/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeLedger struct {
	lines []ledger.Line
}

func (f *fakeLedger) GetLinesAfter(lastID int, limit int) ([]ledger.Line, error) {
	var result []ledger.Line
	for _, line := range f.lines {
		if line.ID > lastID {
			result = append(result, line)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeLedger) GetLineByID(lineID int) (*ledger.Line, error) {
	for _, line := range f.lines {
		if line.ID == lineID {
			found := line
			return &found, nil
		}
	}
	return nil, nil
}

type fakeFolder struct {
	quantities map[int]decimal.Decimal
	failing    map[int]error
	applied    []int
}

func newFakeFolder() *fakeFolder {
	return &fakeFolder{
		quantities: make(map[int]decimal.Decimal),
		failing:    make(map[int]error),
	}
}

func (f *fakeFolder) ApplyTransferLine(line ledger.Line) error {
	if err, ok := f.failing[line.ID]; ok {
		return err
	}
	current := f.quantities[line.SupplyItemID]
	f.quantities[line.SupplyItemID] = current.Add(line.TransferType.SignedQty(line.TransferQty))
	f.applied = append(f.applied, line.ID)
	return nil
}

type fakeCheckpoint struct {
	value int
	saves int
}

func (f *fakeCheckpoint) GetLastProcessedID() (int, error) {
	return f.value, nil
}

func (f *fakeCheckpoint) SaveLastProcessedID(lineID int) error {
	if lineID > f.value {
		f.value = lineID
	}
	f.saves++
	return nil
}

type fakeQuarantine struct {
	rows  map[int]*models.TransferError
	order []int
}

func newFakeQuarantine() *fakeQuarantine {
	return &fakeQuarantine{rows: make(map[int]*models.TransferError)}
}

func (f *fakeQuarantine) GetPending(limit int) ([]models.TransferError, error) {
	var pending []models.TransferError
	for _, id := range f.order {
		row := f.rows[id]
		if !row.Retried {
			pending = append(pending, *row)
		}
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (f *fakeQuarantine) RecordFailure(originalID int, message string) error {
	if row, ok := f.rows[originalID]; ok {
		row.Retried = false
		row.Success = false
		row.ErrorMessage = &message
		return nil
	}
	f.rows[originalID] = &models.TransferError{
		ID:           len(f.rows) + 1,
		OriginalID:   originalID,
		ErrorMessage: &message,
	}
	f.order = append(f.order, originalID)
	return nil
}

func (f *fakeQuarantine) Resolve(originalID int) error {
	row := f.rows[originalID]
	row.Retried = true
	row.Success = true
	row.ErrorMessage = nil
	return nil
}

func (f *fakeQuarantine) Abandon(originalID int, message string) error {
	row := f.rows[originalID]
	row.Retried = true
	row.Success = false
	row.ErrorMessage = &message
	return nil
}

func (f *fakeQuarantine) GetAll() ([]models.TransferError, error) {
	var all []models.TransferError
	for _, id := range f.order {
		all = append(all, *f.rows[id])
	}
	return all, nil
}

func inbound(id, itemID int, qty int64) ledger.Line {
	return ledger.Line{
		ID:            id,
		TransferID:    id,
		TransferType:  models.TransferTypeInbound,
		SupplyItemID:  itemID,
		TransferQty:   decimal.NewFromInt(qty),
		UnitOfMeasure: "KG",
	}
}

func outbound(id, itemID int, qty int64) ledger.Line {
	line := inbound(id, itemID, qty)
	line.TransferType = models.TransferTypeOutbound
	return line
}

func newTestJob(ledgerRepo *fakeLedger, folder *fakeFolder, checkpoint *fakeCheckpoint, quarantine *fakeQuarantine) *SyncJob {
	return NewSyncJob(ledgerRepo, folder, checkpoint, quarantine, 200, zap.NewNop())
}

func TestForwardScanFoldsLinesAndAdvancesCheckpoint(t *testing.T) {
	ledgerRepo := &fakeLedger{lines: []ledger.Line{
		inbound(1, 100, 10),
		inbound(2, 100, 5),
		inbound(3, 200, 7),
	}}
	folder := newFakeFolder()
	checkpoint := &fakeCheckpoint{}
	quarantine := newFakeQuarantine()

	result, err := newTestJob(ledgerRepo, folder, checkpoint, quarantine).RunCycle()

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 0, result.Errors)
	assert.Equal(t, 3, checkpoint.value)
	assert.True(t, folder.quantities[100].Equal(decimal.NewFromInt(15)))
	assert.True(t, folder.quantities[200].Equal(decimal.NewFromInt(7)))
}

func TestForwardScanIsIdempotentWithNoNewLines(t *testing.T) {
	ledgerRepo := &fakeLedger{lines: []ledger.Line{inbound(1, 100, 10)}}
	folder := newFakeFolder()
	checkpoint := &fakeCheckpoint{}
	quarantine := newFakeQuarantine()
	job := newTestJob(ledgerRepo, folder, checkpoint, quarantine)

	_, err := job.RunCycle()
	assert.NoError(t, err)

	result, err := job.RunCycle()

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 1, checkpoint.value)
	assert.True(t, folder.quantities[100].Equal(decimal.NewFromInt(10)))
}

func TestFailedLineIsQuarantinedAndScanContinues(t *testing.T) {
	ledgerRepo := &fakeLedger{lines: []ledger.Line{
		inbound(1, 100, 10),
		inbound(2, 100, 1),
		inbound(3, 200, 2),
		inbound(4, 200, 3),
		inbound(5, 300, 4),
		inbound(6, 300, 5),
	}}
	folder := newFakeFolder()
	folder.failing[1] = errors.New("deadlock detected")
	checkpoint := &fakeCheckpoint{}
	quarantine := newFakeQuarantine()

	result, err := newTestJob(ledgerRepo, folder, checkpoint, quarantine).RunCycle()

	assert.NoError(t, err)
	assert.Equal(t, 5, result.Processed)
	assert.Equal(t, 1, result.Errors)
	// The cursor moves past the failure; the quarantine owns line 1 now.
	assert.Equal(t, 6, checkpoint.value)
	assert.True(t, folder.quantities[100].Equal(decimal.NewFromInt(1)))

	row := quarantine.rows[1]
	assert.NotNil(t, row)
	assert.False(t, row.Retried)
	assert.Equal(t, "deadlock detected", *row.ErrorMessage)
}

func TestRetryPassRepairsQuarantinedLineBeforeForwardScan(t *testing.T) {
	ledgerRepo := &fakeLedger{lines: []ledger.Line{
		inbound(1, 100, 10),
		inbound(2, 100, 5),
	}}
	folder := newFakeFolder()
	folder.failing[1] = errors.New("deadlock detected")
	checkpoint := &fakeCheckpoint{}
	quarantine := newFakeQuarantine()
	job := newTestJob(ledgerRepo, folder, checkpoint, quarantine)

	_, err := job.RunCycle()
	assert.NoError(t, err)
	assert.True(t, folder.quantities[100].Equal(decimal.NewFromInt(5)))

	// Cause resolved; the next cycle repairs line 1 before anything else.
	delete(folder.failing, 1)
	folder.applied = nil

	result, err := job.RunCycle()

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Retried)
	assert.Equal(t, 1, result.Repaired)
	assert.True(t, folder.quantities[100].Equal(decimal.NewFromInt(15)))

	row := quarantine.rows[1]
	assert.True(t, row.Retried)
	assert.True(t, row.Success)
	assert.Nil(t, row.ErrorMessage)
}

func TestRetryFailureKeepsLinePending(t *testing.T) {
	ledgerRepo := &fakeLedger{lines: []ledger.Line{inbound(1, 100, 10)}}
	folder := newFakeFolder()
	folder.failing[1] = errors.New("deadlock detected")
	checkpoint := &fakeCheckpoint{}
	quarantine := newFakeQuarantine()
	job := newTestJob(ledgerRepo, folder, checkpoint, quarantine)

	_, err := job.RunCycle()
	assert.NoError(t, err)

	folder.failing[1] = errors.New("still broken")

	result, err := job.RunCycle()

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Retried)
	assert.Equal(t, 0, result.Repaired)

	row := quarantine.rows[1]
	assert.False(t, row.Retried)
	assert.Equal(t, "still broken", *row.ErrorMessage)
}

func TestVanishedLineIsAbandoned(t *testing.T) {
	ledgerRepo := &fakeLedger{}
	folder := newFakeFolder()
	checkpoint := &fakeCheckpoint{}
	quarantine := newFakeQuarantine()
	assert.NoError(t, quarantine.RecordFailure(99, "deadlock detected"))

	job := newTestJob(ledgerRepo, folder, checkpoint, quarantine)

	result, err := job.RunCycle()

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Abandoned)

	row := quarantine.rows[99]
	assert.True(t, row.Retried)
	assert.False(t, row.Success)

	// Abandoned lines are never picked up again.
	result, err = job.RunCycle()
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Retried)
}

func TestBatchSizeLimitsForwardScanWindow(t *testing.T) {
	ledgerRepo := &fakeLedger{lines: []ledger.Line{
		inbound(1, 100, 1),
		inbound(2, 100, 1),
		inbound(3, 100, 1),
	}}
	folder := newFakeFolder()
	checkpoint := &fakeCheckpoint{}
	quarantine := newFakeQuarantine()
	job := NewSyncJob(ledgerRepo, folder, checkpoint, quarantine, 2, zap.NewNop())

	_, err := job.RunCycle()
	assert.NoError(t, err)
	assert.Equal(t, 2, checkpoint.value)

	_, err = job.RunCycle()
	assert.NoError(t, err)
	assert.Equal(t, 3, checkpoint.value)
	assert.True(t, folder.quantities[100].Equal(decimal.NewFromInt(3)))
}

// Receiving then cancelling a document nets out to zero, the reversal being a
// compensating outbound entry rather than an edit of the ledger.
func TestReceiveThenRevertNetsToZero(t *testing.T) {
	ledgerRepo := &fakeLedger{lines: []ledger.Line{inbound(1, 100, 10)}}
	folder := newFakeFolder()
	checkpoint := &fakeCheckpoint{}
	quarantine := newFakeQuarantine()
	job := newTestJob(ledgerRepo, folder, checkpoint, quarantine)

	_, err := job.RunCycle()
	assert.NoError(t, err)
	assert.True(t, folder.quantities[100].Equal(decimal.NewFromInt(10)))

	ledgerRepo.lines = append(ledgerRepo.lines, outbound(2, 100, 10))

	_, err = job.RunCycle()
	assert.NoError(t, err)
	assert.True(t, folder.quantities[100].Equal(decimal.Zero))
	assert.Equal(t, 2, checkpoint.value)
}
