package batch

import (
	"fmt"

	"supplyhouse/internal/ledger"
	custom_error "supplyhouse/pkg/errors"

	"go.uber.org/zap"
)

type LedgerReader interface {
	GetLinesAfter(lastID int, limit int) ([]ledger.Line, error)
	GetLineByID(lineID int) (*ledger.Line, error)
}

type AggregateFolder interface {
	ApplyTransferLine(line ledger.Line) error
}

// SyncJob folds newly appended ledger lines into the per-item running
// quantities. Exactly once per line in normal operation; a line that fails is
// quarantined and retried on later cycles instead of stalling the scan.
//
// The job assumes a single active instance. Two concurrent runs would apply
// the same window twice; that is an operational constraint, not something the
// algorithm defends against.
type SyncJob struct {
	ledger      LedgerReader
	sums        AggregateFolder
	checkpoints CheckpointRepository
	quarantine  TransferErrorRepository
	batchSize   int
	logger      *zap.Logger
}

func NewSyncJob(
	ledgerRepo LedgerReader,
	sums AggregateFolder,
	checkpoints CheckpointRepository,
	quarantine TransferErrorRepository,
	batchSize int,
	logger *zap.Logger,
) *SyncJob {
	return &SyncJob{
		ledger:      ledgerRepo,
		sums:        sums,
		checkpoints: checkpoints,
		quarantine:  quarantine,
		batchSize:   batchSize,
		logger:      logger,
	}
}

// CycleResult carries the per-cycle counts emitted for operational monitoring.
type CycleResult struct {
	Retried   int
	Repaired  int
	Abandoned int
	Processed int
	Errors    int
}

// RunCycle executes one synchronization pass: the quarantine retry first, so
// a repaired item is consistent before new lines for it are folded, then the
// forward scan past the checkpoint.
func (j *SyncJob) RunCycle() (CycleResult, error) {
	var result CycleResult

	if err := j.retryQuarantined(&result); err != nil {
		return result, err
	}
	if err := j.scanForward(&result); err != nil {
		return result, err
	}

	j.logger.Info("synchronization cycle completed",
		zap.Int("processed", result.Processed),
		zap.Int("errors", result.Errors),
		zap.Int("retried", result.Retried),
		zap.Int("repaired", result.Repaired),
		zap.Int("abandoned", result.Abandoned),
	)

	return result, nil
}

func (j *SyncJob) retryQuarantined(result *CycleResult) error {
	pending, err := j.quarantine.GetPending(j.batchSize)
	if err != nil {
		return fmt.Errorf("failed to load quarantined lines: %w", err)
	}

	for _, quarantined := range pending {
		result.Retried++

		line, err := j.ledger.GetLineByID(quarantined.OriginalID)
		if err != nil {
			if qerr := j.quarantine.RecordFailure(quarantined.OriginalID, err.Error()); qerr != nil {
				return fmt.Errorf("failed to update quarantine for line %d: %w", quarantined.OriginalID, qerr)
			}
			continue
		}
		if line == nil {
			// The original record vanished; nothing left to fold.
			notRecoverable := &custom_error.NotRecoverableError{TransferLineID: quarantined.OriginalID}
			if qerr := j.quarantine.Abandon(quarantined.OriginalID, notRecoverable.Error()); qerr != nil {
				return fmt.Errorf("failed to abandon line %d: %w", quarantined.OriginalID, qerr)
			}
			result.Abandoned++
			j.logger.Warn("abandoned quarantined transfer line",
				zap.Int("transfer_line_id", quarantined.OriginalID),
			)
			continue
		}

		if err := j.sums.ApplyTransferLine(*line); err != nil {
			if qerr := j.quarantine.RecordFailure(quarantined.OriginalID, err.Error()); qerr != nil {
				return fmt.Errorf("failed to update quarantine for line %d: %w", quarantined.OriginalID, qerr)
			}
			continue
		}

		if err := j.quarantine.Resolve(quarantined.OriginalID); err != nil {
			return fmt.Errorf("failed to resolve quarantine for line %d: %w", quarantined.OriginalID, err)
		}
		result.Repaired++
	}

	return nil
}

func (j *SyncJob) scanForward(result *CycleResult) error {
	cursor, err := j.checkpoints.GetLastProcessedID()
	if err != nil {
		return fmt.Errorf("failed to read checkpoint: %w", err)
	}

	lines, err := j.ledger.GetLinesAfter(cursor, j.batchSize)
	if err != nil {
		return fmt.Errorf("failed to fetch ledger lines after %d: %w", cursor, err)
	}

	highWaterMark := cursor
	for _, line := range lines {
		if err := j.sums.ApplyTransferLine(line); err != nil {
			// The line must land in quarantine before the cursor may pass it;
			// if even that write fails, stop here so the line is re-read next
			// cycle instead of being lost.
			if qerr := j.quarantine.RecordFailure(line.ID, err.Error()); qerr != nil {
				if saveErr := j.saveCheckpoint(cursor, highWaterMark); saveErr != nil {
					return saveErr
				}
				return fmt.Errorf("failed to quarantine line %d: %w", line.ID, qerr)
			}
			result.Errors++
			j.logger.Error("failed to fold transfer line",
				zap.Int("transfer_line_id", line.ID),
				zap.Int("supply_item_id", line.SupplyItemID),
				zap.Error(err),
			)
		} else {
			result.Processed++
		}

		// Advances over failures too; the quarantine owns them now. A stuck
		// line must not starve every other item.
		highWaterMark = line.ID
	}

	return j.saveCheckpoint(cursor, highWaterMark)
}

func (j *SyncJob) saveCheckpoint(cursor, highWaterMark int) error {
	if highWaterMark <= cursor {
		return nil
	}
	if err := j.checkpoints.SaveLastProcessedID(highWaterMark); err != nil {
		return fmt.Errorf("failed to persist checkpoint %d: %w", highWaterMark, err)
	}
	return nil
}
