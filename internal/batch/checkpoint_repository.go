package batch

import (
	"fmt"

	"supplyhouse/internal/repository"
	"supplyhouse/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// The checkpoint is a single row holding the id of the last ledger line the
// forward scan attempted. It only ever moves forward.
type CheckpointRepository interface {
	GetLastProcessedID() (int, error)
	SaveLastProcessedID(lineID int) error
}

type checkpointRepository struct {
	repository *repository.Repository
}

func NewCheckpointRepository(r *repository.Repository) CheckpointRepository {
	return &checkpointRepository{repository: r}
}

// GetLastProcessedID reads the cursor, creating the singleton row at 0 on the
// first ever run.
func (r *checkpointRepository) GetLastProcessedID() (int, error) {
	var checkpoint models.BatchCheckpoint

	query := r.repository.GoquDBWrapper.
		Select("id", "last_processed_transfer_id").
		From("batch_checkpoints").
		Order(goqu.I("id").Asc()).
		Limit(1)

	found, err := query.Executor().ScanStruct(&checkpoint)
	if err != nil {
		return 0, fmt.Errorf("failed to read batch checkpoint: %w", err)
	}
	if !found {
		insert := r.repository.GoquDBWrapper.Insert("batch_checkpoints").
			Rows(goqu.Record{"last_processed_transfer_id": 0})
		if _, err := insert.Executor().Exec(); err != nil {
			return 0, fmt.Errorf("failed to initialize batch checkpoint: %w", err)
		}
		return 0, nil
	}

	return checkpoint.LastProcessedTransferID, nil
}

func (r *checkpointRepository) SaveLastProcessedID(lineID int) error {
	query := r.repository.GoquDBWrapper.
		Update("batch_checkpoints").
		Set(goqu.Record{"last_processed_transfer_id": lineID}).
		Where(goqu.I("last_processed_transfer_id").Lt(lineID))

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to advance batch checkpoint to %d: %w", lineID, err)
	}

	return nil
}
