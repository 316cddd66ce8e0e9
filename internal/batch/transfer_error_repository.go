package batch

import (
	"fmt"

	"supplyhouse/internal/repository"
	"supplyhouse/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type TransferErrorRepository interface {
	GetPending(limit int) ([]models.TransferError, error)
	RecordFailure(originalID int, message string) error
	Resolve(originalID int) error
	Abandon(originalID int, message string) error
	GetAll() ([]models.TransferError, error)
}

type transferErrorRepository struct {
	repository *repository.Repository
}

func NewTransferErrorRepository(r *repository.Repository) TransferErrorRepository {
	return &transferErrorRepository{repository: r}
}

// GetPending returns quarantined lines still eligible for retry, oldest first.
func (r *transferErrorRepository) GetPending(limit int) ([]models.TransferError, error) {
	var pending []models.TransferError

	query := r.repository.GoquDBWrapper.
		Select("id", "original_id", "retried", "success", "error_message", "created_at").
		From("transfer_errors").
		Where(goqu.Ex{"retried": false}).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Limit(uint(limit))

	if err := query.Executor().ScanStructs(&pending); err != nil {
		return nil, fmt.Errorf("failed to fetch pending transfer errors: %w", err)
	}

	return pending, nil
}

// RecordFailure quarantines a line, or refreshes the message of an existing
// quarantine row, leaving it eligible for the next retry pass.
func (r *transferErrorRepository) RecordFailure(originalID int, message string) error {
	query := r.repository.GoquDBWrapper.Insert("transfer_errors").
		Rows(goqu.Record{
			"original_id":   originalID,
			"retried":       false,
			"success":       false,
			"error_message": message,
		}).
		OnConflict(
			goqu.DoUpdate(
				"original_id",
				goqu.Record{
					"retried":       false,
					"success":       false,
					"error_message": message,
				},
			),
		)

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to quarantine transfer line %d: %w", originalID, err)
	}

	return nil
}

func (r *transferErrorRepository) Resolve(originalID int) error {
	query := r.repository.GoquDBWrapper.
		Update("transfer_errors").
		Set(goqu.Record{
			"retried":       true,
			"success":       true,
			"error_message": nil,
		}).
		Where(goqu.Ex{"original_id": originalID})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to resolve transfer error for line %d: %w", originalID, err)
	}

	return nil
}

// Abandon marks a quarantined line as permanently unresolvable. It is never
// picked up by the retry pass again.
func (r *transferErrorRepository) Abandon(originalID int, message string) error {
	query := r.repository.GoquDBWrapper.
		Update("transfer_errors").
		Set(goqu.Record{
			"retried":       true,
			"success":       false,
			"error_message": message,
		}).
		Where(goqu.Ex{"original_id": originalID})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to abandon transfer error for line %d: %w", originalID, err)
	}

	return nil
}

func (r *transferErrorRepository) GetAll() ([]models.TransferError, error) {
	var all []models.TransferError

	query := r.repository.GoquDBWrapper.
		Select("id", "original_id", "retried", "success", "error_message", "created_at").
		From("transfer_errors").
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&all); err != nil {
		return nil, fmt.Errorf("failed to fetch transfer errors: %w", err)
	}

	return all, nil
}
