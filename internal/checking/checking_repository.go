package checking

import (
	"fmt"

	"supplyhouse/internal/repository"
	"supplyhouse/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type CheckingRepository interface {
	InsertChecking(req CreateCheckingRequest) (*models.Checking, error)
	GetChecking(checkingID int) (*models.Checking, error)
	UpdateCheckingStatus(tx *goqu.TxDatabase, checkingID int, status models.CheckingStatus) error
}

type checkingRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) CheckingRepository {
	return &checkingRepository{repository: r}
}

func (r *checkingRepository) InsertChecking(req CreateCheckingRequest) (*models.Checking, error) {
	checking := models.Checking{
		ReceiptDate: req.ReceiptDate,
		Status:      models.CheckingStatusDraft,
	}

	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		query := tx.Insert("checkings").
			Rows(goqu.Record{
				"receipt_date": req.ReceiptDate,
				"status":       string(models.CheckingStatusDraft),
			}).
			Returning("id")

		if _, err := query.Executor().ScanVal(&checking.ID); err != nil {
			return fmt.Errorf("failed to insert checking record: %w", err)
		}

		for _, line := range req.Lines {
			lineQuery := tx.Insert("checking_lines").
				Rows(goqu.Record{
					"checking_id":     checking.ID,
					"supply_item_id":  line.SupplyItemID,
					"received_qty":    line.ReceivedQty,
					"unit_of_measure": line.UnitOfMeasure,
				}).
				Returning("id")

			var lineID int
			if _, err := lineQuery.Executor().ScanVal(&lineID); err != nil {
				return fmt.Errorf("failed to insert checking line for item %d: %w", line.SupplyItemID, err)
			}

			checking.Lines = append(checking.Lines, models.CheckingLine{
				ID:            lineID,
				CheckingID:    checking.ID,
				SupplyItemID:  line.SupplyItemID,
				ReceivedQty:   line.ReceivedQty,
				UnitOfMeasure: line.UnitOfMeasure,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &checking, nil
}

// GetChecking loads a document with its lines. Returns nil when it does not
// exist.
func (r *checkingRepository) GetChecking(checkingID int) (*models.Checking, error) {
	var checking models.Checking

	query := r.repository.GoquDBWrapper.
		Select("id", "receipt_date", "status").
		From("checkings").
		Where(goqu.Ex{"id": checkingID})

	found, err := query.Executor().ScanStruct(&checking)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, nil
	}

	linesQuery := r.repository.GoquDBWrapper.
		Select("id", "checking_id", "supply_item_id", "received_qty", "unit_of_measure").
		From("checking_lines").
		Where(goqu.Ex{"checking_id": checkingID}).
		Order(goqu.I("id").Asc())

	if err := linesQuery.Executor().ScanStructs(&checking.Lines); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return &checking, nil
}

func (r *checkingRepository) UpdateCheckingStatus(tx *goqu.TxDatabase, checkingID int, status models.CheckingStatus) error {
	query := tx.Update("checkings").
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.Ex{"id": checkingID})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to update checking %d status: %w", checkingID, err)
	}

	return nil
}
