package inventory

import (
	"fmt"

	"supplyhouse/internal/ledger"
	"supplyhouse/internal/repository"
	"supplyhouse/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
)

type InventSumRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *InventSumRepository {
	return &InventSumRepository{repository: r}
}

// ApplyTransferLine folds one ledger line into the running quantity of its
// supply item. The aggregate update and its history row commit together, so a
// crash mid-fold leaves either the old or the fully-new state.
func (r *InventSumRepository) ApplyTransferLine(line ledger.Line) error {
	return repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		return applyDelta(tx, line)
	})
}

func applyDelta(tx *goqu.TxDatabase, line ledger.Line) error {
	delta := line.TransferType.SignedQty(line.TransferQty)

	var sum models.InventSum
	found, err := tx.
		Select("id", "supply_item_id", "unit_of_measure", "quantity").
		From("invent_sums").
		Where(goqu.Ex{"supply_item_id": line.SupplyItemID}).
		Executor().
		ScanStruct(&sum)
	if err != nil {
		return fmt.Errorf("failed to read aggregate for item %d: %w", line.SupplyItemID, err)
	}

	previousQty := decimal.Zero
	if found {
		previousQty = sum.Quantity
	}
	newQty := previousQty.Add(delta)

	if !found {
		insert := tx.Insert("invent_sums").
			Rows(goqu.Record{
				"supply_item_id":  line.SupplyItemID,
				"unit_of_measure": line.UnitOfMeasure,
				"quantity":        newQty,
				"updated_at":      goqu.L("NOW()"),
			})
		if _, err := insert.Executor().Exec(); err != nil {
			return fmt.Errorf("failed to insert aggregate for item %d: %w", line.SupplyItemID, err)
		}
	} else {
		update := tx.Update("invent_sums").
			Set(goqu.Record{
				"quantity":   newQty,
				"updated_at": goqu.L("NOW()"),
			}).
			Where(goqu.Ex{"supply_item_id": line.SupplyItemID})
		if _, err := update.Executor().Exec(); err != nil {
			return fmt.Errorf("failed to update aggregate for item %d: %w", line.SupplyItemID, err)
		}
	}

	history := tx.Insert("invent_sum_histories").
		Rows(goqu.Record{
			"supply_item_id":   line.SupplyItemID,
			"unit_of_measure":  line.UnitOfMeasure,
			"previous_qty":     previousQty,
			"new_qty":          newQty,
			"changed_qty":      delta,
			"transfer_line_id": line.ID,
		})
	if _, err := history.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert aggregate history for line %d: %w", line.ID, err)
	}

	return nil
}

func (r *InventSumRepository) GetSums() ([]models.InventSum, error) {
	var sums []models.InventSum

	query := r.repository.GoquDBWrapper.
		Select("id", "supply_item_id", "unit_of_measure", "quantity", "updated_at").
		From("invent_sums").
		Order(goqu.I("supply_item_id").Asc())

	if err := query.Executor().ScanStructs(&sums); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return sums, nil
}

func (r *InventSumRepository) GetSumByItem(supplyItemID int) (*models.InventSum, error) {
	var sum models.InventSum

	query := r.repository.GoquDBWrapper.
		Select("id", "supply_item_id", "unit_of_measure", "quantity", "updated_at").
		From("invent_sums").
		Where(goqu.Ex{"supply_item_id": supplyItemID})

	found, err := query.Executor().ScanStruct(&sum)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &sum, nil
}

func (r *InventSumRepository) GetHistoryByItem(supplyItemID int) ([]models.InventSumHistory, error) {
	var history []models.InventSumHistory

	query := r.repository.GoquDBWrapper.
		Select("id", "supply_item_id", "unit_of_measure", "previous_qty", "new_qty", "changed_qty", "transfer_line_id", "created_at").
		From("invent_sum_histories").
		Where(goqu.Ex{"supply_item_id": supplyItemID}).
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&history); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return history, nil
}
