package ledger

import (
	"fmt"

	"supplyhouse/internal/repository"
	"supplyhouse/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
)

// Line is a ledger entry joined with its parent transfer, flat the way the
// batch job consumes it. The transfer type carries the sign.
type Line struct {
	ID             int                 `db:"line_id"`
	TransferID     int                 `db:"transfer_id"`
	TransferType   models.TransferType `db:"transfer_type"`
	SupplyItemID   int                 `db:"supply_item_id"`
	TransferQty    decimal.Decimal     `db:"transfer_qty"`
	UnitOfMeasure  string              `db:"unit_of_measure"`
	CheckingLineID *int                `db:"checking_line_id"`
}

type LedgerRepository interface {
	InsertTransfer(tx *goqu.TxDatabase, transferType models.TransferType) (int, error)
	InsertTransferLines(tx *goqu.TxDatabase, transferID int, lines []models.CheckingLine) ([]models.InventTransferLine, error)
	GetLinesAfter(lastID int, limit int) ([]Line, error)
	GetLineByID(lineID int) (*Line, error)
}

type ledgerRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) LedgerRepository {
	return &ledgerRepository{repository: r}
}

func (r *ledgerRepository) InsertTransfer(tx *goqu.TxDatabase, transferType models.TransferType) (int, error) {
	query := tx.Insert("invent_transfers").
		Rows(goqu.Record{
			"transfer_type": string(transferType),
		}).
		Returning("id")

	var transferID int
	if _, err := query.Executor().ScanVal(&transferID); err != nil {
		return 0, fmt.Errorf("failed to insert transfer record: %w", err)
	}

	return transferID, nil
}

// InsertTransferLines writes one ledger line per checking line, carrying the
// back-reference to the line that produced it. Lines are immutable once written.
func (r *ledgerRepository) InsertTransferLines(tx *goqu.TxDatabase, transferID int, lines []models.CheckingLine) ([]models.InventTransferLine, error) {
	inserted := make([]models.InventTransferLine, 0, len(lines))

	for _, line := range lines {
		checkingLineID := line.ID
		query := tx.Insert("invent_transfer_lines").
			Rows(goqu.Record{
				"transfer_id":      transferID,
				"supply_item_id":   line.SupplyItemID,
				"transfer_qty":     line.ReceivedQty,
				"unit_of_measure":  line.UnitOfMeasure,
				"checking_line_id": checkingLineID,
			}).
			Returning("id")

		var lineID int
		if _, err := query.Executor().ScanVal(&lineID); err != nil {
			return nil, fmt.Errorf("failed to insert transfer line for item %d: %w", line.SupplyItemID, err)
		}

		inserted = append(inserted, models.InventTransferLine{
			ID:             lineID,
			TransferID:     transferID,
			SupplyItemID:   line.SupplyItemID,
			TransferQty:    line.ReceivedQty,
			UnitOfMeasure:  line.UnitOfMeasure,
			CheckingLineID: &checkingLineID,
		})
	}

	return inserted, nil
}

func (r *ledgerRepository) GetLinesAfter(lastID int, limit int) ([]Line, error) {
	var lines []Line

	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("l.id").As("line_id"),
			goqu.I("l.transfer_id").As("transfer_id"),
			goqu.I("t.transfer_type").As("transfer_type"),
			goqu.I("l.supply_item_id").As("supply_item_id"),
			goqu.I("l.transfer_qty").As("transfer_qty"),
			goqu.I("l.unit_of_measure").As("unit_of_measure"),
			goqu.I("l.checking_line_id").As("checking_line_id"),
		).
		From(goqu.T("invent_transfer_lines").As("l")).
		InnerJoin(
			goqu.T("invent_transfers").As("t"),
			goqu.On(goqu.Ex{"l.transfer_id": goqu.I("t.id")}),
		).
		Where(goqu.I("l.id").Gt(lastID)).
		Order(goqu.I("l.id").Asc()).
		Limit(uint(limit))

	if err := query.Executor().ScanStructs(&lines); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return lines, nil
}

// GetLineByID resolves a single ledger line. Returns nil without error when
// the line does not exist, so the caller can tell "gone" from "unreachable".
func (r *ledgerRepository) GetLineByID(lineID int) (*Line, error) {
	var line Line

	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("l.id").As("line_id"),
			goqu.I("l.transfer_id").As("transfer_id"),
			goqu.I("t.transfer_type").As("transfer_type"),
			goqu.I("l.supply_item_id").As("supply_item_id"),
			goqu.I("l.transfer_qty").As("transfer_qty"),
			goqu.I("l.unit_of_measure").As("unit_of_measure"),
			goqu.I("l.checking_line_id").As("checking_line_id"),
		).
		From(goqu.T("invent_transfer_lines").As("l")).
		InnerJoin(
			goqu.T("invent_transfers").As("t"),
			goqu.On(goqu.Ex{"l.transfer_id": goqu.I("t.id")}),
		).
		Where(goqu.Ex{"l.id": lineID})

	found, err := query.Executor().ScanStruct(&line)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &line, nil
}
