package checking

import (
	"errors"
	"fmt"

	"supplyhouse/internal/repository"
	"supplyhouse/pkg/auditlog"
	custom_error "supplyhouse/pkg/errors"
	"supplyhouse/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var ErrCheckingNotFound = errors.New("checking not found")

// LedgerWriter is the slice of the ledger repository the state machine needs:
// transactional creation of a transfer and its lines.
type LedgerWriter interface {
	InsertTransfer(tx *goqu.TxDatabase, transferType models.TransferType) (int, error)
	InsertTransferLines(tx *goqu.TxDatabase, transferID int, lines []models.CheckingLine) ([]models.InventTransferLine, error)
}

type CheckingService struct {
	tx       repository.TxRunner
	cr       CheckingRepository
	lr       LedgerWriter
	auditLog *auditlog.Auditlog
}

func NewService(tx repository.TxRunner, cr CheckingRepository, lr LedgerWriter, auditLog *auditlog.Auditlog) *CheckingService {
	return &CheckingService{
		tx:       tx,
		cr:       cr,
		lr:       lr,
		auditLog: auditLog,
	}
}

func (s *CheckingService) CreateChecking(req CreateCheckingRequest) (*models.Checking, error) {
	return s.cr.InsertChecking(req)
}

func (s *CheckingService) GetChecking(checkingID int) (*models.Checking, error) {
	return s.cr.GetChecking(checkingID)
}

// ConcludeChecking moves a draft document to received, emitting one inbound
// transfer with a line per checking line.
func (s *CheckingService) ConcludeChecking(checkingID int) (*models.InventTransfer, error) {
	return s.transition(checkingID, models.CheckingStatusDraft, models.CheckingStatusReceived, models.TransferTypeInbound)
}

// RevertChecking cancels a received document. The ledger is never edited in
// place; the reversal is a compensating outbound transfer mirroring the same
// quantities.
func (s *CheckingService) RevertChecking(checkingID int) (*models.InventTransfer, error) {
	return s.transition(checkingID, models.CheckingStatusReceived, models.CheckingStatusCancelled, models.TransferTypeOutbound)
}

// transition performs the three writes of a status change as one unit of
// work: the transfer, its lines, and the status update commit together or not
// at all.
func (s *CheckingService) transition(
	checkingID int,
	required models.CheckingStatus,
	next models.CheckingStatus,
	transferType models.TransferType,
) (*models.InventTransfer, error) {
	checking, err := s.cr.GetChecking(checkingID)
	if err != nil {
		return nil, err
	}
	if checking == nil {
		return nil, fmt.Errorf("checking %d: %w", checkingID, ErrCheckingNotFound)
	}
	if checking.Status != required {
		return nil, &custom_error.InvalidStateError{
			CheckingID: checkingID,
			Current:    string(checking.Status),
			Required:   string(required),
		}
	}
	if len(checking.Lines) == 0 {
		return nil, &custom_error.EmptyDocumentError{CheckingID: checkingID}
	}

	var transfer models.InventTransfer
	err = s.tx.RunInTransaction(func(tx *goqu.TxDatabase) error {
		transferID, err := s.lr.InsertTransfer(tx, transferType)
		if err != nil {
			return fmt.Errorf("failed to insert transfer record: %w", err)
		}

		lines, err := s.lr.InsertTransferLines(tx, transferID, checking.Lines)
		if err != nil {
			return fmt.Errorf("failed to insert transfer lines: %w", err)
		}

		if err := s.cr.UpdateCheckingStatus(tx, checkingID, next); err != nil {
			return err
		}

		transfer = models.InventTransfer{
			ID:           transferID,
			TransferType: transferType,
			Lines:        lines,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.auditLog != nil {
		s.auditLog.Log(string(next), map[string]interface{}{
			"checking_id":   checkingID,
			"transfer_id":   transfer.ID,
			"transfer_type": string(transferType),
			"line_count":    len(transfer.Lines),
		}, &transfer)
	}

	return &transfer, nil
}
