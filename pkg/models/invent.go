package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransferType string

const (
	TransferTypeInbound  TransferType = "inbound"
	TransferTypeOutbound TransferType = "outbound"
)

// SignedQty returns the delta a ledger line of this type contributes to the
// running quantity of its supply item.
func (t TransferType) SignedQty(qty decimal.Decimal) decimal.Decimal {
	if t == TransferTypeOutbound {
		return qty.Neg()
	}
	return qty
}

type InventTransfer struct {
	ID           int                  `json:"id"`
	TransferType TransferType         `json:"transfer_type"`
	Lines        []InventTransferLine `json:"lines"`
	CreatedAt    time.Time            `json:"created_at"`
}

type InventTransferLine struct {
	ID             int             `json:"id"`
	TransferID     int             `json:"transfer_id"`
	SupplyItemID   int             `json:"supply_item_id"`
	TransferQty    decimal.Decimal `json:"transfer_qty"`
	UnitOfMeasure  string          `json:"unit_of_measure"`
	CheckingLineID *int            `json:"checking_line_id,omitempty"`
}

type InventSum struct {
	ID            int             `json:"id" db:"id"`
	SupplyItemID  int             `json:"supply_item_id" db:"supply_item_id"`
	UnitOfMeasure string          `json:"unit_of_measure" db:"unit_of_measure"`
	Quantity      decimal.Decimal `json:"quantity" db:"quantity"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

type InventSumHistory struct {
	ID             int             `json:"id" db:"id"`
	SupplyItemID   int             `json:"supply_item_id" db:"supply_item_id"`
	UnitOfMeasure  string          `json:"unit_of_measure" db:"unit_of_measure"`
	PreviousQty    decimal.Decimal `json:"previous_qty" db:"previous_qty"`
	NewQty         decimal.Decimal `json:"new_qty" db:"new_qty"`
	ChangedQty     decimal.Decimal `json:"changed_qty" db:"changed_qty"`
	TransferLineID int             `json:"transfer_line_id" db:"transfer_line_id"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

type BatchCheckpoint struct {
	ID                      int `json:"id" db:"id"`
	LastProcessedTransferID int `json:"last_processed_transfer_id" db:"last_processed_transfer_id"`
}

type TransferError struct {
	ID           int       `json:"id" db:"id"`
	OriginalID   int       `json:"original_id" db:"original_id"`
	Retried      bool      `json:"retried" db:"retried"`
	Success      bool      `json:"success" db:"success"`
	ErrorMessage *string   `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (t *InventTransfer) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   t.ID,
		ResourceType: "invent_transfer",
	}
}
