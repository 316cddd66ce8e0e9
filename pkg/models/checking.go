package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckingStatus string

const (
	CheckingStatusDraft     CheckingStatus = "draft"
	CheckingStatusReceived  CheckingStatus = "received"
	CheckingStatusCancelled CheckingStatus = "cancelled"
)

type Checking struct {
	ID          int            `json:"id" db:"id"`
	ReceiptDate time.Time      `json:"receipt_date" db:"receipt_date"`
	Status      CheckingStatus `json:"status" db:"status"`
	Lines       []CheckingLine `json:"lines" db:"-"`
}

type CheckingLine struct {
	ID            int             `json:"id" db:"id"`
	CheckingID    int             `json:"checking_id" db:"checking_id"`
	SupplyItemID  int             `json:"supply_item_id" db:"supply_item_id"`
	ReceivedQty   decimal.Decimal `json:"received_qty" db:"received_qty"`
	UnitOfMeasure string          `json:"unit_of_measure" db:"unit_of_measure"`
}

func (c *Checking) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   c.ID,
		ResourceType: "checking",
	}
}
