package checking

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateCheckingRequest struct {
	ReceiptDate time.Time                  `json:"receipt_date" binding:"required"`
	Lines       []CreateCheckingLineRequest `json:"lines" binding:"required,dive"`
}

type CreateCheckingLineRequest struct {
	SupplyItemID  int             `json:"supply_item_id" binding:"required"`
	ReceivedQty   decimal.Decimal `json:"received_qty" binding:"required"`
	UnitOfMeasure string          `json:"unit_of_measure" binding:"required"`
}
