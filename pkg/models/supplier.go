package models

type Supplier struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Document string `json:"document" db:"document"`
}

type SupplyItem struct {
	ID            int    `json:"id" db:"id"`
	SupplierID    int    `json:"supplier_id" db:"supplier_id"`
	Name          string `json:"name" db:"name"`
	UnitOfMeasure string `json:"unit_of_measure" db:"unit_of_measure"`
}
