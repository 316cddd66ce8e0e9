package items

import (
	"fmt"

	"supplyhouse/internal/repository"
	custom_error "supplyhouse/pkg/errors"
	"supplyhouse/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type SupplyItemRepository interface {
	PersistSupplyItem(req CreateSupplyItemRequest) (*models.SupplyItem, error)
	GetSupplyItems() ([]models.SupplyItem, error)
	GetSupplyItem(itemID int) (*models.SupplyItem, error)
}

type supplyItemRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) SupplyItemRepository {
	return &supplyItemRepository{repository: r}
}

func (r *supplyItemRepository) PersistSupplyItem(req CreateSupplyItemRequest) (*models.SupplyItem, error) {
	query := r.repository.GoquDBWrapper.Insert("supply_items").
		Rows(goqu.Record{
			"supplier_id":     req.SupplierID,
			"name":            req.Name,
			"unit_of_measure": req.UnitOfMeasure,
		}).
		Returning("id")

	item := models.SupplyItem{
		SupplierID:    req.SupplierID,
		Name:          req.Name,
		UnitOfMeasure: req.UnitOfMeasure,
	}

	if _, err := query.Executor().ScanVal(&item.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return nil, custom_error.WrapDBError("supplier does not exist", string(pqErr.Code))
			}
		}
		return nil, fmt.Errorf("failed to insert supply item record: %w", err)
	}

	return &item, nil
}

func (r *supplyItemRepository) GetSupplyItems() ([]models.SupplyItem, error) {
	var items []models.SupplyItem

	query := r.repository.GoquDBWrapper.
		Select("id", "supplier_id", "name", "unit_of_measure").
		From("supply_items").
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return items, nil
}

func (r *supplyItemRepository) GetSupplyItem(itemID int) (*models.SupplyItem, error) {
	var item models.SupplyItem

	query := r.repository.GoquDBWrapper.
		Select("id", "supplier_id", "name", "unit_of_measure").
		From("supply_items").
		Where(goqu.Ex{"id": itemID})

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &item, nil
}
