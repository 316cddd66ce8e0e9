package suppliers

import (
	"fmt"

	"supplyhouse/internal/repository"
	custom_error "supplyhouse/pkg/errors"
	"supplyhouse/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type SupplierRepository interface {
	PersistSupplier(req CreateSupplierRequest) (*models.Supplier, error)
	GetSuppliers() ([]models.Supplier, error)
}

type supplierRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) SupplierRepository {
	return &supplierRepository{repository: r}
}

func (r *supplierRepository) PersistSupplier(req CreateSupplierRequest) (*models.Supplier, error) {
	query := r.repository.GoquDBWrapper.Insert("suppliers").
		Rows(goqu.Record{
			"name":     req.Name,
			"document": req.Document,
		}).
		Returning("id")

	supplier := models.Supplier{
		Name:     req.Name,
		Document: req.Document,
	}

	if _, err := query.Executor().ScanVal(&supplier.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return nil, custom_error.WrapDBError("Duplicate document for supplier", string(pqErr.Code))
			}
		}
		return nil, fmt.Errorf("failed to insert supplier record: %w", err)
	}

	return &supplier, nil
}

func (r *supplierRepository) GetSuppliers() ([]models.Supplier, error) {
	var suppliers []models.Supplier

	query := r.repository.GoquDBWrapper.
		Select("id", "name", "document").
		From("suppliers").
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&suppliers); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return suppliers, nil
}
