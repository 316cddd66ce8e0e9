package container

import (
	"database/sql"

	auditLogRepo "supplyhouse/internal/auditlog"
	"supplyhouse/internal/batch"
	"supplyhouse/internal/checking"
	"supplyhouse/internal/inventory"
	"supplyhouse/internal/items"
	"supplyhouse/internal/ledger"
	"supplyhouse/internal/repository"
	"supplyhouse/internal/suppliers"
	"supplyhouse/internal/users"
	"supplyhouse/pkg/auditlog"
	"supplyhouse/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Repository        *repository.Repository
	AuditLog          *auditlog.Auditlog
	LoginHandler      *security.LoginHandler
	CheckingHandler   *checking.CheckingHandler
	InventoryHandler  *inventory.InventoryHandler
	SyncErrorsHandler *batch.SyncErrorsHandler
	SupplierHandler   *suppliers.SupplierHandler
	SupplyItemHandler *items.SupplyItemHandler
	UserHandler       *users.UsersHandler
	Scheduler         *batch.Scheduler
}

func NewAppContainer(db *sql.DB, log *zap.Logger) *Container {
	repo := repository.NewRepository(db)
	auditRepo := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditRepo)

	checkingRepo := checking.NewRepository(repo)
	ledgerRepo := ledger.NewRepository(repo)
	sumRepo := inventory.NewRepository(repo)
	checkpointRepo := batch.NewCheckpointRepository(repo)
	transferErrorRepo := batch.NewTransferErrorRepository(repo)

	checkingService := checking.NewService(repo, checkingRepo, ledgerRepo, auditLog)
	checkingHandler := checking.NewHandler(checkingService)
	inventoryHandler := inventory.NewInventoryHandler(sumRepo)
	syncErrorsHandler := batch.NewSyncErrorsHandler(transferErrorRepo)

	supplierRepo := suppliers.NewRepository(repo)
	supplierHandler := suppliers.NewHandler(supplierRepo)
	itemRepo := items.NewRepository(repo)
	itemHandler := items.NewHandler(itemRepo)

	userRepo := users.NewRepository(repo)
	userHandler := users.NewHandler(userRepo)
	loginHandler := security.NewLoginHandler(repo)

	syncCfg := batch.GetSyncConfig()
	syncJob := batch.NewSyncJob(ledgerRepo, sumRepo, checkpointRepo, transferErrorRepo, syncCfg.BatchSize, log)
	scheduler := batch.NewScheduler(syncJob, syncCfg.Interval, log)

	return &Container{
		Repository:        repo,
		AuditLog:          auditLog,
		LoginHandler:      loginHandler,
		CheckingHandler:   checkingHandler,
		InventoryHandler:  inventoryHandler,
		SyncErrorsHandler: syncErrorsHandler,
		SupplierHandler:   supplierHandler,
		SupplyItemHandler: itemHandler,
		UserHandler:       userHandler,
		Scheduler:         scheduler,
	}
}
