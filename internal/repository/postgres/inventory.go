package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/logger"
	"equipment-rental-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `id, catalog_id, quantity_owned, quantity_available, storage_location, serial_numbers, purchase_price, updated_at`

func scanInventory(row scanner) (domain.InventoryRecord, error) {
	var (
		rec      domain.InventoryRecord
		location sql.NullString
	)
	err := row.Scan(&rec.ID, &rec.CatalogID, &rec.QuantityOwned, &rec.QuantityAvailable,
		&location, pq.Array(&rec.SerialNumbers), &rec.PurchasePrice, &rec.UpdatedAt)
	if err != nil {
		return domain.InventoryRecord{}, err
	}
	if location.Valid {
		rec.StorageLocation = &location.String
	}
	return rec, nil
}

func (r *inventoryRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]domain.InventoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.InventoryRecord
	for rows.Next() {
		rec, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	return r.queryRecords(ctx, `SELECT `+inventoryColumns+` FROM in_house_inventory ORDER BY updated_at DESC, catalog_id`)
}

func (r *inventoryRepository) GetByCatalogID(ctx context.Context, catalogID string) (*domain.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM in_house_inventory WHERE catalog_id = $1`
	rec, err := scanInventory(r.db.QueryRowContext(ctx, query, catalogID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *inventoryRepository) GetByCatalogIDs(ctx context.Context, catalogIDs []string) ([]domain.InventoryRecord, error) {
	if len(catalogIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + inventoryColumns + ` FROM in_house_inventory WHERE catalog_id = ANY($1)`
	logger.DatabaseCall("inventory.batch_lookup", query, "ids", len(catalogIDs))
	records, err := r.queryRecords(ctx, query, pq.Array(catalogIDs))
	logger.DatabaseResult("inventory.batch_lookup", int64(len(records)), err)
	return records, err
}

// Upsert creates or replaces the record for rec.CatalogID. A new record starts
// fully available; an update shifts availability by the change in quantity
// owned, never below zero.
func (r *inventoryRepository) Upsert(ctx context.Context, rec *domain.InventoryRecord) error {
	logger.EnterMethod("inventoryRepository.Upsert", "catalogID", rec.CatalogID, "quantityOwned", rec.QuantityOwned)

	query := `
		INSERT INTO in_house_inventory (
			id, catalog_id, quantity_owned, quantity_available, storage_location,
			serial_numbers, purchase_price, updated_at
		) VALUES ($1, $2, $3, $3, $4, $5, $6, $7)
		ON CONFLICT (catalog_id) DO UPDATE SET
			quantity_available = GREATEST(0, in_house_inventory.quantity_available + EXCLUDED.quantity_owned - in_house_inventory.quantity_owned),
			quantity_owned = EXCLUDED.quantity_owned,
			storage_location = EXCLUDED.storage_location,
			serial_numbers = EXCLUDED.serial_numbers,
			purchase_price = EXCLUDED.purchase_price,
			updated_at = EXCLUDED.updated_at
		RETURNING id, quantity_available, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		uuid.New().String(), rec.CatalogID, rec.QuantityOwned, rec.StorageLocation,
		pq.Array(rec.SerialNumbers), rec.PurchasePrice, time.Now(),
	).Scan(&rec.ID, &rec.QuantityAvailable, &rec.UpdatedAt)

	if err != nil {
		logger.ExitMethodWithError("inventoryRepository.Upsert", err, "catalogID", rec.CatalogID)
		return err
	}

	logger.ExitMethod("inventoryRepository.Upsert", "inventoryID", rec.ID, "quantityAvailable", rec.QuantityAvailable)
	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, catalogID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM in_house_inventory WHERE catalog_id = $1`, catalogID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
