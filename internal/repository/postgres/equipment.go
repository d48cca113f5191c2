package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/logger"
	"equipment-rental-backend/internal/repository"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `e.id, e.sku, e.name, COALESCE(e.description, ''), e.category, COALESCE(e.sub_category, ''),
	e.partner_price, e.retail_price, COALESCE(e.image_url, ''), e.tags, e.is_active, e.created_at,
	i.id, i.quantity_owned, i.quantity_available, i.storage_location, i.serial_numbers, i.purchase_price, i.updated_at`

const equipmentFrom = ` FROM equipment_catalog e LEFT JOIN in_house_inventory i ON i.catalog_id = e.id`

func scanEquipment(row scanner) (domain.Equipment, error) {
	var (
		e          domain.Equipment
		invID      sql.NullString
		owned      sql.NullInt32
		available  sql.NullInt32
		location   sql.NullString
		serials    []string
		purchase   decimal.NullDecimal
		invUpdated sql.NullTime
	)
	err := row.Scan(&e.ID, &e.SKU, &e.Name, &e.Description, &e.Category, &e.SubCategory,
		&e.PartnerPrice, &e.RetailPrice, &e.ImageURL, pq.Array(&e.Tags), &e.IsActive, &e.CreatedAt,
		&invID, &owned, &available, &location, pq.Array(&serials), &purchase, &invUpdated)
	if err != nil {
		return domain.Equipment{}, err
	}

	if invID.Valid {
		rec := &domain.InventoryRecord{
			ID:                invID.String,
			CatalogID:         e.ID,
			QuantityOwned:     owned.Int32,
			QuantityAvailable: available.Int32,
			SerialNumbers:     serials,
			PurchasePrice:     purchase,
			UpdatedAt:         invUpdated.Time,
		}
		if location.Valid {
			rec.StorageLocation = &location.String
		}
		e.InHouse = rec
	}
	e.ResolveAvailability()
	return e, nil
}

func (r *equipmentRepository) List(ctx context.Context, filter repository.EquipmentFilter) ([]domain.Equipment, int32, error) {
	logger.EnterMethod("equipmentRepository.List", "category", filter.Category, "search", filter.Search, "availability", filter.Availability)

	where := ` WHERE e.is_active = true`
	args := []interface{}{}
	argIdx := 1

	if filter.Category != "" {
		where += fmt.Sprintf(" AND e.category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (e.name ILIKE $%d OR e.sku ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	switch filter.Availability {
	case domain.AvailabilityInHouse:
		where += " AND i.quantity_available > 0"
	case domain.AvailabilityPartner:
		where += " AND (i.id IS NULL OR i.quantity_available <= 0)"
	}

	var count int32
	countSQL := "SELECT count(*)" + equipmentFrom + where
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&count); err != nil {
		logger.ExitMethodWithError("equipmentRepository.List", err)
		return nil, 0, err
	}

	offset := int64(filter.Page-1) * int64(filter.PageSize)
	query := "SELECT " + equipmentColumns + equipmentFrom + where +
		fmt.Sprintf(" ORDER BY e.category, e.name, e.id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.PageSize, offset)

	logger.DatabaseCall("equipment.list", query)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.ExitMethodWithError("equipmentRepository.List", err)
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			logger.ExitMethodWithError("equipmentRepository.List", err)
			return nil, 0, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		logger.ExitMethodWithError("equipmentRepository.List", err)
		return nil, 0, err
	}

	logger.ExitMethod("equipmentRepository.List", "returned", len(items), "total", count)
	return items, count, nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	query := "SELECT " + equipmentColumns + equipmentFrom + ` WHERE e.id = $1`
	e, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &e, nil
}

// GetByIDs returns the active items among ids. Missing ids are skipped; the
// caller decides whether that is an error.
func (r *equipmentRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Equipment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT " + equipmentColumns + equipmentFrom + ` WHERE e.id = ANY($1) AND e.is_active = true`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *equipmentRepository) CountActive(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM equipment_catalog WHERE is_active = true`).Scan(&count)
	return count, err
}

func (r *equipmentRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name, display_order FROM equipment_categories WHERE is_active = true ORDER BY display_order, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayOrder); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
