package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/logger"
	"equipment-rental-backend/internal/repository"

	"github.com/lib/pq"
)

type quoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) repository.QuoteRepository {
	return &quoteRepository{db: db}
}

const quoteColumns = `id, reference, client_name, client_email, COALESCE(client_phone, ''), COALESCE(client_company, ''),
	to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'), duration_days, delivery_required,
	line_items_total, insurance, delivery, subtotal, tax, total, pricing_unavailable,
	COALESCE(notes, ''), status, created_at, updated_at`

func scanQuote(row scanner) (domain.Quote, error) {
	var q domain.Quote
	err := row.Scan(&q.ID, &q.Reference, &q.Client.Name, &q.Client.Email, &q.Client.Phone, &q.Client.Company,
		&q.StartDate, &q.EndDate, &q.DurationDays, &q.DeliveryRequired,
		&q.Pricing.LineItemsTotal, &q.Pricing.Insurance, &q.Pricing.Delivery, &q.Pricing.Subtotal, &q.Pricing.Tax, &q.Pricing.Total,
		pq.Array(&q.PricingUnavailable), &q.Notes, &q.Status, &q.CreatedAt, &q.UpdatedAt)
	return q, err
}

// Create stores the quote and its items in one transaction. ID and Reference
// are assigned by the caller.
func (r *quoteRepository) Create(ctx context.Context, q *domain.Quote) error {
	logger.EnterMethod("quoteRepository.Create", "quoteID", q.ID, "items", len(q.Items))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("quoteRepository.Create", err)
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `
		INSERT INTO quotes (
			id, reference, client_name, client_email, client_phone, client_company,
			start_date, end_date, duration_days, delivery_required,
			line_items_total, insurance, delivery, subtotal, tax, total,
			pricing_unavailable, notes, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err = tx.ExecContext(ctx, query,
		q.ID, q.Reference, q.Client.Name, q.Client.Email, q.Client.Phone, q.Client.Company,
		q.StartDate, q.EndDate, q.DurationDays, q.DeliveryRequired,
		q.Pricing.LineItemsTotal, q.Pricing.Insurance, q.Pricing.Delivery, q.Pricing.Subtotal, q.Pricing.Tax, q.Pricing.Total,
		pq.Array(q.PricingUnavailable), q.Notes, q.Status, now, now,
	)
	if err != nil {
		logger.ExitMethodWithError("quoteRepository.Create", err, "quoteID", q.ID)
		return fmt.Errorf("inserting quote: %w", err)
	}

	itemQuery := `
		INSERT INTO quote_items (quote_id, position, equipment_id, sku, name, category, daily_rate, quantity, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for i, item := range q.Items {
		_, err = tx.ExecContext(ctx, itemQuery,
			q.ID, i, item.EquipmentID, item.SKU, item.Name, item.Category, item.UnitDailyRate, item.Quantity, item.LineTotal,
		)
		if err != nil {
			logger.ExitMethodWithError("quoteRepository.Create", err, "quoteID", q.ID, "position", i)
			return fmt.Errorf("inserting quote item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("quoteRepository.Create", err, "quoteID", q.ID)
		return fmt.Errorf("committing quote: %w", err)
	}

	q.CreatedAt = now
	q.UpdatedAt = now
	logger.ExitMethod("quoteRepository.Create", "quoteID", q.ID)
	return nil
}

func (r *quoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	q, err := scanQuote(r.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id))
	if err != nil {
		return nil, mapNotFound(err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT equipment_id, sku, name, COALESCE(category, ''), daily_rate, quantity, line_total
		FROM quote_items WHERE quote_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.QuoteItem
		if err := rows.Scan(&item.EquipmentID, &item.SKU, &item.Name, &item.Category,
			&item.UnitDailyRate, &item.Quantity, &item.LineTotal); err != nil {
			return nil, err
		}
		q.Items = append(q.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns quote headers, newest first. Items are not loaded.
func (r *quoteRepository) List(ctx context.Context, status domain.QuoteStatus, page, pageSize int32) ([]domain.Quote, int32, error) {
	where := ""
	args := []interface{}{}
	argIdx := 1
	if status != "" {
		where = " WHERE status = $1"
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM quotes`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := int64(page-1) * int64(pageSize)
	query := `SELECT ` + quoteColumns + ` FROM quotes` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quotes []domain.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, 0, err
		}
		quotes = append(quotes, q)
	}
	return quotes, count, rows.Err()
}

func (r *quoteRepository) UpdateStatus(ctx context.Context, id string, from, to domain.QuoteStatus) error {
	logger.EnterMethod("quoteRepository.UpdateStatus", "quoteID", id, "from", from, "to", to)

	result, err := r.db.ExecContext(ctx,
		`UPDATE quotes SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, time.Now(), id, from,
	)
	if err != nil {
		logger.ExitMethodWithError("quoteRepository.UpdateStatus", err, "quoteID", id)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		logger.ExitMethodWithError("quoteRepository.UpdateStatus", repository.ErrConflict, "quoteID", id)
		return repository.ErrConflict
	}

	logger.ExitMethod("quoteRepository.UpdateStatus", "quoteID", id)
	return nil
}

func (r *quoteRepository) ExpirePending(ctx context.Context, before string) ([]string, error) {
	query := `
		UPDATE quotes
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND start_date < $3
		RETURNING id
	`
	logger.DatabaseCall("quotes.expire_pending", query, "before", before)
	rows, err := r.db.QueryContext(ctx, query, domain.QuoteStatusExpired, domain.QuoteStatusPending, before)
	if err != nil {
		logger.DatabaseResult("quotes.expire_pending", 0, err)
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	err = rows.Err()
	logger.DatabaseResult("quotes.expire_pending", int64(len(ids)), err)
	return ids, err
}
