package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nvalette/tripdeck/backend/internal/domain"
)

// ItemRepo defines the persistence operations for TripItems.
//
// List order is deliberately unspecified beyond being deterministic
// (created_at, id): the itinerary sequencer owns chronological ordering.
type ItemRepo interface {
	// Create inserts a new item and returns the persisted record.
	Create(ctx context.Context, item domain.TripItem) (domain.TripItem, error)

	// GetByID retrieves a single item by ID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no item with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, itemID uuid.UUID) (domain.TripItem, error)

	// ListByTripID returns all items for a trip.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripItem, error)

	// ListByTripIDPaged returns one page of a trip's items and the total count.
	ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.TripItem, int64, error)

	// Update overwrites the mutable fields of an existing item and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, item domain.TripItem) (domain.TripItem, error)

	// Delete removes an item by ID, scoped to the given tripID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, tripID, itemID uuid.UUID) error
}

// pgItemRepo is the Postgres implementation of ItemRepo.
type pgItemRepo struct {
	db db
}

// NewItemRepo constructs an ItemRepo backed by the provided db connection.
func NewItemRepo(db db) ItemRepo {
	return &pgItemRepo{db: db}
}

const itemColumns = `id, trip_id, category, title, start_time, end_time,
		location, description, metadata, cost_amount, cost_currency, confirmation_status`

// Create inserts a new item row and returns the full persisted record.
// start_time and end_time are stored verbatim as text: they are boundary
// data from AI extraction and are parsed only by the itinerary sequencer.
func (r *pgItemRepo) Create(ctx context.Context, item domain.TripItem) (domain.TripItem, error) {
	const q = `
		INSERT INTO trip_items (trip_id, category, title, start_time, end_time,
			location, description, metadata, cost_amount, cost_currency, confirmation_status)
		VALUES (@trip_id, @category, @title, @start_time, @end_time,
			@location, @description, @metadata, @cost_amount, @cost_currency, @confirmation_status)
		RETURNING ` + itemColumns

	row := r.db.QueryRow(ctx, q, itemArgs(item))
	result, err := scanItem(row)
	if err != nil {
		return domain.TripItem{}, fmt.Errorf("repo.ItemRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an item by primary key, scoped to its trip.
func (r *pgItemRepo) GetByID(ctx context.Context, tripID, itemID uuid.UUID) (domain.TripItem, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM trip_items
		WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": itemID, "trip_id": tripID})
	result, err := scanItem(row)
	if err != nil {
		return domain.TripItem{}, fmt.Errorf("repo.ItemRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all items for a trip in insertion order.
func (r *pgItemRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripItem, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM trip_items
		WHERE trip_id = @trip_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	items, err := collectItems(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByTripID: %w", err)
	}
	return items, nil
}

// ListByTripIDPaged returns one page of items plus the total row count.
func (r *pgItemRepo) ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.TripItem, int64, error) {
	const countQ = `SELECT count(*) FROM trip_items WHERE trip_id = @trip_id`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"trip_id": tripID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ItemRepo.ListByTripIDPaged: count: %w", err)
	}

	const q = `
		SELECT ` + itemColumns + `
		FROM trip_items
		WHERE trip_id = @trip_id
		ORDER BY created_at, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"trip_id": tripID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItemRepo.ListByTripIDPaged: %w", err)
	}
	defer rows.Close()

	items, err := collectItems(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItemRepo.ListByTripIDPaged: %w", err)
	}
	return items, total, nil
}

// Update overwrites the mutable fields of an item and returns the updated record.
func (r *pgItemRepo) Update(ctx context.Context, item domain.TripItem) (domain.TripItem, error) {
	const q = `
		UPDATE trip_items
		SET category            = @category,
		    title               = @title,
		    start_time          = @start_time,
		    end_time            = @end_time,
		    location            = @location,
		    description         = @description,
		    metadata            = @metadata,
		    cost_amount         = @cost_amount,
		    cost_currency       = @cost_currency,
		    confirmation_status = @confirmation_status
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + itemColumns

	args := itemArgs(item)
	args["id"] = item.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItem(row)
	if err != nil {
		return domain.TripItem{}, fmt.Errorf("repo.ItemRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes an item by primary key, scoped to its trip.
func (r *pgItemRepo) Delete(ctx context.Context, tripID, itemID uuid.UUID) error {
	const q = `DELETE FROM trip_items WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": itemID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// itemArgs builds the shared NamedArgs for Create and Update.
// A nil metadata map is stored as NULL rather than the JSON string "null".
func itemArgs(item domain.TripItem) pgx.NamedArgs {
	var meta any
	if item.Metadata != nil {
		meta = item.Metadata
	}
	return pgx.NamedArgs{
		"trip_id":             item.TripID,
		"category":            item.Category,
		"title":               item.Title,
		"start_time":          item.StartTime,
		"end_time":            item.EndTime,
		"location":            item.Location,
		"description":         item.Description,
		"metadata":            meta,
		"cost_amount":         item.CostAmount, // nil becomes NULL
		"cost_currency":       item.CostCurrency,
		"confirmation_status": item.ConfirmationStatus,
	}
}

// collectItems drains rows into a slice, propagating scan and iteration errors.
func collectItems(rows pgx.Rows) ([]domain.TripItem, error) {
	var items []domain.TripItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

// scanItem maps a single database row into a domain.TripItem.
// metadata is a nullable jsonb column; pgx unmarshals it into the map, and
// NULL leaves the map nil.
func scanItem(s scanner) (domain.TripItem, error) {
	var (
		it     domain.TripItem
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &it.Category, &it.Title, &it.StartTime, &it.EndTime,
		&it.Location, &it.Description, &it.Metadata, &it.CostAmount,
		&it.CostCurrency, &it.ConfirmationStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripItem{}, domain.ErrNotFound
		}
		return domain.TripItem{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.TripID = uuid.UUID(tripID.Bytes)

	return it, nil
}
