// Package repo contains all database access logic for the Voyage API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/voyage/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// Trips are immutable once written, so there is no Update.
// Every read and delete is scoped to the owning user: a trip that exists but
// belongs to someone else is indistinguishable from a missing one.
type TripRepo interface {
	// Create inserts a new trip as a single row and returns the persisted
	// record (with DB-generated id and created_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip owned by userID.
	// Returns domain.ErrNotFound if no such trip exists for that user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)

	// ListByUser returns one page of trip summaries for userID, newest first,
	// along with the user's total trip count.
	ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.TripSummary, int64, error)

	// Delete removes a trip owned by userID.
	// Returns domain.ErrNotFound if no such trip exists for that user.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, destination, duration, budget, budget_category, group_type,
		interests, trip_summary, budget_breakdown, itinerary, hotels, travel_tips, created_at`

// Create inserts a new trip row and returns the full persisted record.
// The generated plan is stored as JSONB so the whole trip is one atomic write.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		INSERT INTO trips (user_id, destination, duration, budget, budget_category, group_type,
			interests, trip_summary, budget_breakdown, itinerary, hotels, travel_tips)
		VALUES (@user_id, @destination, @duration, @budget, @budget_category, @group_type,
			@interests, @trip_summary, @budget_breakdown, @itinerary, @hotels, @travel_tips)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"user_id":         trip.UserID,
		"destination":     trip.Destination,
		"duration":        trip.Duration,
		"budget":          trip.Budget,
		"budget_category": string(trip.BudgetCategory),
		"group_type":      string(trip.GroupType),
		"trip_summary":    trip.TripSummary,
	}
	for name, v := range map[string]any{
		"interests":        nonNil(trip.Interests),
		"budget_breakdown": trip.BudgetBreakdown,
		"itinerary":        nonNil(trip.Itinerary),
		"hotels":           nonNil(trip.Hotels),
		"travel_tips":      nonNil(trip.TravelTips),
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: encode %s: %w", name, err)
		}
		args[name] = b
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key, scoped to its owner.
func (r *pgTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByUser returns trip summaries ordered by created_at descending.
// The total is computed in the same query with a window function so the page
// and the count always agree.
func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.TripSummary, int64, error) {
	const q = `
		SELECT id, destination, duration, budget, budget_category, group_type,
		       trip_summary, budget_breakdown, created_at, count(*) OVER () AS total
		FROM trips
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"user_id": userID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var (
		trips []domain.TripSummary
		total int64
	)
	for rows.Next() {
		var (
			s         domain.TripSummary
			id        pgtype.UUID
			category  string
			groupType string
			breakdown []byte
		)
		if err := rows.Scan(&id, &s.Destination, &s.Duration, &s.Budget, &category, &groupType,
			&s.TripSummary, &breakdown, &s.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: scan: %w", err)
		}
		s.ID = uuid.UUID(id.Bytes)
		s.BudgetCategory = domain.BudgetCategory(category)
		s.GroupType = domain.GroupType(groupType)
		if err := json.Unmarshal(breakdown, &s.BudgetBreakdown); err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: decode budget_breakdown: %w", err)
		}
		trips = append(trips, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: rows: %w", err)
	}

	return trips, total, nil
}

// Delete removes a trip by primary key, scoped to its owner.
func (r *pgTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip, decoding the JSONB
// plan columns.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		userID    pgtype.UUID
		category  string
		groupType string
		interests []byte
		breakdown []byte
		itinerary []byte
		hotels    []byte
		tips      []byte
	)

	err := s.Scan(&id, &userID, &t.Destination, &t.Duration, &t.Budget, &category, &groupType,
		&interests, &t.TripSummary, &breakdown, &itinerary, &hotels, &tips, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.BudgetCategory = domain.BudgetCategory(category)
	t.GroupType = domain.GroupType(groupType)

	for name, col := range map[string]struct {
		raw  []byte
		dest any
	}{
		"interests":        {interests, &t.Interests},
		"budget_breakdown": {breakdown, &t.BudgetBreakdown},
		"itinerary":        {itinerary, &t.Itinerary},
		"hotels":           {hotels, &t.Hotels},
		"travel_tips":      {tips, &t.TravelTips},
	} {
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			return domain.Trip{}, fmt.Errorf("decode %s: %w", name, err)
		}
	}

	return t, nil
}

// nonNil returns an empty slice for nil so JSONB columns hold [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
