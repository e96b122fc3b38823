package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// activeStatuses are the statuses that block other bookings. The SQL predicates
// below must stay in sync with the partial exclusion constraint in the schema.
var activeStatuses = []string{string(StatusPending), string(StatusApproved)}

type Repository interface {
	// Create inserts the booking atomically. It returns ErrConcurrentAdmission
	// when the storage-level exclusion constraint rejects the insert because a
	// concurrent admission claimed an overlapping interval first.
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateDisposition persists a status transition.
	UpdateDisposition(ctx context.Context, booking *Booking) error

	// UpdateInterval persists a reschedule. Like Create, it returns
	// ErrConcurrentAdmission when the storage-level exclusion constraint
	// rejects the new interval.
	UpdateInterval(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, id string) error

	// ListActiveOverlapping returns every active booking on the resource whose
	// half-open interval intersects [start, end), ordered by start time then id.
	// excludeBookingID is used during edits so a booking never conflicts with itself.
	ListActiveOverlapping(ctx context.Context, resourceID string, start, end time.Time, excludeBookingID string) ([]*Booking, error)

	// ListActiveInWindow returns active bookings on the resource intersecting
	// [windowStart, windowEnd), sorted ascending by start time.
	ListActiveInWindow(ctx context.Context, resourceID string, windowStart, windowEnd time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// dispositionColumns flattens a disposition into the nullable status columns.
func dispositionColumns(d Disposition) (status string, approvedBy *string, approvedAt *time.Time, reason *string) {
	status = string(d.Status())
	switch v := d.(type) {
	case Approved:
		if v.ApprovedBy != "" {
			approvedBy = &v.ApprovedBy
		}
		approvedAt = &v.ApprovedAt
	case Rejected:
		reason = &v.Reason
	}
	return status, approvedBy, approvedAt, reason
}

// dispositionFromColumns rehydrates the sum type from the stored row.
func dispositionFromColumns(status string, approvedBy *string, approvedAt *time.Time, reason *string) (Disposition, error) {
	switch Status(status) {
	case StatusPending:
		return Pending{}, nil
	case StatusApproved:
		a := Approved{}
		if approvedBy != nil {
			a.ApprovedBy = *approvedBy
		}
		if approvedAt != nil {
			a.ApprovedAt = *approvedAt
		}
		return a, nil
	case StatusRejected:
		r := Rejected{}
		if reason != nil {
			r.Reason = *reason
		}
		return r, nil
	case StatusCancelled:
		return Cancelled{}, nil
	default:
		return nil, fmt.Errorf("unknown booking status %q", status)
	}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	status, approvedBy, approvedAt, reason := dispositionColumns(b.Disposition)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("id", "resource_id", "requester_id", "requester_name",
			"start_time", "end_time", "purpose",
			"status", "approved_by", "approved_at", "rejection_reason").
		Values(b.ID, b.ResourceID, b.RequesterID, b.RequesterName,
			b.StartTime, b.EndTime, b.Purpose,
			status, approvedBy, approvedAt, reason).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrConcurrentAdmission
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

const bookingColumns = `b.id, b.resource_id, r.name, b.requester_id, b.requester_name,
	b.start_time, b.end_time, b.purpose,
	b.status, b.approved_by, b.approved_at, b.rejection_reason,
	b.created_at, b.updated_at`

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	var status string
	var approvedBy, reason *string
	var approvedAt *time.Time

	dest := []any{
		&b.ID, &b.ResourceID, &b.ResourceName, &b.RequesterID, &b.RequesterName,
		&b.StartTime, &b.EndTime, &b.Purpose,
		&status, &approvedBy, &approvedAt, &reason,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	d, err := dispositionFromColumns(status, approvedBy, approvedAt, reason)
	if err != nil {
		return nil, err
	}
	b.Disposition = d
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.bookings b
		JOIN public.resources r ON b.resource_id = r.id
		WHERE b.id = $1
	`, bookingColumns)

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.resource_id", "r.name", "b.requester_id", "b.requester_name",
		"b.start_time", "b.end_time", "b.purpose",
		"b.status", "b.approved_by", "b.approved_at", "b.rejection_reason",
		"b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.resources r ON b.resource_id = r.id")

	if filter.RequesterID != "" {
		query = query.Where(squirrel.Eq{"b.requester_id": filter.RequesterID})
	}
	if filter.ResourceID != "" {
		query = query.Where(squirrel.Eq{"b.resource_id": filter.ResourceID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.StartTime != nil {
		query = query.Where(squirrel.GtOrEq{"b.end_time": filter.StartTime})
	}
	if filter.EndTime != nil {
		query = query.Where(squirrel.LtOrEq{"b.start_time": filter.EndTime})
	}

	query = query.OrderBy(listOrderClause(filter))

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	return bookings, total, nil
}

// listSortColumns whitelists the sortable columns. The sort column and
// direction are interpolated into the ORDER BY clause, so anything outside
// this set falls back to the defaults instead of reaching the SQL text.
var listSortColumns = map[string]bool{
	"start_time": true,
	"end_time":   true,
	"created_at": true,
	"status":     true,
}

func listOrderClause(filter Filter) string {
	column := "start_time"
	if listSortColumns[filter.SortBy] {
		column = filter.SortBy
	}
	dir := "DESC"
	if strings.EqualFold(filter.SortOrder, "ASC") {
		dir = "ASC"
	}
	return "b." + column + " " + dir
}

func (r *pgxRepository) UpdateDisposition(ctx context.Context, b *Booking) error {
	status, approvedBy, approvedAt, reason := dispositionColumns(b.Disposition)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("approved_by", approvedBy).
		Set("approved_at", approvedAt).
		Set("rejection_reason", reason).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateInterval(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build reschedule booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrConcurrentAdmission
		}
		return fmt.Errorf("reschedule booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListActiveOverlapping(ctx context.Context, resourceID string, start, end time.Time, excludeBookingID string) ([]*Booking, error) {
	// Half-open interval intersection: existing.start < end AND existing.end > start.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.resource_id", "r.name", "b.requester_id", "b.requester_name",
		"b.start_time", "b.end_time", "b.purpose",
		"b.status", "b.approved_by", "b.approved_at", "b.rejection_reason",
		"b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.resources r ON b.resource_id = r.id").
		Where(squirrel.Eq{"b.resource_id": resourceID}).
		Where(squirrel.Eq{"b.status": activeStatuses}).
		Where(squirrel.Lt{"b.start_time": end}).
		Where(squirrel.Gt{"b.end_time": start}).
		OrderBy("b.start_time ASC", "b.id ASC")

	if excludeBookingID != "" {
		query = query.Where(squirrel.NotEq{"b.id": excludeBookingID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlap query failed: %w", err)
	}

	return r.queryBookings(ctx, sql, args)
}

func (r *pgxRepository) ListActiveInWindow(ctx context.Context, resourceID string, windowStart, windowEnd time.Time) ([]*Booking, error) {
	// Intersection with the window, not start-time containment, so a booking
	// straddling the window boundary still counts as blocking.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(
		"b.id", "b.resource_id", "r.name", "b.requester_id", "b.requester_name",
		"b.start_time", "b.end_time", "b.purpose",
		"b.status", "b.approved_by", "b.approved_at", "b.rejection_reason",
		"b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.resources r ON b.resource_id = r.id").
		Where(squirrel.Eq{"b.resource_id": resourceID}).
		Where(squirrel.Eq{"b.status": activeStatuses}).
		Where(squirrel.Lt{"b.start_time": windowEnd}).
		Where(squirrel.Gt{"b.end_time": windowStart}).
		OrderBy("b.start_time ASC", "b.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build window query failed: %w", err)
	}

	return r.queryBookings(ctx, sql, args)
}

func (r *pgxRepository) queryBookings(ctx context.Context, sql string, args []interface{}) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return bookings, nil
}
