package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	models "io.dreamcanvas.services/internal/models/dream"
)

// ErrUnavailable is returned when no database connection could be obtained
var ErrUnavailable = errors.New("dream store unavailable")

// undefinedColumn is the SQLSTATE for a reference to a missing column
const undefinedColumn = "42703"

const (
	recentNewSchemaQuery = `
		SELECT id, title, prompt, likes, created_at, tags
		FROM dreams
		ORDER BY created_at DESC
		LIMIT $1
	`
	recentOldSchemaQuery = `
		SELECT id, prompt, created_at
		FROM dreams
		ORDER BY created_at DESC
		LIMIT $1
	`
	byUserNewSchemaQuery = `
		SELECT id, title, prompt, likes, created_at, tags
		FROM dreams
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	byUserOldSchemaQuery = `
		SELECT id, prompt, created_at
		FROM dreams
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
)

// DreamStore is the read-only view of the dreams table used by the handlers
type DreamStore interface {
	// ListRecent returns up to limit dreams, newest first
	ListRecent(ctx context.Context, limit int) ([]models.Dream, models.Schema, error)
	// ListByUser returns every dream owned by userID, newest first
	ListByUser(ctx context.Context, userID int64) ([]models.Dream, models.Schema, error)
	// Ping reports whether a connection can be obtained
	Ping(ctx context.Context) error
}

// querier is the subset of a pooled connection the store issues queries on
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// connSource hands out one connection per call along with its release func
type connSource interface {
	Acquire(ctx context.Context) (querier, func(), error)
	Ping(ctx context.Context) error
}

type poolSource struct {
	pool *pgxpool.Pool
}

func (p poolSource) Acquire(ctx context.Context) (querier, func(), error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	return conn, conn.Release, nil
}

func (p poolSource) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Postgres implements DreamStore on a pgx connection pool
type Postgres struct {
	source       connSource
	queryTimeout time.Duration
}

// NewPostgres creates a DreamStore backed by pool. queryTimeout bounds each
// request's connection acquisition plus queries; zero disables the bound.
func NewPostgres(pool *pgxpool.Pool, queryTimeout time.Duration) *Postgres {
	return &Postgres{source: poolSource{pool: pool}, queryTimeout: queryTimeout}
}

func (s *Postgres) ListRecent(ctx context.Context, limit int) ([]models.Dream, models.Schema, error) {
	return s.list(ctx, recentNewSchemaQuery, recentOldSchemaQuery, limit)
}

func (s *Postgres) ListByUser(ctx context.Context, userID int64) ([]models.Dream, models.Schema, error) {
	return s.list(ctx, byUserNewSchemaQuery, byUserOldSchemaQuery, userID)
}

func (s *Postgres) Ping(ctx context.Context) error {
	if err := s.source.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// list tries the new-schema query and, only on a missing column, retries once with the old one
func (s *Postgres) list(ctx context.Context, newQuery, oldQuery string, arg any) ([]models.Dream, models.Schema, error) {
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	conn, release, err := s.source.Acquire(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer release()

	dreams, err := queryDreams(ctx, conn, newQuery, arg, scanNewSchema)
	if err == nil {
		return dreams, models.SchemaNew, nil
	}
	if !IsUndefinedColumn(err) {
		return nil, "", fmt.Errorf("failed to query dreams: %w", err)
	}

	dreams, err = queryDreams(ctx, conn, oldQuery, arg, scanOldSchema)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query dreams with old schema: %w", err)
	}
	return dreams, models.SchemaOld, nil
}

func queryDreams(ctx context.Context, conn querier, query string, arg any, scan func(pgx.Rows) (models.Dream, error)) ([]models.Dream, error) {
	rows, err := conn.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dreams := make([]models.Dream, 0)
	for rows.Next() {
		dream, err := scan(rows)
		if err != nil {
			return nil, err
		}
		dreams = append(dreams, dream)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dreams, nil
}

func scanNewSchema(rows pgx.Rows) (models.Dream, error) {
	var d models.Dream
	err := rows.Scan(&d.ID, &d.Title, &d.Prompt, &d.Likes, &d.CreatedAt, &d.Tags)
	return d, err
}

func scanOldSchema(rows pgx.Rows) (models.Dream, error) {
	var d models.Dream
	err := rows.Scan(&d.ID, &d.Prompt, &d.CreatedAt)
	return d, err
}

// IsUndefinedColumn reports whether err means the queried table lacks a column.
// Server errors are matched on SQLSTATE; anything else on its message.
func IsUndefinedColumn(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == undefinedColumn
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "column") && strings.Contains(msg, "does not exist")
}
