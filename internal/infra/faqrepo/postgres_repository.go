package faqrepo

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/faq-autoreply/internal/domain/faq"
)

const entriesTable = "faq_entries"

var (
	psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	entryColumns = []string{"id", "question", "answer", "keywords", "language", "is_active", "created_at", "updated_at"}
)

// PostgresRepository implements faq.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get fetches an entry by primary key.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (faq.Entry, bool, error) {
	query, args, err := psql.Select(entryColumns...).
		From(entriesTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return faq.Entry{}, false, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return faq.Entry{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return faq.Entry{}, false, rows.Err()
	}
	entry, err := scanEntry(rows)
	if err != nil {
		return faq.Entry{}, false, err
	}
	return entry, true, rows.Err()
}

// List returns entries matching the filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter faq.ListFilter) ([]faq.Entry, error) {
	builder := psql.Select(entryColumns...).
		From(entriesTable).
		OrderBy("created_at DESC", "id ASC")
	if filter.Language != "" {
		builder = builder.Where(squirrel.Eq{"language": filter.Language})
	}
	if filter.Active != nil {
		builder = builder.Where(squirrel.Eq{"is_active": *filter.Active})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []faq.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// Insert stores a new entry; keywords are persisted in their comma separated form.
func (r *PostgresRepository) Insert(ctx context.Context, entry faq.NewEntry) (faq.Entry, error) {
	query, args, err := psql.Insert(entriesTable).
		Columns("question", "answer", "keywords", "language", "is_active").
		Values(entry.Question, entry.Answer, entry.Keywords.String(), entry.Language, entry.IsActive).
		Suffix("RETURNING " + strings.Join(entryColumns, ", ")).
		ToSql()
	if err != nil {
		return faq.Entry{}, err
	}
	return scanEntry(r.pool.QueryRow(ctx, query, args...))
}

// Delete removes an entry and reports whether a row existed.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := psql.Delete(entriesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, err
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Toggle flips is_active and stamps updated_at in one statement.
func (r *PostgresRepository) Toggle(ctx context.Context, id int64, at time.Time) (faq.Entry, bool, error) {
	query, args, err := psql.Update(entriesTable).
		Set("is_active", squirrel.Expr("NOT is_active")).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(entryColumns, ", ")).
		ToSql()
	if err != nil {
		return faq.Entry{}, false, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return faq.Entry{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return faq.Entry{}, false, rows.Err()
	}
	entry, err := scanEntry(rows)
	if err != nil {
		return faq.Entry{}, false, err
	}
	return entry, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (faq.Entry, error) {
	var (
		entry    faq.Entry
		keywords string
		updated  sql.NullTime
	)
	if err := row.Scan(
		&entry.ID,
		&entry.Question,
		&entry.Answer,
		&keywords,
		&entry.Language,
		&entry.IsActive,
		&entry.CreatedAt,
		&updated,
	); err != nil {
		return faq.Entry{}, err
	}
	entry.Keywords = faq.ParseKeywords(keywords)
	if updated.Valid {
		ts := updated.Time
		entry.UpdatedAt = &ts
	}
	return entry, nil
}

var _ faq.Repository = (*PostgresRepository)(nil)
