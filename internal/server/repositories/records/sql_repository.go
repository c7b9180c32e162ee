package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/dbx"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/timex"
	"github.com/google/uuid"
)

// SQLRepository stores records in the records table over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db      dbx.DBTX
	dialect dialect
	now     func() time.Time
	newID   func() string
}

// NewPostgresRepository binds a repository to a Postgres (pgx) handle.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return newSQLRepository(db, postgresDialect)
}

// NewSQLiteRepository binds a repository to a SQLite handle.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return newSQLRepository(db, sqliteDialect)
}

func newSQLRepository(db dbx.DBTX, d dialect) *SQLRepository {
	return &SQLRepository{
		db:      db,
		dialect: d,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.NewString() },
	}
}

// Query returns the records of collection matching every filter.
func (r *SQLRepository) Query(ctx context.Context, collection string, q Query) ([]models.RawRecord, error) {
	ph := r.dialect.placeholder
	args := []any{collection}

	var sb strings.Builder
	sb.WriteString("SELECT id, data, created_at, updated_at FROM records WHERE collection = ")
	sb.WriteString(ph(1))

	for _, f := range q.Filters {
		if f.Field == FieldID {
			args = append(args, textArg(f.Value))
			fmt.Fprintf(&sb, " AND id = %s", ph(len(args)))
			continue
		}
		args = append(args, f.Field)
		field := r.dialect.field(ph(len(args)))
		args = append(args, r.dialect.filterArg(f.Value))
		fmt.Fprintf(&sb, " AND %s = %s", field, ph(len(args)))
	}

	if q.Order != nil {
		dir := "ASC"
		if q.Order.Desc {
			dir = "DESC"
		}
		switch q.Order.Field {
		case FieldCreatedAt:
			fmt.Fprintf(&sb, " ORDER BY created_at %s", dir)
		case FieldUpdatedAt:
			fmt.Fprintf(&sb, " ORDER BY updated_at %s", dir)
		default:
			args = append(args, q.Order.Field)
			fmt.Fprintf(&sb, " ORDER BY %s %s", r.dialect.field(ph(len(args))), dir)
		}
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", collection, err)
	}
	defer rows.Close()

	var result []models.RawRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns common.ErrorNotFound when the record does not exist.
func (r *SQLRepository) GetByID(ctx context.Context, collection, id string) (models.RawRecord, error) {
	ph := r.dialect.placeholder
	query := fmt.Sprintf("SELECT id, data, created_at, updated_at FROM records WHERE collection = %s AND id = %s", ph(1), ph(2))

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, collection, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select %s/%s: %w", collection, id, err)
	}
	return rec, nil
}

// Create stores data under a fresh id and returns it.
func (r *SQLRepository) Create(ctx context.Context, collection string, data models.RawRecord) (string, error) {
	id := r.newID()
	if err := r.Put(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (r *SQLRepository) Put(ctx context.Context, collection, id string, data models.RawRecord) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty id", common.ErrorValidation)
	}
	now := r.now()
	createdAt := now
	if t, ok := timeValue(data[FieldCreatedAt]); ok {
		createdAt = t.UTC()
	}

	payload, err := encodePayload(data)
	if err != nil {
		return err
	}

	ph := r.dialect.placeholder
	query := fmt.Sprintf(
		"INSERT INTO records (collection, id, data, created_at, updated_at) VALUES (%s, %s, %s, %s, %s)",
		ph(1), ph(2), r.dialect.jsonParam(ph(3)), ph(4), ph(5))

	if _, err := r.db.ExecContext(ctx, query, collection, id, payload, createdAt, now); err != nil {
		if r.dialect.uniqueViolation(err) {
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update merges partial into the stored payload. A nil value clears the
// field.
func (r *SQLRepository) Update(ctx context.Context, collection, id string, partial models.RawRecord) error {
	payload, err := encodePayload(partial)
	if err != nil {
		return err
	}

	ph := r.dialect.placeholder
	query := fmt.Sprintf(
		"UPDATE records SET data = %s, updated_at = %s WHERE collection = %s AND id = %s",
		r.dialect.merge(ph(1)), ph(2), ph(3), ph(4))

	res, err := r.db.ExecContext(ctx, query, payload, r.now(), collection, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) Delete(ctx context.Context, collection, id string) error {
	ph := r.dialect.placeholder
	query := fmt.Sprintf("DELETE FROM records WHERE collection = %s AND id = %s", ph(1), ph(2))

	res, err := r.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (models.RawRecord, error) {
	var (
		id        string
		data      []byte
		createdAt time.Time
		updatedAt time.Time
	)
	if err := s.Scan(&id, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rec := models.RawRecord{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", id, err)
		}
	}
	rec[FieldID] = id
	rec[FieldCreatedAt] = createdAt
	rec[FieldUpdatedAt] = updatedAt
	return rec, nil
}

// encodePayload serialises data without the column-backed keys.
func encodePayload(data models.RawRecord) (string, error) {
	payload := make(map[string]any, len(data))
	for k, v := range data {
		switch k {
		case FieldID, FieldCreatedAt, FieldUpdatedAt:
			continue
		}
		payload[k] = v
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: encode record: %v", common.ErrorValidation, err)
	}
	return string(b), nil
}

func timeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		return timex.ParseLoose(t)
	default:
		return time.Time{}, false
	}
}
