package records

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordColumns = []string{"id", "data", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	repo := NewPostgresRepository(db)
	repo.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	repo.newID = func() string { return "generated-id" }
	return repo, mock, func() { _ = db.Close() }
}

func q(s string) string { return "^" + regexp.QuoteMeta(s) + "$" }

func TestQuery_FiltersAndOrder(t *testing.T) {
	repo, mock, closeFn := newRepoWithMock(t)
	defer closeFn()
	ctx := context.Background()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(q("SELECT id, data, created_at, updated_at FROM records WHERE collection = $1 AND data ->> $2::text = $3 AND data ->> $4::text = $5 ORDER BY created_at DESC")).
		WithArgs("stations", "district", "North", "isActive", "true").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("s1", []byte(`{"name":"Alpha","district":"North","isActive":true}`), created, created))

	got, err := repo.Query(ctx, common.CollectionStations, Query{
		Filters: []Filter{{Field: "district", Value: "North"}, {Field: "isActive", Value: true}},
		Order:   &Order{Field: FieldCreatedAt, Desc: true},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0][FieldID])
	assert.Equal(t, "Alpha", got[0]["name"])
	assert.Equal(t, created, got[0][FieldCreatedAt])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_OrderByPayloadField(t *testing.T) {
	repo, mock, closeFn := newRepoWithMock(t)
	defer closeFn()

	mock.ExpectQuery(q("SELECT id, data, created_at, updated_at FROM records WHERE collection = $1 ORDER BY data ->> $2::text ASC")).
		WithArgs("useful_links", "name").
		WillReturnRows(sqlmock.NewRows(recordColumns))

	got, err := repo.Query(context.Background(), common.CollectionUsefulLinks, Query{Order: &Order{Field: "name"}})
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_DBError(t *testing.T) {
	repo, mock, closeFn := newRepoWithMock(t)
	defer closeFn()

	mock.ExpectQuery("SELECT id, data").WillReturnError(errors.New("conn reset"))

	_, err := repo.Query(context.Background(), common.CollectionDocuments, Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select documents")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_BadPayload(t *testing.T) {
	repo, mock, closeFn := newRepoWithMock(t)
	defer closeFn()

	now := time.Now()
	mock.ExpectQuery("SELECT id, data").
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow("x", []byte(`{not json`), now, now))

	_, err := repo.Query(context.Background(), common.CollectionGallery, Query{})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock, closeFn := newRepoWithMock(t)
	defer closeFn()
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectQuery(q("SELECT id, data, created_at, updated_at FROM records WHERE collection = $1 AND id = $2")).
		WithArgs("rankMaster", "PSI").
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow("PSI", []byte(`{"rank_label":"Sub Inspector"}`), now, now))

	rec, err := repo.GetByID(ctx, common.CollectionRanks, "PSI")
	require.NoError(t, err)
	assert.Equal(t, "Sub Inspector", rec["rank_label"])
	assert.Equal(t, "PSI", rec[FieldID])

	mock.ExpectQuery("SELECT id, data").WithArgs("rankMaster", "NOPE").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(ctx, common.CollectionRanks, "NOPE")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UsesGeneratedIDAndStripsColumns(t *testing.T) {
	repo, mock, closeFn := newRepoWithMock(t)
	defer closeFn()

	created := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(q("INSERT INTO records (collection, id, data, created_at, updated_at) VALUES ($1, $2, $3::jsonb, $4, $5)")).
		WithArgs("documents", "generated-id", `{"title":"Form A"}`, created, repo.now()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.Create(context.Background(), common.CollectionDocuments, models.RawRecord{
		"id":        "ignored",
		"title":     "Form A",
		"createdAt": created,
	})
	require.NoError(t, err)
	assert.Equal(t, "generated-id", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_Conflict(t *testing.T) {
	repo, mock, closeFn := newRepoWithMock(t)
	defer closeFn()

	mock.ExpectExec("INSERT INTO records").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Put(context.Background(), common.CollectionRanks, "PSI", models.RawRecord{"rank_label": "x"})
	require.ErrorIs(t, err, common.ErrorConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_EmptyID(t *testing.T) {
	repo, mock, closeFn := newRepoWithMock(t)
	defer closeFn()

	err := repo.Put(context.Background(), common.CollectionRanks, "  ", models.RawRecord{})
	require.ErrorIs(t, err, common.ErrorValidation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	repo, mock, closeFn := newRepoWithMock(t)
	defer closeFn()
	ctx := context.Background()

	mock.ExpectExec(q("UPDATE records SET data = data || $1::jsonb, updated_at = $2 WHERE collection = $3 AND id = $4")).
		WithArgs(`{"name":"New"}`, repo.now(), "officers", "o1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(ctx, common.CollectionOfficers, "o1", models.RawRecord{"name": "New", "createdAt": "ignored"}))

	mock.ExpectExec("UPDATE records").WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Update(ctx, common.CollectionOfficers, "missing", models.RawRecord{"name": "x"}), common.ErrorNotFound)

	mock.ExpectExec("UPDATE records").WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))
	err := repo.Update(ctx, common.CollectionOfficers, "o1", models.RawRecord{"name": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows affected error")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock, closeFn := newRepoWithMock(t)
	defer closeFn()
	ctx := context.Background()

	mock.ExpectExec(q("DELETE FROM records WHERE collection = $1 AND id = $2")).
		WithArgs("gallery", "g1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(ctx, common.CollectionGallery, "g1"))

	mock.ExpectExec("DELETE FROM records").WillReturnError(errors.New("boom"))
	err := repo.Delete(ctx, common.CollectionGallery, "g1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")

	require.NoError(t, mock.ExpectationsWereMet())
}
