package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/aims/pkg/models/store"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	st, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return &fixture{db: db, store: st}
}

func doc(kind store.Kind, id, body string) store.Document {
	return store.Document{Kind: kind, ID: id, Body: []byte(body)}
}

func TestNewStore(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupFixture(t)
		assert.NotNil(t, f.store)
	})

	t.Run("nil db", func(t *testing.T) {
		st, err := NewStore(nil)
		assert.Error(t, err)
		assert.Nil(t, st)
	})
}

func TestStore_CRUD(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Insert(ctx, doc(store.KindPolicy, "2", `{"id":"2"}`)))
	require.NoError(t, f.store.Insert(ctx, doc(store.KindPolicy, "1", `{"id":"1"}`)))
	require.NoError(t, f.store.Insert(ctx, doc(store.KindIncident, "1", `{"id":"1","title":"t"}`)))

	t.Run("list keeps insertion order per kind", func(t *testing.T) {
		docs, err := f.store.List(ctx, store.KindPolicy)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "2", docs[0].ID)
		assert.Equal(t, "1", docs[1].ID)
		assert.JSONEq(t, `{"id":"2"}`, string(docs[0].Body))
		assert.False(t, docs[0].UpdatedAt.IsZero())
	})

	t.Run("list of empty kind", func(t *testing.T) {
		docs, err := f.store.List(ctx, store.KindRiskAssessment)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("get", func(t *testing.T) {
		got, err := f.store.Get(ctx, store.KindIncident, "1")
		require.NoError(t, err)
		assert.Equal(t, store.KindIncident, got.Kind)
		assert.JSONEq(t, `{"id":"1","title":"t"}`, string(got.Body))
	})

	t.Run("duplicate insert fails", func(t *testing.T) {
		err := f.store.Insert(ctx, doc(store.KindPolicy, "1", `{}`))
		assert.Error(t, err)
	})

	t.Run("update", func(t *testing.T) {
		require.NoError(t, f.store.Update(ctx, doc(store.KindPolicy, "1", `{"id":"1","name":"v2"}`)))
		got, err := f.store.Get(ctx, store.KindPolicy, "1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"1","name":"v2"}`, string(got.Body))

		docs, err := f.store.List(ctx, store.KindPolicy)
		require.NoError(t, err)
		assert.Equal(t, "2", docs[0].ID, "update must not reorder")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, f.store.Delete(ctx, store.KindPolicy, "2"))
		_, err := f.store.Get(ctx, store.KindPolicy, "2")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing ids", func(t *testing.T) {
		_, err := f.store.Get(ctx, store.KindPolicy, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, f.store.Update(ctx, doc(store.KindPolicy, "nope", `{}`)), ErrNotFound)
		assert.ErrorIs(t, f.store.Delete(ctx, store.KindPolicy, "nope"), ErrNotFound)
		assert.ErrorIs(t, f.store.Delete(ctx, store.KindAiSystem, "1"), ErrNotFound, "ids are scoped by kind")
	})
}

func TestStore_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	st, err := NewStore(db)
	require.NoError(t, err)
	ctx := context.Background()
	boom := errors.New("disk I/O error")

	t.Run("list query", func(t *testing.T) {
		mock.ExpectQuery("SELECT kind, id, body, updated_at FROM documents").
			WithArgs("policy").
			WillReturnError(boom)

		_, err := st.List(ctx, store.KindPolicy)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "list policy failed")
	})

	t.Run("list scan", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"kind", "id", "body", "updated_at"}).
			AddRow("policy", "1", `{}`, "not a time")
		mock.ExpectQuery("SELECT kind, id, body, updated_at FROM documents").WillReturnRows(rows)

		_, err := st.List(ctx, store.KindPolicy)
		assert.Error(t, err)
	})

	t.Run("list rows", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"kind", "id", "body", "updated_at"}).
			AddRow("incident", "1", `{"id":"1"}`, now).
			AddRow("incident", "2", `{"id":"2"}`, now)
		mock.ExpectQuery("SELECT kind, id, body, updated_at FROM documents").
			WithArgs("incident").
			WillReturnRows(rows)

		docs, err := st.List(ctx, store.KindIncident)
		require.NoError(t, err)
		assert.Len(t, docs, 2)
		assert.Equal(t, now, docs[1].UpdatedAt)
	})

	t.Run("insert", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO documents").
			WithArgs("ai_system", "9", `{}`, sqlmock.AnyArg()).
			WillReturnError(boom)

		err := st.Insert(ctx, doc(store.KindAiSystem, "9", `{}`))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("update", func(t *testing.T) {
		mock.ExpectExec("UPDATE documents").WillReturnError(boom)

		err := st.Update(ctx, doc(store.KindAiSystem, "9", `{}`))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("delete not found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents").
			WithArgs("incident", "9").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := st.Delete(ctx, store.KindIncident, "9")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewDB_File(t *testing.T) {
	path := t.TempDir() + "/aims.db"
	ctx := context.Background()

	db, err := NewDB(Settings{DbPath: path})
	require.NoError(t, err)
	st, err := NewStore(db)
	require.NoError(t, err)
	require.NoError(t, st.Insert(ctx, doc(store.KindSetting, "compliance", `{"complianceProgress":40}`)))
	require.NoError(t, db.Close())

	db, err = NewDB(Settings{DbPath: path})
	require.NoError(t, err)
	defer db.Close()
	st, err = NewStore(db)
	require.NoError(t, err)

	got, err := st.Get(ctx, store.KindSetting, "compliance")
	require.NoError(t, err)
	assert.JSONEq(t, `{"complianceProgress":40}`, string(got.Body))
}
