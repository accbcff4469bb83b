package postgres_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/client/ledger/postgres"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/helpers"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/logger"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/mocks"
	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.InitLogger("test")
}

type fakeRow struct {
	value []byte
	err   error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.value
	return nil
}

// fakeDB keeps rows in a map and records executed statements
type fakeDB struct {
	rows    map[string][]byte
	execs   []string
	args    [][]interface{}
	execErr error
	pingErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{rows: make(map[string][]byte)}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	f.args = append(f.args, args)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	if strings.HasPrefix(sql, "INSERT") {
		f.rows[args[0].(string)] = args[1].([]byte)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...interface{}) pgx.Row {
	v, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: v}
}

func (f *fakeDB) Ping(context.Context) error {
	return f.pingErr
}

func TestStore_EnsureSchema(t *testing.T) {
	db := newFakeDB()
	store := postgres.New(db, nil)

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], "CREATE TABLE IF NOT EXISTS ledger_entries")

	db.execErr = errors.New("permission denied")
	assert.Error(t, store.EnsureSchema(context.Background()))
}

func TestStore_GetSet(t *testing.T) {
	db := newFakeDB()
	store := postgres.New(db, nil)
	ctx := context.Background()

	v, err := store.GetData(ctx, "route_keys")
	require.NoError(t, err)
	assert.Nil(t, v)

	receipt, err := store.SetData(ctx, "route_keys", []byte(`["a"]`))
	require.NoError(t, err)
	assert.True(t, receipt.Succeeded())
	assert.Equal(t, "postgres", receipt.Backend)
	assert.Equal(t, "postgres", store.Backend())

	v, err = store.GetData(ctx, "route_keys")
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, string(v))
}

func TestStore_GetDataError(t *testing.T) {
	db := &errRowDB{fakeDB: newFakeDB()}
	store := postgres.New(db, nil)

	_, err := store.GetData(context.Background(), "route_keys")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "route_keys")
}

type errRowDB struct {
	*fakeDB
}

func (e *errRowDB) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return fakeRow{err: errors.New("connection reset")}
}

func TestStore_IsAvailable(t *testing.T) {
	db := newFakeDB()
	store := postgres.New(db, nil)

	ok, err := store.IsAvailable(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	db.pingErr = errors.New("dial tcp: refused")
	ok, err = store.IsAvailable(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SetDataSigner(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := mocks.NewMockWalletProvider(ctrl)
	signer := mocks.NewMockSigner(ctrl)
	owner := common.HexToAddress("0x52908400098527886E0F7030069857D2E4169EE7")

	t.Run("records signer", func(t *testing.T) {
		db := newFakeDB()
		wallet.EXPECT().Signer().Return(signer, nil)
		signer.EXPECT().Approve(gomock.Any(), "setData(route_1)").Return(nil)
		signer.EXPECT().Address().Return(owner)

		_, err := postgres.New(db, wallet).SetData(context.Background(), "route_1", []byte("{}"))
		require.NoError(t, err)
		require.Len(t, db.args, 1)
		assert.Equal(t, owner.Hex(), db.args[0][3])
	})

	t.Run("rejection skips the write", func(t *testing.T) {
		db := newFakeDB()
		wallet.EXPECT().Signer().Return(signer, nil)
		signer.EXPECT().Approve(gomock.Any(), gomock.Any()).Return(helpers.ErrUserRejected)

		_, err := postgres.New(db, wallet).SetData(context.Background(), "route_1", []byte("{}"))
		assert.ErrorIs(t, err, helpers.ErrUserRejected)
		assert.Empty(t, db.execs)
	})
}
