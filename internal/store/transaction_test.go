package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInTransaction(t *testing.T) {
	fnErr := errors.New("function failed")

	tests := []struct {
		name      string
		setup     func(mock sqlmock.Sqlmock)
		fn        TxFn
		wantErr   error
		wantErrIn string
	}{
		{
			name: "commit on success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO oauth_users").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, "INSERT INTO oauth_users (user_id) VALUES ($1)", "u1")
				return err
			},
		},
		{
			name: "rollback on function error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:      func(ctx context.Context, tx *sql.Tx) error { return fnErr },
			wantErr: fnErr,
		},
		{
			name: "begin fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("connection refused"))
			},
			fn:        func(ctx context.Context, tx *sql.Tx) error { return nil },
			wantErrIn: "failed to begin transaction",
		},
		{
			name: "commit fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
			},
			fn:        func(ctx context.Context, tx *sql.Tx) error { return nil },
			wantErrIn: "failed to commit transaction",
		},
		{
			name: "rollback fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback().WillReturnError(errors.New("conn closed"))
			},
			fn:        func(ctx context.Context, tx *sql.Tx) error { return fnErr },
			wantErr:   fnErr,
			wantErrIn: "error rolling back transaction",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			tc.setup(mock)
			err = RunInTransaction(context.Background(), db, tc.fn)

			if tc.wantErr == nil && tc.wantErrIn == "" {
				assert.NoError(t, err)
			}
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.wantErrIn != "" {
				assert.ErrorContains(t, err, tc.wantErrIn)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunInTransactionPanic(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreErrors(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.False(t, IsNotFoundError(ErrDuplicate))

	err := NewStoreError("user", "create", "insert failed", ErrDuplicate)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, "create operation on user failed: insert failed: entity already exists", err.Error())
	assert.Equal(t, "get operation on user failed: missing", NewStoreError("user", "get", "missing", nil).Error())
}
