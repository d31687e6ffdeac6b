package migration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/questdb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const recordSQL = "INSERT INTO schema_migrations (id, name, applied, recorded_at) VALUES ($1, $2, $3, now())"

func writeMigrations(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"20250101000000_create_bars.up.sql":   "-- bars\nCREATE TABLE bars (ts TIMESTAMP);\nALTER TABLE bars ADD COLUMN volume LONG;",
		"20250101000000_create_bars.down.sql": "DROP TABLE bars;",
		"20250102000000_add_index.up.sql":     "ALTER TABLE bars ALTER COLUMN bar_type ADD INDEX;",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

// appliedRows makes Query return the given (id, applied) rows in order.
func appliedRows(ctrl *gomock.Controller, rows ...[2]any) *mock.MockRowsInterface {
	r := mock.NewMockRowsInterface(ctrl)
	calls := []any{}
	for _, row := range rows {
		row := row
		calls = append(calls,
			r.EXPECT().Next().Return(true),
			r.EXPECT().Scan(gomock.Any(), gomock.Any()).DoAndReturn(func(dest ...any) error {
				*dest[0].(*string) = row[0].(string)
				*dest[1].(*bool) = row[1].(bool)
				return nil
			}),
		)
	}
	calls = append(calls, r.EXPECT().Next().Return(false))
	gomock.InOrder(calls...)
	r.EXPECT().Close()
	r.EXPECT().Err().Return(nil)
	return r
}

func TestSplitStatements(t *testing.T) {
	got := SplitStatements("-- comment\nCREATE TABLE a (x INT);\n\n;ALTER TABLE a ADD COLUMN y INT;  ")
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "ALTER TABLE a ADD COLUMN y INT"}, got)
}

func TestRunner_LoadMigrations(t *testing.T) {
	r := NewRunner(nil, logger.NewNop(), writeMigrations(t))

	migrations, err := r.LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "20250101000000_create_bars", migrations[0].ID)
	assert.Equal(t, "create_bars", migrations[0].Name)
	assert.Equal(t, 2025, migrations[0].Timestamp.Year())
	assert.Equal(t, "DROP TABLE bars;", migrations[0].DownSQL)
	assert.Empty(t, migrations[1].DownSQL)
}

func TestRunner_GetAppliedMigrations(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockQuestDBClient(ctrl)
	rows := appliedRows(ctrl,
		[2]any{"a", true},
		[2]any{"b", true},
		[2]any{"a", false},
	)
	client.EXPECT().Query(gomock.Any(), gomock.Any()).Return(rows, nil)

	applied, err := NewRunner(client, logger.NewNop(), "").GetAppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"b": true}, applied)
}

func TestRunner_MigrateUp(t *testing.T) {
	testCases := []struct {
		name     string
		steps    int
		mockFn   func(ctrl *gomock.Controller, client *mock.MockQuestDBClient)
		assertFn func(t *testing.T, err error)
	}{
		{
			name:  "applies pending migrations",
			steps: 0,
			mockFn: func(ctrl *gomock.Controller, client *mock.MockQuestDBClient) {
				client.EXPECT().Query(gomock.Any(), gomock.Any()).Return(appliedRows(ctrl, [2]any{"20250101000000_create_bars", true}), nil)
				gomock.InOrder(
					client.EXPECT().Exec(gomock.Any(), "ALTER TABLE bars ALTER COLUMN bar_type ADD INDEX").Return(nil),
					client.EXPECT().Exec(gomock.Any(), recordSQL, "20250102000000_add_index", "add_index", true).Return(nil),
				)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:  "limits by steps and runs each statement",
			steps: 1,
			mockFn: func(ctrl *gomock.Controller, client *mock.MockQuestDBClient) {
				client.EXPECT().Query(gomock.Any(), gomock.Any()).Return(appliedRows(ctrl), nil)
				gomock.InOrder(
					client.EXPECT().Exec(gomock.Any(), "CREATE TABLE bars (ts TIMESTAMP)").Return(nil),
					client.EXPECT().Exec(gomock.Any(), "ALTER TABLE bars ADD COLUMN volume LONG").Return(nil),
					client.EXPECT().Exec(gomock.Any(), recordSQL, "20250101000000_create_bars", "create_bars", true).Return(nil),
				)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:  "stops on exec failure",
			steps: 0,
			mockFn: func(ctrl *gomock.Controller, client *mock.MockQuestDBClient) {
				client.EXPECT().Query(gomock.Any(), gomock.Any()).Return(appliedRows(ctrl), nil)
				client.EXPECT().Exec(gomock.Any(), "CREATE TABLE bars (ts TIMESTAMP)").Return(errors.New("table exists"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "failed to apply migration 20250101000000_create_bars")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock.NewMockQuestDBClient(ctrl)
			tc.mockFn(ctrl, client)

			r := NewRunner(client, logger.NewNop(), writeMigrations(t))
			tc.assertFn(t, r.MigrateUp(context.Background(), tc.steps))
		})
	}
}

func TestRunner_MigrateDown(t *testing.T) {
	t.Run("rejects non positive steps", func(t *testing.T) {
		r := NewRunner(nil, logger.NewNop(), "")
		assert.Error(t, r.MigrateDown(context.Background(), 0))
	})

	t.Run("reverts latest applied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewMockQuestDBClient(ctrl)
		client.EXPECT().Query(gomock.Any(), gomock.Any()).Return(appliedRows(ctrl, [2]any{"20250101000000_create_bars", true}), nil)
		gomock.InOrder(
			client.EXPECT().Exec(gomock.Any(), "DROP TABLE bars").Return(nil),
			client.EXPECT().Exec(gomock.Any(), recordSQL, "20250101000000_create_bars", "create_bars", false).Return(nil),
		)

		r := NewRunner(client, logger.NewNop(), writeMigrations(t))
		assert.NoError(t, r.MigrateDown(context.Background(), 1))
	})

	t.Run("fails without down sql", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewMockQuestDBClient(ctrl)
		client.EXPECT().Query(gomock.Any(), gomock.Any()).Return(appliedRows(ctrl, [2]any{"20250102000000_add_index", true}), nil)

		r := NewRunner(client, logger.NewNop(), writeMigrations(t))
		assert.ErrorContains(t, r.MigrateDown(context.Background(), 1), "no DOWN SQL")
	})
}
