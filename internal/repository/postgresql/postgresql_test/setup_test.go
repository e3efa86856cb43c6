package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/cmlabs-hris/workflow-erp/internal/pkg/database"
	"github.com/cmlabs-hris/workflow-erp/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBErr  error
	testDBOnce sync.Once
)

// tables in truncation order; CASCADE takes care of the rest
var testTables = []string{
	"refresh_tokens",
	"attendance_breaks",
	"attendances",
	"leave_requests",
	"leave_balances",
	"leave_policies",
	"invoices",
	"users",
	"employees",
	"settings",
}

// openTestDB connects to TEST_DATABASE_URL once, applies migrations and
// empties every table. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(dsn)
		if testDBErr != nil {
			return
		}
		testDBErr = postgresql.Migrate(context.Background(), testDB)
	})
	require.NoError(t, testDBErr)

	truncateAll(t)
	t.Cleanup(func() { truncateAll(t) })
	return testDB
}

func truncateAll(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for _, table := range testTables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "truncate %s", table)
	}
}
