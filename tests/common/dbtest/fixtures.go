//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// inserts an active product owned by sellerID with the given stock counters
func CreateTestProduct(t *testing.T, db DBLike, sellerID uuid.UUID, price string, stock, reserved int32) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx, `INSERT INTO products (id, seller_id, name, price, sku, vertical, stock, reserved_stock)
		VALUES ($1, $2, $3, $4::numeric, $5, 'general', $6, $7)`,
		productID, sellerID, "Test product", price, "SKU-"+productID.String()[:8], stock, reserved)
	require.NoError(t, err)

	return productID
}

type StockCounters struct {
	Stock    int32
	Reserved int32
	Consumed int32
}

func (s StockCounters) Available() int32 { return s.Stock - s.Reserved }

func GetStock(t *testing.T, db DBLike, productID uuid.UUID) StockCounters {
	t.Helper()

	var s StockCounters
	err := db.QueryRow(context.Background(),
		"SELECT stock, reserved_stock, consumed_stock FROM products WHERE id = $1", productID).
		Scan(&s.Stock, &s.Reserved, &s.Consumed)
	require.NoError(t, err)
	return s
}

// returns Σ CREDIT − Σ DEBIT for the user as text with two decimals
func GetBalance(t *testing.T, db DBLike, userID uuid.UUID) string {
	t.Helper()

	var balance string
	err := db.QueryRow(context.Background(), `
		SELECT to_char(COALESCE(SUM(CASE WHEN type = 'CREDIT' THEN amount ELSE -amount END), 0), 'FM999999999990.00')
		FROM ledger_entries WHERE user_id = $1`, userID).Scan(&balance)
	require.NoError(t, err)
	return balance
}

func CountRows(t *testing.T, db DBLike, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
