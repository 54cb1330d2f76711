package orders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/de-tools/revenue-atlas/pkg/store/duckdb"
)

// Store supports ingestion (Add) and windowed reads of orders.
type Store interface {
	Add(ctx context.Context, records []store.OrderRecord) error
	// GetOrders returns orders dated after start and up to and including end.
	GetOrders(ctx context.Context, start, end time.Time) ([]store.OrderRecord, error)
	GetOrderStats(ctx context.Context) (*store.OrderStats, error)
}

type orderStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &orderStore{
		db: db,
	}, nil
}

func (o *orderStore) Add(ctx context.Context, records []store.OrderRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx := duckdb.GetTransaction(ctx)
	query := `
		INSERT INTO orders (
			id, customer, product, status, amount, order_date
		) VALUES (
			?, ?, ?, ?, ?, ?
		)`

	var stmt *sql.Stmt
	var err error
	if tx == nil {
		stmt, err = o.db.PrepareContext(ctx, query)
	} else {
		stmt, err = tx.PrepareContext(ctx, query)
	}

	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err = stmt.ExecContext(ctx,
			record.ID,
			record.Customer,
			record.Product,
			record.Status,
			record.Amount,
			record.OrderDate,
		)

		if err != nil {
			return fmt.Errorf("insert order %s: %w", record.ID, err)
		}
	}

	return nil
}

func (o *orderStore) GetOrders(ctx context.Context, start, end time.Time) ([]store.OrderRecord, error) {
	query := `
		SELECT id, customer, product, status, amount, order_date
		FROM orders
		WHERE order_date > ? AND order_date <= ?
		ORDER BY order_date ASC, id ASC
	`
	rows, err := o.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()
	return scanOrderRows(rows)
}

func (o *orderStore) GetOrderStats(ctx context.Context) (*store.OrderStats, error) {
	query := `SELECT COUNT(*), MIN(order_date), MAX(order_date) FROM orders`

	var total int64
	var first, last sql.NullTime
	if err := o.db.QueryRowContext(ctx, query).Scan(&total, &first, &last); err != nil {
		return nil, fmt.Errorf("get order stats: %w", err)
	}

	stats := &store.OrderStats{OrdersCount: total}
	if first.Valid {
		t := first.Time
		stats.FirstOrderDate = &t
	}
	if last.Valid {
		t := last.Time
		stats.LastOrderDate = &t
	}
	return stats, nil
}

func scanOrderRows(rows *sql.Rows) ([]store.OrderRecord, error) {
	records := make([]store.OrderRecord, 0)
	for rows.Next() {
		var (
			id                        string
			customer, product, status sql.NullString
			amount                    float64
			orderDate                 time.Time
		)
		if err := rows.Scan(&id, &customer, &product, &status, &amount, &orderDate); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		records = append(records, store.OrderRecord{
			ID:        id,
			Customer:  customer.String,
			Product:   product.String,
			Status:    status.String,
			Amount:    amount,
			OrderDate: orderDate,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return records, nil
}
