package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const OrdersTableSchema = `
	CREATE TABLE IF NOT EXISTS orders (
		id VARCHAR NOT NULL PRIMARY KEY,
		customer VARCHAR,
		product VARCHAR,
		status VARCHAR,
		amount DOUBLE NOT NULL,
		order_date DATE NOT NULL
	);
`

const OrdersDateIndex = `
	CREATE INDEX IF NOT EXISTS orders_order_date_idx ON orders (order_date);
`

var bootQueries = []string{
	OrdersTableSchema,
	OrdersDateIndex,
}

type Settings struct {
	DbPath  string
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = 4
	}

	dsn := fmt.Sprintf("%s?threads=%d", settings.DbPath, threads)
	c, err := duckdb.NewConnector(dsn, func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
