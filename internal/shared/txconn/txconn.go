// Package txconn lets gorm repositories join a transaction that was opened
// on the underlying *sql.DB by the service layer.
package txconn

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Conn returns a session on db bound to ctx. When tx is not nil every
// statement built from the returned session runs inside tx.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	conn := db.WithContext(ctx)
	if tx != nil {
		conn.Statement.ConnPool = tx
	}
	return conn
}
