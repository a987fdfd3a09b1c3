package utils

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockForUpdate applies a row-level lock to the query on dialects that
// support it. SQLite (used by the test suite) has no FOR UPDATE syntax; its
// single-writer transactions provide the equivalent serialization.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
