package persistence

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate appends a SELECT ... FOR UPDATE locking clause on databases that
// support row locks. SQLite serializes writers at the database level, so the
// clause is omitted there (it is also a syntax error).
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
