package slot

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/digiteria/config"
	"github.com/shashiranjanraj/digiteria/pkg/database"
)

// documentRow is the single-row table backing the database slot. The whole
// document is one payload column — there is deliberately no per-entity
// schema here.
type documentRow struct {
	Key       string `gorm:"primaryKey;size:64"`
	Payload   []byte
	UpdatedAt time.Time
}

func (documentRow) TableName() string { return "store_documents" }

// Database stores the payload in one row of a SQL table via GORM. The SQL
// driver (sqlite/postgres/mysql/sqlserver) follows DB_DRIVER, exactly like
// the rest of the app.
type Database struct {
	db  *gorm.DB
	key string
}

// OpenDatabase connects (or reuses the app-wide connection) and ensures the
// backing table exists.
func OpenDatabase() (*Database, error) {
	if database.DB == nil {
		if err := database.Connect(); err != nil {
			return nil, fmt.Errorf("slot/db: %w", err)
		}
	}
	if err := database.DB.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("slot/db: migrate: %w", err)
	}
	return &Database{db: database.DB, key: config.StoreKey()}, nil
}

func (d *Database) Load() ([]byte, bool, error) {
	var row documentRow
	err := d.db.First(&row, "key = ?", d.key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("slot/db: load: %w", err)
	}
	return row.Payload, true, nil
}

func (d *Database) Save(payload []byte) error {
	row := documentRow{Key: d.key, Payload: payload, UpdatedAt: time.Now()}
	err := d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("slot/db: save: %w", err)
	}
	return nil
}
