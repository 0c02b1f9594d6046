// Package slot provides the durable slot backing the Digiteria document: a
// single serialized JSON blob held under one fixed key.
//
// Four drivers are available, selected by the STORE_SLOT config key:
//
//	memory    — process-local only; nothing survives a restart
//	file      — one JSON file on disk (the default)
//	database  — one row in SQL via GORM (sqlite/postgres/mysql/sqlserver)
//	redis     — one Redis key; also supports cross-process change watching
//
// The slot never interprets the payload. Parse failures and fallback to the
// seed document are handled one level up, in app/store.
package slot

import (
	"fmt"

	"github.com/shashiranjanraj/digiteria/config"
)

// Slot durably holds one serialized document.
type Slot interface {
	// Load returns the stored payload. ok is false when the slot has never
	// been written (first run).
	Load() (payload []byte, ok bool, err error)

	// Save replaces the stored payload in full. Last writer wins.
	Save(payload []byte) error
}

// Watcher is implemented by slots that can observe writes made by other
// processes. onChange fires after an external write; the caller is expected
// to re-Load and overwrite its in-memory state unconditionally.
type Watcher interface {
	Watch(onChange func()) (stop func(), err error)
}

// Open builds the slot named by the STORE_SLOT config key.
func Open() (Slot, error) {
	driver := config.StoreSlotDriver()
	switch driver {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(config.StoreFilePath()), nil
	case "database":
		return OpenDatabase()
	case "redis":
		return OpenRedis()
	default:
		return nil, fmt.Errorf("slot: unknown driver %q", driver)
	}
}
