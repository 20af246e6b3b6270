package iodownload

import (
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Attempt statuses recorded in the manifest.
const (
	statusFetched = "fetched"
	statusCached  = "cached"
	statusFailed  = "failed"
)

// Attempt is one acquisition attempt for one photo. Every run appends
// its own rows, so the manifest doubles as an audit trail across
// resumed runs.
type Attempt struct {
	ID        uint   `gorm:"primaryKey"`
	RunID     string `gorm:"index"`
	PhotoID   int64  `gorm:"index"`
	URL       string
	Path      string
	Status    string `gorm:"index"`
	Error     string
	CreatedAt time.Time
}

// manifest wraps the SQLite database tracking acquisition attempts.
type manifest struct {
	db   *gorm.DB
	path string
}

// openManifest opens (or creates) the manifest database and migrates
// its schema.
func openManifest(path string) (*manifest, error) {
	db, err := gorm.Open(
		sqlite.Open(path),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, ManifestError(path, err)
	}

	if err = db.AutoMigrate(&Attempt{}); err != nil {
		return nil, ManifestError(path, err)
	}

	return &manifest{db: db, path: path}, nil
}

// record appends one attempt row.
func (m *manifest) record(a *Attempt) error {
	if err := m.db.Create(a).Error; err != nil {
		return ManifestError(m.path, err)
	}
	return nil
}

// close releases the underlying database handle.
func (m *manifest) close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return ManifestError(m.path, err)
	}
	return sqlDB.Close()
}
