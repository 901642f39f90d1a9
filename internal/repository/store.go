package repository

import (
	"context"
	"fmt"
	"team-planning/internal/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Store bundles the repositories of one backend.
type Store struct {
	Planning PlanningRepository
	Requests LeaveRequestRepository
	closeFn  func() error
}

func (s *Store) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// Open connects the backend selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	logrus.WithField("backend", cfg.StoreBackend).Info("Opening store")

	switch cfg.StoreBackend {
	case config.BackendJSON:
		return OpenJSON(cfg.DataDir)
	case config.BackendSQLite:
		return OpenGorm(sqlite.Open(cfg.DatabaseURL))
	case config.BackendMySQL:
		return OpenGorm(mysql.Open(cfg.DatabaseURL))
	case config.BackendSheets:
		client, err := NewSheetsClient(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentialsFile)
		if err != nil {
			return nil, err
		}
		return &Store{
			Planning: NewSheetsPlanningRepository(client),
			Requests: NewSheetsLeaveRequestRepository(client),
		}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func OpenJSON(dir string) (*Store, error) {
	planning, err := NewJSONPlanningRepository(dir)
	if err != nil {
		return nil, err
	}
	requests, err := NewJSONLeaveRequestRepository(dir)
	if err != nil {
		return nil, err
	}
	return &Store{Planning: planning, Requests: requests}, nil
}

func OpenGorm(dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	planning, err := NewGormPlanningRepository(db)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	requests, err := NewGormLeaveRequestRepository(db)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &Store{Planning: planning, Requests: requests, closeFn: sqlDB.Close}, nil
}
