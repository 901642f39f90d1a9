package repository

import (
	"context"
	"team-planning/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormPlanningRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormPlanningRepository(db *gorm.DB) (*GormPlanningRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.DayStatus{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate day_statuses table")
		return nil, err
	}

	return &GormPlanningRepository{db: db, logger: logger}, nil
}

func (r *GormPlanningRepository) GetRange(ctx context.Context, from, to string) (models.PlanningMap, error) {
	var rows []models.DayStatus
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	plan := make(models.PlanningMap)
	for _, row := range rows {
		plan.Set(row)
	}
	return plan, nil
}

func (r *GormPlanningRepository) Upsert(ctx context.Context, days []models.DayStatus) error {
	if len(days) == 0 {
		return nil
	}

	rows := make([]models.DayStatus, len(days))
	copy(rows, days)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "member"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "note", "updated_at"}),
	}).CreateInBatches(&rows, 200).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to upsert day statuses")
		return err
	}

	r.logger.WithField("count", len(rows)).Debug("Day statuses upserted")
	return nil
}
