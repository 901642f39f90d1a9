package repository

import (
	"context"
	"errors"
	"team-planning/internal/models"

	"gorm.io/gorm"
)

type GormLeaveRequestRepository struct {
	db *gorm.DB
}

func NewGormLeaveRequestRepository(db *gorm.DB) (*GormLeaveRequestRepository, error) {
	if err := db.AutoMigrate(&models.LeaveRequest{}); err != nil {
		return nil, err
	}
	return &GormLeaveRequestRepository{db: db}, nil
}

func (r *GormLeaveRequestRepository) Create(ctx context.Context, req *models.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *GormLeaveRequestRepository) GetAll(ctx context.Context) ([]models.LeaveRequest, error) {
	var list []models.LeaveRequest
	err := r.db.WithContext(ctx).Order("submitted_at ASC").Find(&list).Error
	return list, err
}

func (r *GormLeaveRequestRepository) GetByID(ctx context.Context, id string) (*models.LeaveRequest, error) {
	var req models.LeaveRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *GormLeaveRequestRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.LeaveRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
