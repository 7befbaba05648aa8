package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"intraday-levels/internal/model"
)

type SessionLevelRepository interface {
	Upsert(ctx context.Context, level *model.SessionLevel) error
	Get(ctx context.Context, param model.GetSessionLevelParam) (*model.SessionLevel, error)
	DeleteOlderThan(ctx context.Context, dateKey string) (int64, error)
}

type sessionLevelRepository struct {
	db *gorm.DB
}

func NewSessionLevelRepository(db *gorm.DB) SessionLevelRepository {
	return &sessionLevelRepository{db: db}
}

func (s *sessionLevelRepository) Upsert(ctx context.Context, level *model.SessionLevel) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "session_id"}, {Name: "date_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "levels", "shelves", "locked_at", "updated_at"}),
	}).Create(level).Error
}

func (s *sessionLevelRepository) Get(ctx context.Context, param model.GetSessionLevelParam) (*model.SessionLevel, error) {
	var level model.SessionLevel
	err := s.db.WithContext(ctx).
		Where("symbol = ?", param.Symbol).
		Where("session_id = ?", param.SessionID).
		Where("date_key = ?", param.DateKey).
		First(&level).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &level, nil
}

func (s *sessionLevelRepository) DeleteOlderThan(ctx context.Context, dateKey string) (int64, error) {
	db := s.db.WithContext(ctx).Where("date_key < ?", dateKey).Delete(&model.SessionLevel{})
	if db.Error != nil {
		return 0, db.Error
	}
	return db.RowsAffected, nil
}
