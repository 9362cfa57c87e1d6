package progress

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/escuelanichiboku/nichiboku-backend/internal/domain"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
)

type AchievementRepo interface {
	// CreateIfAbsent inserts the unlock row unless the achievement was
	// already unlocked for the user. Reports whether this call created
	// it (the "first time" signal).
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, row *types.UserAchievement) (bool, error)
	Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID, achievementID string) (*types.UserAchievement, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserAchievement, error)
}

type achievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
	return &achievementRepo{db: db, log: baseLog.With("repo", "AchievementRepo")}
}

func (r *achievementRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, row *types.UserAchievement) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.UserID == uuid.Nil || row.AchievementID == "" {
		return false, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	res := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *achievementRepo) Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID, achievementID string) (*types.UserAchievement, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || achievementID == "" {
		return nil, nil
	}
	var row types.UserAchievement
	err := t.WithContext(ctx).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *achievementRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserAchievement, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.UserAchievement
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
