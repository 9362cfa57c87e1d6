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

type ScreenProgressRepo interface {
	// CreateIfAbsent inserts the guard row unless one already exists
	// for (user, screen key). Reports whether this call created it.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, row *types.ScreenProgress) (bool, error)
	Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID, screenKey string) (*types.ScreenProgress, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ScreenProgress, error)
}

type screenProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScreenProgressRepo(db *gorm.DB, baseLog *logger.Logger) ScreenProgressRepo {
	return &screenProgressRepo{db: db, log: baseLog.With("repo", "ScreenProgressRepo")}
}

func (r *screenProgressRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, row *types.ScreenProgress) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.UserID == uuid.Nil || row.ScreenKey == "" {
		return false, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	res := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "screen_key"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *screenProgressRepo) Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID, screenKey string) (*types.ScreenProgress, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || screenKey == "" {
		return nil, nil
	}
	var row types.ScreenProgress
	err := t.WithContext(ctx).
		Where("user_id = ? AND screen_key = ?", userID, screenKey).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *screenProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ScreenProgress, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ScreenProgress
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
