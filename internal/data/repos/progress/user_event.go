package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/escuelanichiboku/nichiboku-backend/internal/domain"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
)

type UserEventRepo interface {
	// Append inserts one ledger entry. The ledger is append-only:
	// nothing here reads, updates, or deletes existing rows.
	Append(ctx context.Context, tx *gorm.DB, event *types.UserEvent) (*types.UserEvent, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.UserEvent, error)
	GetByUserAndType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, eventType string) ([]*types.UserEvent, error)
}

type userEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserEventRepo(db *gorm.DB, baseLog *logger.Logger) UserEventRepo {
	return &userEventRepo{db: db, log: baseLog.With("repo", "UserEventRepo")}
}

func (r *userEventRepo) Append(ctx context.Context, tx *gorm.DB, event *types.UserEvent) (*types.UserEvent, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if event == nil || event.UserID == uuid.Nil {
		return nil, nil
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	if err := t.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *userEventRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.UserEvent, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.UserEvent
	if userID == uuid.Nil {
		return out, nil
	}
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *userEventRepo) GetByUserAndType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, eventType string) ([]*types.UserEvent, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.UserEvent
	if userID == uuid.Nil || eventType == "" {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, eventType).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
