package progress

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/escuelanichiboku/nichiboku-backend/internal/domain"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
)

type UserStatsRepo interface {
	// AddPoints applies a points delta to the user's aggregate as a
	// single upsert statement: lifetime points and weekly progress are
	// incremented together, the daily streak is advanced, and the row
	// is created with the delta as initial value when missing. Deltas
	// commute, so concurrent callers never lose updates.
	AddPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int, now time.Time) error
	Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserStats, error)
}

type userStatsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserStatsRepo(db *gorm.DB, baseLog *logger.Logger) UserStatsRepo {
	return &userStatsRepo{db: db, log: baseLog.With("repo", "UserStatsRepo")}
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func (r *userStatsRepo) AddPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int, now time.Time) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || delta == 0 {
		return nil
	}

	today := dayKey(now)
	yesterday := dayKey(now.AddDate(0, 0, -1))

	row := &types.UserStats{
		UserID:          userID,
		Points:          delta,
		WeeklyProgress:  delta,
		WeeklyGoal:      types.DefaultWeeklyGoal,
		StreakCount:     1,
		StreakUpdatedOn: today,
		UpdatedAt:       now,
	}

	// Same-day calls leave the streak alone, a consecutive day bumps
	// it, a gap resets it to 1. The whole touch is one statement, so
	// there is no read-modify-write window.
	return t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"points":          gorm.Expr("user_stats.points + excluded.points"),
				"weekly_progress": gorm.Expr("user_stats.weekly_progress + excluded.weekly_progress"),
				"streak_count": gorm.Expr(
					"CASE WHEN user_stats.streak_updated_on = excluded.streak_updated_on THEN user_stats.streak_count"+
						" WHEN user_stats.streak_updated_on = ? THEN user_stats.streak_count + 1"+
						" ELSE 1 END", yesterday),
				"streak_updated_on": gorm.Expr("excluded.streak_updated_on"),
				"updated_at":        now,
			}),
		}).
		Create(row).Error
}

func (r *userStatsRepo) Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserStats, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.UserStats
	err := t.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
