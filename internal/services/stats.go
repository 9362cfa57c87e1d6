package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escuelanichiboku/nichiboku-backend/internal/data/repos"
	types "github.com/escuelanichiboku/nichiboku-backend/internal/domain"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/ctxutil"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
)

type StatsService interface {
	GetStats(ctx context.Context) (*types.UserStats, error)
	ListEvents(ctx context.Context, limit int) ([]*types.UserEvent, error)
	ListProgress(ctx context.Context) ([]*types.ScreenProgress, error)
	ListAchievements(ctx context.Context) ([]*types.UserAchievement, error)
	GetAchievement(ctx context.Context, achievementID string) (*types.UserAchievement, error)
}

type statsService struct {
	db           *gorm.DB
	log          *logger.Logger
	statsRepo    repos.UserStatsRepo
	eventRepo    repos.UserEventRepo
	progressRepo repos.ScreenProgressRepo
	achRepo      repos.AchievementRepo
}

func NewStatsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	statsRepo repos.UserStatsRepo,
	eventRepo repos.UserEventRepo,
	progressRepo repos.ScreenProgressRepo,
	achRepo repos.AchievementRepo,
) StatsService {
	return &statsService{
		db:           db,
		log:          baseLog.With("service", "StatsService"),
		statsRepo:    statsRepo,
		eventRepo:    eventRepo,
		progressRepo: progressRepo,
		achRepo:      achRepo,
	}
}

func (s *statsService) requireUser(ctx context.Context) (uuid.UUID, error) {
	uid := ctxutil.UserID(ctx)
	if uid == uuid.Nil {
		return uuid.Nil, fmt.Errorf("not authenticated")
	}
	return uid, nil
}

// GetStats returns zero-valued stats with the default weekly goal for users
// who have never earned points, so clients always get a renderable shape.
func (s *statsService) GetStats(ctx context.Context) (*types.UserStats, error) {
	uid, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.statsRepo.Get(ctx, nil, uid)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	if stats == nil {
		stats = &types.UserStats{UserID: uid, WeeklyGoal: types.DefaultWeeklyGoal}
	}
	return stats, nil
}

func (s *statsService) ListEvents(ctx context.Context, limit int) ([]*types.UserEvent, error) {
	uid, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.GetByUserID(ctx, nil, uid, limit)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	return events, nil
}

func (s *statsService) ListProgress(ctx context.Context) ([]*types.ScreenProgress, error) {
	uid, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.progressRepo.GetByUserID(ctx, nil, uid)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return rows, nil
}

func (s *statsService) ListAchievements(ctx context.Context) ([]*types.UserAchievement, error) {
	uid, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.achRepo.GetByUserID(ctx, nil, uid)
	if err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	return rows, nil
}

func (s *statsService) GetAchievement(ctx context.Context, achievementID string) (*types.UserAchievement, error) {
	uid, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	row, err := s.achRepo.Get(ctx, nil, uid, achievementID)
	if err != nil {
		return nil, fmt.Errorf("load achievement: %w", err)
	}
	return row, nil
}
