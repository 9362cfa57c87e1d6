package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/escuelanichiboku/nichiboku-backend/internal/awards"
	"github.com/escuelanichiboku/nichiboku-backend/internal/data/repos"
	types "github.com/escuelanichiboku/nichiboku-backend/internal/domain"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/ctxutil"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
)

// Skip reasons reported by the award entry points. A skipped award is a
// normal outcome, not an error.
const (
	ReasonNoUser         = "no-uid"
	ReasonNoConfig       = "no-config"
	ReasonWrongMode      = "wrong-mode"
	ReasonAlreadyAwarded = "already-awarded"
)

type AwardResult struct {
	Awarded       bool   `json:"awarded"`
	Reason        string `json:"reason,omitempty"`
	ScreenKey     string `json:"screen_key"`
	Points        int    `json:"points"`
	AchievementID string `json:"achievement_id,omitempty"`
}

type UnlockResult struct {
	Unlocked      bool   `json:"unlocked"`
	Reason        string `json:"reason,omitempty"`
	AchievementID string `json:"achievement_id"`
	XP            int    `json:"xp"`
}

type AwardService interface {
	AwardOnEnter(ctx context.Context, screenKey string, meta map[string]any) (*AwardResult, error)
	AwardOnSuccess(ctx context.Context, screenKey string, meta map[string]any) (*AwardResult, error)
	GetAwardMode(screenKey string) (awards.Mode, bool)
	AwardAchievement(ctx context.Context, achievementID string, xp int, sub string, meta map[string]any) (*UnlockResult, error)
	GrantXP(ctx context.Context, amount int, reason string) error
}

type awardService struct {
	db           *gorm.DB
	log          *logger.Logger
	rules        *awards.RuleSet
	milestones   []awards.Milestone
	userRepo     repos.UserRepo
	progressRepo repos.ScreenProgressRepo
	achRepo      repos.AchievementRepo
	statsRepo    repos.UserStatsRepo
	eventRepo    repos.UserEventRepo
}

func NewAwardService(
	db *gorm.DB,
	baseLog *logger.Logger,
	rules *awards.RuleSet,
	milestones []awards.Milestone,
	userRepo repos.UserRepo,
	progressRepo repos.ScreenProgressRepo,
	achRepo repos.AchievementRepo,
	statsRepo repos.UserStatsRepo,
	eventRepo repos.UserEventRepo,
) AwardService {
	return &awardService{
		db:           db,
		log:          baseLog.With("service", "AwardService"),
		rules:        rules,
		milestones:   milestones,
		userRepo:     userRepo,
		progressRepo: progressRepo,
		achRepo:      achRepo,
		statsRepo:    statsRepo,
		eventRepo:    eventRepo,
	}
}

func (s *awardService) AwardOnEnter(ctx context.Context, screenKey string, meta map[string]any) (*AwardResult, error) {
	return s.awardFromScreen(ctx, screenKey, awards.ModeOnEnter, meta)
}

func (s *awardService) AwardOnSuccess(ctx context.Context, screenKey string, meta map[string]any) (*AwardResult, error) {
	return s.awardFromScreen(ctx, screenKey, awards.ModeOnSuccess, meta)
}

func (s *awardService) GetAwardMode(screenKey string) (awards.Mode, bool) {
	return s.rules.Mode(screenKey)
}

// awardFromScreen runs the full first-completion flow for one screen. The
// progress guard, point increment, achievement unlock and ledger rows all
// commit in a single transaction, so a crash mid-way never leaves a guard
// row without its points.
func (s *awardService) awardFromScreen(ctx context.Context, screenKey string, mode awards.Mode, meta map[string]any) (*AwardResult, error) {
	key := awards.Normalize(screenKey)
	res := &AwardResult{ScreenKey: key}

	uid := ctxutil.UserID(ctx)
	if uid == uuid.Nil {
		res.Reason = ReasonNoUser
		return res, nil
	}

	rule, ok := s.rules.Resolve(key)
	if !ok {
		res.Reason = ReasonNoConfig
		return res, nil
	}
	if rule.Mode != mode {
		res.Reason = ReasonWrongMode
		return res, nil
	}

	res.Points = rule.Points
	res.AchievementID = rule.AchievementID

	var metaJSON datatypes.JSON
	if len(meta) > 0 {
		b, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("marshal screen meta: %w", err)
		}
		metaJSON = datatypes.JSON(b)
	}

	now := time.Now().UTC()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := s.progressRepo.CreateIfAbsent(ctx, tx, &types.ScreenProgress{
			UserID:        uid,
			ScreenKey:     key,
			CompletedAt:   now,
			Points:        rule.Points,
			AchievementID: rule.AchievementID,
			Meta:          metaJSON,
		})
		if err != nil {
			return fmt.Errorf("screen progress guard: %w", err)
		}
		if !created {
			res.Reason = ReasonAlreadyAwarded
			return nil
		}
		res.Awarded = true

		if err := s.statsRepo.AddPoints(ctx, tx, uid, rule.Points, now); err != nil {
			return fmt.Errorf("add points: %w", err)
		}
		eventMeta := map[string]any{
			"screenKey":     key,
			"mode":          string(mode),
			"achievementId": rule.AchievementID,
		}
		if len(meta) > 0 {
			eventMeta["meta"] = meta
		}
		if err := s.appendEvent(ctx, tx, uid, types.EventScreenCompleted, rule.Points, eventMeta, now); err != nil {
			return err
		}
		if rule.AchievementID != "" {
			if _, err := s.unlockInTx(ctx, tx, uid, rule.AchievementID, 0, "screen:"+key, nil, now); err != nil {
				return err
			}
		}
		if err := s.userRepo.TouchLastActive(ctx, tx, uid, now); err != nil {
			return fmt.Errorf("touch last active: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("screen award failed", "screenKey", key, "userID", uid, "error", err)
		return nil, err
	}
	if res.Awarded {
		s.checkMilestones(ctx, uid)
	}
	return res, nil
}

func (s *awardService) AwardAchievement(ctx context.Context, achievementID string, xp int, sub string, meta map[string]any) (*UnlockResult, error) {
	achievementID = strings.TrimSpace(achievementID)
	if achievementID == "" {
		return nil, fmt.Errorf("achievement id is empty")
	}
	uid := ctxutil.UserID(ctx)
	if uid == uuid.Nil {
		return &UnlockResult{Reason: ReasonNoUser, AchievementID: achievementID}, nil
	}

	var out *UnlockResult
	now := time.Now().UTC()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := s.unlockInTx(ctx, tx, uid, achievementID, xp, sub, meta, now)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		s.log.Warn("achievement award failed", "achievementID", achievementID, "userID", uid, "error", err)
		return nil, err
	}
	return out, nil
}

// unlockInTx is the single path that writes an achievement. Repeated calls
// for the same (user, achievement) pair are silent no-ops, so unlocks are
// safe to retry and safe to trigger from milestone checks.
func (s *awardService) unlockInTx(ctx context.Context, tx *gorm.DB, uid uuid.UUID, achievementID string, xp int, sub string, meta map[string]any, now time.Time) (*UnlockResult, error) {
	row := &types.UserAchievement{
		UserID:        uid,
		AchievementID: achievementID,
		UnlockedAt:    now,
		XP:            xp,
		Sub:           sub,
	}
	if len(meta) > 0 {
		b, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("marshal achievement meta: %w", err)
		}
		row.Meta = datatypes.JSON(b)
	}
	created, err := s.achRepo.CreateIfAbsent(ctx, tx, row)
	if err != nil {
		return nil, fmt.Errorf("achievement guard: %w", err)
	}
	res := &UnlockResult{Unlocked: created, AchievementID: achievementID, XP: xp}
	if !created {
		res.Reason = ReasonAlreadyAwarded
		return res, nil
	}
	if xp > 0 {
		if err := s.statsRepo.AddPoints(ctx, tx, uid, xp, now); err != nil {
			return nil, fmt.Errorf("achievement xp: %w", err)
		}
	}
	if err := s.appendEvent(ctx, tx, uid, types.EventAchievementUnlocked, xp, map[string]any{
		"achievementId": achievementID,
		"sub":           sub,
	}, now); err != nil {
		return nil, err
	}
	return res, nil
}

// GrantXP adds points without an idempotency guard. Callers own dedup for
// repeatable sources (quizzes, daily bonuses).
func (s *awardService) GrantXP(ctx context.Context, amount int, reason string) error {
	uid := ctxutil.UserID(ctx)
	if uid == uuid.Nil {
		return fmt.Errorf("not authenticated")
	}
	if amount <= 0 {
		return fmt.Errorf("xp amount must be positive")
	}
	now := time.Now().UTC()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.statsRepo.AddPoints(ctx, tx, uid, amount, now); err != nil {
			return fmt.Errorf("add points: %w", err)
		}
		return s.appendEvent(ctx, tx, uid, types.EventXPAwarded, amount, map[string]any{
			"reason": reason,
		}, now)
	})
	if err != nil {
		s.log.Warn("xp grant failed", "userID", uid, "amount", amount, "error", err)
		return err
	}
	s.checkMilestones(ctx, uid)
	return nil
}

func (s *awardService) appendEvent(ctx context.Context, tx *gorm.DB, uid uuid.UUID, eventType string, amount int, meta map[string]any, now time.Time) error {
	b, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal event meta: %w", err)
	}
	if _, err := s.eventRepo.Append(ctx, tx, &types.UserEvent{
		UserID:    uid,
		Type:      eventType,
		Amount:    amount,
		Meta:      datatypes.JSON(b),
		CreatedAt: now,
	}); err != nil {
		return fmt.Errorf("append %s event: %w", eventType, err)
	}
	return nil
}

// checkMilestones unlocks any threshold achievements the user's totals now
// satisfy. It runs after the triggering transaction committed and never
// fails the caller; a missed milestone is picked up by the next check.
// Milestone unlocks do not re-enter the check, so a points milestone whose
// own XP crosses the next threshold waits for the next award.
func (s *awardService) checkMilestones(ctx context.Context, uid uuid.UUID) {
	if len(s.milestones) == 0 {
		return
	}
	stats, err := s.statsRepo.Get(ctx, nil, uid)
	if err != nil {
		s.log.Warn("milestone stats read failed", "userID", uid, "error", err)
		return
	}
	if stats == nil {
		return
	}
	now := time.Now().UTC()
	for _, m := range s.milestones {
		if !m.Met(stats.Points, stats.StreakCount) {
			continue
		}
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			_, err := s.unlockInTx(ctx, tx, uid, m.AchievementID, m.XP, m.Sub, nil, now)
			return err
		})
		if err != nil {
			s.log.Warn("milestone unlock failed", "userID", uid, "achievementID", m.AchievementID, "error", err)
		}
	}
}
