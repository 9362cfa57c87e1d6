package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/escuelanichiboku/nichiboku-backend/internal/awards"
	"github.com/escuelanichiboku/nichiboku-backend/internal/data/repos"
	"github.com/escuelanichiboku/nichiboku-backend/internal/data/repos/testutil"
	types "github.com/escuelanichiboku/nichiboku-backend/internal/domain"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/ctxutil"
	"github.com/escuelanichiboku/nichiboku-backend/internal/services"
)

type awardFixture struct {
	db       *gorm.DB
	svc      services.AwardService
	stats    repos.UserStatsRepo
	events   repos.UserEventRepo
	progress repos.ScreenProgressRepo
	ach      repos.AchievementRepo
	ctx      context.Context
	userID   uuid.UUID
}

func newAwardFixture(t *testing.T, rules *awards.RuleSet, milestones []awards.Milestone) *awardFixture {
	t.Helper()
	db := testutil.FreshDB(t)
	log := testutil.Logger(t)

	f := &awardFixture{
		db:       db,
		stats:    repos.NewUserStatsRepo(db, log),
		events:   repos.NewUserEventRepo(db, log),
		progress: repos.NewScreenProgressRepo(db, log),
		ach:      repos.NewAchievementRepo(db, log),
	}
	f.svc = services.NewAwardService(
		db, log, rules, milestones,
		repos.NewUserRepo(db, log),
		f.progress, f.ach, f.stats, f.events,
	)
	u := testutil.SeedUser(t, context.Background(), db, uuid.New().String()+"@example.com")
	f.userID = u.ID
	f.ctx = ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: u.ID})
	return f
}

func testRules(t *testing.T) *awards.RuleSet {
	t.Helper()
	return awards.NewRuleSet(
		map[string]awards.Rule{
			"Home":            {Points: 5, Mode: awards.ModeOnEnter},
			"B6_Restaurante":  {Points: 10, Mode: awards.ModeOnSuccess, AchievementID: "restaurante_basico_n5"},
			"N3_B3_U3_Quiz":   {Points: 35, Mode: awards.ModeOnSuccess},
		},
		nil,
	)
}

func (f *awardFixture) mustStats(t *testing.T) *types.UserStats {
	t.Helper()
	s, err := f.stats.Get(context.Background(), nil, f.userID)
	if err != nil {
		t.Fatalf("stats get: %v", err)
	}
	return s
}

func (f *awardFixture) eventsOfType(t *testing.T, typ string) []*types.UserEvent {
	t.Helper()
	evs, err := f.events.GetByUserAndType(context.Background(), nil, f.userID, typ)
	if err != nil {
		t.Fatalf("events get: %v", err)
	}
	return evs
}

func TestAwardOnEnterIdempotent(t *testing.T) {
	f := newAwardFixture(t, testRules(t), nil)

	first, err := f.svc.AwardOnEnter(f.ctx, "Home", nil)
	if err != nil {
		t.Fatalf("AwardOnEnter: %v", err)
	}
	if !first.Awarded || first.Points != 5 {
		t.Fatalf("first call: %+v", first)
	}

	for i := 0; i < 4; i++ {
		res, err := f.svc.AwardOnEnter(f.ctx, "Home", nil)
		if err != nil {
			t.Fatalf("repeat %d: %v", i, err)
		}
		if res.Awarded || res.Reason != services.ReasonAlreadyAwarded {
			t.Fatalf("repeat %d: %+v", i, res)
		}
	}

	s := f.mustStats(t)
	if s.Points != 5 {
		t.Fatalf("points = %d, want 5", s.Points)
	}
	if evs := f.eventsOfType(t, types.EventScreenCompleted); len(evs) != 1 {
		t.Fatalf("screen_completed events = %d, want 1", len(evs))
	}
}

func TestAwardConcurrentSingleWinner(t *testing.T) {
	f := newAwardFixture(t, testRules(t), nil)

	const racers = 8
	results := make([]*services.AwardResult, racers)
	var g errgroup.Group
	for i := 0; i < racers; i++ {
		i := i
		g.Go(func() error {
			res, err := f.svc.AwardOnSuccess(f.ctx, "N3_B3_U3_Quiz", nil)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent awards: %v", err)
	}

	awarded := 0
	for _, r := range results {
		if r.Awarded {
			awarded++
		} else if r.Reason != services.ReasonAlreadyAwarded {
			t.Fatalf("loser reason = %q", r.Reason)
		}
	}
	if awarded != 1 {
		t.Fatalf("awarded = %d, want exactly 1", awarded)
	}
	if s := f.mustStats(t); s.Points != 35 {
		t.Fatalf("points = %d, want 35", s.Points)
	}
}

func TestAwardModeGating(t *testing.T) {
	f := newAwardFixture(t, testRules(t), nil)

	res, err := f.svc.AwardOnEnter(f.ctx, "B6_Restaurante", nil)
	if err != nil {
		t.Fatalf("enter on success-screen: %v", err)
	}
	if res.Awarded || res.Reason != services.ReasonWrongMode {
		t.Fatalf("enter on success-screen: %+v", res)
	}

	res, err = f.svc.AwardOnSuccess(f.ctx, "Home", nil)
	if err != nil {
		t.Fatalf("success on enter-screen: %v", err)
	}
	if res.Awarded || res.Reason != services.ReasonWrongMode {
		t.Fatalf("success on enter-screen: %+v", res)
	}

	if s := f.mustStats(t); s != nil {
		t.Fatalf("stats row created on gated call: %+v", s)
	}
}

func TestAwardSkipReasons(t *testing.T) {
	f := newAwardFixture(t, testRules(t), nil)

	res, err := f.svc.AwardOnEnter(f.ctx, "UnknownScreen", nil)
	if err != nil {
		t.Fatalf("unknown screen: %v", err)
	}
	if res.Awarded || res.Reason != services.ReasonNoConfig {
		t.Fatalf("unknown screen: %+v", res)
	}

	res, err = f.svc.AwardOnEnter(context.Background(), "Home", nil)
	if err != nil {
		t.Fatalf("anonymous: %v", err)
	}
	if res.Awarded || res.Reason != services.ReasonNoUser {
		t.Fatalf("anonymous: %+v", res)
	}
}

func TestScreenAwardUnlocksRuleAchievement(t *testing.T) {
	f := newAwardFixture(t, testRules(t), nil)

	res, err := f.svc.AwardOnSuccess(f.ctx, "B6_Restaurante.tsx", nil)
	if err != nil {
		t.Fatalf("AwardOnSuccess: %v", err)
	}
	if !res.Awarded || res.Points != 10 || res.AchievementID != "restaurante_basico_n5" {
		t.Fatalf("result: %+v", res)
	}

	row, err := f.ach.Get(context.Background(), nil, f.userID, "restaurante_basico_n5")
	if err != nil || row == nil {
		t.Fatalf("achievement row: %v %v", row, err)
	}
	if row.XP != 0 {
		t.Fatalf("rule achievements carry no xp, got %d", row.XP)
	}
	if evs := f.eventsOfType(t, types.EventAchievementUnlocked); len(evs) != 1 {
		t.Fatalf("achievement_unlocked events = %d, want 1", len(evs))
	}
	if s := f.mustStats(t); s.Points != 10 {
		t.Fatalf("points = %d, want 10 (no extra from achievement)", s.Points)
	}
}

func TestScreenAwardPersistsMeta(t *testing.T) {
	f := newAwardFixture(t, testRules(t), nil)

	meta := map[string]any{"source": "quiz", "score": float64(90)}
	res, err := f.svc.AwardOnSuccess(f.ctx, "N3_B3_U3_Quiz", meta)
	if err != nil {
		t.Fatalf("AwardOnSuccess: %v", err)
	}
	if !res.Awarded {
		t.Fatalf("result: %+v", res)
	}

	row, err := f.progress.Get(context.Background(), nil, f.userID, "N3_B3_U3_Quiz")
	if err != nil || row == nil {
		t.Fatalf("progress row: %v %v", row, err)
	}
	var stored map[string]any
	if err := json.Unmarshal(row.Meta, &stored); err != nil {
		t.Fatalf("unmarshal progress meta: %v", err)
	}
	if stored["source"] != "quiz" || stored["score"] != float64(90) {
		t.Fatalf("progress meta = %v", stored)
	}

	evs := f.eventsOfType(t, types.EventScreenCompleted)
	if len(evs) != 1 {
		t.Fatalf("screen_completed events = %d, want 1", len(evs))
	}
	var evMeta map[string]any
	if err := json.Unmarshal(evs[0].Meta, &evMeta); err != nil {
		t.Fatalf("unmarshal event meta: %v", err)
	}
	nested, ok := evMeta["meta"].(map[string]any)
	if !ok || nested["source"] != "quiz" {
		t.Fatalf("event meta = %v", evMeta)
	}
}

func TestAwardAchievementIdempotentWithXP(t *testing.T) {
	f := newAwardFixture(t, testRules(t), nil)

	first, err := f.svc.AwardAchievement(f.ctx, "quiz_perfecto", 50, "n5", map[string]any{"score": 100})
	if err != nil {
		t.Fatalf("AwardAchievement: %v", err)
	}
	if !first.Unlocked || first.XP != 50 {
		t.Fatalf("first unlock: %+v", first)
	}

	second, err := f.svc.AwardAchievement(f.ctx, "quiz_perfecto", 50, "n5", nil)
	if err != nil {
		t.Fatalf("repeat unlock: %v", err)
	}
	if second.Unlocked || second.Reason != services.ReasonAlreadyAwarded {
		t.Fatalf("repeat unlock: %+v", second)
	}

	anon, err := f.svc.AwardAchievement(context.Background(), "quiz_perfecto", 50, "n5", nil)
	if err != nil {
		t.Fatalf("anonymous unlock: %v", err)
	}
	if anon.Unlocked || anon.Reason != services.ReasonNoUser {
		t.Fatalf("anonymous unlock: %+v", anon)
	}

	if s := f.mustStats(t); s.Points != 50 {
		t.Fatalf("points = %d, want 50 (xp granted once)", s.Points)
	}
	if evs := f.eventsOfType(t, types.EventAchievementUnlocked); len(evs) != 1 {
		t.Fatalf("achievement_unlocked events = %d, want 1", len(evs))
	}
}

func TestGrantXPNotIdempotent(t *testing.T) {
	f := newAwardFixture(t, testRules(t), nil)

	for i := 0; i < 2; i++ {
		if err := f.svc.GrantXP(f.ctx, 25, "quiz"); err != nil {
			t.Fatalf("GrantXP %d: %v", i, err)
		}
	}
	if s := f.mustStats(t); s.Points != 50 {
		t.Fatalf("points = %d, want 50", s.Points)
	}
	if evs := f.eventsOfType(t, types.EventXPAwarded); len(evs) != 2 {
		t.Fatalf("xp_awarded events = %d, want 2", len(evs))
	}
}

func TestMilestoneUnlocksAfterThreshold(t *testing.T) {
	milestones := []awards.Milestone{
		{AchievementID: "puntos_30", Kind: awards.MilestonePointsTotal, Threshold: 30, XP: 100, Sub: "hito"},
		{AchievementID: "puntos_120", Kind: awards.MilestonePointsTotal, Threshold: 120, XP: 0, Sub: "hito"},
	}
	f := newAwardFixture(t, testRules(t), milestones)

	if err := f.svc.GrantXP(f.ctx, 25, "quiz"); err != nil {
		t.Fatalf("GrantXP: %v", err)
	}
	if row, _ := f.ach.Get(context.Background(), nil, f.userID, "puntos_30"); row != nil {
		t.Fatalf("milestone unlocked below threshold")
	}

	if err := f.svc.GrantXP(f.ctx, 10, "quiz"); err != nil {
		t.Fatalf("GrantXP: %v", err)
	}
	row, err := f.ach.Get(context.Background(), nil, f.userID, "puntos_30")
	if err != nil || row == nil {
		t.Fatalf("milestone not unlocked: %v %v", row, err)
	}
	if row.XP != 100 {
		t.Fatalf("milestone xp = %d, want 100", row.XP)
	}

	// The milestone's own 100 xp pushes the total past 120, but milestone
	// unlocks do not re-trigger the check until the next award.
	if row, _ := f.ach.Get(context.Background(), nil, f.userID, "puntos_120"); row != nil {
		t.Fatalf("milestone check re-entered itself")
	}
	if s := f.mustStats(t); s.Points != 135 {
		t.Fatalf("points = %d, want 135", s.Points)
	}

	if err := f.svc.GrantXP(f.ctx, 5, "quiz"); err != nil {
		t.Fatalf("GrantXP: %v", err)
	}
	if row, _ := f.ach.Get(context.Background(), nil, f.userID, "puntos_120"); row == nil {
		t.Fatalf("second milestone not picked up by next award")
	}
}
