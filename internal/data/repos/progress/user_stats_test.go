package progress

import (
	"context"
	"testing"
	"time"

	"github.com/escuelanichiboku/nichiboku-backend/internal/data/repos/testutil"
	types "github.com/escuelanichiboku/nichiboku-backend/internal/domain"
)

func TestUserStatsRepoAddPoints(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserStatsRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "userstats@example.com")
	day1 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	// First delta initializes the row.
	if err := repo.AddPoints(ctx, tx, u.ID, 10, day1); err != nil {
		t.Fatalf("AddPoints init: %v", err)
	}
	got, err := repo.Get(ctx, tx, u.ID)
	if err != nil || got == nil {
		t.Fatalf("Get: err=%v row=%+v", err, got)
	}
	if got.Points != 10 || got.WeeklyProgress != 10 {
		t.Fatalf("init totals: %+v", got)
	}
	if got.WeeklyGoal != types.DefaultWeeklyGoal {
		t.Fatalf("init weekly goal: %d", got.WeeklyGoal)
	}
	if got.StreakCount != 1 || got.StreakUpdatedOn != "2026-03-02" {
		t.Fatalf("init streak: %+v", got)
	}

	// Second delta on the same day increments totals, streak stays.
	if err := repo.AddPoints(ctx, tx, u.ID, 25, day1.Add(2*time.Hour)); err != nil {
		t.Fatalf("AddPoints same day: %v", err)
	}
	got, _ = repo.Get(ctx, tx, u.ID)
	if got.Points != 35 || got.WeeklyProgress != 35 || got.StreakCount != 1 {
		t.Fatalf("same-day totals: %+v", got)
	}

	// Next day advances the streak.
	if err := repo.AddPoints(ctx, tx, u.ID, 5, day1.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("AddPoints next day: %v", err)
	}
	got, _ = repo.Get(ctx, tx, u.ID)
	if got.StreakCount != 2 || got.StreakUpdatedOn != "2026-03-03" {
		t.Fatalf("next-day streak: %+v", got)
	}

	// A gap resets the streak to 1.
	if err := repo.AddPoints(ctx, tx, u.ID, 5, day1.AddDate(0, 0, 4)); err != nil {
		t.Fatalf("AddPoints after gap: %v", err)
	}
	got, _ = repo.Get(ctx, tx, u.ID)
	if got.StreakCount != 1 || got.StreakUpdatedOn != "2026-03-06" {
		t.Fatalf("gap streak: %+v", got)
	}
	if got.Points != 45 {
		t.Fatalf("final points: %+v", got)
	}
}

func TestUserStatsRepoDeltasCommute(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserStatsRepo(db, testutil.Logger(t))
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	a := testutil.SeedUser(t, ctx, tx, "commute-a@example.com")
	b := testutil.SeedUser(t, ctx, tx, "commute-b@example.com")

	if err := repo.AddPoints(ctx, tx, a.ID, 10, now); err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	if err := repo.AddPoints(ctx, tx, a.ID, 25, now); err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	if err := repo.AddPoints(ctx, tx, b.ID, 25, now); err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	if err := repo.AddPoints(ctx, tx, b.ID, 10, now); err != nil {
		t.Fatalf("AddPoints: %v", err)
	}

	sa, _ := repo.Get(ctx, tx, a.ID)
	sb, _ := repo.Get(ctx, tx, b.ID)
	if sa == nil || sb == nil {
		t.Fatalf("missing stats rows")
	}
	if sa.Points != sb.Points || sa.Points != 35 {
		t.Fatalf("order should not matter: a=%d b=%d", sa.Points, sb.Points)
	}
	if sa.WeeklyProgress != sb.WeeklyProgress || sa.WeeklyProgress != 35 {
		t.Fatalf("weekly progress diverged: a=%d b=%d", sa.WeeklyProgress, sb.WeeklyProgress)
	}
}
