package progress

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/escuelanichiboku/nichiboku-backend/internal/data/repos/testutil"
	types "github.com/escuelanichiboku/nichiboku-backend/internal/domain"
)

func TestScreenProgressRepoCreateIfAbsent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewScreenProgressRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "screenprogress@example.com")
	now := time.Now().UTC()

	row := &types.ScreenProgress{
		UserID:        u.ID,
		ScreenKey:     "QuizCultural",
		CompletedAt:   now,
		Points:        50,
		AchievementID: "n5_quiz_mapache",
		Meta:          datatypes.JSON([]byte(`{"score":100}`)),
	}
	created, err := repo.CreateIfAbsent(ctx, tx, row)
	if err != nil || !created {
		t.Fatalf("CreateIfAbsent first call: created=%v err=%v", created, err)
	}

	dup := &types.ScreenProgress{
		UserID:      u.ID,
		ScreenKey:   "QuizCultural",
		CompletedAt: now.Add(time.Minute),
		Points:      50,
	}
	created, err = repo.CreateIfAbsent(ctx, tx, dup)
	if err != nil {
		t.Fatalf("CreateIfAbsent repeat call: %v", err)
	}
	if created {
		t.Fatalf("CreateIfAbsent repeat call: guard row created twice")
	}

	got, err := repo.Get(ctx, tx, u.ID, "QuizCultural")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Points != 50 || got.AchievementID != "n5_quiz_mapache" {
		t.Fatalf("Get: got %+v", got)
	}

	// A different screen for the same user is independent.
	other := &types.ScreenProgress{UserID: u.ID, ScreenKey: "N1ExamScreen", CompletedAt: now, Points: 150}
	if created, err := repo.CreateIfAbsent(ctx, tx, other); err != nil || !created {
		t.Fatalf("CreateIfAbsent other screen: created=%v err=%v", created, err)
	}

	rows, err := repo.GetByUserID(ctx, tx, u.ID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetByUserID: err=%v len=%d", err, len(rows))
	}
}

func TestScreenProgressRepoGetMissing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewScreenProgressRepo(db, testutil.Logger(t))
	got, err := repo.Get(context.Background(), tx, uuid.New(), "CursoN5Screen")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("Get: expected nil for missing row, got %+v", got)
	}
}
