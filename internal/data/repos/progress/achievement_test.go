package progress

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/escuelanichiboku/nichiboku-backend/internal/data/repos/testutil"
	types "github.com/escuelanichiboku/nichiboku-backend/internal/domain"
)

func TestAchievementRepoCreateIfAbsent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewAchievementRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "achievement@example.com")
	now := time.Now().UTC()

	row := &types.UserAchievement{
		UserID:        u.ID,
		AchievementID: "restaurante_basico_n5",
		UnlockedAt:    now,
		XP:            10,
		Sub:           "Restaurante en Japón (N5)",
		Meta:          datatypes.JSON([]byte(`{"screenKey":"B6_Restaurante"}`)),
	}
	created, err := repo.CreateIfAbsent(ctx, tx, row)
	if err != nil || !created {
		t.Fatalf("CreateIfAbsent first unlock: created=%v err=%v", created, err)
	}

	repeat := &types.UserAchievement{
		UserID:        u.ID,
		AchievementID: "restaurante_basico_n5",
		UnlockedAt:    now.Add(time.Hour),
		XP:            10,
	}
	created, err = repo.CreateIfAbsent(ctx, tx, repeat)
	if err != nil {
		t.Fatalf("CreateIfAbsent repeat unlock: %v", err)
	}
	if created {
		t.Fatalf("CreateIfAbsent repeat unlock: unlocked twice")
	}

	got, err := repo.Get(ctx, tx, u.ID, "restaurante_basico_n5")
	if err != nil || got == nil {
		t.Fatalf("Get: err=%v row=%+v", err, got)
	}
	if got.XP != 10 || got.Sub != "Restaurante en Japón (N5)" {
		t.Fatalf("Get: got %+v", got)
	}

	if created, err := repo.CreateIfAbsent(ctx, tx, &types.UserAchievement{
		UserID:        u.ID,
		AchievementID: "n5_explorador",
		UnlockedAt:    now,
	}); err != nil || !created {
		t.Fatalf("CreateIfAbsent second achievement: created=%v err=%v", created, err)
	}

	rows, err := repo.GetByUserID(ctx, tx, u.ID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetByUserID: err=%v len=%d", err, len(rows))
	}
}
