package progress

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/escuelanichiboku/nichiboku-backend/internal/data/repos/testutil"
	types "github.com/escuelanichiboku/nichiboku-backend/internal/domain"
)

func TestUserEventRepoAppend(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserEventRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "userevent@example.com")

	e1, err := repo.Append(ctx, tx, &types.UserEvent{
		UserID: u.ID,
		Type:   types.EventScreenCompleted,
		Amount: 10,
		Meta:   datatypes.JSON([]byte(`{"screenKey":"B6_Restaurante"}`)),
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if e1.ID.String() == "" || e1.CreatedAt.IsZero() {
		t.Fatalf("Append: id/timestamp not assigned: %+v", e1)
	}

	if _, err := repo.Append(ctx, tx, &types.UserEvent{
		UserID: u.ID,
		Type:   types.EventXPAwarded,
		Amount: 25,
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	all, err := repo.GetByUserID(ctx, tx, u.ID, 10)
	if err != nil || len(all) != 2 {
		t.Fatalf("GetByUserID: err=%v len=%d", err, len(all))
	}

	byType, err := repo.GetByUserAndType(ctx, tx, u.ID, types.EventScreenCompleted)
	if err != nil || len(byType) != 1 {
		t.Fatalf("GetByUserAndType: err=%v len=%d", err, len(byType))
	}
	if byType[0].Amount != 10 {
		t.Fatalf("GetByUserAndType: got %+v", byType[0])
	}
}
