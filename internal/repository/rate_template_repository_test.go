package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/testutil"
	"gorm.io/gorm"
)

func TestRateTemplateRepository_SetDefault(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRateTemplateRepository(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	a := testutil.CreateTestTemplate(t, db, user.ID, "Standard residential", domain.TradePainter)
	b := testutil.CreateTestTemplate(t, db, user.ID, "Commercial", domain.TradePainter)

	require.NoError(t, repo.SetDefault(ctx, user.ID, a.ID))

	got, err := repo.GetDefaultForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	// Moving the flag clears it on the previous default
	require.NoError(t, repo.SetDefault(ctx, user.ID, b.ID))

	got, err = repo.GetDefaultForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	var defaults int64
	require.NoError(t, db.Model(&domain.RateTemplate{}).
		Where("user_id = ? AND is_default = ?", user.ID, true).
		Count(&defaults).Error)
	assert.Equal(t, int64(1), defaults)
}

func TestRateTemplateRepository_SetDefault_NotOwned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRateTemplateRepository(db)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, db, "Sam")
	intruder := testutil.CreateTestUser(t, db, "Alex")
	tpl := testutil.CreateTestTemplate(t, db, owner.ID, "Standard", domain.TradeTiler)

	err := repo.SetDefault(ctx, intruder.ID, tpl.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.SetDefault(ctx, owner.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRateTemplateRepository_ListByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRateTemplateRepository(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	testutil.CreateTestTemplate(t, db, user.ID, "Zebra", domain.TradePainter)
	def := testutil.CreateTestTemplate(t, db, user.ID, "Standard", domain.TradePainter)
	testutil.CreateTestTemplate(t, db, user.ID, "Apartments", domain.TradeTiler)
	require.NoError(t, repo.SetDefault(ctx, user.ID, def.ID))

	templates, err := repo.ListByUser(ctx, user.ID, nil)
	require.NoError(t, err)
	require.Len(t, templates, 3)
	assert.Equal(t, def.ID, templates[0].ID, "default template sorts first")

	painter := domain.TradePainter
	templates, err = repo.ListByUser(ctx, user.ID, &painter)
	require.NoError(t, err)
	assert.Len(t, templates, 2)
}
