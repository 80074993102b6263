package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/testutil"
	"gorm.io/gorm"
)

func TestPreferenceRepository_SetAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPreferenceRepository(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")

	_, err := repo.Get(ctx, user.ID, domain.PreferenceMaterialMarkup)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Set(ctx, user.ID, domain.PreferenceMaterialMarkup, "15"))

	pref, err := repo.Get(ctx, user.ID, domain.PreferenceMaterialMarkup)
	require.NoError(t, err)
	assert.Equal(t, "15", pref.Value)

	// Setting again upserts rather than duplicating
	require.NoError(t, repo.Set(ctx, user.ID, domain.PreferenceMaterialMarkup, "22.5"))

	pref, err = repo.Get(ctx, user.ID, domain.PreferenceMaterialMarkup)
	require.NoError(t, err)
	assert.Equal(t, "22.5", pref.Value)

	prefs, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, prefs, 1)
}

func TestPreferenceRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPreferenceRepository(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	require.NoError(t, repo.Set(ctx, user.ID, domain.PreferenceMaterialMarkup, "10"))
	require.NoError(t, repo.Delete(ctx, user.ID, domain.PreferenceMaterialMarkup))

	_, err := repo.Get(ctx, user.ID, domain.PreferenceMaterialMarkup)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPreferenceRepository_ScopedPerUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPreferenceRepository(db)
	ctx := context.Background()

	sam := testutil.CreateTestUser(t, db, "Sam")
	alex := testutil.CreateTestUser(t, db, "Alex")

	require.NoError(t, repo.Set(ctx, sam.ID, domain.PreferenceMaterialMarkup, "15"))
	require.NoError(t, repo.Set(ctx, alex.ID, domain.PreferenceMaterialMarkup, "20"))

	pref, err := repo.Get(ctx, sam.ID, domain.PreferenceMaterialMarkup)
	require.NoError(t, err)
	assert.Equal(t, "15", pref.Value)

	pref, err = repo.Get(ctx, alex.ID, domain.PreferenceMaterialMarkup)
	require.NoError(t, err)
	assert.Equal(t, "20", pref.Value)
}
