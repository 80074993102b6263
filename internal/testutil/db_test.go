package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradequote/quoting-api/internal/domain"
)

// Models leave CreatedAt and UpdatedAt zero-valued and rely on the column
// defaults, the same way the production migration fills them. The schema
// here must honour that or every insert in the suite fails.
func TestSetupTestDB_TimestampDefaults(t *testing.T) {
	db := SetupTestDB(t)

	user := CreateTestUser(t, db, "Sam")

	var got domain.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())

	job := CreateTestJob(t, db, user.ID, "Repaint lounge", domain.TradePainter)
	var gotJob domain.Job
	require.NoError(t, db.First(&gotJob, "id = ?", job.ID).Error)
	assert.False(t, gotJob.CreatedAt.IsZero())
}
