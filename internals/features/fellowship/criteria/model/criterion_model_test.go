package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beasiswaku_backend/internals/features/fellowship/criteria/model"
	"beasiswaku_backend/internals/testutil"
)

func TestNextSortOrderAppendsPerYear(t *testing.T) {
	db := testutil.OpenTestDB(t)

	// Tahun kosong mulai dari 1.
	next, err := model.NextSortOrder(db, 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	mk := func(year, sort int) {
		require.NoError(t, db.Create(&model.CriterionModel{
			CriterionYear:        year,
			CriterionName:        "IPK",
			CriterionDisplayName: "IPK",
			CriterionMaxPoints:   10,
			CriterionWeight:      1,
			CriterionCategory:    model.CategoryObjective,
			CriterionSortOrder:   sort,
			CriterionIsActive:    true,
		}).Error)
	}
	mk(2026, 1)
	mk(2026, 2)
	mk(2027, 7) // tahun lain tidak boleh ikut terhitung

	next, err = model.NextSortOrder(db, 2026)
	require.NoError(t, err)
	assert.Equal(t, 3, next)
}

func TestActiveCriteriaOrdersAndFilters(t *testing.T) {
	db := testutil.OpenTestDB(t)

	mk := func(name string, sort int, active bool) {
		require.NoError(t, db.Create(&model.CriterionModel{
			CriterionYear:        2026,
			CriterionName:        name,
			CriterionDisplayName: name,
			CriterionMaxPoints:   10,
			CriterionWeight:      1,
			CriterionCategory:    model.CategoryObjective,
			CriterionSortOrder:   sort,
			CriterionIsActive:    active,
		}).Error)
	}
	mk("Esai", 2, true)
	mk("IPK", 1, true)
	mk("Arsip", 3, false)

	var got []model.CriterionModel
	require.NoError(t, model.ActiveCriteria(db, 2026).Find(&got).Error)
	require.Len(t, got, 2)
	assert.Equal(t, "IPK", got[0].CriterionName)
	assert.Equal(t, "Esai", got[1].CriterionName)
}
