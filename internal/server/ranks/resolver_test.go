package ranks

import (
	"testing"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func master() []models.RankDefinition {
	return []models.RankDefinition{
		{ID: "DSP", Label: "Deputy Superintendent", StaffCategory: models.StaffPolice, EquivalentCode: "DSP", Aliases: []string{"DYSP", "ACP"}, SeniorityOrder: 5, Active: true},
		{ID: "PC", Label: "Police Constable", StaffCategory: models.StaffPolice, EquivalentCode: "PC", Aliases: []string{"WPC"}, SeniorityOrder: 20, RequiresSecondaryID: true, Active: true},
		{ID: "HC", Label: "Head Constable", StaffCategory: models.StaffPolice, EquivalentCode: "HC", SeniorityOrder: 18, RequiresSecondaryID: true, Active: false},
		{ID: "FDA", Label: "First Division Assistant", StaffCategory: models.StaffMinisterial, SeniorityOrder: 30, Active: true},
	}
}

func TestFindRank(t *testing.T) {
	ranks := master()

	tests := []struct {
		label  string
		wantID string
		ok     bool
	}{
		{"DSP", "DSP", true},
		{"ACP", "DSP", true},
		{"WPC", "PC", true},
		{"FDA", "FDA", true},
		{"dsp", "", false},
		{"UNKNOWN_LABEL", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			got, ok := FindRank(ranks, tc.label)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.wantID, got.ID)
		})
	}
}

func TestFindRank_FirstMatchWins(t *testing.T) {
	ranks := []models.RankDefinition{
		{ID: "A", EquivalentCode: "X"},
		{ID: "B", Aliases: []string{"X"}},
	}
	got, ok := FindRank(ranks, "X")
	require.True(t, ok)
	assert.Equal(t, "A", got.ID)
}

func TestRequiresSecondaryID(t *testing.T) {
	ranks := master()
	assert.True(t, RequiresSecondaryID(ranks, "WPC"))
	assert.True(t, RequiresSecondaryID(ranks, "HC"), "inactive ranks still resolve")
	assert.False(t, RequiresSecondaryID(ranks, "DYSP"))
	assert.False(t, RequiresSecondaryID(ranks, "UNKNOWN_LABEL"))
	assert.False(t, RequiresSecondaryID(nil, "PC"))
}

func TestSanitize_Ministerial(t *testing.T) {
	got := Sanitize(models.RankDefinition{
		ID: " FDA ", Label: "FDA", StaffCategory: "ministerial",
		EquivalentCode: "PC", RequiresSecondaryID: true, Aliases: []string{" ", "F.D.A "},
	})
	assert.Equal(t, "FDA", got.ID)
	assert.Equal(t, models.StaffMinisterial, got.StaffCategory)
	assert.Empty(t, got.EquivalentCode)
	assert.False(t, got.RequiresSecondaryID)
	assert.Equal(t, []string{"F.D.A"}, got.Aliases)
}

func TestSanitize_Defaults(t *testing.T) {
	got := Sanitize(models.RankDefinition{ID: "PSI", Label: "PSI", EquivalentCode: "PSI", RequiresSecondaryID: true})
	assert.Equal(t, models.StaffPolice, got.StaffCategory)
	assert.NotNil(t, got.Aliases)
	assert.True(t, got.RequiresSecondaryID)
}

func TestValidate(t *testing.T) {
	ok := Sanitize(models.RankDefinition{ID: "PSI", Label: "Sub Inspector", EquivalentCode: "PSI"})
	require.NoError(t, Validate(ok))

	ministerial := Sanitize(models.RankDefinition{ID: "FDA", Label: "FDA", StaffCategory: models.StaffMinisterial})
	require.NoError(t, Validate(ministerial))

	bad := []models.RankDefinition{
		{Label: "x", StaffCategory: models.StaffPolice, EquivalentCode: "X"},
		{ID: "x", StaffCategory: models.StaffPolice, EquivalentCode: "X"},
		{ID: "x", Label: "x", StaffCategory: models.StaffPolice},
		{ID: "x", Label: "x", StaffCategory: "CIVIL"},
	}
	for _, r := range bad {
		assert.ErrorIs(t, Validate(r), common.ErrorValidation, "%+v", r)
	}
}

func TestActiveSorted(t *testing.T) {
	got := ActiveSorted(master())
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"DSP", "PC", "FDA"}, ids)

	inactive := []models.RankDefinition{
		{ID: "B", Label: "Bravo", SeniorityOrder: 2},
		{ID: "A2", Label: "Alpha", SeniorityOrder: 2},
		{ID: "Z", Label: "Zulu", SeniorityOrder: 1},
	}
	got = ActiveSorted(inactive)
	require.Len(t, got, 3)
	assert.Equal(t, "Z", got[0].ID)
	assert.Equal(t, "A2", got[1].ID)
}

func TestCheckSecondaryID(t *testing.T) {
	ranks := master()
	assert.ErrorIs(t, CheckSecondaryID(ranks, "PC", " "), common.ErrorValidation)
	assert.NoError(t, CheckSecondaryID(ranks, "PC", "1234"))
	assert.NoError(t, CheckSecondaryID(ranks, "DSP", ""))
	assert.NoError(t, CheckSecondaryID(ranks, "UNKNOWN", ""))
}

func TestRequiresSecondaryID_IgnoresFlagOnMinisterial(t *testing.T) {
	ranks := []models.RankDefinition{
		{ID: "LDC", Label: "Lower Division Clerk", StaffCategory: models.StaffMinisterial, EquivalentCode: "LDC", RequiresSecondaryID: true},
	}
	assert.False(t, RequiresSecondaryID(ranks, "LDC"))
	assert.NoError(t, CheckSecondaryID(ranks, "LDC", ""))
}
