package stats

import (
	"testing"

	"afya/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patientsWithCounties(counties ...string) []*entity.PatientRecord {
	records := make([]*entity.PatientRecord, len(counties))
	for i, county := range counties {
		records[i] = &entity.PatientRecord{County: county}
	}

	return records
}

func TestCountByCounty_BlankBecomesUnknown(t *testing.T) {
	records := patientsWithCounties("Nairobi", "Nairobi", "")

	groups := CountByCounty(records)

	require.Len(t, groups, 2)
	assert.Equal(t, GroupCount{Value: "Nairobi", Count: 2}, groups[0])
	assert.Equal(t, GroupCount{Value: UnknownCounty, Count: 1}, groups[1])
}

func TestCountByGender_BlankStaysLiteral(t *testing.T) {
	records := []*entity.PatientRecord{
		{Gender: entity.GenderFemale},
		{Gender: ""},
		{Gender: entity.GenderFemale},
	}

	groups := CountByGender(records)

	require.Len(t, groups, 2)
	assert.Equal(t, GroupCount{Value: "Female", Count: 2}, groups[0])
	assert.Equal(t, GroupCount{Value: "", Count: 1}, groups[1])
}

func TestCountBy_PreservesFirstEncounterOrder(t *testing.T) {
	records := patientsWithCounties("Kisumu", "Mombasa", "Kisumu", "Nakuru")

	groups := CountByCounty(records)

	require.Len(t, groups, 3)
	assert.Equal(t, "Kisumu", groups[0].Value)
	assert.Equal(t, "Mombasa", groups[1].Value)
	assert.Equal(t, "Nakuru", groups[2].Value)
}

func TestTopN_TiesKeepInsertionOrder(t *testing.T) {
	groups := []GroupCount{
		{Value: "A", Count: 5},
		{Value: "B", Count: 5},
		{Value: "C", Count: 1},
	}

	top := TopN(groups, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].Value)
	assert.Equal(t, "B", top[1].Value)
}

func TestTopN_SortsDescending(t *testing.T) {
	groups := []GroupCount{
		{Value: "small", Count: 1},
		{Value: "big", Count: 9},
		{Value: "mid", Count: 4},
	}

	top := TopN(groups, 10)

	require.Len(t, top, 3)
	assert.Equal(t, []GroupCount{
		{Value: "big", Count: 9},
		{Value: "mid", Count: 4},
		{Value: "small", Count: 1},
	}, top)
}

func TestTopN_DoesNotMutateInput(t *testing.T) {
	groups := []GroupCount{
		{Value: "small", Count: 1},
		{Value: "big", Count: 9},
	}

	_ = TopN(groups, 1)

	assert.Equal(t, "small", groups[0].Value)
}

func TestDistinctCounties_CountsBlankAsAValue(t *testing.T) {
	records := patientsWithCounties("Nairobi", "", "Nairobi", "Kilifi")

	assert.Equal(t, 3, DistinctCounties(records))
	assert.Equal(t, 4, TotalCount(records))
}

func TestTotalCount_Empty(t *testing.T) {
	assert.Equal(t, 0, TotalCount(nil))
	assert.Empty(t, CountByCounty(nil))
}
