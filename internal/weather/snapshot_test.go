package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func populated() Snapshot {
	rain := RAIN_CATEGORY
	return Snapshot{High: strPtr("70"), Low: strPtr("50"), Icon: &rain}
}

func TestApplyPartialUpdateKeepsOtherFields(t *testing.T) {
	snapshot := populated()

	snapshot.Apply(Update{High: strPtr("82")})

	require.NotNil(t, snapshot.High)
	assert.Equal(t, "82", *snapshot.High)
	require.NotNil(t, snapshot.Low)
	assert.Equal(t, "50", *snapshot.Low)
	require.NotNil(t, snapshot.Icon)
	assert.Equal(t, RAIN_CATEGORY, *snapshot.Icon)
}

func TestApplyUnknownCodeKeepsIcon(t *testing.T) {
	snapshot := populated()

	snapshot.Apply(Update{WeatherId: intPtr(999)})

	require.NotNil(t, snapshot.Icon)
	assert.Equal(t, RAIN_CATEGORY, *snapshot.Icon)
}

func TestApplyClassifiesIcon(t *testing.T) {
	var snapshot Snapshot

	snapshot.Apply(Update{WeatherId: intPtr(800)})

	require.NotNil(t, snapshot.Icon)
	assert.Equal(t, CLEAR_CATEGORY, *snapshot.Icon)
	assert.Nil(t, snapshot.High)
	assert.Nil(t, snapshot.Low)
}

func TestApplyDoesNotAliasUpdate(t *testing.T) {
	var snapshot Snapshot
	high := "60"

	snapshot.Apply(Update{High: &high})
	high = "0"

	assert.Equal(t, "60", *snapshot.High)
}

func TestClearDropsEverything(t *testing.T) {
	snapshot := populated()

	snapshot.Clear()

	assert.True(t, snapshot.IsEmpty())
}

func TestMarkMissingTemperatures(t *testing.T) {
	snapshot := Snapshot{High: strPtr("75")}
	assert.False(t, snapshot.HasTemperatures())

	snapshot.MarkMissingTemperatures()

	assert.True(t, snapshot.HasTemperatures())
	assert.Equal(t, Placeholder, *snapshot.High)
	assert.Equal(t, Placeholder, *snapshot.Low)
}
