package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetCellLenientNumbers(t *testing.T) {
	var row []SheetCell
	require.NoError(t, json.Unmarshal([]byte(`["TRX-1", 1000, "1100", "", null, "abc", true]`), &row))

	assert.Equal(t, "TRX-1", row[0].String())
	assert.Equal(t, 1000.0, row[1].Float())
	assert.Equal(t, 1100, row[2].Int())
	assert.Equal(t, 0.0, row[3].Float())
	assert.Equal(t, "", row[4].String())
	assert.Equal(t, 0.0, row[5].Float())
	assert.Equal(t, "true", row[6].String())
}

func TestSheetResultFailed(t *testing.T) {
	no := false
	yes := true

	failed, msg := SheetResult{Error: "sheet locked"}.Failed()
	assert.True(t, failed)
	assert.Equal(t, "sheet locked", msg)

	failed, _ = SheetResult{Success: &no}.Failed()
	assert.True(t, failed)

	failed, _ = SheetResult{Success: &yes}.Failed()
	assert.False(t, failed)

	failed, _ = SheetResult{}.Failed()
	assert.False(t, failed)
}
