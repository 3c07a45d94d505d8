package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableInfersColumnsFromHeader(t *testing.T) {
	t.Parallel()

	raw := "ID    START TIME           LATTICE\n" +
		"1021  2019-02-07 10:00:00  Aspen-1-2Q-B\n" +
		"7     2019-02-08 09:00:00  Aspen-1-16Q-A-with-a-long-name\n"

	rows := ParseTable(raw)

	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{
		"id":         "1021",
		"start_time": "2019-02-07 10:00:00",
		"lattice":    "Aspen-1-2Q-B",
	}, rows[0])
	assert.Equal(t, "Aspen-1-16Q-A-with-a-long-name", rows[1]["lattice"])
}

func TestParseTableSingleSpaceDoesNotSplitColumns(t *testing.T) {
	t.Parallel()

	rows := ParseTable("PRICE PER MIN  NAME\n$1.33          X\n")

	require.Len(t, rows, 1)
	assert.Equal(t, "$1.33", rows[0]["price_per_min"])
	assert.Equal(t, "X", rows[0]["name"])
}

func TestParseTableShortAndBlankRows(t *testing.T) {
	t.Parallel()

	raw := "\n\nID    LATTICE       PRICE\n" +
		"1\n" +
		"   \n" +
		"2     Aspen-1-2Q-B\n"

	rows := ParseTable(raw)

	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{"id": "1", "lattice": "", "price": ""}, rows[0])
	assert.Equal(t, map[string]string{"id": "2", "lattice": "Aspen-1-2Q-B", "price": ""}, rows[1])
}

func TestParseTableLeadingSpaceHeader(t *testing.T) {
	t.Parallel()

	rows := ParseTable(" ID  NAME\n 1   one\n")

	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["id"])
	assert.Equal(t, "one", rows[0]["name"])
}

func TestParseTableEmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ParseTable(""))
	assert.Empty(t, ParseTable("   \n\n"))
	assert.Empty(t, ParseTable("ID  NAME\n"))
}
