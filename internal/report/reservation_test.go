package report

import (
	"os"
	"testing"

	"github.com/quantastica/qps-client/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReservationsBothSections(t *testing.T) {
	t.Parallel()

	raw, err := os.ReadFile("testdata/reservations.txt")
	require.NoError(t, err)

	set := ParseReservations(string(raw))

	require.Len(t, set.Current, 1)
	require.Len(t, set.Upcoming, 2)
	assert.Equal(t, domain.Reservation{
		ID:              "1021",
		Start:           "2019-02-07 10:00:00+00:00",
		End:             "2019-02-07 10:15:00+00:00",
		DurationMinutes: 15,
		DeviceName:      "Aspen-1-2Q-B",
		Price:           19.95,
	}, set.Current[0])
	assert.Equal(t, "1022", set.Upcoming[0].ID)
	assert.Equal(t, "1023", set.Upcoming[1].ID)
	assert.InDelta(t, 325.05, set.Upcoming[1].Price, 1e-9)

	for _, current := range set.Current {
		assert.NotContains(t, set.Upcoming, current)
	}
}

func TestParseReservationsIgnoresUnknownSections(t *testing.T) {
	t.Parallel()

	raw := "PAST COMPUTE BLOCKS\nID  LATTICE\n9   Aspen-1-2Q-B\n\n" +
		"UPCOMING COMPUTE BLOCKS\nID  LATTICE\n10  Aspen-1-3Q-B\n"

	set := ParseReservations(raw)

	assert.Empty(t, set.Current)
	require.Len(t, set.Upcoming, 1)
	assert.Equal(t, "10", set.Upcoming[0].ID)
	assert.Equal(t, "Aspen-1-3Q-B", set.Upcoming[0].DeviceName)
}

func TestParseReservationsTitleOnItsOwnBlock(t *testing.T) {
	t.Parallel()

	raw := "CURRENTLY RUNNING COMPUTE BLOCKS\n\nID  LATTICE       PRICE\n1   Aspen-1-2Q-B  $2.00\n\n" +
		"UPCOMING COMPUTE BLOCKS\n\nID  LATTICE       PRICE\n2   Aspen-1-3Q-B  $3.00\n"

	set := ParseReservations(raw)

	require.Len(t, set.Current, 1)
	require.Len(t, set.Upcoming, 1)
	assert.Equal(t, "1", set.Current[0].ID)
	assert.Equal(t, "2", set.Upcoming[0].ID)
	assert.InDelta(t, 3.0, set.Upcoming[0].Price, 1e-9)
}

func TestParseReservationsEmpty(t *testing.T) {
	t.Parallel()

	set := ParseReservations("")

	assert.Empty(t, set.Current)
	assert.Empty(t, set.Upcoming)
}
