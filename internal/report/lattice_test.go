package report

import (
	"os"
	"testing"

	"github.com/quantastica/qps-client/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLatticesSingleRecord(t *testing.T) {
	t.Parallel()

	raw := "LATTICE\nName: X\n  Device: D\n  Number of qubits: 2\n  Qubits: 14,15\n  Price (per min.): $1.33\n"

	groups := ParseLattices(raw)

	require.Len(t, groups, 1)
	assert.Equal(t, "D", groups[0].Name)
	require.Len(t, groups[0].Devices, 1)
	device := groups[0].Devices[0]
	assert.Equal(t, "X", device.Name)
	assert.Equal(t, 2, device.QubitCount)
	assert.Equal(t, []int{14, 15}, device.Qubits)
	assert.InDelta(t, 1.33, device.PricePerMinute, 1e-9)
}

func TestParseLatticesSampleReport(t *testing.T) {
	t.Parallel()

	raw, err := os.ReadFile("testdata/lattices.txt")
	require.NoError(t, err)

	groups := ParseLattices(string(raw))

	require.Len(t, groups, 1)
	assert.Equal(t, "Aspen-1", groups[0].Name)
	require.Len(t, groups[0].Devices, 18)
	assert.Equal(t, "Aspen-1-2Q-B", groups[0].Devices[0].Name)
	assert.Equal(t, "Aspen-1-10Q-B", groups[0].Devices[17].Name)
	assert.InDelta(t, 21.67, groups[0].Devices[8].PricePerMinute, 1e-9)

	for _, device := range groups[0].Devices {
		assert.Len(t, device.Qubits, device.QubitCount, device.Name)
	}
}

func TestParseLatticesGroupsInFirstSeenOrder(t *testing.T) {
	t.Parallel()

	raw := `
LATTICE
Name: B-2Q
  Device: Beta
  Number of qubits: 2
  Qubits: 0,1
LATTICE
Name: A-2Q
  Device: Alpha
  Number of qubits: 2
  Qubits: 2,3
LATTICE
Name: B-3Q
  Device: Beta
  Number of qubits: 3
  Qubits: 0,1,2
`

	groups := ParseLattices(raw)

	require.Len(t, groups, 2)
	assert.Equal(t, "Beta", groups[0].Name)
	assert.Equal(t, "Alpha", groups[1].Name)
	names := []string{groups[0].Devices[0].Name, groups[0].Devices[1].Name}
	assert.Equal(t, []string{"B-2Q", "B-3Q"}, names)
}

func TestParseLatticesDropsSegmentsWithoutFields(t *testing.T) {
	t.Parallel()

	raw := "LATTICE\nnothing useful here\nLATTICE\nName: X\n  Device: D\nLATTICE\n\n"

	groups := ParseLattices(raw)

	require.Len(t, groups, 1)
	assert.Equal(t, []domain.Device{{Name: "X", Device: "D"}}, groups[0].Devices)
}

func TestParseLatticesMalformedFieldsArePartial(t *testing.T) {
	t.Parallel()

	raw := "LATTICE\nName: X\n  Device: D\n  Number of qubits: many\n  Price (per min.): free\n  Updated: 10:30\n"

	groups := ParseLattices(raw)

	require.Len(t, groups, 1)
	device := groups[0].Devices[0]
	assert.Equal(t, "X", device.Name)
	assert.Zero(t, device.QubitCount)
	assert.Zero(t, device.PricePerMinute)
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Price (per min.)": "price_per_min",
		"Number of qubits": "number_of_qubits",
		"  Name ":          "name",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeKey(in), in)
	}
}
