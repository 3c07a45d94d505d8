package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateCurrentWinsOverUpcoming(t *testing.T) {
	t.Parallel()

	groups := []DeviceGroup{{
		Name: "Aspen-1",
		Devices: []Device{
			{Name: "Aspen-1-2Q-B", Device: "Aspen-1", QubitCount: 2, Qubits: []int{14, 15}},
			{Name: "Aspen-1-3Q-B", Device: "Aspen-1", QubitCount: 3, Qubits: []int{14, 15, 16}},
			{Name: "Aspen-1-4Q-B", Device: "Aspen-1", QubitCount: 4, Qubits: []int{1, 14, 15, 16}},
		},
	}}
	reservations := ReservationSet{
		Current:  []Reservation{{ID: "1", DeviceName: "Aspen-1-2Q-B"}},
		Upcoming: []Reservation{{ID: "2", DeviceName: "Aspen-1-2Q-B"}, {ID: "3", DeviceName: "Aspen-1-3Q-B"}},
	}

	info := Annotate(groups, reservations)

	require.Len(t, info.DeviceGroups, 1)
	devices := info.DeviceGroups[0].Devices
	require.Len(t, devices, 3)
	assert.Equal(t, ReservationCurrent, devices[0].ReservationState)
	assert.Equal(t, ReservationUpcoming, devices[1].ReservationState)
	assert.Equal(t, ReservationNone, devices[2].ReservationState)
	assert.Equal(t, reservations, info.Reservations)
}

func TestAnnotateMatchesExactNameOnly(t *testing.T) {
	t.Parallel()

	groups := []DeviceGroup{{Name: "Aspen-1", Devices: []Device{{Name: "Aspen-1-2Q-B"}}}}
	reservations := ReservationSet{Current: []Reservation{{DeviceName: "aspen-1-2q-b"}, {DeviceName: "Aspen-1-2Q-B "}}}

	info := Annotate(groups, reservations)

	assert.Equal(t, ReservationNone, info.DeviceGroups[0].Devices[0].ReservationState)
}

func TestAnnotateDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	groups := []DeviceGroup{{Name: "Aspen-1", Devices: []Device{{Name: "Aspen-1-2Q-B", Qubits: []int{1, 2}}}}}
	reservations := ReservationSet{Current: []Reservation{{DeviceName: "Aspen-1-2Q-B"}}}

	info := Annotate(groups, reservations)
	info.DeviceGroups[0].Devices[0].Qubits[0] = 99

	assert.Empty(t, groups[0].Devices[0].ReservationState)
	assert.Equal(t, []int{1, 2}, groups[0].Devices[0].Qubits)
}

func TestAnnotateEmptyInput(t *testing.T) {
	t.Parallel()

	info := Annotate(nil, ReservationSet{})

	assert.Empty(t, info.DeviceGroups)
}
