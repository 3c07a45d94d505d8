package domain

type ReservationState string

const (
	ReservationNone     ReservationState = "none"
	ReservationCurrent  ReservationState = "current"
	ReservationUpcoming ReservationState = "upcoming"
)

// Device is one lattice: a named, addressable qubit subset of a physical device.
type Device struct {
	Name             string           `json:"name"`
	Device           string           `json:"device"`
	QubitCount       int              `json:"number_of_qubits"`
	Qubits           []int            `json:"qubits"`
	PricePerMinute   float64          `json:"price_per_min"`
	ReservationState ReservationState `json:"reservation_state,omitempty"`
}

type DeviceGroup struct {
	Name    string   `json:"name"`
	Devices []Device `json:"lattices"`
}

type Reservation struct {
	ID              string  `json:"id"`
	Start           string  `json:"start"`
	End             string  `json:"end"`
	DurationMinutes float64 `json:"duration"`
	DeviceName      string  `json:"lattice"`
	Price           float64 `json:"price"`
}

type ReservationSet struct {
	Current  []Reservation `json:"current"`
	Upcoming []Reservation `json:"upcoming"`
}

type AnnotatedDeviceInfo struct {
	DeviceGroups []DeviceGroup  `json:"devices"`
	Reservations ReservationSet `json:"reservations"`
}
