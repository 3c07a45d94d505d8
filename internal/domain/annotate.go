package domain

// Annotate marks every device with its reservation state. Upcoming matches are
// applied first and current matches overwrite them, so current wins.
func Annotate(groups []DeviceGroup, reservations ReservationSet) AnnotatedDeviceInfo {
	upcoming := reservedNames(reservations.Upcoming)
	current := reservedNames(reservations.Current)

	annotated := make([]DeviceGroup, 0, len(groups))
	for _, group := range groups {
		devices := make([]Device, 0, len(group.Devices))
		for _, device := range group.Devices {
			device.Qubits = append([]int(nil), device.Qubits...)
			device.ReservationState = ReservationNone
			if _, ok := upcoming[device.Name]; ok {
				device.ReservationState = ReservationUpcoming
			}
			if _, ok := current[device.Name]; ok {
				device.ReservationState = ReservationCurrent
			}
			devices = append(devices, device)
		}
		annotated = append(annotated, DeviceGroup{Name: group.Name, Devices: devices})
	}

	return AnnotatedDeviceInfo{
		DeviceGroups: annotated,
		Reservations: reservations,
	}
}

func reservedNames(reservations []Reservation) map[string]struct{} {
	names := make(map[string]struct{}, len(reservations))
	for _, reservation := range reservations {
		names[reservation.DeviceName] = struct{}{}
	}
	return names
}
