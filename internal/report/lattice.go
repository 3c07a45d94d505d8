package report

import (
	"strings"

	"github.com/quantastica/qps-client/internal/domain"
)

const latticeMarker = "LATTICE"

type latticeField func(device *domain.Device, value string)

var latticeFields = map[string]latticeField{
	"name": func(d *domain.Device, v string) { d.Name = v },
	"device": func(d *domain.Device, v string) { d.Device = v },
	"number_of_qubits": func(d *domain.Device, v string) {
		if n, ok := parseInt(v); ok {
			d.QubitCount = n
		}
	},
	"qubits":        func(d *domain.Device, v string) { d.Qubits = parseIntList(v) },
	"price_per_min": func(d *domain.Device, v string) { d.PricePerMinute = parseDecimal(v) },
}

// ParseLattices reads a lattice listing and groups lattices by device name in
// first-seen order.
func ParseLattices(raw string) []domain.DeviceGroup {
	var groups []domain.DeviceGroup
	index := map[string]int{}

	for _, device := range parseLatticeRecords(raw) {
		at, ok := index[device.Device]
		if !ok {
			at = len(groups)
			index[device.Device] = at
			groups = append(groups, domain.DeviceGroup{Name: device.Device})
		}
		groups[at].Devices = append(groups[at].Devices, device)
	}

	return groups
}

func parseLatticeRecords(raw string) []domain.Device {
	var devices []domain.Device
	for _, segment := range strings.Split(raw, latticeMarker) {
		device, ok := parseLatticeSegment(segment)
		if ok {
			devices = append(devices, device)
		}
	}
	return devices
}

func parseLatticeSegment(segment string) (domain.Device, bool) {
	var device domain.Device
	valid := false

	for _, line := range splitLines(segment) {
		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}
		valid = true
		if apply, known := latticeFields[normalizeKey(key)]; known {
			apply(&device, value)
		}
	}

	return device, valid
}

func splitKeyValue(line string) (string, string, bool) {
	key, value, found := strings.Cut(strings.TrimSpace(line), ":")
	if !found || strings.Contains(value, ":") {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

// normalizeKey turns "Price (per min.)" into "price_per_min".
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "(", "")
	key = strings.ReplaceAll(key, ".)", "")
	return key
}
