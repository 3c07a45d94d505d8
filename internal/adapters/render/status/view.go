package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/quantastica/qps-client/internal/domain"
)

// Report is what the status view shows: the dispatcher's status map plus
// whatever each backend reported.
type Report struct {
	Statuses map[domain.BackendID]domain.BackendStatus
	Info     domain.BackendsInfo
}

type RenderOptions struct {
	Now time.Time
}

var reservationTimeLayouts = []string{
	"2006-01-02 15:04:05-07:00",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func renderView(report Report, opts RenderOptions, s styles) string {
	ids := reportedBackends(report)

	usable := 0
	for _, id := range ids {
		if isUsable(statusOf(report, id)) {
			usable++
		}
	}

	lines := []string{
		s.title.Render("Quantum Backends"),
		s.header.Render(fmt.Sprintf("backends: %d available of %d", usable, len(ids))),
	}

	if len(ids) == 0 {
		lines = append(lines, s.empty.Render("No backends found."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, id := range ids {
		lines = append(lines, s.section.Render(renderBackend(id, report, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderBackend(id domain.BackendID, report Report, opts RenderOptions, s styles) string {
	status := statusOf(report, id)
	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, s.backend.Render(string(id)), " ", statusLabel(status, s)),
	}

	info, ok := report.Info[id]
	if !ok {
		if isUsable(status) {
			parts = append(parts, s.detail.Render("status: n/a (report unavailable)"))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	if len(info.Backends) > 0 {
		parts = append(parts, s.detail.Render("backends: "+strings.Join(info.Backends, ", ")))
	}
	if info.Devices != nil {
		parts = append(parts, deviceLines(*info.Devices, s)...)
		parts = append(parts, reservationLines(info.Devices.Reservations, opts, s)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func deviceLines(info domain.AnnotatedDeviceInfo, s styles) []string {
	if len(info.DeviceGroups) == 0 {
		return []string{s.empty.Render("no lattices")}
	}

	var lines []string
	for _, group := range info.DeviceGroups {
		lines = append(lines, s.group.Render(group.Name+":"))

		nameWidth, maxQubits := 0, 0
		for _, device := range group.Devices {
			nameWidth = max(nameWidth, len(device.Name))
			maxQubits = max(maxQubits, device.QubitCount)
		}

		for _, device := range group.Devices {
			line := lipgloss.JoinHorizontal(
				lipgloss.Top,
				"  ",
				s.detail.Render(fmt.Sprintf("%-*s", nameWidth, device.Name)),
				" ",
				renderQubitBar(device.QubitCount, maxQubits, 16, s),
				" ",
				s.deviceMeta.Render(fmt.Sprintf("%2d %s  $%.2f/min", device.QubitCount, plural(device.QubitCount, "qubit"), device.PricePerMinute)),
			)
			if tag := reservationTag(device.ReservationState, s); tag != "" {
				line += " " + tag
			}
			lines = append(lines, line)
		}
	}

	return lines
}

func reservationLines(set domain.ReservationSet, opts RenderOptions, s styles) []string {
	var lines []string
	for _, reservation := range set.Current {
		lines = append(lines, s.current.Render("current:")+" "+s.detail.Render(fmt.Sprintf("%s %s $%.2f (%s)",
			reservation.ID, reservation.DeviceName, reservation.Price, formatRelative("ends", reservation.End, opts.Now))))
	}
	for _, reservation := range set.Upcoming {
		lines = append(lines, s.upcoming.Render("upcoming:")+" "+s.detail.Render(fmt.Sprintf("%s %s $%.2f (%s)",
			reservation.ID, reservation.DeviceName, reservation.Price, formatRelative("starts", reservation.Start, opts.Now))))
	}
	return lines
}

func reservationTag(state domain.ReservationState, s styles) string {
	switch state {
	case domain.ReservationCurrent:
		return s.current.Render("[reserved now]")
	case domain.ReservationUpcoming:
		return s.upcoming.Render("[reserved soon]")
	default:
		return ""
	}
}

func statusLabel(status domain.BackendStatus, s styles) string {
	switch status {
	case domain.StatusAvailable:
		return s.available.Render(string(status))
	case domain.StatusBusy:
		return s.busy.Render(string(status))
	case domain.StatusUnavailable:
		return s.unavailable.Render(string(status))
	default:
		return s.empty.Render(string(domain.StatusUnknown))
	}
}

func renderQubitBar(qubits, maxQubits, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := 0
	if maxQubits > 0 {
		filled = int(math.Round(float64(width) * float64(qubits) / float64(maxQubits)))
	}
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

// formatRelative describes a reservation boundary relative to now, falling
// back to the raw timestamp when it cannot be parsed.
func formatRelative(verb, raw string, now time.Time) string {
	at, ok := parseReservationTime(raw)
	if !ok || now.IsZero() {
		return verb + " " + strings.TrimSpace(raw)
	}

	if !at.After(now) {
		if verb == "ends" {
			return "ended"
		}
		return "started"
	}

	remaining := at.Sub(now)
	if remaining < 24*time.Hour {
		hours := max(int(math.Ceil(remaining.Hours())), 1)
		return fmt.Sprintf("%s in %d %s", verb, hours, plural(hours, "hour"))
	}

	days := max(int(math.Ceil(remaining.Hours()/24)), 1)
	return fmt.Sprintf("%s in %d %s", verb, days, plural(days, "day"))
}

func parseReservationTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range reservationTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func reportedBackends(report Report) []domain.BackendID {
	var ids []domain.BackendID
	for _, id := range domain.KnownBackends {
		_, hasStatus := report.Statuses[id]
		_, hasInfo := report.Info[id]
		if hasStatus || hasInfo {
			ids = append(ids, id)
		}
	}
	return ids
}

func statusOf(report Report, id domain.BackendID) domain.BackendStatus {
	if status, ok := report.Statuses[id]; ok {
		return status
	}
	if info, ok := report.Info[id]; ok && info.Status != "" {
		return info.Status
	}
	return domain.StatusUnknown
}

func isUsable(status domain.BackendStatus) bool {
	return status == domain.StatusAvailable || status == domain.StatusBusy
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
