package report

import (
	"strings"

	"github.com/quantastica/qps-client/internal/domain"
)

const (
	currentSectionTitle  = "CURRENTLY RUNNING COMPUTE BLOCKS"
	upcomingSectionTitle = "UPCOMING COMPUTE BLOCKS"
)

type reservationField func(reservation *domain.Reservation, value string)

var reservationFields = map[string]reservationField{
	"id":       func(r *domain.Reservation, v string) { r.ID = v },
	"start":    func(r *domain.Reservation, v string) { r.Start = v },
	"end":      func(r *domain.Reservation, v string) { r.End = v },
	"duration": func(r *domain.Reservation, v string) { r.DurationMinutes = parseDecimal(v) },
	"lattice":  func(r *domain.Reservation, v string) { r.DeviceName = v },
	"device": func(r *domain.Reservation, v string) {
		if r.DeviceName == "" {
			r.DeviceName = v
		}
	},
	"price": func(r *domain.Reservation, v string) { r.Price = parseDecimal(v) },
}

// ParseReservations reads a reservation report made of titled sub-tables
// separated by blank lines. Rows under unrecognised titles are dropped.
func ParseReservations(raw string) domain.ReservationSet {
	var set domain.ReservationSet

	pendingTitle := ""
	for _, block := range splitBlocks(raw) {
		title, body, _ := strings.Cut(block, "\n")
		title = strings.TrimSpace(title)

		if strings.TrimSpace(body) == "" {
			pendingTitle = title
			continue
		}
		if !isSectionTitle(title) && pendingTitle != "" {
			title, body = pendingTitle, block
		}
		pendingTitle = ""

		switch title {
		case currentSectionTitle:
			set.Current = append(set.Current, parseReservationRows(body)...)
		case upcomingSectionTitle:
			set.Upcoming = append(set.Upcoming, parseReservationRows(body)...)
		}
	}

	return set
}

func isSectionTitle(title string) bool {
	return title == currentSectionTitle || title == upcomingSectionTitle
}

func parseReservationRows(table string) []domain.Reservation {
	rows := ParseTable(table)
	reservations := make([]domain.Reservation, 0, len(rows))
	for _, row := range rows {
		var reservation domain.Reservation
		for name, value := range row {
			if apply, ok := reservationFields[name]; ok {
				apply(&reservation, value)
			}
		}
		reservations = append(reservations, reservation)
	}
	return reservations
}

// splitBlocks splits on blank lines and drops empty blocks.
func splitBlocks(raw string) []string {
	var blocks []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range splitLines(raw) {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return blocks
}
