package booking

import (
	"context"
	"sort"

	"github.com/Domenick1991/flightinventory/internal/domain"
)

// InventoryDiscrepancy is a flight whose consumed capacity differs from
// the seats held by its live bookings.
type InventoryDiscrepancy struct {
	FlightID       string `json:"flight_id"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	ConsumedSeats  int    `json:"consumed_seats"`
	BookedSeats    int    `json:"booked_seats"`
	MissingFlight  bool   `json:"missing_flight,omitempty"`
}

// AuditInventory compares every flight's consumed capacity with the sum of
// its live bookings. The scan is not a snapshot; a booking in progress can
// show up as a transient discrepancy.
func (s *BookingService) AuditInventory(ctx context.Context) ([]InventoryDiscrepancy, error) {
	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "list flights", Err: err}
	}
	booked, err := s.bookings.SeatsByFlight(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "sum booked seats", Err: err}
	}

	discrepancies := make([]InventoryDiscrepancy, 0)
	known := make(map[string]struct{}, len(flights))
	for _, f := range flights {
		known[f.ID] = struct{}{}
		consumed := f.TotalSeats - f.AvailableSeats
		if consumed == booked[f.ID] {
			continue
		}
		discrepancies = append(discrepancies, InventoryDiscrepancy{
			FlightID:       f.ID,
			TotalSeats:     f.TotalSeats,
			AvailableSeats: f.AvailableSeats,
			ConsumedSeats:  consumed,
			BookedSeats:    booked[f.ID],
		})
	}

	orphans := make([]string, 0)
	for flightID := range booked {
		if _, ok := known[flightID]; !ok {
			orphans = append(orphans, flightID)
		}
	}
	sort.Strings(orphans)
	for _, flightID := range orphans {
		discrepancies = append(discrepancies, InventoryDiscrepancy{
			FlightID:      flightID,
			BookedSeats:   booked[flightID],
			MissingFlight: true,
		})
	}

	for _, d := range discrepancies {
		s.log.Warn("inventory discrepancy",
			"flight_id", d.FlightID, "consumed", d.ConsumedSeats, "booked", d.BookedSeats, "missing_flight", d.MissingFlight)
	}
	s.metrics.AuditResult(len(discrepancies))
	return discrepancies, nil
}
