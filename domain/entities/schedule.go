package entities

import (
	"fmt"
	"strings"
)

// Driver identifies the driver being registered for a shipment.
type Driver struct {
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id"`
}

// TrailerPair describes one trailer hooked to the truck.
type TrailerPair struct {
	Plate string `json:"plate"`
	State string `json:"state"`
}

// Vehicle describes the truck assigned to the shipment. The portal's
// form accepts at most three trailers.
type Vehicle struct {
	Plate    string        `json:"plate"`
	State    string        `json:"state"`
	BodyType string        `json:"body_type"`
	Trailers []TrailerPair `json:"trailers,omitempty"`
}

// MaxTrailers is the number of trailer slots on the scheduling form.
const MaxTrailers = 3

// ScheduleRequest is everything needed to book one approved quote.
// ProtocolID and OrderID together identify the target row on the grid.
type ScheduleRequest struct {
	ProtocolID   string  `json:"protocol_id"`
	OrderID      string  `json:"order_id"`
	Driver       Driver  `json:"driver"`
	Vehicle      Vehicle `json:"vehicle"`
	ContactName  string  `json:"contact_name,omitempty"`
	ContactPhone string  `json:"contact_phone,omitempty"`
}

// Validate checks the identifiers without which the target row cannot
// be located, plus the driver document the form cannot proceed without.
func (r ScheduleRequest) Validate() error {
	if strings.TrimSpace(r.ProtocolID) == "" {
		return fmt.Errorf("protocol_id is required")
	}
	if strings.TrimSpace(r.OrderID) == "" {
		return fmt.Errorf("order_id is required")
	}
	if strings.TrimSpace(r.Driver.NationalID) == "" {
		return fmt.Errorf("driver national_id is required")
	}
	if len(r.Vehicle.Trailers) > MaxTrailers {
		return fmt.Errorf("at most %d trailers are supported, got %d", MaxTrailers, len(r.Vehicle.Trailers))
	}
	return nil
}
