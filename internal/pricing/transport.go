package pricing

import "math"

// Transportation is the hourly round-trip travel charge. It is a separate line
// item from the service-area percentage surcharge.
type Transportation struct {
	OneWaySeconds    float64 `json:"oneWaySeconds"`
	RoundTripSeconds float64 `json:"roundTripSeconds"`
	BillableHours    int     `json:"billableHours"`
	HourlyRate       float64 `json:"hourlyRate"`
	Cost             float64 `json:"cost"`
}

// TransportationCost bills the round trip in whole hours, rounding up. Only a
// zero (or negative) one-way duration bills nothing.
func TransportationCost(oneWaySeconds, hourlyRate float64) Transportation {
	t := Transportation{HourlyRate: hourlyRate}
	if !(oneWaySeconds > 0) {
		return t
	}
	t.OneWaySeconds = oneWaySeconds
	t.RoundTripSeconds = 2 * oneWaySeconds
	roundTripMinutes := t.RoundTripSeconds / 60
	t.BillableHours = int(math.Ceil(roundTripMinutes / 60))
	t.Cost = float64(t.BillableHours) * hourlyRate
	return t
}
