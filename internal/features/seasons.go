package features

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yourorg/location-quote/internal/location"
	"github.com/yourorg/location-quote/internal/pricing"
)

// MonthWindow is an inclusive month range. Start > End wraps over new year
// (e.g. Nov-Feb).
type MonthWindow struct {
	Start time.Month
	End   time.Month
}

func (w MonthWindow) Contains(m time.Month) bool {
	if w.Start == 0 || w.End == 0 {
		return false
	}
	if w.Start <= w.End {
		return m >= w.Start && m <= w.End
	}
	return m >= w.Start || m <= w.End
}

func (w MonthWindow) String() string { return fmt.Sprintf("%d-%d", w.Start, w.End) }

// ParseMonthWindow parses "6-10" (1-based months, inclusive).
func ParseMonthWindow(s string) (MonthWindow, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return MonthWindow{}, fmt.Errorf("month window %q: want START-END", s)
	}
	var ms [2]time.Month
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 || n > 12 {
			return MonthWindow{}, fmt.Errorf("month window %q: bad month %q", s, p)
		}
		ms[i] = time.Month(n)
	}
	return MonthWindow{Start: ms[0], End: ms[1]}, nil
}

// SeasonCalendar is regional policy, not a universal rule.
type SeasonCalendar struct {
	Wetland         MonthWindow
	BirdNesting     MonthWindow
	DefaultFireRisk pricing.FireRiskLevel
}

func DefaultSeasonCalendar() SeasonCalendar {
	return SeasonCalendar{
		Wetland:         MonthWindow{Start: time.June, End: time.October},
		BirdNesting:     MonthWindow{Start: time.March, End: time.August},
		DefaultFireRisk: pricing.FireRiskModerate,
	}
}

func (c SeasonCalendar) isZero() bool {
	return c.Wetland == (MonthWindow{}) && c.BirdNesting == (MonthWindow{}) && c.DefaultFireRisk == ""
}

func (c SeasonCalendar) Detect(now time.Time) pricing.SeasonalFactors {
	fire := c.DefaultFireRisk
	if fire == "" {
		fire = pricing.FireRiskModerate
	}
	m := now.Month()
	return pricing.SeasonalFactors{
		WetlandSeason:     c.Wetland.Contains(m),
		BirdNestingSeason: c.BirdNesting.Contains(m),
		FireRiskLevel:     fire,
	}
}

// DetectSeasonalFactors applies the default calendar. The calendar is regional
// policy, so coordinates are accepted but not yet used to pick a region.
func DetectSeasonalFactors(now time.Time, _ location.Coordinates) pricing.SeasonalFactors {
	return DefaultSeasonCalendar().Detect(now)
}
