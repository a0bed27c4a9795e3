package measure

import (
	"strconv"
	"strings"

	"chart-measure/internal/numfmt"
)

const separator = " | "

// Measurement holds the values derived from a start and end spot.
type Measurement struct {
	Days     int
	Delta    float64
	Relative float64
}

// Measure derives the measurement from start to end. Days and Delta keep
// their sign: they are negative when end precedes start. Relative is
// end/start - 1 and is non-finite when start is zero.
func Measure(start, end Spot) Measurement {
	return Measurement{
		Days:     DaysBetween(start.Date, end.Date),
		Delta:    end.Value - start.Value,
		Relative: end.Value/start.Value - 1,
	}
}

// Text renders the label: days, delta in valueFormat and, when
// withRelative is set, the relative change as a signed percentage.
func (m Measurement) Text(valueFormat numfmt.Format, withRelative bool) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(m.Days))
	sb.WriteString(separator)
	sb.WriteString(valueFormat.Format(m.Delta))
	if withRelative {
		sb.WriteString(separator)
		sb.WriteString(numfmt.PercentWithSign.Format(m.Relative))
	}
	return sb.String()
}
