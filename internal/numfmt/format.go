// Package numfmt formats chart values with DecimalFormat-style patterns.
//
// A pattern is a positive subpattern optionally followed by ';' and a
// negative subpattern. Supported syntax:
//
//	+        leading plus: positive numbers carry an explicit sign
//	,        grouping separator in the integer part (groups of three)
//	0 #      required and optional fraction digits after '.'
//	%        percent suffix: the value is multiplied by 100
//
// Examples: "#,##0.00", "+#,##0.00;-#,##0.00", "+#,##0.00%;-#,##0.00%".
package numfmt

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Format converts a value into display text.
type Format interface {
	Format(v float64) string
}

// ErrEmptyPattern is returned when parsing an empty pattern.
var ErrEmptyPattern = errors.New("numfmt: empty pattern")

const (
	infinity = "∞"
	notANum  = "NaN"
)

// Predefined formats.
var (
	Amount          = MustParse("#,##0.00")
	SignedAmount    = MustParse("+#,##0.00;-#,##0.00")
	Percent         = MustParse("#,##0.00%")
	PercentWithSign = MustParse("+#,##0.00%;-#,##0.00%")
)

// Pattern is a parsed number pattern. The zero value is not usable; use Parse.
type Pattern struct {
	source   string
	posSign  string
	negSign  string
	suffix   string
	minFrac  int
	maxFrac  int
	grouping bool
	percent  bool
}

// Parse compiles a pattern string.
func Parse(pattern string) (*Pattern, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	pos, neg, hasNeg := strings.Cut(pattern, ";")
	p := &Pattern{source: pattern, negSign: "-"}

	if strings.HasPrefix(pos, "+") {
		p.posSign = "+"
		pos = pos[1:]
	}
	if strings.HasSuffix(pos, "%") {
		p.percent = true
		p.suffix = "%"
		pos = strings.TrimSuffix(pos, "%")
	}

	intPart, fracPart, _ := strings.Cut(pos, ".")
	if intPart == "" || strings.Trim(intPart, "#,0") != "" {
		return nil, fmt.Errorf("numfmt: invalid integer part in %q", pattern)
	}
	if strings.Trim(fracPart, "0#") != "" {
		return nil, fmt.Errorf("numfmt: invalid fraction part in %q", pattern)
	}
	p.grouping = strings.Contains(intPart, ",")
	p.minFrac = strings.Count(fracPart, "0")
	p.maxFrac = len(fracPart)
	if strings.Contains(strings.TrimLeft(fracPart, "0"), "0") {
		return nil, fmt.Errorf("numfmt: '0' after '#' in fraction of %q", pattern)
	}

	if hasNeg {
		neg = strings.TrimSpace(neg)
		if !strings.HasPrefix(neg, "-") {
			return nil, fmt.Errorf("numfmt: negative subpattern %q must start with '-'", neg)
		}
	}

	return p, nil
}

// MustParse is like Parse but panics on error. Use for constant patterns.
func MustParse(pattern string) *Pattern {
	p, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.source
}

// IsPercent reports whether the pattern renders percentages.
func (p *Pattern) IsPercent() bool {
	return p.percent
}

// Format renders v. Infinite values render as the infinity symbol with the
// pattern's sign and suffix; NaN renders as "NaN".
func (p *Pattern) Format(v float64) string {
	if math.IsNaN(v) {
		return notANum
	}
	if math.IsInf(v, 0) {
		return p.sign(v < 0) + infinity + p.suffix
	}

	// The sign follows the value, so -0.001 renders as "-0.00".
	negative := v < 0

	d := decimal.NewFromFloat(v)
	if p.percent {
		d = d.Shift(2)
	}
	d = d.RoundBank(int32(p.maxFrac))

	digits := d.Abs().StringFixedBank(int32(p.maxFrac))
	digits = p.trimFraction(digits)

	intDigits, frac, hasFrac := strings.Cut(digits, ".")
	if p.grouping {
		intDigits = group(intDigits)
	}

	var sb strings.Builder
	sb.WriteString(p.sign(negative))
	sb.WriteString(intDigits)
	if hasFrac && frac != "" {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	sb.WriteString(p.suffix)
	return sb.String()
}

func (p *Pattern) sign(negative bool) string {
	if negative {
		return p.negSign
	}
	return p.posSign
}

// trimFraction drops optional trailing zeros beyond minFrac.
func (p *Pattern) trimFraction(s string) string {
	if p.maxFrac == p.minFrac {
		return s
	}
	intDigits, frac, ok := strings.Cut(s, ".")
	if !ok {
		return s
	}
	for len(frac) > p.minFrac && strings.HasSuffix(frac, "0") {
		frac = frac[:len(frac)-1]
	}
	if frac == "" {
		return intDigits
	}
	return intDigits + "." + frac
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

// IsPercent reports whether f renders percentages. Formats other than
// *Pattern are never treated as percentages.
func IsPercent(f Format) bool {
	p, ok := f.(*Pattern)
	return ok && p.IsPercent()
}
