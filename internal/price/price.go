// Package price parses free-form price strings from catalog datasets and
// formats decimal amounts for display in rubles.
package price

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Currency is the glyph appended to every displayed amount.
const Currency = "₽"

// numericRun matches the first run of decimal digits in any script and
// separators. Commas are normalized to points before matching.
var numericRun = regexp.MustCompile(`[\p{Nd}.,]+`)

// Parse extracts the first numeric run from s and returns it as an exact
// decimal. Commas are treated as decimal points, so "1234,56" parses to
// 1234.56 and "12,490.00" parses to 12.490. When s holds no digits the
// result is zero; unparsable text never produces an error.
func Parse(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}

	match := numericRun.FindString(strings.ReplaceAll(s, ",", "."))
	if match == "" {
		return decimal.Zero
	}
	match = asciiDigits(match)

	// Keep at most one decimal point: "12.490.00" → "12.490".
	if first := strings.IndexByte(match, '.'); first >= 0 {
		if second := strings.IndexByte(match[first+1:], '.'); second >= 0 {
			match = match[:first+1+second]
		}
	}
	match = strings.TrimSuffix(match, ".")
	if strings.HasPrefix(match, ".") {
		match = "0" + match
	}
	if match == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// asciiDigits rewrites decimal digits of any script ("٤٥", "４５") to 0-9.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf || !unicode.IsDigit(r) {
			return r
		}
		return '0' + digitValue(r)
	}, s)
}

// digitValue returns the value of a Unicode decimal digit. Every range in
// unicode.Nd is made of whole blocks of ten starting at zero. r must be in Nd.
func digitValue(r rune) rune {
	for _, rg := range unicode.Nd.R16 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return ((r - lo) / rune(rg.Stride)) % 10
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return ((r - lo) / rune(rg.Stride)) % 10
		}
	}
	return 0
}

// Format renders an amount rounded to whole rubles (half to even) with a
// space as the thousands separator: 12490.00 → "12 490 ₽".
func Format(d decimal.Decimal) string {
	digits := d.RoundBank(0).String()

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + " " + Currency
}

// FormatNull renders an optional amount, returning "" when it is absent.
func FormatNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return Format(d.Decimal)
}
