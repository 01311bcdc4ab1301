package money

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNegativeAmount is returned when spelling a negative number.
var ErrNegativeAmount = errors.New("cannot spell a negative amount")

// ErrAmountTooLarge is returned when a rounded amount does not fit in an int64.
var ErrAmountTooLarge = errors.New("amount too large to spell")

var maxSpellable = decimal.NewFromInt(math.MaxInt64)

const (
	crore    = 10000000
	lakh     = 100000
	thousand = 1000
)

var units = [...]string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tens = [...]string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

// NumberToWords spells a whole number on the Indian scale, e.g.
// 123456 → "One lakh twenty three thousand four hundred and fifty six".
// Only whole rupees are spelled; callers round fractional amounts first.
func NumberToWords(n int64) (string, error) {
	if n < 0 {
		return "", ErrNegativeAmount
	}
	if n == 0 {
		return "Zero", nil
	}
	words := spell(n)
	return strings.ToUpper(words[:1]) + words[1:], nil
}

// AmountInWords rounds amount to whole rupees (half away from zero) and
// returns "Rupees <words> only".
func AmountInWords(amount decimal.Decimal) (string, error) {
	rupees := amount.Round(0)
	if rupees.IsNegative() {
		return "", ErrNegativeAmount
	}
	if rupees.GreaterThan(maxSpellable) {
		return "", ErrAmountTooLarge
	}
	words, err := NumberToWords(rupees.IntPart())
	if err != nil {
		return "", err
	}
	return "Rupees " + words + " only", nil
}

func spell(n int64) string {
	parts := make([]string, 0, 12)
	if c := n / crore; c > 0 {
		parts = append(parts, spell(c), "crore")
		n %= crore
	}
	if l := n / lakh; l > 0 {
		parts = append(parts, twoDigits(l), "lakh")
		n %= lakh
	}
	if t := n / thousand; t > 0 {
		parts = append(parts, twoDigits(t), "thousand")
		n %= thousand
	}
	hundreds, rest := n/100, n%100
	if hundreds > 0 {
		parts = append(parts, units[hundreds], "hundred")
	}
	if rest > 0 {
		if hundreds > 0 {
			parts = append(parts, "and")
		}
		parts = append(parts, twoDigits(rest))
	}
	return strings.Join(parts, " ")
}

func twoDigits(n int64) string {
	if n < 20 {
		return units[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + units[n%10]
}
