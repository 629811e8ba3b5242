// internal/rednote/dom/count.go
package dom

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`[0-9][0-9.,]*`)

// maxExact is the largest integer a float64 holds without rounding.
const maxExact = 1 << 53

// ParseCount turns an engagement label into a number: "1,234赞" is 1234,
// "1.2万" and "1.2w" are 12000, and text without digits is 0.
func ParseCount(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	if strings.ContainsAny(strings.ToLower(text), "万w") {
		num := strings.ReplaceAll(leadingNumber.FindString(text), ",", "")
		if f, err := strconv.ParseFloat(num, 64); err == nil {
			v := math.Round(f * 10000)
			if v > maxExact {
				return 0
			}
			return int(v)
		}
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
