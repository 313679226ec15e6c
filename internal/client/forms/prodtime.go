package forms

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	MinProdMinutes = 1
	MaxProdMinutes = 120
)

// FormatProdTime renders minutes the way entries store them: "5 min read".
func FormatProdTime(minutes int) string {
	return fmt.Sprintf("%d min read", minutes)
}

// ParseProdTime extracts the leading integer of a stored prodTime value
// ("5 min read" gives 5). ok is false when there is no leading number.
func ParseProdTime(s string) (minutes int, ok bool) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
