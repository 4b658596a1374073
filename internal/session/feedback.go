package session

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	feedbackCorrect     = "Correct!"
	feedbackEnterNumber = "Enter a number"
)

var printer = message.NewPrinter(language.English)

// groupNumber adds thousands separators to the integer part of a rendered
// number, e.g. "12345.0" -> "12,345.0". Exponent forms and labels that are
// not plain numbers come back unchanged.
func groupNumber(s string) string {
	if strings.ContainsAny(s, "eE") {
		return s
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i:]
	}
	n, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return sign + s
	}
	return sign + printer.Sprintf("%d", n) + frac
}

// parseNumber reads a submitted numeric answer, ignoring thousands separators.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
