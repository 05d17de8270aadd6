package locale

import (
	"strconv"
	"strings"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printers = map[Tag]*message.Printer{
	TagEnglish: message.NewPrinter(TagEnglish.Language()),
	TagHindi:   message.NewPrinter(TagHindi.Language()),
	TagKannada: message.NewPrinter(TagKannada.Language()),
}

func printerFor(tag Tag) *message.Printer {
	if p, ok := printers[tag]; ok {
		return p
	}
	return printers[DefaultTag]
}

// FormatNumber renders v with the locale's digit grouping, so 1234567 comes
// out as "1,234,567" in English and "12,34,567" in Hindi.
func FormatNumber(v float64, tag Tag) string {
	return printerFor(tag).Sprint(number.Decimal(v))
}

// FormatDecimal renders v with exactly the requested number of fraction
// digits, zero-padded when v carries fewer.
func FormatDecimal(v float64, decimals int, tag Tag) string {
	if decimals < 0 {
		decimals = 0
	}
	return printerFor(tag).Sprint(number.Decimal(v, number.Scale(decimals)))
}

// FormatPercent renders a 0.0-1.0 ratio as a locale percentage, e.g.
// FormatPercent(0.873, 1, TagEnglish) == "87.3%". Values already on a 0-100
// scale belong to FormatNumberWithSuffix instead.
func FormatPercent(ratio float64, decimals int, tag Tag) string {
	if decimals < 0 {
		decimals = 0
	}
	return printerFor(tag).Sprint(number.Percent(ratio, number.Scale(decimals)))
}

// FormatNumberWithSuffix appends a literal percent sign to v without any
// rescaling or locale grouping. showSign prefixes positive values with "+";
// negative values keep their minus sign.
func FormatNumberWithSuffix(v float64, showSign bool) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if showSign && v > 0 {
		s = "+" + s
	}
	return s + "%"
}

type separators struct {
	group   string
	decimal string
}

var numberSeparators = map[Tag]separators{
	TagEnglish: {group: ",", decimal: "."},
	TagHindi:   {group: ",", decimal: "."},
	TagKannada: {group: ",", decimal: "."},
}

// ParseNumber is the inverse of FormatNumber: it strips the locale's digit
// grouping, normalizes the decimal separator, and parses the result.
func ParseNumber(s string, tag Tag) (float64, error) {
	sep, ok := numberSeparators[tag]
	if !ok {
		sep = numberSeparators[DefaultTag]
	}

	normalized := strings.ReplaceAll(strings.TrimSpace(s), sep.group, "")
	if sep.decimal != "." {
		normalized = strings.ReplaceAll(normalized, sep.decimal, ".")
	}

	return strconv.ParseFloat(normalized, 64)
}
