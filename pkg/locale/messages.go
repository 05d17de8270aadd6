package locale

import (
	"embed"
	"fmt"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

//go:embed translations
var translationsFS embed.FS

var bundle = newBundle()

func newBundle() *i18n.Bundle {
	b := i18n.NewBundle(DefaultTag.Language())
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, tag := range supported {
		name := fmt.Sprintf("translations/messages.%s.toml", tag)
		data, err := translationsFS.ReadFile(name)
		if err != nil {
			continue
		}
		b.MustParseMessageFileBytes(data, name)
	}

	return b
}

// T renders the message identified by id in the given language, falling back
// to English and finally to the id itself. It never fails: a missing
// translation yields a stable, if untranslated, string.
func T(tag Tag, id string, data map[string]any) string {
	loc := i18n.NewLocalizer(bundle, string(tag), string(DefaultTag))

	s, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:      id,
		DefaultMessage: &i18n.Message{ID: id, Other: id},
		TemplateData:   data,
	})
	if err != nil || s == "" {
		return id
	}

	return s
}

// MonthName returns the full month name for a zero-based month index
// (0 = January). Out-of-range indexes yield the untranslated message key.
func MonthName(month int, tag Tag) string {
	return T(tag, "month_long_"+strconv.Itoa(month), nil)
}

// MonthAbbrev returns the abbreviated month name for a zero-based month
// index (0 = Jan).
func MonthAbbrev(month int, tag Tag) string {
	return T(tag, "month_abbr_"+strconv.Itoa(month), nil)
}

// DateStyle selects how much of a date FormatDate spells out.
type DateStyle int

const (
	// DateFull writes the full month name, e.g. "August 25, 2026".
	DateFull DateStyle = iota
	// DateShort writes an abbreviated month and day, e.g. "Aug 25".
	DateShort
	// DateNumeric writes digits only in the locale's field order.
	DateNumeric
)

// FormatDate renders t using the locale's pattern for the given style; field
// order follows the locale, so English leads with the month and Hindi with
// the day. If the pattern is missing from the locale data it falls back to
// ISO 8601 rather than failing.
func FormatDate(t time.Time, style DateStyle, tag Tag) string {
	month := int(t.Month()) - 1
	data := map[string]any{
		"Day":  strconv.Itoa(t.Day()),
		"Year": strconv.Itoa(t.Year()),
	}

	var id string
	switch style {
	case DateShort:
		id = "date_short"
		data["Month"] = MonthAbbrev(month, tag)
	case DateNumeric:
		id = "date_numeric"
		data["Month"] = strconv.Itoa(int(t.Month()))
	default:
		id = "date_full"
		data["Month"] = MonthName(month, tag)
	}

	s := T(tag, id, data)
	if s == id {
		return t.Format("2006-01-02")
	}

	return s
}
