package locale_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenthumb/greenthumb-cli/pkg/locale"
)

func TestFormatNumberGrouping(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		tag  locale.Tag
		want string
	}{
		{name: "english western grouping", v: 1234567, tag: locale.TagEnglish, want: "1,234,567"},
		{name: "hindi lakh crore grouping", v: 1234567, tag: locale.TagHindi, want: "12,34,567"},
		{name: "english with fraction", v: 1234.5, tag: locale.TagEnglish, want: "1,234.5"},
		{name: "small value untouched", v: 42, tag: locale.TagHindi, want: "42"},
		{name: "unknown tag falls back to default", v: 1234567, tag: locale.Tag("zz"), want: "1,234,567"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, locale.FormatNumber(tc.v, tc.tag))
		})
	}
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		decimals int
		tag      locale.Tag
		want     string
	}{
		{name: "pads integers", v: 6, decimals: 2, tag: locale.TagEnglish, want: "6.00"},
		{name: "keeps native precision", v: 6.5, decimals: 1, tag: locale.TagEnglish, want: "6.5"},
		{name: "rounds excess digits", v: 3.14159, decimals: 2, tag: locale.TagEnglish, want: "3.14"},
		{name: "groups and pads", v: 1234.5, decimals: 2, tag: locale.TagEnglish, want: "1,234.50"},
		{name: "hindi grouping with fixed fraction", v: 1234567.5, decimals: 1, tag: locale.TagHindi, want: "12,34,567.5"},
		{name: "negative precision clamps to zero", v: 5.7, decimals: -1, tag: locale.TagEnglish, want: "6"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, locale.FormatDecimal(tc.v, tc.decimals, tc.tag))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		decimals int
		tag      locale.Tag
		want     string
	}{
		{name: "scales ratio to percent", ratio: 0.15, decimals: 0, tag: locale.TagEnglish, want: "15%"},
		{name: "keeps requested precision", ratio: 0.8725, decimals: 1, tag: locale.TagEnglish, want: "87.3%"},
		{name: "zero", ratio: 0, decimals: 0, tag: locale.TagEnglish, want: "0%"},
		{name: "full confidence", ratio: 1, decimals: 0, tag: locale.TagHindi, want: "100%"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, locale.FormatPercent(tc.ratio, tc.decimals, tc.tag))
		})
	}
}

func TestFormatNumberWithSuffix(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		showSign bool
		want     string
	}{
		{name: "positive with sign", v: 15, showSign: true, want: "+15%"},
		{name: "positive without sign", v: 15, showSign: false, want: "15%"},
		{name: "zero never gets a plus", v: 0, showSign: true, want: "0%"},
		{name: "negative keeps minus", v: -3, showSign: true, want: "-3%"},
		{name: "fraction passes through", v: 2.5, showSign: false, want: "2.5%"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, locale.FormatNumberWithSuffix(tc.v, tc.showSign))
		})
	}
}

func TestParseNumberRoundTrip(t *testing.T) {
	values := []float64{0, 6, 87.3, 1234.56, 1234567}

	for _, tag := range locale.SupportedTags() {
		for _, v := range values {
			formatted := locale.FormatNumber(v, tag)

			parsed, err := locale.ParseNumber(formatted, tag)
			require.NoError(t, err, "tag %s value %v formatted as %q", tag, v, formatted)
			require.InDelta(t, v, parsed, 1e-9)
		}
	}
}

func TestParseNumberInvalid(t *testing.T) {
	_, err := locale.ParseNumber("not a number", locale.TagEnglish)
	require.Error(t, err)
}
