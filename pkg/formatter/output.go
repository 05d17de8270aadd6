package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/greenthumb/greenthumb-cli/pkg/locale"
	"github.com/greenthumb/greenthumb-cli/pkg/model"
)

// DisplayAnalysis formats and displays a single analysis result
func DisplayAnalysis(w io.Writer, analysis *model.Analysis, format string, tag locale.Tag) error {
	switch format {
	case "json":
		return displayJSON(w, analysis)
	case "yaml":
		return displayYAML(w, analysis)
	case "human":
		fallthrough
	default:
		displayAnalysisHuman(w, analysis, tag)
	}
	return nil
}

// DisplayBatch formats and displays the per-file outcomes of a batch run
func DisplayBatch(w io.Writer, res *model.BatchResult, format string, tag locale.Tag) error {
	switch format {
	case "json":
		return displayJSON(w, res)
	case "yaml":
		return displayYAML(w, res)
	case "human":
		fallthrough
	default:
		displayBatchHuman(w, res, tag)
	}
	return nil
}

// DisplaySoil formats and displays a soil analysis result
func DisplaySoil(w io.Writer, soil *model.SoilAnalysis, format string, tag locale.Tag) error {
	switch format {
	case "json":
		return displayJSON(w, soil)
	case "yaml":
		return displayYAML(w, soil)
	case "human":
		fallthrough
	default:
		displaySoilHuman(w, soil, tag)
	}
	return nil
}

// DisplayInfo formats and displays the served model description
func DisplayInfo(w io.Writer, info *model.Info, format string, tag locale.Tag) error {
	switch format {
	case "json":
		return displayJSON(w, info)
	case "yaml":
		return displayYAML(w, info)
	case "human":
		fallthrough
	default:
		displayInfoHuman(w, info, tag)
	}
	return nil
}

func displayJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(w io.Writer, v any) error {
	output, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(output))
	return nil
}

func displayAnalysisHuman(w io.Writer, a *model.Analysis, tag locale.Tag) {
	label := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "🌱 %s: %s\n", label.Sprint(locale.T(tag, "label_crop", nil)), a.CropType)
	fmt.Fprintf(w, "🔬 %s: %s\n", label.Sprint(locale.T(tag, "label_status", nil)), a.DiseaseStatus)
	fmt.Fprintf(w, "📊 %s: %s\n", label.Sprint(locale.T(tag, "label_severity", nil)), SeverityLabel(a.SeverityLevel))

	confidence := locale.FormatPercent(a.Confidence, 0, tag)
	fmt.Fprintf(w, "🎯 %s: %s\n", label.Sprint(locale.T(tag, "label_confidence", nil)), confidence)

	fmt.Fprintln(w)
	if len(a.Recommendations) == 0 {
		fmt.Fprintf(w, "💡 %s\n", locale.T(tag, "msg_no_recommendations", nil))
	} else {
		label.Fprintf(w, "💡 %s:\n", locale.T(tag, "label_recommendations", nil))
		for i, rec := range a.Recommendations {
			fmt.Fprintf(w, "   %d. %s\n", i+1, rec)
		}
	}

	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func displayBatchHuman(w io.Writer, res *model.BatchResult, tag locale.Tag) {
	file := color.New(color.FgWhite, color.Bold)

	fmt.Fprintln(w)
	for _, item := range res.Items {
		if item.Failed() {
			fmt.Fprintf(w, "✗ %s: %s\n", file.Sprint(item.Filename), color.RedString(item.Err))
			continue
		}

		a := item.Analysis
		fmt.Fprintf(w, "✓ %s: %s, %s (%s %s)\n",
			file.Sprint(item.Filename), a.CropType, a.DiseaseStatus,
			locale.T(tag, "label_severity", nil), SeverityLabel(a.SeverityLevel))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, locale.T(tag, "msg_batch_summary", map[string]any{
		"Successful": locale.FormatNumber(float64(res.Successful), tag),
		"Total":      locale.FormatNumber(float64(res.Total), tag),
	}))
}

func displaySoilHuman(w io.Writer, a *model.SoilAnalysis, tag locale.Tag) {
	label := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "🧪 %s: %s\n", label.Sprint(locale.T(tag, "label_ph", nil)), locale.FormatDecimal(a.PH, 1, tag))
	fmt.Fprintf(w, "💧 %s: %s\n", label.Sprint(locale.T(tag, "label_moisture", nil)), locale.FormatNumberWithSuffix(a.Moisture, false))
	fmt.Fprintf(w, "🌿 %s: %s mg/kg\n", label.Sprint(locale.T(tag, "label_nitrogen", nil)), locale.FormatDecimal(a.Nitrogen, 1, tag))
	fmt.Fprintf(w, "🌸 %s: %s mg/kg\n", label.Sprint(locale.T(tag, "label_phosphorus", nil)), locale.FormatDecimal(a.Phosphorus, 1, tag))
	fmt.Fprintf(w, "🥔 %s: %s mg/kg\n", label.Sprint(locale.T(tag, "label_potassium", nil)), locale.FormatDecimal(a.Potassium, 1, tag))

	texture := a.Texture
	if parts := textureParts(a.TextureBreakdown, tag); parts != "" {
		texture += " (" + parts + ")"
	}
	fmt.Fprintf(w, "🏜  %s: %s\n", label.Sprint(locale.T(tag, "label_texture", nil)), texture)

	confidence := locale.FormatPercent(a.Confidence, 0, tag)
	fmt.Fprintf(w, "🎯 %s: %s\n", label.Sprint(locale.T(tag, "label_confidence", nil)), confidence)

	fmt.Fprintln(w)
	if len(a.Recommendations) == 0 {
		fmt.Fprintf(w, "💡 %s\n", locale.T(tag, "msg_no_recommendations", nil))
	} else {
		label.Fprintf(w, "💡 %s:\n", locale.T(tag, "label_recommendations", nil))
		for i, rec := range a.Recommendations {
			fmt.Fprintf(w, "   %d. %s\n", i+1, rec)
		}
	}

	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

// textureParts renders the sand/silt/clay split in a fixed order; the wire
// emits exactly these three keys.
func textureParts(breakdown map[string]int, tag locale.Tag) string {
	parts := make([]string, 0, 3)
	for _, key := range []string{"sand", "silt", "clay"} {
		if v, ok := breakdown[key]; ok {
			parts = append(parts, fmt.Sprintf("%s %s",
				locale.T(tag, "label_"+key, nil), locale.FormatNumberWithSuffix(float64(v), false)))
		}
	}
	return strings.Join(parts, ", ")
}

func displayInfoHuman(w io.Writer, info *model.Info, tag locale.Tag) {
	label := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: %s\n", label.Sprint(locale.T(tag, "label_model", nil)), info.ModelType)

	if len(info.CropsSupported) > 0 {
		fmt.Fprintf(w, "%s: %s\n",
			label.Sprint(locale.T(tag, "label_crops_supported", nil)),
			strings.Join(info.CropsSupported, ", "))
	}

	if len(info.SeverityLevels) > 0 {
		levels := make([]string, len(info.SeverityLevels))
		for i, l := range info.SeverityLevels {
			levels[i] = locale.FormatNumberWithSuffix(float64(l), false)
		}
		fmt.Fprintf(w, "%s: %s\n",
			label.Sprint(locale.T(tag, "label_severity_levels", nil)),
			strings.Join(levels, ", "))
	}

	if len(info.InputSize) > 0 {
		dims := make([]string, len(info.InputSize))
		for i, d := range info.InputSize {
			dims[i] = strconv.Itoa(d)
		}
		fmt.Fprintf(w, "%s: %s\n",
			label.Sprint(locale.T(tag, "label_input_size", nil)),
			strings.Join(dims, "×"))
	}

	if info.LastUpdated != "" {
		fmt.Fprintf(w, "%s: %s\n",
			label.Sprint(locale.T(tag, "label_last_updated", nil)),
			formatUpdated(info.LastUpdated, tag))
	}
}

// formatUpdated localizes last_updated when it parses as a date; the backend
// does not promise a format, so anything else passes through untouched.
func formatUpdated(s string, tag locale.Tag) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return locale.FormatDate(t, locale.DateFull, tag)
		}
	}
	return s
}

// SeverityLabel renders a 0-100 severity level as a percent string colored
// by band: green below 25, yellow below 50, high-intensity yellow below 75,
// red from 75 up.
func SeverityLabel(level int) string {
	return severityColor(level).Sprint(locale.FormatNumberWithSuffix(float64(level), false))
}

func severityColor(level int) *color.Color {
	switch {
	case level < 25:
		return color.New(color.FgGreen)
	case level < 50:
		return color.New(color.FgYellow)
	case level < 75:
		return color.New(color.FgHiYellow)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}
