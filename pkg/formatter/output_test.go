package formatter_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/greenthumb/greenthumb-cli/pkg/formatter"
	"github.com/greenthumb/greenthumb-cli/pkg/locale"
	"github.com/greenthumb/greenthumb-cli/pkg/model"
)

func disableColor(t *testing.T) {
	t.Helper()

	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
}

func sampleAnalysis() *model.Analysis {
	return &model.Analysis{
		CropType:        "Tomato",
		DiseaseStatus:   "Early Blight",
		SeverityLevel:   40,
		Confidence:      0.87,
		Recommendations: []string{"Remove affected leaves", "Apply copper fungicide"},
	}
}

func TestDisplayAnalysisHuman(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	err := formatter.DisplayAnalysis(&buf, sampleAnalysis(), "human", locale.TagEnglish)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "Crop: Tomato")
	require.Contains(t, out, "Status: Early Blight")
	require.Contains(t, out, "Severity: 40%")
	require.Contains(t, out, "Confidence: 87%")
	require.Contains(t, out, "1. Remove affected leaves")
	require.Contains(t, out, "2. Apply copper fungicide")
}

func TestDisplayAnalysisHumanLocalized(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	err := formatter.DisplayAnalysis(&buf, sampleAnalysis(), "human", locale.TagHindi)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "फ़सल: Tomato")
	require.Contains(t, out, "गंभीरता: 40%")
	require.Contains(t, out, "सुझाव:")
}

func TestDisplayAnalysisHumanNoRecommendations(t *testing.T) {
	disableColor(t)

	a := sampleAnalysis()
	a.Recommendations = nil

	var buf bytes.Buffer
	require.NoError(t, formatter.DisplayAnalysis(&buf, a, "human", locale.TagEnglish))
	require.Contains(t, buf.String(), "No recommendations")
}

func TestDisplayAnalysisJSON(t *testing.T) {
	var buf bytes.Buffer
	err := formatter.DisplayAnalysis(&buf, sampleAnalysis(), "json", locale.TagEnglish)
	require.NoError(t, err)

	var decoded model.Analysis
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, *sampleAnalysis(), decoded)
}

func TestDisplayAnalysisYAML(t *testing.T) {
	var buf bytes.Buffer
	err := formatter.DisplayAnalysis(&buf, sampleAnalysis(), "yaml", locale.TagEnglish)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "crop_type: Tomato")
	require.Contains(t, out, "severity_level: 40")
}

func TestDisplayBatchHuman(t *testing.T) {
	disableColor(t)

	res := &model.BatchResult{
		Items: []model.BatchItem{
			{Filename: "a.png", Analysis: sampleAnalysis()},
			{Filename: "b.png", Err: "Could not analyze image"},
		},
		Total:      2,
		Successful: 1,
	}

	var buf bytes.Buffer
	require.NoError(t, formatter.DisplayBatch(&buf, res, "human", locale.TagEnglish))

	out := buf.String()
	require.Contains(t, out, "✓ a.png: Tomato, Early Blight")
	require.Contains(t, out, "✗ b.png: Could not analyze image")
	require.Contains(t, out, "1 of 2 images analyzed successfully")
}

func sampleSoil() *model.SoilAnalysis {
	return &model.SoilAnalysis{
		PH:               6.8,
		Moisture:         55.0,
		Nitrogen:         120.5,
		Phosphorus:       38.2,
		Potassium:        185.0,
		Texture:          "Loamy",
		TextureBreakdown: map[string]int{"sand": 40, "silt": 40, "clay": 20},
		Recommendations:  []string{"Most vegetables", "Flowers"},
		Confidence:       0.84,
	}
}

func TestDisplaySoilHuman(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	require.NoError(t, formatter.DisplaySoil(&buf, sampleSoil(), "human", locale.TagEnglish))

	out := buf.String()
	require.Contains(t, out, "pH: 6.8")
	require.Contains(t, out, "Moisture: 55%")
	require.Contains(t, out, "Nitrogen: 120.5 mg/kg")
	require.Contains(t, out, "Phosphorus: 38.2 mg/kg")
	require.Contains(t, out, "Potassium: 185.0 mg/kg")
	require.Contains(t, out, "Texture: Loamy (Sand 40%, Silt 40%, Clay 20%)")
	require.Contains(t, out, "Confidence: 84%")
	require.Contains(t, out, "1. Most vegetables")
}

func TestDisplaySoilHumanLocalized(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	require.NoError(t, formatter.DisplaySoil(&buf, sampleSoil(), "human", locale.TagHindi))

	out := buf.String()
	require.Contains(t, out, "नमी: 55%")
	require.Contains(t, out, "रेत 40%")
}

func TestDisplaySoilJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatter.DisplaySoil(&buf, sampleSoil(), "json", locale.TagEnglish))

	var decoded model.SoilAnalysis
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, *sampleSoil(), decoded)
}

func TestDisplaySoilYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatter.DisplaySoil(&buf, sampleSoil(), "yaml", locale.TagEnglish))

	out := buf.String()
	require.Contains(t, out, "pH: 6.8")
	require.Contains(t, out, "texture_breakdown:")
	require.Contains(t, out, "sand: 40")
}

func TestDisplayInfoHuman(t *testing.T) {
	disableColor(t)

	info := &model.Info{
		ModelType:      "EfficientNetB4",
		CropsSupported: []string{"Tomato", "Rice"},
		SeverityLevels: []int{0, 20, 40, 60, 80, 100},
		InputSize:      []int{380, 380},
		LastUpdated:    "2026-08-01",
	}

	var buf bytes.Buffer
	require.NoError(t, formatter.DisplayInfo(&buf, info, "human", locale.TagEnglish))

	out := buf.String()
	require.Contains(t, out, "Model: EfficientNetB4")
	require.Contains(t, out, "Supported crops: Tomato, Rice")
	require.Contains(t, out, "0%, 20%, 40%, 60%, 80%, 100%")
	require.Contains(t, out, "380×380")
	require.Contains(t, out, "Last updated: August 1, 2026")
}

func TestDisplayInfoOpaqueTimestamp(t *testing.T) {
	disableColor(t)

	info := &model.Info{ModelType: "EfficientNetB4", LastUpdated: "build 1842"}

	var buf bytes.Buffer
	require.NoError(t, formatter.DisplayInfo(&buf, info, "human", locale.TagEnglish))
	require.Contains(t, buf.String(), "Last updated: build 1842")
}

func TestSeverityLabelBands(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = old })

	tests := []struct {
		level int
		want  string
	}{
		{level: 0, want: color.New(color.FgGreen).Sprint("0%")},
		{level: 24, want: color.New(color.FgGreen).Sprint("24%")},
		{level: 25, want: color.New(color.FgYellow).Sprint("25%")},
		{level: 40, want: color.New(color.FgYellow).Sprint("40%")},
		{level: 50, want: color.New(color.FgHiYellow).Sprint("50%")},
		{level: 75, want: color.New(color.FgRed, color.Bold).Sprint("75%")},
		{level: 100, want: color.New(color.FgRed, color.Bold).Sprint("100%")},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, formatter.SeverityLabel(tc.level), "level %d", tc.level)
	}
}
