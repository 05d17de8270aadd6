package model

// Analysis is the structured outcome of classifying one plant image.
// Severity is the upstream's discrete 0 (healthy) to 100 (dead) ladder and
// confidence is a 0.0-1.0 fraction; display code converts, nothing rescales
// one into the other's range. The yaml tags repeat the wire names because
// yaml.v3 does not read json tags.
type Analysis struct {
	CropType        string   `json:"crop_type" yaml:"crop_type"`
	DiseaseStatus   string   `json:"disease_status" yaml:"disease_status"`
	SeverityLevel   int      `json:"severity_level" yaml:"severity_level"`
	Confidence      float64  `json:"confidence" yaml:"confidence"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

// BatchItem is the per-file outcome of a batch analysis. Exactly one of
// Analysis and Err is populated.
type BatchItem struct {
	Filename string    `json:"filename" yaml:"filename"`
	Analysis *Analysis `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Err      string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the upstream could not analyze this file.
func (b BatchItem) Failed() bool {
	return b.Analysis == nil
}

// BatchResult aggregates the per-file outcomes of one batch upload.
type BatchResult struct {
	Items      []BatchItem `json:"items" yaml:"items"`
	Total      int         `json:"total" yaml:"total"`
	Successful int         `json:"successful" yaml:"successful"`
}

// SoilAnalysis holds the soil parameters predicted from one soil photo.
// Moisture and the texture breakdown values are already on a 0-100 percent
// scale; confidence is a 0.0-1.0 fraction like Analysis.Confidence.
type SoilAnalysis struct {
	PH               float64        `json:"pH" yaml:"pH"`
	Moisture         float64        `json:"moisture" yaml:"moisture"`
	Nitrogen         float64        `json:"nitrogen" yaml:"nitrogen"`
	Phosphorus       float64        `json:"phosphorus" yaml:"phosphorus"`
	Potassium        float64        `json:"potassium" yaml:"potassium"`
	Texture          string         `json:"texture" yaml:"texture"`
	TextureBreakdown map[string]int `json:"texture_breakdown" yaml:"texture_breakdown"`
	Recommendations  []string       `json:"recommendations" yaml:"recommendations"`
	Confidence       float64        `json:"confidence" yaml:"confidence"`
}

// Info describes the classification model currently served by the backend.
type Info struct {
	ModelType      string   `json:"model_type" yaml:"model_type"`
	CropsSupported []string `json:"crops_supported" yaml:"crops_supported"`
	SeverityLevels []int    `json:"severity_levels" yaml:"severity_levels"`
	InputSize      []int    `json:"input_size" yaml:"input_size"`
	LastUpdated    string   `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
}
