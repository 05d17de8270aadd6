package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/greenthumb/greenthumb-cli/pkg/model"
)

const (
	defaultTimeout = 60 * time.Second

	analyzePath   = "/analyze"
	batchPath     = "/batch-analyze"
	healthPath    = "/health"
	modelInfoPath = "/model-info"
	soilPath      = "/api/soil/analyze"
)

// Client talks to the plant disease analysis service. It performs exactly
// one HTTP request per operation: no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxUpload  int64
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client, including its timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout adjusts the per-request timeout on the client in use.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithMaxUploadSize overrides the upload size cap.
func WithMaxUploadSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxUpload = n
		}
	}
}

// WithLogger attaches a logger for request-level debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Client for the service at baseURL, e.g. "http://localhost:8000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxUpload:  DefaultMaxUploadSize,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AnalyzeImage uploads one image and returns its analysis. The upload is
// validated locally first, so oversized or non-image data never reaches the
// network. All failures surface as *Error with a populated Kind.
func (c *Client) AnalyzeImage(ctx context.Context, up Upload) (*model.Analysis, error) {
	if err := up.validate(c.maxUpload); err != nil {
		return nil, err
	}

	body, contentType, err := encodeMultipart(fileField, up)
	if err != nil {
		return nil, wrapError(KindValidation, "failed to encode upload", err)
	}

	raw, err := c.roundTrip(ctx, http.MethodPost, analyzePath, contentType, body)
	if err != nil {
		return nil, err
	}

	return decodeAnalysis(raw)
}

// AnalyzeBatch uploads several images in one request and returns the
// per-file outcomes. Every upload must pass local validation; the first
// invalid one fails the whole call before any network traffic.
func (c *Client) AnalyzeBatch(ctx context.Context, uploads []Upload) (*model.BatchResult, error) {
	if len(uploads) == 0 {
		return nil, newError(KindValidation, "no images to analyze")
	}
	for _, up := range uploads {
		if err := up.validate(c.maxUpload); err != nil {
			return nil, err
		}
	}

	body, contentType, err := encodeMultipart(batchFileField, uploads...)
	if err != nil {
		return nil, wrapError(KindValidation, "failed to encode uploads", err)
	}

	raw, err := c.roundTrip(ctx, http.MethodPost, batchPath, contentType, body)
	if err != nil {
		return nil, err
	}

	return decodeBatch(raw)
}

// AnalyzeSoil uploads one soil photo and returns the predicted soil
// parameters. Validation and failure semantics match AnalyzeImage.
func (c *Client) AnalyzeSoil(ctx context.Context, up Upload) (*model.SoilAnalysis, error) {
	if err := up.validate(c.maxUpload); err != nil {
		return nil, err
	}

	body, contentType, err := encodeMultipart(fileField, up)
	if err != nil {
		return nil, wrapError(KindValidation, "failed to encode upload", err)
	}

	raw, err := c.roundTrip(ctx, http.MethodPost, soilPath, contentType, body)
	if err != nil {
		return nil, err
	}

	return decodeSoil(raw)
}

// ModelInfo fetches the description of the model currently serving analyses.
func (c *Client) ModelInfo(ctx context.Context) (*model.Info, error) {
	raw, err := c.roundTrip(ctx, http.MethodGet, modelInfoPath, "", nil)
	if err != nil {
		return nil, err
	}

	return decodeInfo(raw)
}

// Healthy reports whether the analysis service is reachable and answering.
// Every failure mode collapses to false.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// roundTrip performs one request and hands back the body of a 2xx response.
// Everything else comes back as a *Error classified per the taxonomy.
func (c *Client) roundTrip(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, wrapError(KindValidation, "failed to build request", err)
	}

	id := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", id)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("analysis service request", "id", id, "method", method, "path", path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.failure(ctx, "request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.failure(ctx, "failed to read response", err)
	}

	c.logger.Debug("analysis service response",
		"id", id, "status", resp.StatusCode, "bytes", len(raw), "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstreamError(resp.StatusCode, raw)
	}

	return raw, nil
}

// failure maps an in-flight error to cancelled when the caller's context is
// done, and to transport otherwise.
func (c *Client) failure(ctx context.Context, msg string, err error) *Error {
	if ctx.Err() != nil {
		return wrapError(KindCancelled, "analysis cancelled", ctx.Err())
	}
	return wrapError(KindTransport, msg, err)
}

// upstreamError turns a non-2xx response into an upstream failure. The
// service reports problems as {"detail": ...} while proxies in front of it
// use {"message": ...}; when neither yields text the status code stands in.
func upstreamError(status int, body []byte) *Error {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}

	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = detailString(payload.Detail)
		if msg == "" {
			msg = strings.TrimSpace(payload.Message)
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("upstream error: status %d", status)
	}

	return &Error{Kind: KindUpstream, Message: msg, StatusCode: status}
}

func detailString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

const (
	fileField      = "file"
	batchFileField = "files"
)

func encodeMultipart(field string, uploads ...Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, up := range uploads {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, escapeQuotes(up.Filename)))
		h.Set("Content-Type", up.resolveContentType())

		fw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(up.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func decodeAnalysis(raw []byte) (*model.Analysis, error) {
	var payload struct {
		CropType        *string  `json:"crop_type"`
		DiseaseStatus   *string  `json:"disease_status"`
		SeverityLevel   *int     `json:"severity_level"`
		Confidence      *float64 `json:"confidence"`
		Recommendations []string `json:"recommendations"`
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, wrapError(KindMalformedResponse, "failed to decode analysis response", err)
	}

	switch {
	case payload.CropType == nil:
		return nil, missingField("crop_type")
	case payload.DiseaseStatus == nil:
		return nil, missingField("disease_status")
	case payload.SeverityLevel == nil:
		return nil, missingField("severity_level")
	case payload.Confidence == nil:
		return nil, missingField("confidence")
	case *payload.SeverityLevel < 0 || *payload.SeverityLevel > 100:
		return nil, newError(KindMalformedResponse,
			fmt.Sprintf("severity_level %d is outside the 0-100 scale", *payload.SeverityLevel))
	case *payload.Confidence < 0 || *payload.Confidence > 1:
		return nil, newError(KindMalformedResponse,
			fmt.Sprintf("confidence %g is outside the 0-1 range", *payload.Confidence))
	}

	recs := payload.Recommendations
	if recs == nil {
		recs = []string{}
	}

	return &model.Analysis{
		CropType:        *payload.CropType,
		DiseaseStatus:   *payload.DiseaseStatus,
		SeverityLevel:   *payload.SeverityLevel,
		Confidence:      *payload.Confidence,
		Recommendations: recs,
	}, nil
}

func missingField(name string) *Error {
	return newError(KindMalformedResponse,
		fmt.Sprintf("analysis response is missing required field %q", name))
}

func decodeBatch(raw []byte) (*model.BatchResult, error) {
	var payload struct {
		Results []struct {
			Filename   string          `json:"filename"`
			Status     string          `json:"status"`
			Prediction json.RawMessage `json:"prediction"`
			Error      string          `json:"error"`
		} `json:"results"`
		Total      *int `json:"total"`
		Successful *int `json:"successful"`
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, wrapError(KindMalformedResponse, "failed to decode batch response", err)
	}
	if payload.Total == nil || payload.Successful == nil {
		return nil, newError(KindMalformedResponse, "batch response is missing required fields")
	}

	out := &model.BatchResult{
		Items:      make([]model.BatchItem, 0, len(payload.Results)),
		Total:      *payload.Total,
		Successful: *payload.Successful,
	}

	for _, r := range payload.Results {
		item := model.BatchItem{Filename: r.Filename}
		switch {
		case r.Status == "failed":
			item.Err = r.Error
			if item.Err == "" {
				item.Err = "analysis failed"
			}
		case len(r.Prediction) > 0 && string(r.Prediction) != "null":
			analysis, err := decodeAnalysis(r.Prediction)
			if err != nil {
				item.Err = fmt.Sprintf("malformed prediction: %v", err)
			} else {
				item.Analysis = analysis
			}
		default:
			item.Err = "no prediction returned"
		}
		out.Items = append(out.Items, item)
	}

	return out, nil
}

func decodeSoil(raw []byte) (*model.SoilAnalysis, error) {
	var payload struct {
		PH               *float64       `json:"pH"`
		Moisture         *float64       `json:"moisture"`
		Nitrogen         *float64       `json:"nitrogen"`
		Phosphorus       *float64       `json:"phosphorus"`
		Potassium        *float64       `json:"potassium"`
		Texture          *string        `json:"texture"`
		TextureBreakdown map[string]int `json:"texture_breakdown"`
		Recommendations  []string       `json:"recommendations"`
		Confidence       *float64       `json:"confidence"`
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, wrapError(KindMalformedResponse, "failed to decode soil analysis response", err)
	}

	switch {
	case payload.PH == nil:
		return nil, missingField("pH")
	case payload.Moisture == nil:
		return nil, missingField("moisture")
	case payload.Nitrogen == nil:
		return nil, missingField("nitrogen")
	case payload.Phosphorus == nil:
		return nil, missingField("phosphorus")
	case payload.Potassium == nil:
		return nil, missingField("potassium")
	case payload.Texture == nil:
		return nil, missingField("texture")
	case payload.Confidence == nil:
		return nil, missingField("confidence")
	case *payload.Confidence < 0 || *payload.Confidence > 1:
		return nil, newError(KindMalformedResponse,
			fmt.Sprintf("confidence %g is outside the 0-1 range", *payload.Confidence))
	}

	recs := payload.Recommendations
	if recs == nil {
		recs = []string{}
	}
	breakdown := payload.TextureBreakdown
	if breakdown == nil {
		breakdown = map[string]int{}
	}

	return &model.SoilAnalysis{
		PH:               *payload.PH,
		Moisture:         *payload.Moisture,
		Nitrogen:         *payload.Nitrogen,
		Phosphorus:       *payload.Phosphorus,
		Potassium:        *payload.Potassium,
		Texture:          *payload.Texture,
		TextureBreakdown: breakdown,
		Recommendations:  recs,
		Confidence:       *payload.Confidence,
	}, nil
}

func decodeInfo(raw []byte) (*model.Info, error) {
	var payload struct {
		ModelType      *string  `json:"model_type"`
		CropsSupported []string `json:"crops_supported"`
		SeverityLevels []int    `json:"severity_levels"`
		InputSize      []int    `json:"input_size"`
		LastUpdated    string   `json:"last_updated"`
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, wrapError(KindMalformedResponse, "failed to decode model info response", err)
	}
	if payload.ModelType == nil {
		return nil, newError(KindMalformedResponse, "model info response is missing required fields")
	}

	return &model.Info{
		ModelType:      *payload.ModelType,
		CropsSupported: payload.CropsSupported,
		SeverityLevels: payload.SeverityLevels,
		InputSize:      payload.InputSize,
		LastUpdated:    payload.LastUpdated,
	}, nil
}
