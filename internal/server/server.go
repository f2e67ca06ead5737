package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/airfoil-tradeoff/internal/analysis"
	"github.com/iwvelando/airfoil-tradeoff/internal/chart"
	"github.com/iwvelando/airfoil-tradeoff/internal/config"
	"github.com/iwvelando/airfoil-tradeoff/internal/export"
	"github.com/iwvelando/airfoil-tradeoff/internal/optimizer"
	"github.com/iwvelando/airfoil-tradeoff/internal/source"
	"github.com/iwvelando/airfoil-tradeoff/pkg/comparison"
	"github.com/iwvelando/airfoil-tradeoff/pkg/constants"
	"github.com/iwvelando/airfoil-tradeoff/pkg/optimization"
	"github.com/iwvelando/airfoil-tradeoff/pkg/wing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	wingDefaults  wing.Params
	validate      *validator.Validate
	metrics       *metrics
}

// NewHandler constructs the HTTP handler that serves the analysis API. A nil
// cfg uses DefaultConfig.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	maxUploadSize := cfg.UploadSizeBytes()
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		wingDefaults:  cfg.WingParams(),
		validate:      validator.New(),
		metrics:       newMetrics(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.instrument)

	r.Route("/api", func(r chi.Router) {
		// Airfoil comparison (multipart polar upload)
		r.Post("/compare", h.handleCompare)
		if cfg.Analysis.Charts {
			r.Post("/compare/chart", h.handleCompareChart)
		}

		// Wing trade-off from an explicit design point
		r.Post("/wing", h.handleWing)

		r.Get("/version", h.handleVersion)
	})

	r.Handle("/metrics", promhttp.HandlerFor(h.metrics.registry, promhttp.HandlerOpts{}))

	return r
}

// instrument counts requests by route pattern and status.
func (h *handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		h.metrics.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		h.metrics.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

type datasetInfo struct {
	Label    string `json:"label"`
	Points   int    `json:"points"`
	Skipped  int    `json:"skipped"`
	Rejected int    `json:"rejected"`
}

type compareResponse struct {
	RunID      string           `json:"runId"`
	Rows       []comparison.Row `json:"rows"`
	Datasets   []datasetInfo    `json:"datasets"`
	Missing    []string         `json:"missing,omitempty"`
	Warnings   []string         `json:"warnings,omitempty"`
	CSV        string           `json:"csv"`
	Wing       *wingResponse    `json:"wing,omitempty"`
	Duration   string           `json:"duration"`
	ConfigYAML string           `json:"configYaml,omitempty"`
}

type wingResponse struct {
	RunID          string               `json:"runId"`
	DesignPoint    wing.DesignPoint     `json:"designPoint"`
	Params         wing.Params          `json:"params"`
	Configurations []wing.Configuration `json:"configurations"`
	Steps          []optimization.Step  `json:"steps"`
	Optimal        wing.Configuration   `json:"optimal"`
	OptimalIndex   int                  `json:"optimalIndex"`
	BestStep       int                  `json:"bestStep"`
	CSV            string               `json:"csv"`
	Duration       string               `json:"duration,omitempty"`
}

type wingRequest struct {
	ClDesign         *float64  `json:"clDesign" validate:"required"`
	CdDesign         *float64  `json:"cdDesign" validate:"required,gt=0"`
	OswaldEfficiency *float64  `json:"oswaldEfficiency"`
	AspectRatios     []float64 `json:"aspectRatios" validate:"omitempty,dive,gt=0"`
}

// uploadedAnalysis is a configuration and an in-memory source assembled
// from a multipart request.
type uploadedAnalysis struct {
	conf config.Configuration
	src  *source.MapSource
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	start := time.Now()

	upload, ok := h.parseUpload(w, r, op)
	if !ok {
		return
	}

	warnings := upload.conf.ValidateConfiguration()
	report, err := analysis.Run(h.logger, upload.conf, upload.src, analysis.NewLogReporter(h.logger))
	if report == nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("analysis failed: %v", err), op)
		return
	}
	if err != nil {
		h.respondErrorWithOp(w, r, statusForAnalysisError(err), err.Error(), op)
		return
	}
	h.recordDatasets(report.Comparison)

	var csvBuf bytes.Buffer
	if err := export.WriteSummaryCSV(&csvBuf, report.Comparison.Summary); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render csv: %v", err), op)
		return
	}

	response := compareResponse{
		RunID:    report.RunID,
		Rows:     report.Comparison.Summary.Rows,
		Datasets: make([]datasetInfo, 0, len(report.Comparison.Entries)),
		Warnings: warnings,
		CSV:      csvBuf.String(),
	}
	for _, entry := range report.Comparison.Entries {
		response.Datasets = append(response.Datasets, datasetInfo{
			Label:    entry.Dataset.Label,
			Points:   entry.Dataset.Len(),
			Skipped:  entry.Stats.Skipped,
			Rejected: entry.Stats.Rejected,
		})
		if entry.Dataset.Empty() {
			response.Warnings = append(response.Warnings, fmt.Sprintf("no data found in %s", entry.Path))
		}
	}
	for _, missing := range report.Comparison.Missing {
		response.Missing = append(response.Missing, missing.Label)
		response.Warnings = append(response.Warnings, fmt.Sprintf("%s not found for airfoil %q", missing.Path, missing.Label))
	}

	if report.Wing != nil {
		wr, err := buildWingResponse(report.Wing)
		if err != nil {
			h.respondErrorWithOp(w, r, http.StatusInternalServerError, err.Error(), op)
			return
		}
		response.Wing = wr
	}

	if configYAML, err := yaml.Marshal(upload.conf); err == nil {
		response.ConfigYAML = string(configYAML)
	} else {
		h.logger.Warn("failed to echo configuration",
			zap.String("op", op),
			zap.Error(err),
		)
	}

	response.Duration = time.Since(start).String()
	h.writeJSON(w, r, http.StatusOK, response)
}

func (h *handler) handleCompareChart(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompareChart"

	upload, ok := h.parseUpload(w, r, op)
	if !ok {
		return
	}

	cmp := analysis.Compare(h.logger, upload.src, upload.conf.Airfoils, analysis.NewLogReporter(h.logger))
	h.recordDatasets(cmp)

	datasets := cmp.Datasets()
	var buf bytes.Buffer
	err := chart.RenderComparison(&buf, chart.LiftSeries(datasets), chart.DragSeries(datasets), chart.EfficiencySeries(datasets))
	if errors.Is(err, chart.ErrNoSeries) {
		h.respondErrorWithOp(w, r, http.StatusUnprocessableEntity, "no data found in uploaded polar files", op)
		return
	}
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Run-Id", cmp.RunID)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write chart response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleWing(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleWing"
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var req wingRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err), op)
		return
	}

	params := h.defaultParams()
	if req.OswaldEfficiency != nil {
		params.OswaldEfficiency = *req.OswaldEfficiency
	}
	if len(req.AspectRatios) > 0 {
		params.AspectRatios = req.AspectRatios
	}
	point := wing.DesignPoint{Cl: *req.ClDesign, Cd: *req.CdDesign}

	study, err := analysis.StudyWing(h.logger, point, params, analysis.NewLogReporter(h.logger))
	if err != nil {
		h.respondErrorWithOp(w, r, statusForAnalysisError(err), err.Error(), op)
		return
	}

	response, err := buildWingResponse(study)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, err.Error(), op)
		return
	}
	response.Duration = time.Since(start).String()
	h.writeJSON(w, r, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// parseUpload reads the polar files of a multipart request. Each "file"
// part becomes one airfoil labelled by the matching "label" value, or by
// its file name. An optional "config" part supplies airfoil labels and
// colors (matched on file name) and the wing section; form values
// wingAirfoil, designAngle, oswaldEfficiency and aspectRatios override it.
// Without a config part, unset wing values come from the server defaults.
func (h *handler) parseUpload(w http.ResponseWriter, r *http.Request, op string) (*uploadedAnalysis, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return nil, false
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing polar file", op)
		return nil, false
	}

	upload := &uploadedAnalysis{src: source.NewMapSource(nil)}
	labels := r.MultipartForm.Value["label"]
	var uploaded []config.Airfoil
	for i, fh := range files {
		text, err := readPart(fh)
		if err != nil {
			h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read %s: %v", fh.Filename, err), op)
			return nil, false
		}
		name := filepath.Base(fh.Filename)
		upload.src.Put(name, text)

		label := strings.TrimSuffix(name, filepath.Ext(name))
		if i < len(labels) && strings.TrimSpace(labels[i]) != "" {
			label = strings.TrimSpace(labels[i])
		}
		uploaded = append(uploaded, config.Airfoil{Label: label, File: name})
	}

	if configParts := r.MultipartForm.File["config"]; len(configParts) > 0 {
		text, err := readPart(configParts[0])
		if err != nil {
			h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
			return nil, false
		}
		conf, err := config.LoadConfigurationFromReader(strings.NewReader(text))
		if err != nil {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
			return nil, false
		}
		upload.conf = *conf
		for i := range upload.conf.Airfoils {
			upload.conf.Airfoils[i].File = filepath.Base(upload.conf.Airfoils[i].File)
		}
	}
	if len(upload.conf.Airfoils) == 0 {
		upload.conf.Airfoils = uploaded
	}

	if err := applyWingForm(&upload.conf.Wing, r.MultipartForm.Value); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return nil, false
	}
	defaults := h.defaultParams()
	if upload.conf.Wing.OswaldEfficiency == nil {
		upload.conf.Wing.OswaldEfficiency = &defaults.OswaldEfficiency
	}
	if len(upload.conf.Wing.AspectRatios) == 0 {
		upload.conf.Wing.AspectRatios = defaults.AspectRatios
	}
	upload.conf.ApplyDefaults()
	if err := upload.conf.Validate(); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return nil, false
	}

	return upload, true
}

// defaultParams returns a copy of the configured wing defaults.
func (h *handler) defaultParams() wing.Params {
	params := h.wingDefaults
	params.AspectRatios = append([]float64(nil), h.wingDefaults.AspectRatios...)
	return params
}

func readPart(fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formValue(values map[string][]string, key string) (string, bool) {
	v, ok := values[key]
	if !ok || len(v) == 0 || strings.TrimSpace(v[0]) == "" {
		return "", false
	}
	return strings.TrimSpace(v[0]), true
}

func applyWingForm(w *config.WingConfig, values map[string][]string) error {
	if v, ok := formValue(values, "wingAirfoil"); ok {
		w.Airfoil = v
	}
	if v, ok := formValue(values, "designAngle"); ok {
		angle, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("invalid designAngle %q: %w", v, err)
		}
		w.DesignAngle = &angle
	}
	if v, ok := formValue(values, "oswaldEfficiency"); ok {
		e, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("invalid oswaldEfficiency %q: %w", v, err)
		}
		w.OswaldEfficiency = &e
	}
	if v, ok := formValue(values, "aspectRatios"); ok {
		var ars []float64
		for _, field := range strings.Split(v, ",") {
			ar, err := cast.ToFloat64E(strings.TrimSpace(field))
			if err != nil {
				return fmt.Errorf("invalid aspectRatios %q: %w", v, err)
			}
			ars = append(ars, ar)
		}
		w.AspectRatios = ars
	}
	return nil
}

func buildWingResponse(study *analysis.WingStudy) (*wingResponse, error) {
	var csvBuf bytes.Buffer
	if err := export.WriteWingCSV(&csvBuf, study.Result.Configurations); err != nil {
		return nil, fmt.Errorf("failed to render csv: %w", err)
	}
	return &wingResponse{
		RunID:          study.RunID,
		DesignPoint:    study.DesignPoint,
		Params:         study.Params,
		Configurations: study.Result.Configurations,
		Steps:          study.Result.Steps,
		Optimal:        study.Result.Optimal,
		OptimalIndex:   study.Result.OptimalIndex,
		BestStep:       study.Result.BestStep,
		CSV:            csvBuf.String(),
	}, nil
}

func statusForAnalysisError(err error) int {
	switch {
	case errors.Is(err, analysis.ErrDesignPointUnavailable),
		errors.Is(err, wing.ErrEmptySweep),
		errors.Is(err, wing.ErrNonPositiveAspectRatio),
		errors.Is(err, wing.ErrInvalidOswald),
		errors.Is(err, wing.ErrNonPositiveDrag),
		errors.Is(err, optimizer.ErrUnorderedSweep):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) recordDatasets(cmp *analysis.Comparison) {
	for _, entry := range cmp.Entries {
		if entry.Dataset.Empty() {
			continue
		}
		h.metrics.datasets.Inc()
		h.metrics.points.Add(float64(entry.Dataset.Len()))
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("analysis request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, r, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	render.Status(r, status)
	render.JSON(w, r, payload)
}
