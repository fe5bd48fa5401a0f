package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/driftlab/drift-backend-go/internal/analysis"
	"github.com/driftlab/drift-backend-go/internal/config"
	"github.com/driftlab/drift-backend-go/internal/entropy"
	"github.com/driftlab/drift-backend-go/internal/format"
	"github.com/driftlab/drift-backend-go/internal/models"
	"github.com/driftlab/drift-backend-go/internal/repository"
	"github.com/driftlab/drift-backend-go/internal/rng"
)

// statusSampleSize is the number of bytes drawn for backend health checks
const statusSampleSize = 10000

// GenerationService runs point generations and optionally records them
type GenerationService struct {
	cfg     *config.Config
	history *repository.HistoryRepository
	logger  *zap.Logger
}

// NewGenerationService creates a new generation service. The history
// repository may be nil, in which case generations are never saved.
func NewGenerationService(cfg *config.Config, history *repository.HistoryRepository, logger *zap.Logger) *GenerationService {
	return &GenerationService{cfg: cfg, history: history, logger: logger}
}

// GenerationParams holds one generation request. Zero values fall back to
// the configured defaults.
type GenerationParams struct {
	Lat            float64
	Lng            float64
	Radius         float64
	Points         int
	GridResolution int
	Backend        string
	Seed           *int64
	Mode           analysis.Mode
	IncludePoints  bool
	Save           bool
}

// Generate runs a full generation and saves it to history when requested
func (s *GenerationService) Generate(params GenerationParams) (*analysis.Response, error) {
	if params.Radius == 0 {
		params.Radius = s.cfg.Defaults.Radius
	}
	if params.Points == 0 {
		params.Points = s.cfg.Defaults.Points
	}
	if params.GridResolution == 0 {
		params.GridResolution = s.cfg.Defaults.GridResolution
	}
	if params.Backend == "" {
		params.Backend = s.cfg.Defaults.Backend
	}
	if params.Mode == "" {
		params.Mode = analysis.Mode(s.cfg.Defaults.Mode)
	}

	src := s.source(params)

	start := time.Now()
	resp, err := analysis.Generate(
		analysis.Coordinates{Lat: params.Lat, Lng: params.Lng},
		params.Radius, params.Points, params.GridResolution,
		params.IncludePoints, params.Mode, src,
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("generation complete",
		zap.String("id", resp.ID),
		zap.String("backend", src.Name()),
		zap.String("mode", string(params.Mode)),
		zap.Int("circles", len(resp.Circles)),
		zap.Duration("elapsed", time.Since(start)))

	if params.Save && s.history != nil {
		entry := &models.HistoryEntry{Response: *resp, CreatedAt: time.Now().UTC()}
		if err := s.history.Insert(entry); err != nil {
			// The generation itself succeeded; report the save failure
			// without discarding the result.
			s.logger.Warn("failed to save generation to history",
				zap.String("id", resp.ID), zap.Error(err))
		}
	}

	return resp, nil
}

// BackendStatus reports whether a backend is reachable and how its output
// fares under basic randomness tests
type BackendStatus struct {
	Backend   string              `json:"backend"`
	Available bool                `json:"available"`
	Error     string              `json:"error,omitempty"`
	Entropy   *entropy.TestResults `json:"entropy,omitempty"`
}

// CheckBackend draws a sample from the named backend and runs the entropy
// test suite over it
func (s *GenerationService) CheckBackend(name string) BackendStatus {
	if name == "" {
		name = s.cfg.Defaults.Backend
	}
	src := rng.GetWithKey(name, s.cfg.APIKeys.ANU)

	data, err := src.Bytes(statusSampleSize)
	if err != nil {
		return BackendStatus{Backend: src.Name(), Error: err.Error()}
	}

	results := entropy.RunAllTests(data)
	return BackendStatus{Backend: src.Name(), Available: true, Entropy: &results}
}

// Backends lists the available random backends
func (s *GenerationService) Backends() []rng.Info {
	return rng.Available()
}

func (s *GenerationService) source(params GenerationParams) rng.Source {
	if params.Seed != nil {
		return rng.NewSeeded(*params.Seed)
	}
	return rng.GetWithKey(params.Backend, s.cfg.APIKeys.ANU)
}

// FormatResponse renders a response in the named output format
func (s *GenerationService) FormatResponse(resp *analysis.Response, formatName string, displayType analysis.AnomalyType) (string, error) {
	if formatName == "" {
		formatName = s.cfg.Defaults.Format
	}
	formatter := format.Get(formatName)
	if formatter == nil {
		return "", fmt.Errorf("unknown output format: %s", formatName)
	}
	return formatter.Format(resp, displayType, s.cfg)
}
