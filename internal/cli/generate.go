package cli

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftlab/drift-backend-go/internal/analysis"
	"github.com/driftlab/drift-backend-go/internal/database"
	"github.com/driftlab/drift-backend-go/internal/repository"
	"github.com/driftlab/drift-backend-go/internal/service"
)

type generateOptions struct {
	lat            float64
	lng            float64
	here           bool
	location       string
	radius         float64
	points         int
	gridResolution int
	backend        string
	seed           int64
	anomalyType    string
	mode           string
	format         string
	includePoints  bool
	save           bool
}

func newGenerateCommand(st *state) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a statistically notable location",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, st, opts)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.lat, "lat", 0, "center latitude in degrees")
	f.Float64Var(&opts.lng, "lng", 0, "center longitude in degrees")
	f.BoolVar(&opts.here, "here", false, "use your approximate position from your public IP")
	f.StringVar(&opts.location, "location", "", "center on a place name (geocoded)")
	f.Float64VarP(&opts.radius, "radius", "r", 0, "search radius in meters")
	f.IntVarP(&opts.points, "points", "p", 0, "number of points to sample")
	f.IntVar(&opts.gridResolution, "grid-resolution", 0, "density grid resolution")
	f.StringVarP(&opts.backend, "backend", "b", "", "random backend (pseudo, anu)")
	f.Int64Var(&opts.seed, "seed", 0, "seed for reproducible output (forces the pseudo backend)")
	f.StringVarP(&opts.anomalyType, "type", "t", "", "anomaly type to display (blind_spot, attractor, void, power)")
	f.StringVarP(&opts.mode, "mode", "m", "", "generation mode (standard, flower_power)")
	f.StringVarP(&opts.format, "format", "f", "", "output format (text, json, gpx, url)")
	f.BoolVar(&opts.includePoints, "include-points", false, "include raw sampled points in the output")
	f.BoolVar(&opts.save, "save", false, "save the generation to history")

	return cmd
}

func runGenerate(cmd *cobra.Command, st *state, opts *generateOptions) error {
	center, err := resolveCenter(cmd, st, opts)
	if err != nil {
		return err
	}

	mode, err := analysis.ParseMode(firstNonEmpty(opts.mode, st.cfg.Defaults.Mode))
	if err != nil {
		return err
	}

	displayType := analysis.Attractor
	if t := firstNonEmpty(opts.anomalyType, st.cfg.Defaults.AnomalyType); t != "" {
		displayType, err = analysis.ParseAnomalyType(t)
		if err != nil {
			return err
		}
	}

	var history *repository.HistoryRepository
	if opts.save {
		repo, db, err := openHistory(st)
		if err != nil {
			return err
		}
		defer db.Close()
		history = repo
	}

	gen := service.NewGenerationService(st.cfg, history, st.logger)

	params := service.GenerationParams{
		Lat:            center.Lat,
		Lng:            center.Lng,
		Radius:         opts.radius,
		Points:         opts.points,
		GridResolution: opts.gridResolution,
		Backend:        opts.backend,
		Mode:           mode,
		IncludePoints:  opts.includePoints,
		Save:           opts.save,
	}
	if cmd.Flags().Changed("seed") {
		params.Seed = &opts.seed
	}

	resp, err := gen.Generate(params)
	if err != nil {
		return err
	}

	out, err := gen.FormatResponse(resp, opts.format, displayType)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// resolveCenter picks the generation center from, in order of precedence,
// explicit coordinates, a geocoded place name, or IP-based location
func resolveCenter(cmd *cobra.Command, st *state, opts *generateOptions) (analysis.Coordinates, error) {
	switch {
	case cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng"):
		return analysis.Coordinates{Lat: opts.lat, Lng: opts.lng}, nil

	case opts.location != "":
		loc, err := service.NewLocationService(st.logger).Resolve(opts.location)
		if err != nil {
			return analysis.Coordinates{}, err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Using location: %s (%.4f, %.4f)\n", loc.DisplayName, loc.Lat, loc.Lng)
		return analysis.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil

	case opts.here || st.cfg.Location.DefaultHere:
		loc, err := service.NewLocationService(st.logger).Here()
		if err != nil {
			return analysis.Coordinates{}, err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Using location: %s (%.4f, %.4f)\n", loc.DisplayName, loc.Lat, loc.Lng)
		return analysis.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil

	default:
		return analysis.Coordinates{}, fmt.Errorf("no center given: pass --lat/--lng, --location, or --here")
	}
}

func openHistory(st *state) (*repository.HistoryRepository, *sql.DB, error) {
	db, err := database.Open(st.cfg.History.Path)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repository.NewHistoryRepository(db, st.cfg.History.MaxEntries), db, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
