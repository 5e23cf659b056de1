package traversal

import (
	"context"
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/multimodal-traversal/config"
	"github.com/theoremus-urban-solutions/multimodal-traversal/gbfs"
	"github.com/theoremus-urban-solutions/multimodal-traversal/geofence"
	"github.com/theoremus-urban-solutions/multimodal-traversal/schedule"
)

// DefaultTransitMode tags the traveler while riding scheduled transit when
// the transit section does not name one.
const DefaultTransitMode = "transit"

// DefaultGbfsMode tags the traveler on a shared vehicle when the gbfs
// section does not name one.
const DefaultGbfsMode = "bike"

// Build validates the configuration, loads every referenced data source and
// assembles the composed Service. All validation happens here: a bad config
// key, a missing or corrupt source archive, or an empty schedule fail the
// build with a descriptive error, and the caller never receives a partially
// built Service. Evaluation never fails this way afterwards.
func Build(cfg *config.AppConfig, reg *Registry) (*Service, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	for tag := range cfg.Extra {
		if !reg.Has(tag) {
			return nil, fmt.Errorf("unknown config tag %q: no such model registered", tag)
		}
	}

	ctx := &BuildContext{Config: cfg}
	if cfg.Transit != nil {
		idx, err := schedule.LoadFromZip(cfg.Transit.Source)
		if err != nil {
			return nil, fmt.Errorf("transit.source: %w", err)
		}
		if idx.Empty() {
			return nil, fmt.Errorf("transit.source: archive %q holds no scheduled service", cfg.Transit.Source)
		}
		ctx.Schedule = idx
	}
	if cfg.Gbfs != nil {
		snap, err := loadInitialSnapshot(cfg.Gbfs.StatusSource)
		if err != nil {
			return nil, fmt.Errorf("gbfs.statusSource: %w", err)
		}
		ctx.Availability = gbfs.NewCache(snap)
	}
	if cfg.Geofence != nil {
		zones, err := geofence.LoadGeoJSON(cfg.Geofence.Source)
		if err != nil {
			return nil, fmt.Errorf("geofence.source: %w", err)
		}
		ctx.Zones = geofence.NewIndex(zones)
	}

	svc := newService(NewTracker(cfg.Tracker.MaxModeSwitches, cfg.Tracker.Transitions), ctx.Availability)
	for _, tag := range reg.Tags() {
		model, err := reg.builders[tag](ctx)
		if err != nil {
			return nil, fmt.Errorf("build model %q: %w", tag, err)
		}
		if model == nil {
			continue
		}
		svc.install(tag, model)
	}
	return svc, nil
}

func loadInitialSnapshot(path string) (*gbfs.Snapshot, error) {
	src := gbfs.FileSource(path)
	return src(context.Background())
}

func buildStreet(ctx *BuildContext) (Model, error) {
	cfg := ctx.Config
	if cfg.Street == nil && (cfg.Gbfs == nil || cfg.Gbfs.SpeedKMH == 0) {
		return nil, nil
	}
	speeds := map[string]float64{}
	if cfg.Street != nil {
		for mode, kmh := range cfg.Street.SpeedsKMH {
			speeds[mode] = kmh
		}
	}
	// a gbfs section with a ride speed makes its mode street-traversable
	// even when the street section does not mention it
	if cfg.Gbfs != nil && cfg.Gbfs.SpeedKMH > 0 {
		mode := cfg.Gbfs.Mode
		if mode == "" {
			mode = DefaultGbfsMode
		}
		if _, ok := speeds[mode]; !ok {
			speeds[mode] = cfg.Gbfs.SpeedKMH
		}
	}
	return NewStreetModel(speeds), nil
}

func buildBoarding(ctx *BuildContext) (Model, error) {
	cfg := ctx.Config
	if cfg.Boarding == nil {
		return nil, nil
	}
	if ctx.Schedule == nil {
		return nil, fmt.Errorf("boarding: no schedule index loaded (transit section missing)")
	}
	mode := DefaultTransitMode
	if cfg.Transit.Mode != "" {
		mode = cfg.Transit.Mode
	}
	buffer := time.Duration(cfg.Boarding.MinTransferBufferSec) * time.Second
	return NewBoardingModel(ctx.Schedule, buffer, mode), nil
}

func buildTransit(ctx *BuildContext) (Model, error) {
	cfg := ctx.Config
	if cfg.Transit == nil {
		return nil, nil
	}
	mode := DefaultTransitMode
	if cfg.Transit.Mode != "" {
		mode = cfg.Transit.Mode
	}
	return NewTransitModel(ctx.Schedule, mode), nil
}

func buildGbfs(ctx *BuildContext) (Model, error) {
	cfg := ctx.Config
	if cfg.Gbfs == nil {
		return nil, nil
	}
	policy, err := gbfs.ParseStalenessPolicy(cfg.Gbfs.StalenessPolicy)
	if err != nil {
		return nil, err
	}
	mode := cfg.Gbfs.Mode
	if mode == "" {
		mode = DefaultGbfsMode
	}
	return NewGbfsModel(
		ctx.Availability,
		time.Duration(cfg.Gbfs.FreshnessThresholdSec)*time.Second,
		policy,
		time.Duration(cfg.Gbfs.UnlockSec)*time.Second,
		time.Duration(cfg.Gbfs.DockSec)*time.Second,
		cfg.Gbfs.FreeFloating,
		mode,
	), nil
}

func buildGeofence(ctx *BuildContext) (Model, error) {
	cfg := ctx.Config
	if cfg.Geofence == nil {
		return nil, nil
	}
	modes := cfg.Geofence.Modes
	if len(modes) == 0 {
		mode := DefaultGbfsMode
		if cfg.Gbfs != nil && cfg.Gbfs.Mode != "" {
			mode = cfg.Gbfs.Mode
		}
		modes = []string{mode}
	}
	return NewGeofenceModel(ctx.Zones, modes, cfg.Geofence.SamplePoints), nil
}
