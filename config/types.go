package config

// StreetConfig configures fixed-speed street movement. Keys of SpeedsKMH
// are mode tags (walk, bike, drive); edges of those modes cost length/speed.
type StreetConfig struct {
	SpeedsKMH map[string]float64 `yaml:"speedsKMH" validate:"required,dive,gt=0"`
}

// TransitConfig configures the scheduled-transit models.
type TransitConfig struct {
	// Source is a path to a GTFS-style zip archive holding calendar.txt,
	// calendar_dates.txt, trips.txt and stop_times.txt.
	Source string `yaml:"source" validate:"required"`
	// Mode is the tag a traveler carries while on a vehicle.
	Mode string `yaml:"mode"`
}

// BoardingConfig configures waiting for and boarding scheduled trips.
// Requires a transit section for the schedule source.
type BoardingConfig struct {
	MinTransferBufferSec int `yaml:"minTransferBufferSec" validate:"gte=0"`
}

// GbfsConfig configures shared-mobility availability checks. StalenessPolicy
// has no default on purpose: the fallback behavior changes which routes are
// feasible, so the operator must choose.
type GbfsConfig struct {
	// StatusSource is a path to a GBFS station_status JSON document used for
	// the initial snapshot and file-based refreshes.
	StatusSource string `yaml:"statusSource" validate:"required"`
	// NATSURL and Subject optionally feed live station_status updates.
	NATSURL               string  `yaml:"natsURL" validate:"omitempty,uri"`
	Subject               string  `yaml:"subject"`
	RefreshIntervalSec    int     `yaml:"refreshIntervalSec" validate:"gte=0"`
	FreshnessThresholdSec int     `yaml:"freshnessThresholdSec" validate:"required,gt=0"`
	StalenessPolicy       string  `yaml:"stalenessPolicy" validate:"required,oneof=optimistic pessimistic"`
	FreeFloating          bool    `yaml:"freeFloating"`
	SpeedKMH              float64 `yaml:"speedKMH" validate:"omitempty,gt=0"`
	UnlockSec             int     `yaml:"unlockSec" validate:"gte=0"`
	DockSec               int     `yaml:"dockSec" validate:"gte=0"`
	Mode                  string  `yaml:"mode"`
}

// GeofenceConfig configures operating-zone enforcement.
type GeofenceConfig struct {
	// Source is a path to a GeoJSON feature collection of zone polygons with
	// zone_id and relation properties.
	Source string `yaml:"source" validate:"required"`
	// Modes lists the mode tags the zones constrain. Empty defaults to the
	// gbfs mode.
	Modes []string `yaml:"modes"`
	// SamplePoints is how many points along an edge geometry are tested,
	// endpoints included. Zero means endpoints plus midpoint.
	SamplePoints int `yaml:"samplePoints" validate:"gte=0"`
}

// TrackerConfig configures the multimodal mode-switch state machine.
type TrackerConfig struct {
	MaxModeSwitches int `yaml:"maxModeSwitches" validate:"gte=0"`
	// Transitions is the adjacency table: from-mode to the set of modes it
	// may switch into. An empty table allows every transition.
	Transitions map[string][]string `yaml:"transitions"`
}

// AppConfig is the root configuration: one tagged section per mode model
// plus tracker settings. A nil section means that mode is not enabled.
// Extra carries raw sections for externally registered mode models.
type AppConfig struct {
	Street   *StreetConfig             `yaml:"street"`
	Boarding *BoardingConfig           `yaml:"boarding"`
	Transit  *TransitConfig            `yaml:"transit"`
	Gbfs     *GbfsConfig               `yaml:"gbfs"`
	Geofence *GeofenceConfig           `yaml:"geofence"`
	Tracker  TrackerConfig             `yaml:"tracker"`
	Extra    map[string]map[string]any `yaml:"extra"`
}
