package geofence

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Relation classifies what a zone means for traversal.
type Relation int

const (
	// RelationAllowed marks a permitted operating area; travel outside all
	// allowed zones is rejected for constrained modes.
	RelationAllowed Relation = iota
	// RelationProhibited marks an area no constrained traversal may touch.
	RelationProhibited
	// RelationNoParking permits riding through but forbids ending a
	// shared-vehicle leg inside the zone.
	RelationNoParking
)

func ParseRelation(s string) (Relation, error) {
	switch s {
	case "allowed-area", "allowed":
		return RelationAllowed, nil
	case "prohibited":
		return RelationProhibited, nil
	case "no-parking":
		return RelationNoParking, nil
	default:
		return 0, fmt.Errorf("unknown zone relation %q", s)
	}
}

func (r Relation) String() string {
	switch r {
	case RelationAllowed:
		return "allowed-area"
	case RelationProhibited:
		return "prohibited"
	case RelationNoParking:
		return "no-parking"
	default:
		return "unknown"
	}
}

// Zone is one geofence polygon with its relation type. Polygons are closed
// and non-self-intersecting; the bound is precomputed for index pruning.
type Zone struct {
	ID       string
	Relation Relation
	Polygon  orb.Polygon
	Bound    orb.Bound
}

// NewZone precomputes the polygon's bounding box.
func NewZone(id string, relation Relation, polygon orb.Polygon) Zone {
	return Zone{ID: id, Relation: relation, Polygon: polygon, Bound: polygon.Bound()}
}

// LoadGeoJSON reads zones from a GeoJSON feature collection. Each feature
// needs a polygon (or multipolygon) geometry plus "zone_id" and "relation"
// properties. Malformed input fails the load; nothing is skipped silently.
func LoadGeoJSON(path string) ([]Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zone source %q: %w", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode zone source %q: %w", path, err)
	}
	var zones []Zone
	for i, f := range fc.Features {
		id, _ := f.Properties["zone_id"].(string)
		if id == "" {
			return nil, fmt.Errorf("zone source %q: feature %d has no zone_id", path, i)
		}
		relStr, _ := f.Properties["relation"].(string)
		rel, err := ParseRelation(relStr)
		if err != nil {
			return nil, fmt.Errorf("zone source %q: feature %q: %w", path, id, err)
		}
		switch geom := f.Geometry.(type) {
		case orb.Polygon:
			zones = append(zones, NewZone(id, rel, geom))
		case orb.MultiPolygon:
			for j, poly := range geom {
				zones = append(zones, NewZone(fmt.Sprintf("%s/%d", id, j), rel, poly))
			}
		default:
			return nil, fmt.Errorf("zone source %q: feature %q: geometry is %T, want polygon", path, id, geom)
		}
	}
	return zones, nil
}
