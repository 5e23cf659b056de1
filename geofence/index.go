package geofence

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Index is an immutable spatial index over zone polygons. Zones are packed
// into leaves by sort-tile-recursive order (sort by bound center x, tile,
// sort tiles by center y); a lookup tests leaf bounds, then zone bounds,
// then the exact polygon. Built once, safe for unsynchronized reads.
type Index struct {
	leaves []leaf
	count  int
}

type leaf struct {
	bound orb.Bound
	zones []Zone
}

// NewIndex packs the zones into a static bbox tree.
func NewIndex(zones []Zone) *Index {
	ix := &Index{count: len(zones)}
	if len(zones) == 0 {
		return ix
	}
	sorted := make([]Zone, len(zones))
	copy(sorted, zones)
	sort.Slice(sorted, func(i, j int) bool {
		return boundCenterX(sorted[i].Bound) < boundCenterX(sorted[j].Bound)
	})
	leafSize := int(math.Ceil(math.Sqrt(float64(len(sorted)))))
	for start := 0; start < len(sorted); start += leafSize {
		end := start + leafSize
		if end > len(sorted) {
			end = len(sorted)
		}
		group := make([]Zone, end-start)
		copy(group, sorted[start:end])
		sort.Slice(group, func(i, j int) bool {
			return boundCenterY(group[i].Bound) < boundCenterY(group[j].Bound)
		})
		b := group[0].Bound
		for _, z := range group[1:] {
			b = b.Union(z.Bound)
		}
		ix.leaves = append(ix.leaves, leaf{bound: b, zones: group})
	}
	return ix
}

func boundCenterX(b orb.Bound) float64 { return (b.Min[0] + b.Max[0]) / 2 }
func boundCenterY(b orb.Bound) float64 { return (b.Min[1] + b.Max[1]) / 2 }

// Zones returns the number of indexed zones.
func (ix *Index) Zones() int { return ix.count }

// Covering returns every zone whose polygon contains the point.
func (ix *Index) Covering(p orb.Point) []Zone {
	var out []Zone
	for i := range ix.leaves {
		lf := &ix.leaves[i]
		if !lf.bound.Contains(p) {
			continue
		}
		for _, z := range lf.zones {
			if z.Bound.Contains(p) && planar.PolygonContains(z.Polygon, p) {
				out = append(out, z)
			}
		}
	}
	return out
}

// CoveredBy reports whether any zone with the given relation contains the
// point. Cheaper than Covering when only the verdict matters.
func (ix *Index) CoveredBy(p orb.Point, rel Relation) bool {
	for i := range ix.leaves {
		lf := &ix.leaves[i]
		if !lf.bound.Contains(p) {
			continue
		}
		for _, z := range lf.zones {
			if z.Relation == rel && z.Bound.Contains(p) && planar.PolygonContains(z.Polygon, p) {
				return true
			}
		}
	}
	return false
}

// HasRelation reports whether any indexed zone carries the relation.
func (ix *Index) HasRelation(rel Relation) bool {
	for i := range ix.leaves {
		for _, z := range ix.leaves[i].zones {
			if z.Relation == rel {
				return true
			}
		}
	}
	return false
}
