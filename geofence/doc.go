// Package geofence answers point-in-zone queries over operating-area
// polygons. Zones load from a GeoJSON feature collection and go into a
// static bounding-box tree; candidate polygons are pruned by rectangle
// before the exact containment test, so lookups stay cheap at network scale
// while producing exactly the brute-force result.
package geofence
