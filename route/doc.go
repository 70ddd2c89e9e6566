// Package route turns a node chain found by astar.Search into a RouteReport:
// per-segment displacement vectors, total distance, net displacement and an
// annotated copy of the map with the route cells overwritten by a route mark.
//
// Segment orientation matches the reconstructed chain: segment i is
// position[i] − position[i+1]. Only magnitudes and vector sums are used
// downstream, so the orientation does not change Distance or Displacement.
//
// Properties:
//
//   - Displacement() ≤ Distance(), equal iff the route is a straight line.
//   - A route of 0 or 1 nodes has no segments and both metrics are 0.
//   - Build never mutates the caller's map; the Report is immutable.
package route
