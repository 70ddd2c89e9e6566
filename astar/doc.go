// Package astar implements A* route search over a gridmap.GridMap.
//
// What:
//
//   - Search finds a least-cost 4-connected route (up, down, left, right)
//     between two 1-based cells, entering only cells equal to the empty mark.
//   - Nodes live in an arena indexed by cell offset; predecessor links are
//     arena indices, so path reconstruction is a bounded walk.
//   - The open set is a binary heap ordered by (F, discovery order); ties go to
//     the node discovered first, which keeps results reproducible.
//
// Outcomes:
//
//   - StatusFound:     Result.Path holds the chain start → goal.
//   - StatusNoRoute:   the open set emptied; the goal is proven unreachable.
//   - StatusCancelled: the context ended first; Result.Cause holds ctx.Err().
//
// NoRoute and Cancelled are ordinary results, not errors. Errors are reserved
// for caller mistakes: a nil grid, endpoints outside the grid, bad costs.
//
// Options:
//
//   - WithContext(ctx):    cancellation, checked once per expansion.
//   - WithCost(fn):        per-cell cost to enter (weighted terrain); default 1.
//   - WithHeuristic(fn):   estimate to goal; default Manhattan |dx|+|dy|.
//   - WithOnExpand(fn):    hook called for every expanded node.
//   - WithObserver(o):     receives the result and wall time of each search.
//
// Manhattan distance is admissible only for unit-or-greater costs; with cheaper
// cells the search still terminates but the route is best-effort.
//
// Complexity:
//
//   - Time:  O(N log N) where N = W×H.
//   - Space: O(N) for the arena and snapshot.
//
// Concurrency: Search copies the grid under its read lock and never touches the
// caller's map again, so editing the map mid-search is safe and invisible to it.
package astar
