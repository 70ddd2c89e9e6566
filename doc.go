// Package rovermap is the map and route engine behind the rover operator
// console: an occupancy grid with a byte-exact file format, A* route search
// over it, and route reports with distance, displacement and an annotated map.
//
// Under the hood, everything is organized under these subpackages:
//
//	gridmap/   — GridMap: cells, marks, edits, sub-grids, load/save, simplify
//	astar/     — A* search with arena nodes, deterministic tie-breaking, cancellation
//	route/     — Report: segments, distance, displacement, annotated copy
//	metrics/   — Prometheus collector for search outcomes
//	config/    — YAML console configuration
//	workspace/ — named map storage on files or Badger
//	render/    — terminal preview via tcell
//
// Quick ASCII example (obstacle '1', empty '0', route '*'):
//
//	00100        00100
//	00100        00100
//	00000   →    *****
//	00100        00100
//	00100        00100
//
// The command cmd/roverconsole wires the packages into a headless console.
package rovermap
