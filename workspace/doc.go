// Package workspace persists named maps for the operator console.
//
// A Store saves and loads *gridmap.GridMap values by name using the gridmap
// file encoding. Two backends exist:
//
//   - FileStore:   one "<name>.map" file per map, written through a temp file
//     and renamed into place so a crash never leaves a half-written map.
//   - BadgerStore: maps kept under "map/<name>" keys in a Badger database.
//
// Names are 1–64 characters of letters, digits, '-', '_' and '.', and may not
// start with '.'. Missing maps return ErrNotFound. Retrying transient I/O
// failures is left to the caller.
package workspace
