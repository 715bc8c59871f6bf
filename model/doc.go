// Package model defines the shared value types of the pangraph API:
// node identifiers, oriented handles, edges, path steps and projected
// path positions. All types are plain comparable values; none of them
// reference engine-internal storage.
package model
