// Package cell holds the immutable coordinate types of the grid.
//
// Coordinates are 0-based (Row, Col). A Range may store its corners in any
// order; geometric queries go through Bounds, which normalizes on read.
package cell
