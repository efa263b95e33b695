// Package host defines the callback contract between the grid engine and the
// application that owns the row data.
//
// The grid reads through Row/Cell and mutates through the two-phase
// PrepareDataset, SetCellData, CommitDataset sequence; CommitDataset is the
// only point at which host storage changes. A required callback that is nil
// when first needed panics with *ContractError.
//
// Subpackages provide ready-made sources backed by memory, a JSON document
// and a SQLite table.
package host
