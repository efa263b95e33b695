// Package sortfilter sorts host storage by a composite of column sorts and
// projects the rows that pass the column filters into a viewmap.ViewMap.
//
// Sorts run as successive stable passes ordered by SortOrder descending, so
// the column with the lowest SortOrder is applied last and is the primary
// key. Sorting mutates the host through PrepareDataset/CommitDataset;
// filtering never does.
package sortfilter
