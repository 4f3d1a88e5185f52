package dataset

import (
	"fmt"
	"sort"
)

// Consolidate aligns the label spaces of independently-built datasets.
// It assigns every username a master index in first-seen order across
// the dataset list, rewrites each dataset's Labels in place to use the
// master indices, and overwrites each dataset's Label2Idx with the
// master mapping. The same username always resolves to the same master
// index no matter which dataset introduced it.
func Consolidate(datasets []*Dataset) (map[string]int, error) {
	master := make(map[string]int)
	tables := make([][]int, 0, len(datasets))

	for _, ds := range datasets {
		table, err := translationTable(ds, master)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	for i, ds := range datasets {
		if err := reindexLabels(ds, tables[i]); err != nil {
			return nil, err
		}
		ds.Metadata.Label2Idx = master
	}
	return master, nil
}

// translationTable maps a dataset's old label indices to master
// indices, extending the master mapping as new usernames appear.
// Usernames are visited in old-index order so that master index
// assignment is deterministic.
func translationTable(ds *Dataset, master map[string]int) ([]int, error) {
	label2idx := ds.Metadata.Label2Idx
	n := len(label2idx)
	byOldIdx := make([]string, n)
	seen := make([]bool, n)

	for username, old := range label2idx {
		if old < 0 || old >= n {
			return nil, fmt.Errorf("consolidate %s: label index %d out of range for %d labels", ds.Metadata.Language, old, n)
		}
		if seen[old] {
			return nil, fmt.Errorf("consolidate %s: label index %d assigned to %q and %q", ds.Metadata.Language, old, byOldIdx[old], username)
		}
		seen[old] = true
		byOldIdx[old] = username
	}

	table := make([]int, n)
	for old, username := range byOldIdx {
		idx, ok := master[username]
		if !ok {
			idx = len(master)
			master[username] = idx
		}
		table[old] = idx
	}
	return table, nil
}

func reindexLabels(ds *Dataset, table []int) error {
	for i, old := range ds.Secondary.Labels {
		if old < 0 || old >= len(table) {
			return fmt.Errorf("consolidate %s: example %d has label %d outside vocabulary of size %d",
				ds.Metadata.Language, i, old, len(table))
		}
		ds.Secondary.Labels[i] = table[old]
	}
	return nil
}

// MasterUsernames returns the usernames of a master mapping ordered by
// their assigned index.
func MasterUsernames(master map[string]int) []string {
	names := make([]string, 0, len(master))
	for name := range master {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return master[names[i]] < master[names[j]]
	})
	return names
}
