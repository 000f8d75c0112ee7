// File: pkg/bundle/order.go
package bundle

import (
	"path/filepath"
	"sort"

	"codefuse/pkg/language"
)

// Order returns paths arranged for mode. The input slice is not modified.
// Both sorts are stable, so ties keep their walk order.
func Order(paths []string, mode SortMode) []string {
	out := make([]string, len(paths))
	copy(out, paths)

	switch mode {
	case SortType:
		sort.SliceStable(out, func(i, j int) bool {
			return language.ClassifyPath(out[i]) < language.ClassifyPath(out[j])
		})
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return filepath.Base(out[i]) < filepath.Base(out[j])
		})
	}
	return out
}
