package util

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions orders two plugin version strings. Both are compared
// semantically when they parse as semantic versions (a leading 'v' is
// tolerated); otherwise the comparison falls back to plain string ordering,
// since submitters are free to use arbitrary version labels.
// Returns -1, 0, or 1.
func CompareVersions(v1, v2 string) int {
	s1, err1 := semver.NewVersion(strings.TrimPrefix(v1, "v"))
	s2, err2 := semver.NewVersion(strings.TrimPrefix(v2, "v"))
	if err1 == nil && err2 == nil {
		return s1.Compare(s2)
	}
	return strings.Compare(v1, v2)
}

// SortVersionsDesc sorts version strings newest-first in place.
func SortVersionsDesc(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return CompareVersions(versions[i], versions[j]) > 0
	})
}
