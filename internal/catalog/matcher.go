package catalog

import (
	"errors"
	"sort"
	"strings"
)

// ErrNoMatchingBundle reports that no catalog entry carries the requested
// bundle's description prefix.
var ErrNoMatchingBundle = errors.New("no catalog entry matches requested bundle")

// MatchTier records how strict the winning match was.
type MatchTier int

const (
	// MatchExact means operating system, license and both volumes matched.
	MatchExact MatchTier = iota
	// MatchOSLicense means only operating system and license matched.
	MatchOSLicense
	// MatchBundleOnly means only the bundle prefix matched.
	MatchBundleOnly
)

func (t MatchTier) String() string {
	switch t {
	case MatchExact:
		return "exact"
	case MatchOSLicense:
		return "os-license"
	default:
		return "bundle-only"
	}
}

// Criteria narrows matching beyond the bundle prefix.
type Criteria struct {
	OperatingSystem string
	License         string
	RootVolumeGiB   int
	UserVolumeGiB   int
}

// Match finds the catalog entry best matching the requested bundle ID,
// preferring exact configuration matches, then OS+license matches, then any
// entry with the right bundle prefix. Catalogs are irregularly populated per
// region; a rigid exact-only match would leave most regions without a price.
func Match(bundleID string, entries []Entry, want Criteria) (Entry, MatchTier, error) {
	prefix, _, ok := ResolveBundleID(bundleID)
	if !ok {
		return Entry{}, 0, ErrNoMatchingBundle
	}

	var osLicense, bundleOnly *Entry
	for i := range entries {
		e := entries[i]
		if !matchesPrefix(e.BundleDescription, prefix) {
			continue
		}
		if bundleOnly == nil {
			bundleOnly = &entries[i]
		}
		if !equalFold(e.OperatingSystem, want.OperatingSystem) ||
			!equalFold(e.License, want.License) {
			continue
		}
		if osLicense == nil {
			osLicense = &entries[i]
		}
		if volumeMatches(e.RootVolume, want.RootVolumeGiB) &&
			volumeMatches(e.UserVolume, want.UserVolumeGiB) {
			return e, MatchExact, nil
		}
	}

	if osLicense != nil {
		return *osLicense, MatchOSLicense, nil
	}
	if bundleOnly != nil {
		return *bundleOnly, MatchBundleOnly, nil
	}
	return Entry{}, 0, ErrNoMatchingBundle
}

// OfferedVolumes returns the distinct root and user volume sizes, in GiB and
// ascending, offered by catalog entries carrying the requested bundle's
// prefix. Unparseable or absent volume selectors are skipped.
func OfferedVolumes(bundleID string, entries []Entry) (rootGiB, userGiB []int) {
	prefix, _, ok := ResolveBundleID(bundleID)
	if !ok {
		return nil, nil
	}
	roots := map[int]struct{}{}
	users := map[int]struct{}{}
	for _, e := range entries {
		if !matchesPrefix(e.BundleDescription, prefix) {
			continue
		}
		if v := ParseVolumeGiB(e.RootVolume); v > 0 {
			roots[v] = struct{}{}
		}
		if v := ParseVolumeGiB(e.UserVolume); v > 0 {
			users[v] = struct{}{}
		}
	}
	return sortedKeys(roots), sortedKeys(users)
}

func sortedKeys(set map[int]struct{}) []int {
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func volumeMatches(selector string, wantGiB int) bool {
	if wantGiB <= 0 {
		return true
	}
	return ParseVolumeGiB(selector) == wantGiB
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
