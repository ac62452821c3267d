package engine

import "sort"

// VolumeSelection is the outcome of reconciling one requested volume size
// against what the catalog actually offers.
type VolumeSelection struct {
	ResolvedGiB int  `json:"resolvedGiB"`
	Honored     bool `json:"honored"`
}

// ReconcileVolume finds the closest offered size at or above the requested
// one. Requests above every offered size resolve to the largest offer; the
// round-up policy avoids silently under-provisioning storage. An empty
// offered set keeps the request as-is, since nothing contradicted it.
func ReconcileVolume(requestedGiB int, offeredGiB []int) VolumeSelection {
	if len(offeredGiB) == 0 || requestedGiB <= 0 {
		return VolumeSelection{ResolvedGiB: requestedGiB, Honored: true}
	}

	sorted := make([]int, len(offeredGiB))
	copy(sorted, offeredGiB)
	sort.Ints(sorted)

	for _, size := range sorted {
		if size == requestedGiB {
			return VolumeSelection{ResolvedGiB: size, Honored: true}
		}
		if size > requestedGiB {
			return VolumeSelection{ResolvedGiB: size, Honored: false}
		}
	}
	return VolumeSelection{ResolvedGiB: sorted[len(sorted)-1], Honored: false}
}
