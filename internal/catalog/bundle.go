package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// Class is a coarse hardware bundle class. Fallback pricing is keyed on it.
type Class string

const (
	ClassValue       Class = "Value"
	ClassStandard    Class = "Standard"
	ClassPerformance Class = "Performance"
	ClassPower       Class = "Power"
	ClassPowerPro    Class = "PowerPro"
	ClassGraphics    Class = "Graphics.g4dn"
	ClassGraphicsPro Class = "GraphicsPro.g4dn"
	ClassGeneral     Class = "GeneralPurpose"
)

// Classes lists every defined bundle class.
func Classes() []Class {
	return []Class{
		ClassValue, ClassStandard, ClassPerformance, ClassPower,
		ClassPowerPro, ClassGraphics, ClassGraphicsPro, ClassGeneral,
	}
}

// GraphicsClass distinguishes standard bundles from GPU-backed ones.
type GraphicsClass string

const (
	GraphicsStandard        GraphicsClass = "Standard"
	GraphicsHighPerformance GraphicsClass = "HighPerformance"
)

// bundleAliases maps short bundle identifiers, as submitted by callers, to
// the naming convention the catalog uses in description prefixes. Catalogs
// are irregularly populated per region, so matching happens on the prefix
// rather than a full description.
var bundleAliases = map[string]struct {
	prefix string
	class  Class
}{
	"value":            {"Value", ClassValue},
	"standard":         {"Standard", ClassStandard},
	"performance":      {"Performance", ClassPerformance},
	"power":            {"Power", ClassPower},
	"powerpro":         {"PowerPro", ClassPowerPro},
	"graphics":         {"Graphics.g4dn", ClassGraphics},
	"graphics.g4dn":    {"Graphics.g4dn", ClassGraphics},
	"graphicspro":      {"GraphicsPro.g4dn", ClassGraphicsPro},
	"graphicspro.g4dn": {"GraphicsPro.g4dn", ClassGraphicsPro},
	"general":          {"General Purpose", ClassGeneral},
	"generalpurpose":   {"General Purpose", ClassGeneral},
}

// ResolveBundleID normalizes a requested bundle identifier to the catalog
// description prefix and the bundle class used for fallback pricing.
// Returns ok=false for identifiers outside the alias table.
func ResolveBundleID(bundleID string) (prefix string, class Class, ok bool) {
	a, ok := bundleAliases[strings.ToLower(strings.TrimSpace(bundleID))]
	if !ok {
		return "", "", false
	}
	return a.prefix, a.class, true
}

// matchesPrefix reports whether a bundle description starts with the given
// prefix at a word boundary. Guards against "Power" matching "PowerPro".
func matchesPrefix(description, prefix string) bool {
	if !strings.HasPrefix(description, prefix) {
		return false
	}
	rest := description[len(prefix):]
	if rest == "" {
		return true
	}
	c := rest[0]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

// Spec is an immutable hardware profile derived from a catalog entry's
// human-readable description.
type Spec struct {
	VCPU           int
	MemoryGiB      float64
	StorageGiB     int
	GraphicsClass  GraphicsClass
	GPUCount       int
	VideoMemoryGiB int
}

var (
	vcpuRe   = regexp.MustCompile(`(\d+)\s*vCPUs?`)
	memoryRe = regexp.MustCompile(`([\d.]+)\s*GB\s*(?:RAM|Memory)`)
	rootRe   = regexp.MustCompile(`(\d+)\s*GB\s*(?:Storage|Root)`)
	gpuRe    = regexp.MustCompile(`(\d+)\s*GPUs?`)
	videoRe  = regexp.MustCompile(`(\d+)\s*GB\s*Video`)
)

// ParseSpec extracts a hardware Spec from a catalog bundle description such
// as "Performance (2 vCPU, 8GB RAM)" or
// "GraphicsPro.g4dn (16 vCPU, 64GB RAM, 1 GPU, 16GB Video Memory)".
// Fields absent from the description are left zero.
func ParseSpec(description string) Spec {
	spec := Spec{GraphicsClass: GraphicsStandard}

	if m := vcpuRe.FindStringSubmatch(description); m != nil {
		spec.VCPU, _ = strconv.Atoi(m[1])
	}
	if m := memoryRe.FindStringSubmatch(description); m != nil {
		spec.MemoryGiB, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := rootRe.FindStringSubmatch(description); m != nil {
		spec.StorageGiB, _ = strconv.Atoi(m[1])
	}
	if m := gpuRe.FindStringSubmatch(description); m != nil {
		spec.GPUCount, _ = strconv.Atoi(m[1])
	}
	if m := videoRe.FindStringSubmatch(description); m != nil {
		spec.VideoMemoryGiB, _ = strconv.Atoi(m[1])
	}
	if spec.GPUCount > 0 || strings.Contains(description, "Graphics") {
		spec.GraphicsClass = GraphicsHighPerformance
	}
	return spec
}

// ParseVolumeGiB converts a catalog volume selector such as "80 GB" or
// "175" to whole GiB. Returns 0 for unparseable values.
func ParseVolumeGiB(volume string) int {
	v := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(volume), "GB"))
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
