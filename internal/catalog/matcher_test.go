package catalog

import (
	"errors"
	"reflect"
	"testing"
)

func testEntries() []Entry {
	return []Entry{
		{
			BundleDescription: "Value (1 vCPU, 2GB RAM)",
			RootVolume:        "80 GB", UserVolume: "10 GB",
			OperatingSystem: "Windows", License: "Included", RunningMode: "AutoStop",
		},
		{
			BundleDescription: "Standard (2 vCPU, 4GB RAM)",
			RootVolume:        "80 GB", UserVolume: "50 GB",
			OperatingSystem: "Windows", License: "Included", RunningMode: "AutoStop",
		},
		{
			BundleDescription: "Standard (2 vCPU, 4GB RAM)",
			RootVolume:        "175 GB", UserVolume: "100 GB",
			OperatingSystem: "Windows", License: "Included", RunningMode: "AlwaysOn",
		},
		{
			BundleDescription: "Standard (2 vCPU, 4GB RAM)",
			RootVolume:        "80 GB", UserVolume: "50 GB",
			OperatingSystem: "Ubuntu", License: "Bring Your Own License", RunningMode: "AutoStop",
		},
		{
			BundleDescription: "PowerPro (8 vCPU, 32GB RAM)",
			RootVolume:        "175 GB", UserVolume: "100 GB",
			OperatingSystem: "Windows", License: "Included", RunningMode: "AlwaysOn",
		},
	}
}

func TestMatch_ExactTier(t *testing.T) {
	entry, tier, err := Match("standard", testEntries(), Criteria{
		OperatingSystem: "windows",
		License:         "included",
		RootVolumeGiB:   175,
		UserVolumeGiB:   100,
	})
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if tier != MatchExact {
		t.Errorf("tier = %v, want MatchExact", tier)
	}
	if entry.RootVolume != "175 GB" || entry.RunningMode != "AlwaysOn" {
		t.Errorf("matched wrong entry: %+v", entry)
	}
}

func TestMatch_OSLicenseTier(t *testing.T) {
	// No Standard entry offers a 999 GB root volume; the OS+license tier
	// should win over bundle-only.
	entry, tier, err := Match("standard", testEntries(), Criteria{
		OperatingSystem: "Ubuntu",
		License:         "Bring Your Own License",
		RootVolumeGiB:   999,
	})
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if tier != MatchOSLicense {
		t.Errorf("tier = %v, want MatchOSLicense", tier)
	}
	if entry.OperatingSystem != "Ubuntu" {
		t.Errorf("matched wrong entry: %+v", entry)
	}
}

func TestMatch_BundleOnlyTier(t *testing.T) {
	entry, tier, err := Match("standard", testEntries(), Criteria{
		OperatingSystem: "Amazon Linux",
		License:         "Included",
	})
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if tier != MatchBundleOnly {
		t.Errorf("tier = %v, want MatchBundleOnly", tier)
	}
	if entry.BundleDescription != "Standard (2 vCPU, 4GB RAM)" {
		t.Errorf("matched wrong entry: %+v", entry)
	}
}

func TestMatch_NotFound(t *testing.T) {
	_, _, err := Match("performance", testEntries(), Criteria{})
	if !errors.Is(err, ErrNoMatchingBundle) {
		t.Fatalf("Match() error = %v, want ErrNoMatchingBundle", err)
	}

	_, _, err = Match("not-a-bundle", testEntries(), Criteria{})
	if !errors.Is(err, ErrNoMatchingBundle) {
		t.Fatalf("Match() with unknown alias error = %v, want ErrNoMatchingBundle", err)
	}
}

func TestMatch_PowerDoesNotMatchPowerPro(t *testing.T) {
	_, _, err := Match("power", testEntries(), Criteria{})
	if !errors.Is(err, ErrNoMatchingBundle) {
		t.Fatalf("Match(power) error = %v, want ErrNoMatchingBundle (only PowerPro present)", err)
	}
}

func TestOfferedVolumes(t *testing.T) {
	roots, users := OfferedVolumes("standard", testEntries())
	if want := []int{80, 175}; !reflect.DeepEqual(roots, want) {
		t.Errorf("root volumes = %v, want %v", roots, want)
	}
	if want := []int{50, 100}; !reflect.DeepEqual(users, want) {
		t.Errorf("user volumes = %v, want %v", users, want)
	}

	roots, users = OfferedVolumes("performance", testEntries())
	if roots != nil || users != nil {
		t.Errorf("volumes for absent bundle = %v/%v, want nil/nil", roots, users)
	}
}
