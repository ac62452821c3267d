package catalog

import "testing"

func TestResolveBundleID(t *testing.T) {
	tests := []struct {
		name       string
		bundleID   string
		wantPrefix string
		wantClass  Class
		wantOK     bool
	}{
		{"standard", "standard", "Standard", ClassStandard, true},
		{"case and spacing ignored", "  PowerPro ", "PowerPro", ClassPowerPro, true},
		{"graphics short alias", "graphics", "Graphics.g4dn", ClassGraphics, true},
		{"graphics full alias", "graphicspro.g4dn", "GraphicsPro.g4dn", ClassGraphicsPro, true},
		{"pool bundle", "general", "General Purpose", ClassGeneral, true},
		{"unknown", "mega", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, class, ok := ResolveBundleID(tt.bundleID)
			if ok != tt.wantOK {
				t.Fatalf("ResolveBundleID(%q) ok = %v, want %v", tt.bundleID, ok, tt.wantOK)
			}
			if prefix != tt.wantPrefix {
				t.Errorf("prefix = %q, want %q", prefix, tt.wantPrefix)
			}
			if class != tt.wantClass {
				t.Errorf("class = %q, want %q", class, tt.wantClass)
			}
		})
	}
}

func TestMatchesPrefix(t *testing.T) {
	tests := []struct {
		description string
		prefix      string
		want        bool
	}{
		{"Power (4 vCPU, 16GB RAM)", "Power", true},
		{"PowerPro (8 vCPU, 32GB RAM)", "Power", false},
		{"PowerPro (8 vCPU, 32GB RAM)", "PowerPro", true},
		{"Standard", "Standard", true},
		{"Graphics.g4dn (4 vCPU, 16GB RAM, 1 GPU)", "Graphics.g4dn", true},
		{"Value (1 vCPU, 2GB RAM)", "Standard", false},
	}

	for _, tt := range tests {
		if got := matchesPrefix(tt.description, tt.prefix); got != tt.want {
			t.Errorf("matchesPrefix(%q, %q) = %v, want %v", tt.description, tt.prefix, got, tt.want)
		}
	}
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        Spec
	}{
		{
			name:        "standard bundle",
			description: "Standard (2 vCPU, 4GB RAM, 80GB Storage)",
			want:        Spec{VCPU: 2, MemoryGiB: 4, StorageGiB: 80, GraphicsClass: GraphicsStandard},
		},
		{
			name:        "fractional memory",
			description: "Value (1 vCPU, 2.5GB RAM)",
			want:        Spec{VCPU: 1, MemoryGiB: 2.5, GraphicsClass: GraphicsStandard},
		},
		{
			name:        "gpu bundle",
			description: "GraphicsPro.g4dn (16 vCPU, 64GB RAM, 1 GPU, 16GB Video Memory)",
			want: Spec{
				VCPU: 16, MemoryGiB: 64, GPUCount: 1, VideoMemoryGiB: 16,
				GraphicsClass: GraphicsHighPerformance,
			},
		},
		{
			name:        "graphics keyword without gpu count",
			description: "Graphics bundle",
			want:        Spec{GraphicsClass: GraphicsHighPerformance},
		},
		{
			name:        "empty description",
			description: "",
			want:        Spec{GraphicsClass: GraphicsStandard},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSpec(tt.description); got != tt.want {
				t.Errorf("ParseSpec(%q) = %+v, want %+v", tt.description, got, tt.want)
			}
		})
	}
}

func TestParseVolumeGiB(t *testing.T) {
	tests := []struct {
		volume string
		want   int
	}{
		{"80 GB", 80},
		{"175GB", 175},
		{"100", 100},
		{"", 0},
		{"unlimited", 0},
	}

	for _, tt := range tests {
		if got := ParseVolumeGiB(tt.volume); got != tt.want {
			t.Errorf("ParseVolumeGiB(%q) = %d, want %d", tt.volume, got, tt.want)
		}
	}
}
