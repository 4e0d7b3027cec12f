package forecast

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestInspectArtifact(t *testing.T) {
	dir := t.TempDir()
	body := strings.Repeat("x", 64)

	tests := []struct {
		name   string
		path   string
		want   ArtifactState
		wantDL bool
	}{
		{"missing", filepath.Join(dir, "nope.grb2"), ArtifactMissing, true},
		{"empty", writeFile(t, dir, "out.grb2", ""), ArtifactEmpty, true},
		{"bad start marker", writeFile(t, dir, "html.grb2", "<html>"+body+"7777"), ArtifactNotGrib, true},
		{"shorter than marker", writeFile(t, dir, "short.grb2", "GR"), ArtifactNotGrib, true},
		{"truncated", writeFile(t, dir, "trunc.grb2", "GRIB"+body), ArtifactTruncated, true},
		{"valid", writeFile(t, dir, "ok.grb2", "GRIB"+body+"7777"), ArtifactValid, false},
		{"markers only", writeFile(t, dir, "min.grb2", "GRIB7777"), ArtifactValid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InspectArtifact(tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}

			dl, err := ShouldDownload(tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dl != tt.wantDL {
				t.Fatalf("ShouldDownload = %v, want %v", dl, tt.wantDL)
			}
		})
	}
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		center Coordinates
		want   string
	}{
		{Coordinates{60.17, 24.94}, "fmi-hirlam-2024-01-01T00:00:00Z-60.17,24.94.grb2"},
		{Coordinates{60, 25}, "fmi-hirlam-2024-01-01T00:00:00Z-60.0,25.0.grb2"},
		{Coordinates{-33.5, -70.25}, "fmi-hirlam-2024-01-01T00:00:00Z--33.5,-70.25.grb2"},
	}

	for _, tt := range tests {
		if got := ArtifactName("2024-01-01T00:00:00Z", tt.center); got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}
}
