package cities

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const table = `091;Helsinki;Uusimaa;60.17;24.94
049;Espoo;Uusimaa;60.21;24.66
837;Tampere;Pirkanmaa;61.50;23.76
092;Vantaa;Uusimaa;60.29;25.04
109;Hämeenlinna;Kanta-Häme;61.00;24.46
`

func TestSearchReader(t *testing.T) {
	tests := []struct {
		keyword string
		want    []string
	}{
		{"hel", []string{"Helsinki"}},
		{"HÄME", []string{"Hämeenlinna"}},
		{"", []string{"Helsinki", "Espoo", "Tampere", "Vantaa", "Hämeenlinna"}},
		{"oulu", nil},
	}

	for _, tt := range tests {
		got, err := SearchReader(strings.NewReader(table), tt.keyword)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.keyword, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("%q: expected %d matches, got %d", tt.keyword, len(tt.want), len(got))
		}
		for i, c := range got {
			if c.Name != tt.want[i] {
				t.Errorf("%q: match %d = %s, want %s", tt.keyword, i, c.Name, tt.want[i])
			}
		}
	}
}

func TestSearchReaderCoordinates(t *testing.T) {
	got, err := SearchReader(strings.NewReader(table), "Helsinki")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one match, got %d", len(got))
	}
	c := got[0]
	if c.Code != "091" || c.Coordinates.Latitude != 60.17 || c.Coordinates.Longitude != 24.94 {
		t.Fatalf("unexpected city: %+v", c)
	}
}

func TestSearchReaderInvalidCoordinates(t *testing.T) {
	if _, err := SearchReader(strings.NewReader("1;Oulu;x;north;25.47\n"), "oulu"); err == nil {
		t.Fatal("expected an error for an unparsable latitude")
	}
}

func TestSearchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.csv")
	if err := os.WriteFile(path, []byte(table), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Search(path, "e")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Espoo" {
		t.Fatalf("unexpected matches: %+v", got)
	}

	if _, err := Search(filepath.Join(t.TempDir(), "missing.csv"), "e"); err == nil {
		t.Fatal("expected an error for a missing table")
	}
}
