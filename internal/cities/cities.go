package cities

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/i474232898/grib-downloader/internal/forecast"
)

// City is one row of the reference table.
type City struct {
	Code        string
	Name        string
	Coordinates forecast.Coordinates
}

// Search returns every city in the semicolon separated table at path whose
// name starts with keyword, ignoring case.
func Search(path, keyword string) ([]City, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open city table: %w", err)
	}
	defer f.Close()

	return SearchReader(f, keyword)
}

// SearchReader is Search over an already opened table.
// Columns: code;name;<unused>;latitude;longitude.
func SearchReader(r io.Reader, keyword string) ([]City, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	prefix := strings.ToLower(keyword)
	var matches []City
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("city table line %d: %w", line, err)
		}
		if len(row) < 5 || !strings.HasPrefix(strings.ToLower(row[1]), prefix) {
			continue
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("city table line %d: invalid latitude %q", line, row[3])
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("city table line %d: invalid longitude %q", line, row[4])
		}

		matches = append(matches, City{
			Code:        row[0],
			Name:        row[1],
			Coordinates: forecast.Coordinates{Latitude: lat, Longitude: lon},
		})
	}

	return matches, nil
}
