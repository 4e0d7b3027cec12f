package forecast

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const (
	gribStartMarker = "GRIB"
	gribEndMarker   = "7777"
)

// ArtifactName returns the deterministic file name for a forecast run around center.
func ArtifactName(origin OriginTime, center Coordinates) string {
	return fmt.Sprintf("fmi-hirlam-%s-%s.grb2", origin, center)
}

// ArtifactState is the outcome of inspecting a previously downloaded file.
type ArtifactState int

const (
	ArtifactMissing ArtifactState = iota
	ArtifactEmpty
	ArtifactNotGrib
	ArtifactTruncated
	ArtifactValid
)

// NeedsDownload reports whether the file has to be fetched again.
func (s ArtifactState) NeedsDownload() bool {
	return s != ArtifactValid
}

func (s ArtifactState) String() string {
	switch s {
	case ArtifactMissing:
		return "missing"
	case ArtifactEmpty:
		return "empty"
	case ArtifactNotGrib:
		return "not a grib file"
	case ArtifactTruncated:
		return "incomplete grib file"
	case ArtifactValid:
		return "valid"
	default:
		return "unknown"
	}
}

// InspectArtifact classifies the file at path using only its existence, size
// and the GRIB start/end markers. It is a structural check, not a checksum.
func InspectArtifact(path string) (ArtifactState, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ArtifactMissing, nil
	}
	if err != nil {
		return ArtifactMissing, err
	}
	if info.Size() == 0 {
		return ArtifactEmpty, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return ArtifactMissing, err
	}
	defer f.Close()

	head := make([]byte, len(gribStartMarker))
	if _, err := io.ReadFull(f, head); err != nil || string(head) != gribStartMarker {
		return ArtifactNotGrib, nil
	}

	tail := make([]byte, len(gribEndMarker))
	if _, err := f.ReadAt(tail, info.Size()-int64(len(tail))); err != nil && !errors.Is(err, io.EOF) {
		return ArtifactMissing, err
	}
	if string(tail) != gribEndMarker {
		return ArtifactTruncated, nil
	}

	return ArtifactValid, nil
}

// ShouldDownload reports whether path must be (re)downloaded.
func ShouldDownload(path string) (bool, error) {
	state, err := InspectArtifact(path)
	if err != nil {
		return true, err
	}
	return state.NeedsDownload(), nil
}
