package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaterialKind classifies an advertising material.
type MaterialKind string

const (
	MaterialSpot      MaterialKind = "Spot"
	MaterialJingle    MaterialKind = "Jingle"
	MaterialCurtain   MaterialKind = "Cortinilla"
	MaterialOtherKind MaterialKind = "Otro"
)

var MaterialKinds = []MaterialKind{MaterialSpot, MaterialJingle, MaterialCurtain, MaterialOtherKind}

func (k MaterialKind) Valid() bool {
	switch k {
	case MaterialSpot, MaterialJingle, MaterialCurtain, MaterialOtherKind:
		return true
	}
	return false
}

// Material is a creative attached to an order. Only its metadata is kept;
// the uploaded file itself lives wherever the upload widget stored it.
type Material struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	FileName string       `json:"file_name"`
	Version  string       `json:"version"`
	Kind     MaterialKind `json:"kind"`
	Duration string       `json:"duration"`
}

// MaterialExtensions are the file types accepted as materials.
var MaterialExtensions = []string{".mp3", ".wav", ".mp4", ".pdf"}

// default durations by extension when the real length is not known
var defaultDurations = map[string]string{
	".mp3": "00:20",
	".wav": "00:20",
	".mp4": "00:30",
	".pdf": "N/A",
}

// AllowedMaterialFile reports whether the file name carries one of
// MaterialExtensions.
func AllowedMaterialFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range MaterialExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// DefaultDuration returns the duration assumed for a file whose length
// could not be measured. An empty name means no file and yields "00:00".
func DefaultDuration(fileName string) string {
	if fileName == "" {
		return "00:00"
	}
	if d, ok := defaultDurations[strings.ToLower(filepath.Ext(fileName))]; ok {
		return d
	}
	return "00:20"
}

// FormatDuration renders seconds as mm:ss.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
