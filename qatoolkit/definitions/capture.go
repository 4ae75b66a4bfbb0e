package definitions

import (
	"github.com/samber/lo"
)

// ValidDurations lists the accepted recording lengths in seconds. 0 skips
// the recording.
var ValidDurations = []int{0, 10, 30, 60, 90}

// Quality is a screen recording preset.
type Quality struct {
	Name       string `json:"name"`
	Resolution string `json:"resolution"`
	BitRate    string `json:"bit_rate"`
}

const (
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
)

var qualityTiers = map[string]Quality{
	QualityLow:    {Name: QualityLow, Resolution: "480x800", BitRate: "1000000"},
	QualityMedium: {Name: QualityMedium, Resolution: "720x1280", BitRate: "2500000"},
	QualityHigh:   {Name: QualityHigh, Resolution: "1080x1920", BitRate: "5000000"},
}

// QualityNames returns the recognised tier names, lowest first.
func QualityNames() []string {
	return []string{QualityLow, QualityMedium, QualityHigh}
}

func IsValidQuality(name string) bool {
	_, ok := qualityTiers[name]
	return ok
}

// ResolveQuality maps a tier name to its preset. Unknown names resolve to
// the medium tier.
func ResolveQuality(name string) Quality {
	if q, ok := qualityTiers[name]; ok {
		return q
	}
	return qualityTiers[QualityMedium]
}

func IsValidDuration(seconds int) bool {
	return lo.Contains(ValidDurations, seconds)
}

// NormalizeDuration returns seconds if it is an accepted duration, else 0.
func NormalizeDuration(seconds int) int {
	return lo.Ternary(IsValidDuration(seconds), seconds, 0)
}

// CaptureChoices are the operator's three decisions for a run.
type CaptureChoices struct {
	Duration  int    `json:"duration"`
	Quality   string `json:"quality"`
	Bugreport bool   `json:"bugreport"`
}

// Normalize applies the duration and quality fallbacks in place and reports
// which of the two were replaced.
func (c *CaptureChoices) Normalize() (durationReset, qualityReset bool) {
	if !IsValidDuration(c.Duration) {
		c.Duration = 0
		durationReset = true
	}
	if !IsValidQuality(c.Quality) {
		c.Quality = QualityMedium
		qualityReset = true
	}
	return durationReset, qualityReset
}

type CaptureKind string

const (
	CaptureRecording CaptureKind = "Screen Recording"
	CaptureBugreport CaptureKind = "Bugreport"
)

type CaptureState string

const (
	CaptureSkipped CaptureState = "skipped"
	CaptureOK      CaptureState = "ok"
	CaptureFailed  CaptureState = "failed"
)

// CaptureStatus describes the outcome of one capture step.
type CaptureStatus struct {
	Kind  CaptureKind  `json:"kind"`
	State CaptureState `json:"state"`
	Path  string       `json:"path,omitempty"`
	Error string       `json:"error,omitempty"`
}

func SkippedCapture(kind CaptureKind) CaptureStatus {
	return CaptureStatus{Kind: kind, State: CaptureSkipped}
}
