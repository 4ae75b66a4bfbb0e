package definitions

import "github.com/spance/a11yqa-go/constants"

// ReportConfig holds the optional report overrides. Nil means "use the
// default".
type ReportConfig struct {
	Regression *string
	FRStatus   *string

	// IncludeCaptureStatus appends one line per capture step to the report.
	IncludeCaptureStatus bool
}

// ReportNotes are the resolved free-text lines of a report.
type ReportNotes struct {
	Regression string `json:"regression"`
	FRStatus   string `json:"fr_status"`
}

func (c ReportConfig) Notes() ReportNotes {
	notes := ReportNotes{
		Regression: constants.DefaultRegression,
		FRStatus:   constants.DefaultFRStatus,
	}
	if c.Regression != nil {
		notes.Regression = *c.Regression
	}
	if c.FRStatus != nil {
		notes.FRStatus = *c.FRStatus
	}
	return notes
}

type ToolkitConfig struct {
	OutputRoot string
	// DeviceID skips device discovery when set.
	DeviceID string
	Report   ReportConfig
}

// ApplyDefaults fills unset fields.
func (c *ToolkitConfig) ApplyDefaults() {
	if c.OutputRoot == "" {
		c.OutputRoot = constants.DefaultOutputRoot
	}
}
