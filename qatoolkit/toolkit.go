package qatoolkit

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spance/a11yqa-go/constants"
	"github.com/spance/a11yqa-go/qatoolkit/definitions"
	"github.com/spance/a11yqa-go/qatoolkit/helper"
)

// ErrNoDevice is returned when no ready device is attached. No files are
// written in that case.
var ErrNoDevice = errors.New("no connected device detected")

type QAToolkit struct {
	Device Device
	Config *definitions.ToolkitConfig
	// Now is the run clock; defaults to time.Now.
	Now func() time.Time
}

func NewQAToolkit(device Device, config *definitions.ToolkitConfig) *QAToolkit {
	if config == nil {
		config = &definitions.ToolkitConfig{}
	}
	config.ApplyDefaults()
	return &QAToolkit{
		Device: device,
		Config: config,
		Now:    time.Now,
	}
}

// RunResult summarises one run.
type RunResult struct {
	DeviceID   string                      `json:"device_id"`
	OutputDir  string                      `json:"output_dir"`
	ReportPath string                      `json:"report_path"`
	Info       definitions.DeviceInfo      `json:"info"`
	Choices    definitions.CaptureChoices  `json:"choices"`
	Captures   []definitions.CaptureStatus `json:"captures"`
}

func (r *QAToolkit) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// Run executes locate -> read info -> capture -> report. Capture failures do
// not stop the run; cancelling ctx does, before the report is written.
func (r *QAToolkit) Run(ctx context.Context, choices definitions.CaptureChoices) (*RunResult, error) {
	deviceID := r.Config.DeviceID
	if deviceID == "" {
		deviceID = r.Device.FindReadyDevice(ctx)
	}
	if deviceID == "" {
		log.Error().Msg("No connected device detected.")
		return nil, ErrNoDevice
	}
	log.Info().Str("device", deviceID).Msg("Connected device detected")

	result := &RunResult{
		DeviceID:  deviceID,
		OutputDir: filepath.Join(r.Config.OutputRoot, r.now().Format(constants.FileTimestampLayout)),
		Choices:   choices,
	}

	info := r.Device.GetDeviceInfo(ctx, deviceID)
	result.Info = *info

	recording := definitions.SkippedCapture(definitions.CaptureRecording)
	if duration := definitions.NormalizeDuration(choices.Duration); duration > 0 {
		recording = r.Device.RecordScreen(ctx, deviceID, duration, choices.Quality, result.OutputDir)
	}
	bugreport := definitions.SkippedCapture(definitions.CaptureBugreport)
	if choices.Bugreport && ctx.Err() == nil {
		bugreport = r.Device.CaptureBugreport(ctx, deviceID, result.OutputDir)
	}
	result.Captures = []definitions.CaptureStatus{recording, bugreport}

	if err := ctx.Err(); err != nil {
		log.Warn().Err(err).Msg("Run interrupted, report not written")
		return result, err
	}

	for _, c := range result.Captures {
		if c.State == definitions.CaptureFailed {
			log.Warn().Str("capture", string(c.Kind)).Str("error", c.Error).Msg("Capture failed, continuing with report")
		}
	}

	var reportCaptures []definitions.CaptureStatus
	if r.Config.Report.IncludeCaptureStatus {
		reportCaptures = result.Captures
	}
	ts := r.now()
	content := helper.RenderReport(result.Info, r.Config.Report.Notes(), ts, reportCaptures)
	path, err := helper.WriteReport(result.OutputDir, content, ts)
	if err != nil {
		log.Error().Err(err).Msg("Failed to write report")
		return result, err
	}
	result.ReportPath = path
	log.Info().Msgf("Report written to %s", path)

	return result, nil
}
