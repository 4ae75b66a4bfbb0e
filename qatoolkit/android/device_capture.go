package android

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spance/a11yqa-go/constants"
	"github.com/spance/a11yqa-go/qatoolkit/definitions"
)

// cleanupTimeout bounds the pull and rm that follow a recording.
const cleanupTimeout = 2 * time.Minute

// RecordScreen records the device screen for duration seconds, pulls the
// clip into outputDir and removes the on-device copy. The pull and cleanup
// run even if the recording command fails or ctx is cancelled.
func (r *ADBDevice) RecordScreen(ctx context.Context, deviceID string, duration int, quality string, outputDir string) definitions.CaptureStatus {
	status := definitions.CaptureStatus{Kind: definitions.CaptureRecording}
	preset := definitions.ResolveQuality(quality)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", outputDir).Msg("[RecordScreen] create output dir failed")
		status.State = definitions.CaptureFailed
		status.Error = err.Error()
		return status
	}

	outputFile := filepath.Join(outputDir, fmt.Sprintf("record_%s.mp4", r.now().Format(constants.FileTimestampLayout)))
	status.Path = outputFile

	log.Info().Msgf("Recording screen (%ds, %s)...", duration, preset.Name)
	var errs []error
	_, err := r.Runner.Run(ctx, r.args(deviceID,
		"shell", "screenrecord",
		"--time-limit", strconv.Itoa(duration),
		"--bit-rate", preset.BitRate,
		"--size", preset.Resolution,
		constants.TempRecordPath,
	)...)
	if err != nil {
		log.Warn().Err(err).Msg("[RecordScreen] screenrecord failed, pulling anyway")
		errs = append(errs, err)
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if _, err := r.Runner.Run(cleanupCtx, r.args(deviceID, "pull", constants.TempRecordPath, outputFile)...); err != nil {
		errs = append(errs, err)
	}
	if _, err := r.Runner.Run(cleanupCtx, r.args(deviceID, "shell", "rm", constants.TempRecordPath)...); err != nil {
		log.Warn().Err(err).Msg("[RecordScreen] removing on-device recording failed")
	}

	if len(errs) > 0 {
		status.State = definitions.CaptureFailed
		status.Error = errs[0].Error()
		return status
	}

	log.Info().Msgf("Video saved to %s", outputFile)
	status.State = definitions.CaptureOK
	return status
}

// CaptureBugreport writes a full bugreport zip into outputDir.
func (r *ADBDevice) CaptureBugreport(ctx context.Context, deviceID string, outputDir string) definitions.CaptureStatus {
	status := definitions.CaptureStatus{Kind: definitions.CaptureBugreport}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", outputDir).Msg("[CaptureBugreport] create output dir failed")
		status.State = definitions.CaptureFailed
		status.Error = err.Error()
		return status
	}

	reportFile := filepath.Join(outputDir, fmt.Sprintf("bugreport_%s.zip", r.now().Format(constants.FileTimestampLayout)))
	status.Path = reportFile

	log.Info().Msg("Generating bugreport...")
	if _, err := r.Runner.Run(ctx, r.args(deviceID, "bugreport", reportFile)...); err != nil {
		status.State = definitions.CaptureFailed
		status.Error = err.Error()
		return status
	}

	log.Info().Msgf("Bugreport saved to %s", reportFile)
	status.State = definitions.CaptureOK
	return status
}
