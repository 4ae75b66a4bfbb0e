package helper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/spance/a11yqa-go/qatoolkit/definitions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportTime = time.Date(2025, 7, 9, 15, 22, 0, 0, time.UTC)

func sampleInfo() definitions.DeviceInfo {
	return definitions.DeviceInfo{
		Model:               "Pixel 7",
		BuildVersion:        "MP1.0",
		SerialNumber:        "ABC123",
		ROMBuildID:          "TQ3A.230805.001",
		TalkBackVersion:     "versionName=14.1.0",
		SwitchAccessVersion: "versionName=2.1.0",
	}
}

func TestRenderReportDefaults(t *testing.T) {
	notes := definitions.ReportConfig{}.Notes()
	got := RenderReport(sampleInfo(), notes, reportTime, nil)

	want := strings.Join([]string{
		"Device Info Report",
		"-------------------",
		"Device Model: Pixel 7",
		"Build Version: MP1.0",
		"Serial Number: ABC123",
		"ROM Build ID: TQ3A.230805.001",
		"TalkBack Version: versionName=14.1.0",
		"Switch Access Version: versionName=2.1.0",
		"",
		"Timestamp: 2025-07-09 15:22:00",
		"Regression: No, No issue observed in other app/build version so far",
		"F/R: 5/5",
	}, "\n")
	assert.Equal(t, want, got)

	// Pure: same inputs, same bytes.
	assert.Equal(t, got, RenderReport(sampleInfo(), notes, reportTime, nil))
}

func TestRenderReportOverrides(t *testing.T) {
	notes := definitions.ReportConfig{
		Regression: lo.ToPtr("Yes, regressed since build 42"),
		FRStatus:   lo.ToPtr("3/5"),
	}.Notes()
	got := RenderReport(sampleInfo(), notes, reportTime, nil)

	lines := strings.Split(got, "\n")
	assert.Equal(t, "Regression: Yes, regressed since build 42", lines[10])
	assert.Equal(t, "F/R: 3/5", lines[11])
}

func TestRenderReportPlaceholders(t *testing.T) {
	notes := definitions.ReportConfig{}.Notes()
	full := RenderReport(sampleInfo(), notes, reportTime, nil)
	empty := RenderReport(definitions.DeviceInfo{}, notes, reportTime, nil)

	assert.Equal(t, strings.Count(full, "\n"), strings.Count(empty, "\n"))
	assert.Contains(t, empty, "Device Model: N/A\n")
	assert.Contains(t, empty, "Switch Access Version: N/A\n")
	assert.Equal(t, 6, strings.Count(empty, ": N/A"))
}

func TestRenderReportCaptureLines(t *testing.T) {
	captures := []definitions.CaptureStatus{
		{Kind: definitions.CaptureRecording, State: definitions.CaptureOK, Path: "/tmp/out/record_20250709_152200.mp4"},
		{Kind: definitions.CaptureBugreport, State: definitions.CaptureFailed, Error: "exit status 1"},
	}
	got := RenderReport(sampleInfo(), definitions.ReportConfig{}.Notes(), reportTime, captures)

	assert.True(t, strings.HasSuffix(got, "F/R: 5/5\n"+
		"Screen Recording: ok (record_20250709_152200.mp4)\n"+
		"Bugreport: failed"))
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output", "20250709_152200")

	path, err := WriteReport(dir, "hello", reportTime)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "device_report_20250709_152200.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
