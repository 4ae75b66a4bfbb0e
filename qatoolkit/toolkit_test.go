package qatoolkit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spance/a11yqa-go/constants"
	"github.com/spance/a11yqa-go/qatoolkit/android"
	"github.com/spance/a11yqa-go/qatoolkit/definitions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRunner answers known commands and succeeds silently on the rest.
type scriptedRunner struct {
	outputs map[string]string
	calls   []string
}

func (s *scriptedRunner) Run(ctx context.Context, args ...string) (string, error) {
	cmd := strings.Join(args, " ")
	s.calls = append(s.calls, cmd)
	return s.outputs[cmd], nil
}

var runTime = time.Date(2025, 7, 9, 15, 22, 0, 0, time.UTC)

func readyRunner() *scriptedRunner {
	return &scriptedRunner{outputs: map[string]string{
		"devices -l": "List of devices attached\nABC123\tdevice\n",
		"-s ABC123 shell getprop ro.product.model":      "Pixel 7",
		"-s ABC123 shell getprop ro.revision":           "MP1.0",
		"-s ABC123 shell getprop ro.serialno":           "ABC123",
		"-s ABC123 shell getprop ro.bootimage.build.id": "TQ3A.230805.001",
		"-s ABC123 shell dumpsys package " + constants.TalkBackPackage:     "    versionName=14.1.0",
		"-s ABC123 shell dumpsys package " + constants.SwitchAccessPackage: "    versionName=2.1.0",
	}}
}

func newTestToolkit(t *testing.T, runner android.CommandRunner, cfg *definitions.ToolkitConfig) *QAToolkit {
	t.Helper()
	device, err := CreateDevice(constants.ADB, runner)
	require.NoError(t, err)
	device.(*android.ADBDevice).Now = func() time.Time { return runTime }

	toolkit := NewQAToolkit(device, cfg)
	toolkit.Now = func() time.Time { return runTime }
	return toolkit
}

func TestRunWritesOnlyReport(t *testing.T) {
	root := filepath.Join(t.TempDir(), "output")
	toolkit := newTestToolkit(t, readyRunner(), &definitions.ToolkitConfig{OutputRoot: root})

	result, err := toolkit.Run(context.Background(), definitions.CaptureChoices{Duration: 0, Quality: "medium"})
	require.NoError(t, err)

	runDir := filepath.Join(root, "20250709_152200")
	assert.Equal(t, runDir, result.OutputDir)
	assert.Equal(t, "ABC123", result.DeviceID)

	entries, err := os.ReadDir(runDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "device_report_20250709_152200.txt", entries[0].Name())

	data, err := os.ReadFile(result.ReportPath)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, []string{
		"Device Model: Pixel 7",
		"Build Version: MP1.0",
		"Serial Number: ABC123",
		"ROM Build ID: TQ3A.230805.001",
		"TalkBack Version: versionName=14.1.0",
		"Switch Access Version: versionName=2.1.0",
	}, lines[2:8])
	assert.Equal(t, "Timestamp: 2025-07-09 15:22:00", lines[9])
	assert.Equal(t, "Regression: No, No issue observed in other app/build version so far", lines[10])
	assert.Equal(t, "F/R: 5/5", lines[11])

	assert.Equal(t, definitions.CaptureSkipped, result.Captures[0].State)
	assert.Equal(t, definitions.CaptureSkipped, result.Captures[1].State)
}

func TestRunNoDevice(t *testing.T) {
	root := filepath.Join(t.TempDir(), "output")
	runner := &scriptedRunner{outputs: map[string]string{
		"devices -l": "List of devices attached\nAAA\tunauthorized\n",
	}}
	toolkit := newTestToolkit(t, runner, &definitions.ToolkitConfig{OutputRoot: root})

	result, err := toolkit.Run(context.Background(), definitions.CaptureChoices{Duration: 30, Bugreport: true})
	assert.ErrorIs(t, err, ErrNoDevice)
	assert.Nil(t, result)
	assert.NoDirExists(t, root)
	assert.Equal(t, []string{"devices -l"}, runner.calls)
}

func TestRunUnknownQualityRecordsAtMedium(t *testing.T) {
	runner := readyRunner()
	toolkit := newTestToolkit(t, runner, &definitions.ToolkitConfig{OutputRoot: t.TempDir()})

	_, err := toolkit.Run(context.Background(), definitions.CaptureChoices{Duration: 30, Quality: "ultra"})
	require.NoError(t, err)

	assert.Contains(t, runner.calls,
		"-s ABC123 shell screenrecord --time-limit 30 --bit-rate 2500000 --size 720x1280 /sdcard/tmp_record.mp4")
}

func TestRunInvalidDurationSkipsRecording(t *testing.T) {
	runner := readyRunner()
	toolkit := newTestToolkit(t, runner, &definitions.ToolkitConfig{OutputRoot: t.TempDir()})

	result, err := toolkit.Run(context.Background(), definitions.CaptureChoices{Duration: 45, Quality: "high"})
	require.NoError(t, err)

	for _, call := range runner.calls {
		assert.NotContains(t, call, "screenrecord")
	}
	assert.Equal(t, definitions.CaptureSkipped, result.Captures[0].State)
}

func TestRunCaptureFailureStillWritesReport(t *testing.T) {
	runner := readyRunner()
	toolkit := newTestToolkit(t, runner, &definitions.ToolkitConfig{
		OutputRoot: t.TempDir(),
		Report:     definitions.ReportConfig{IncludeCaptureStatus: true},
	})
	bugreportCmd := "-s ABC123 bugreport "
	failing := &failingOn{scriptedRunner: runner, prefix: bugreportCmd}
	toolkit.Device.(*android.ADBDevice).Runner = failing

	result, err := toolkit.Run(context.Background(), definitions.CaptureChoices{Duration: 10, Quality: "low", Bugreport: true})
	require.NoError(t, err)
	assert.Equal(t, definitions.CaptureOK, result.Captures[0].State)
	assert.Equal(t, definitions.CaptureFailed, result.Captures[1].State)

	data, err := os.ReadFile(result.ReportPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\nScreen Recording: ok (record_20250709_152200.mp4)\nBugreport: failed"))
}

func TestRunConfiguredDeviceSkipsDiscovery(t *testing.T) {
	runner := readyRunner()
	toolkit := newTestToolkit(t, runner, &definitions.ToolkitConfig{OutputRoot: t.TempDir(), DeviceID: "ABC123"})

	result, err := toolkit.Run(context.Background(), definitions.CaptureChoices{})
	require.NoError(t, err)
	assert.Equal(t, "ABC123", result.DeviceID)
	assert.NotContains(t, runner.calls, "devices -l")
}

type failingOn struct {
	*scriptedRunner
	prefix string
}

func (f *failingOn) Run(ctx context.Context, args ...string) (string, error) {
	out, err := f.scriptedRunner.Run(ctx, args...)
	if strings.HasPrefix(strings.Join(args, " "), f.prefix) {
		return "", errors.New("exit status 1")
	}
	return out, err
}

func TestCreateDeviceUnknownType(t *testing.T) {
	_, err := CreateDevice("ios", &scriptedRunner{})
	assert.Error(t, err)
}

// interruptingRunner cancels the run once screenrecord is issued and then
// refuses commands on a done context, as exec.CommandContext does.
type interruptingRunner struct {
	*scriptedRunner
	cancel context.CancelFunc
}

func (i *interruptingRunner) Run(ctx context.Context, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	out, err := i.scriptedRunner.Run(ctx, args...)
	if len(args) > 3 && args[3] == "screenrecord" {
		i.cancel()
		return "", context.Canceled
	}
	return out, err
}

func TestRunInterruptedDuringRecording(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := &interruptingRunner{scriptedRunner: readyRunner(), cancel: cancel}
	toolkit := newTestToolkit(t, runner, &definitions.ToolkitConfig{OutputRoot: t.TempDir()})

	result, err := toolkit.Run(ctx, definitions.CaptureChoices{Duration: 30, Quality: "high", Bugreport: true})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Empty(t, result.ReportPath)
	assert.Equal(t, definitions.CaptureFailed, result.Captures[0].State)
	assert.Equal(t, definitions.CaptureSkipped, result.Captures[1].State)

	assert.Contains(t, runner.calls, "-s ABC123 shell rm /sdcard/tmp_record.mp4")
	for _, call := range runner.calls {
		assert.NotContains(t, call, "bugreport")
	}

	entries, err := os.ReadDir(result.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
