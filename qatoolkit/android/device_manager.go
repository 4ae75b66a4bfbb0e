package android

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spance/a11yqa-go/constants"
	"github.com/spance/a11yqa-go/qatoolkit/definitions"
	"github.com/spance/a11yqa-go/qatoolkit/helper"
)

const queryTimeout = 10 * time.Second

// ADBDevice talks to attached Android devices through a CommandRunner.
type ADBDevice struct {
	Runner CommandRunner
	// Now stamps capture file names; defaults to time.Now.
	Now func() time.Time
}

func NewADBDevice(runner CommandRunner) *ADBDevice {
	return &ADBDevice{Runner: runner, Now: time.Now}
}

func (r *ADBDevice) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *ADBDevice) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return r.Runner.Run(ctx, "version")
}

func (r *ADBDevice) ListDevices(ctx context.Context) ([]definitions.DeviceEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	output, err := r.Runner.Run(ctx, "devices", "-l")
	if err != nil {
		log.Error().Err(err).Msg("[ListDevices] Failed to list adb devices")
		return nil, err
	}
	return helper.ParseDevices(output), nil
}

// FindReadyDevice returns the first device in the ready state. Any failure
// is logged and reported as "".
func (r *ADBDevice) FindReadyDevice(ctx context.Context) string {
	devices, err := r.ListDevices(ctx)
	if err != nil {
		return ""
	}
	return helper.FirstReadyDevice(devices)
}

type propertyQuery struct {
	prop string
	dest *string
}

// GetDeviceInfo reads the report fields. Fields that cannot be read are set
// to constants.NotAvailable.
func (r *ADBDevice) GetDeviceInfo(ctx context.Context, deviceID string) *definitions.DeviceInfo {
	info := &definitions.DeviceInfo{}

	queries := []propertyQuery{
		{prop: "ro.product.model", dest: &info.Model},
		{prop: "ro.revision", dest: &info.BuildVersion},
		{prop: "ro.serialno", dest: &info.SerialNumber},
		{prop: "ro.bootimage.build.id", dest: &info.ROMBuildID},
	}
	for _, q := range queries {
		*q.dest = r.GetProp(ctx, deviceID, q.prop)
	}

	info.TalkBackVersion = r.GetPackageVersion(ctx, deviceID, constants.TalkBackPackage)
	info.SwitchAccessVersion = r.GetPackageVersion(ctx, deviceID, constants.SwitchAccessPackage)

	return info
}

func (r *ADBDevice) GetProp(ctx context.Context, deviceID, prop string) string {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	output, err := r.Runner.Run(ctx, r.args(deviceID, "shell", "getprop", prop)...)
	if err != nil {
		return constants.NotAvailable
	}
	return helper.PropertyValue(output)
}

func (r *ADBDevice) GetPackageVersion(ctx context.Context, deviceID, pkg string) string {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	output, err := r.Runner.Run(ctx, r.args(deviceID, "shell", "dumpsys", "package", pkg)...)
	if err != nil {
		return constants.NotAvailable
	}
	return helper.ExtractVersionLine(output)
}

// args prefixes a command with the device selector.
func (r *ADBDevice) args(deviceID string, cmd ...string) []string {
	if deviceID == "" {
		return cmd
	}
	return append([]string{"-s", deviceID}, cmd...)
}
