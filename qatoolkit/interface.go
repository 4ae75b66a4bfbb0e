package qatoolkit

import (
	"context"
	"fmt"

	"github.com/spance/a11yqa-go/constants"
	"github.com/spance/a11yqa-go/qatoolkit/android"
	"github.com/spance/a11yqa-go/qatoolkit/definitions"
)

// DeviceLocator finds the device to run against.
type DeviceLocator interface {
	ListDevices(ctx context.Context) ([]definitions.DeviceEntry, error)
	// FindReadyDevice returns "" when no device is ready.
	FindReadyDevice(ctx context.Context) string
}

// PropertyReader reads the device info record.
type PropertyReader interface {
	GetDeviceInfo(ctx context.Context, deviceID string) *definitions.DeviceInfo
}

// CaptureRunner produces optional media and diagnostic artifacts.
type CaptureRunner interface {
	RecordScreen(ctx context.Context, deviceID string, duration int, quality string, outputDir string) definitions.CaptureStatus
	CaptureBugreport(ctx context.Context, deviceID string, outputDir string) definitions.CaptureStatus
}

type Device interface {
	DeviceLocator
	PropertyReader
	CaptureRunner
}

// InputProvider supplies the operator's capture choices.
type InputProvider interface {
	Choices(ctx context.Context) (*definitions.CaptureChoices, error)
}

func CreateDevice(deviceType string, runner android.CommandRunner) (Device, error) {
	switch deviceType {
	case constants.ADB:
		return android.NewADBDevice(runner), nil
	default:
		return nil, fmt.Errorf("unknown device type: %v", deviceType)
	}
}
