package definitions

import "github.com/spance/a11yqa-go/constants"

type ConnectionType string

const (
	USB    ConnectionType = "usb"
	Remote ConnectionType = "remote"
)

// StatusReady is the adb state of a device that accepts commands.
const StatusReady = "device"

// DeviceEntry is one line of `adb devices -l`.
type DeviceEntry struct {
	DeviceID       string         `json:"device_id"`
	Status         string         `json:"status"`
	ConnectionType ConnectionType `json:"connection_type"`
	Model          string         `json:"model,omitempty"`
}

func (d DeviceEntry) Ready() bool {
	return d.Status == StatusReady
}

// DeviceInfo is the record written into the report. An empty field means the
// value could not be read and is rendered as constants.NotAvailable.
type DeviceInfo struct {
	Model               string `json:"device_model"`
	BuildVersion        string `json:"build_version"`
	SerialNumber        string `json:"serial_number"`
	ROMBuildID          string `json:"rom_build_id"`
	TalkBackVersion     string `json:"talkback_version"`
	SwitchAccessVersion string `json:"switch_access_version"`
}

// InfoField is a labelled report line.
type InfoField struct {
	Label string
	Value string
}

// Fields returns the record in report order with placeholders filled in.
func (d DeviceInfo) Fields() []InfoField {
	return []InfoField{
		{Label: "Device Model", Value: orPlaceholder(d.Model)},
		{Label: "Build Version", Value: orPlaceholder(d.BuildVersion)},
		{Label: "Serial Number", Value: orPlaceholder(d.SerialNumber)},
		{Label: "ROM Build ID", Value: orPlaceholder(d.ROMBuildID)},
		{Label: "TalkBack Version", Value: orPlaceholder(d.TalkBackVersion)},
		{Label: "Switch Access Version", Value: orPlaceholder(d.SwitchAccessVersion)},
	}
}

func orPlaceholder(v string) string {
	if v == "" {
		return constants.NotAvailable
	}
	return v
}
