package helper

import (
	"bufio"
	"strings"

	"github.com/samber/lo"
	"github.com/spance/a11yqa-go/constants"
	"github.com/spance/a11yqa-go/qatoolkit/definitions"
)

// ParseDevices parses `adb devices [-l]` output. The first line is the
// header and is always skipped.
func ParseDevices(output string) []definitions.DeviceEntry {
	var devices []definitions.DeviceEntry
	scanner := bufio.NewScanner(strings.NewReader(output))

	// Skip the first line (header)
	scanner.Scan()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		deviceID := parts[0]
		connType := definitions.USB
		if strings.Contains(deviceID, ":") {
			connType = definitions.Remote
		}

		var model string
		for _, part := range parts[2:] {
			if strings.HasPrefix(part, "model:") {
				model = strings.SplitN(part, ":", 2)[1]
				break
			}
		}

		devices = append(devices, definitions.DeviceEntry{
			DeviceID:       deviceID,
			Status:         parts[1],
			ConnectionType: connType,
			Model:          model,
		})
	}

	return devices
}

// FirstReadyDevice returns the id of the first device in the ready state, or
// "" when none is.
func FirstReadyDevice(devices []definitions.DeviceEntry) string {
	d, ok := lo.Find(devices, func(d definitions.DeviceEntry) bool {
		return d.Ready()
	})
	if !ok {
		return ""
	}
	return d.DeviceID
}

// ExtractVersionLine returns the first line of `dumpsys package` output that
// carries the versionName marker, trimmed but otherwise verbatim.
func ExtractVersionLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, constants.VersionMarker) {
			return strings.TrimSpace(line)
		}
	}
	return constants.NotAvailable
}

// PropertyValue cleans getprop output. Empty output means the property is
// unset.
func PropertyValue(output string) string {
	value := strings.TrimSpace(output)
	if value == "" {
		return constants.NotAvailable
	}
	return value
}
