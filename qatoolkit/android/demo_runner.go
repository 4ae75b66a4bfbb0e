package android

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spance/a11yqa-go/constants"
)

// DemoRunner answers bridge commands with canned output so the whole
// pipeline can run without a device. Pulled recordings and bugreports are
// written as small placeholder files.
type DemoRunner struct{}

var demoProps = map[string]string{
	"ro.product.model":      "SAMPLE_DEVICE",
	"ro.revision":           "12345",
	"ro.serialno":           constants.DemoSerial,
	"ro.bootimage.build.id": "SAMPLE_ROM_BUILD",
}

var demoVersions = map[string]string{
	constants.TalkBackPackage:     "versionName=999.9.9",
	constants.SwitchAccessPackage: "versionName=888.8.8",
}

func (DemoRunner) Run(ctx context.Context, args ...string) (string, error) {
	log.Debug().Str("cmd", "[DemoRunner] "+strings.Join(args, " ")).Msg("")

	if len(args) >= 2 && args[0] == "-s" {
		args = args[2:]
	}
	if len(args) == 0 {
		return "", nil
	}

	switch {
	case args[0] == "version":
		return "Android Debug Bridge version (demo)", nil
	case args[0] == "devices":
		return "List of devices attached\n" + constants.DemoSerial + "\tdevice product:sample model:SAMPLE_DEVICE", nil
	case len(args) == 3 && args[0] == "shell" && args[1] == "getprop":
		return demoProps[args[2]], nil
	case len(args) == 4 && args[0] == "shell" && args[1] == "dumpsys":
		if v, ok := demoVersions[args[3]]; ok {
			return "Packages:\n  Package [" + args[3] + "]\n    " + v, nil
		}
		return "", nil
	case len(args) == 3 && args[0] == "pull":
		return writeDemoArtifact(args[2])
	case len(args) == 2 && args[0] == "bugreport":
		return writeDemoArtifact(args[1])
	}
	return "", nil
}

func writeDemoArtifact(path string) (string, error) {
	if err := os.WriteFile(path, []byte("a11yqa demo placeholder\n"), 0o644); err != nil {
		return "", fmt.Errorf("write demo artifact %s: %w", path, err)
	}
	return "1 file pulled", nil
}
