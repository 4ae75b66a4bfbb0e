package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spance/a11yqa-go/constants"
	"github.com/spance/a11yqa-go/qatoolkit"
	"github.com/spance/a11yqa-go/qatoolkit/android"
	"github.com/spance/a11yqa-go/qatoolkit/definitions"
	"github.com/spance/a11yqa-go/qatoolkit/helper"
	"github.com/spance/a11yqa-go/utils"
	"github.com/spf13/cobra"
)

// Config holds all the configuration values from command line arguments
type Config struct {
	Duration       int    `json:"duration"`
	Quality        string `json:"quality"`
	Bugreport      bool   `json:"bugreport"`
	NonInteractive bool   `json:"non_interactive"`

	Regression    string `json:"regression,omitempty"`
	FRStatus      string `json:"fr_status,omitempty"`
	CaptureStatus bool   `json:"capture_status"`

	OutputRoot  string `json:"output_root"`
	ADBPath     string `json:"adb_path"`
	DeviceID    string `json:"device_id,omitempty"`
	ListDevices bool   `json:"list_devices"`
	Demo        bool   `json:"demo"`
	ConfigFile  string `json:"config_file,omitempty"`
	Debug       bool   `json:"debug"`
}

var rootCmd = &cobra.Command{
	Use:   "a11yqa",
	Short: "A11y QA Toolkit - Android accessibility QA automation",
	Long: `A11y QA Toolkit collects device and accessibility service details from an
Android device over ADB, optionally records the screen and captures a
bugreport, and writes a plain-text device report for bug filing.`,
	Example: `  # Interactive run against the first ready device
  a11yqa

  # Non-interactive: 30s high quality recording plus bugreport
  a11yqa --non-interactive --duration 30 --quality high --bugreport

  # Override the report notes
  a11yqa --regression "Yes, regressed since build 42" --fr 3/5

  # Use a specific device
  a11yqa --device-id emulator-5554

  # List connected devices
  a11yqa --list-devices

  # Offline demo run, no device needed
  a11yqa --demo --non-interactive`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Debug().Msgf("Configuration: %s", utils.JsonIndent(config))
		return run(cmd.Context())
	},
}

var config = &Config{}

var frPattern = regexp.MustCompile(`^\d+/\d+$`)

// Flags and env vars that carry capture choices; setting any of them skips
// the interactive prompt.
var (
	captureFlags   = []string{"duration", "quality", "bugreport"}
	captureEnvKeys = []string{"A11YQA_DURATION", "A11YQA_QUALITY", "A11YQA_BUGREPORT"}
)

var logOutput io.Writer = os.Stderr

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as int with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Helper function to get environment variable as bool with default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func init() {
	flags := rootCmd.PersistentFlags()

	// Capture options
	flags.IntVar(&config.Duration, "duration",
		getEnvInt("A11YQA_DURATION", 0),
		"Recording duration in seconds (0, 10, 30, 60, 90; 0 disables recording)")

	flags.StringVar(&config.Quality, "quality",
		getEnv("A11YQA_QUALITY", definitions.QualityMedium),
		"Recording quality (low, medium, high)")

	flags.BoolVar(&config.Bugreport, "bugreport",
		getEnvBool("A11YQA_BUGREPORT", false),
		"Capture a full bugreport")

	flags.BoolVarP(&config.NonInteractive, "non-interactive", "y",
		getEnvBool("A11YQA_NON_INTERACTIVE", false),
		"Take capture choices from flags instead of prompting")

	// Report options
	flags.StringVar(&config.Regression, "regression",
		getEnv("A11YQA_REGRESSION", ""),
		fmt.Sprintf("Regression note (default %q)", constants.DefaultRegression))

	flags.StringVar(&config.FRStatus, "fr",
		getEnv("A11YQA_FR", ""),
		fmt.Sprintf("Failure/repro rate as N/M (default %q)", constants.DefaultFRStatus))

	flags.BoolVar(&config.CaptureStatus, "capture-status", false,
		"Append recording and bugreport outcome lines to the report")

	// Device options
	flags.StringVar(&config.OutputRoot, "output",
		getEnv("A11YQA_OUTPUT", constants.DefaultOutputRoot),
		"Root directory for run output")

	flags.StringVar(&config.ADBPath, "adb-path",
		getEnv("A11YQA_ADB_PATH", constants.ADB),
		"Path to the adb binary")

	flags.StringVarP(&config.DeviceID, "device-id", "d",
		getEnv("A11YQA_DEVICE_ID", ""),
		"ADB device ID (skips auto-detection)")

	flags.BoolVar(&config.ListDevices, "list-devices", false,
		"List connected devices and exit")

	// Other options
	flags.BoolVar(&config.Demo, "demo", false,
		"Run against canned device output instead of adb")

	flags.StringVar(&config.ConfigFile, "config",
		getEnv("A11YQA_CONFIG", ""),
		"YAML file with defaults for any flag not set on the command line")

	flags.BoolVar(&config.Debug, "debug", false,
		"Enable debug mode (default: false)")

	rootCmd.PersistentPreRunE = validateArgs
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logRunError(err)
		stop()
		os.Exit(1)
	}
}

// logRunError logs a failed run. ErrNoDevice was already logged by the
// toolkit.
func logRunError(err error) {
	if errors.Is(err, qatoolkit.ErrNoDevice) {
		return
	}
	log.Error().Err(err).Msg("❌ run failed")
}

func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: logOutput}).
		With().Str("run_id", uuid.New().String()).Logger()
}

func validateArgs(cmd *cobra.Command, args []string) error {
	setupLogging()

	fileSetCapture := false
	if config.ConfigFile != "" {
		fileConfig, err := loadFileConfig(config.ConfigFile)
		if err != nil {
			return err
		}
		fileSetCapture = fileConfig.applyTo(config, cmd.Flags().Changed)
	}

	// Capture choices given by flag, config file or env skip the prompt.
	envSetCapture := lo.SomeBy(captureEnvKeys, func(key string) bool {
		return os.Getenv(key) != ""
	})
	if fileSetCapture || envSetCapture || lo.SomeBy(captureFlags, cmd.Flags().Changed) {
		config.NonInteractive = true
	}

	if config.FRStatus != "" && !frPattern.MatchString(config.FRStatus) {
		return fmt.Errorf("invalid F/R value: %s. Must look like 3/5", config.FRStatus)
	}
	config.Quality = strings.ToLower(config.Quality)

	// Prompted runs never read these values.
	if config.NonInteractive {
		if !definitions.IsValidQuality(config.Quality) {
			log.Warn().Str("quality", config.Quality).Msgf("Unknown quality, recordings use '%s'", definitions.QualityMedium)
		}
		if !definitions.IsValidDuration(config.Duration) {
			log.Warn().Int("duration", config.Duration).Msg("Unsupported duration, recording will be skipped")
		}
	}
	return nil
}

func newRunner() android.CommandRunner {
	if config.Demo {
		return android.DemoRunner{}
	}
	return android.NewExecRunner(config.ADBPath)
}

func run(ctx context.Context) error {
	runner := newRunner()
	device, err := qatoolkit.CreateDevice(constants.ADB, runner)
	if err != nil {
		log.Error().Err(err).Msg("creating device failed")
		return err
	}

	if config.ListDevices {
		return handleListDevices(ctx, device)
	}

	if !config.Demo {
		if passed := checkSystemRequirements(ctx, runner); !passed {
			log.Info().Msg(strings.Repeat("-", 50))
			log.Error().Msg("❌ System check failed. Please fix the issues above.")
			return errors.New("check system requirements failed")
		}
	}

	var input qatoolkit.InputProvider
	if config.NonInteractive {
		input = &helper.StaticProvider{Fixed: definitions.CaptureChoices{
			Duration:  config.Duration,
			Quality:   config.Quality,
			Bugreport: config.Bugreport,
		}}
	} else {
		input = helper.NewPromptProvider(os.Stdin, os.Stdout)
	}
	choices, err := input.Choices(ctx)
	if err != nil {
		return err
	}

	toolkit := qatoolkit.NewQAToolkit(device, toolkitConfig())
	printConfiguration(toolkit, choices)

	result, err := toolkit.Run(ctx, *choices)
	if err != nil {
		return err
	}
	log.Debug().Msgf("Run summary: %s", utils.JsonString(result))
	log.Info().Msg("✅ Run complete")
	return nil
}

func toolkitConfig() *definitions.ToolkitConfig {
	outputRoot := config.OutputRoot
	if config.Demo && outputRoot == constants.DefaultOutputRoot {
		outputRoot = constants.DemoOutputRoot
	}
	cfg := &definitions.ToolkitConfig{
		OutputRoot: outputRoot,
		DeviceID:   config.DeviceID,
		Report: definitions.ReportConfig{
			IncludeCaptureStatus: config.CaptureStatus,
		},
	}
	if config.Regression != "" {
		cfg.Report.Regression = lo.ToPtr(config.Regression)
	}
	if config.FRStatus != "" {
		cfg.Report.FRStatus = lo.ToPtr(config.FRStatus)
	}
	return cfg
}

func handleListDevices(ctx context.Context, device qatoolkit.DeviceLocator) error {
	devices, err := device.ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("list devices: %w", err)
	}
	if len(devices) == 0 {
		log.Info().Msg("No devices connected.")
		return nil
	}
	log.Info().Msg("Connected devices:")
	log.Info().Msg(strings.Repeat("-", 60))
	for _, d := range devices {
		statusIcon := lo.Ternary(d.Ready(), "✅", "❌")
		modelInfo := ""
		if d.Model != "" {
			modelInfo = fmt.Sprintf(" (%s)", d.Model)
		}
		log.Info().Str("device", fmt.Sprintf("  %s %-30s [%s] %s%s", statusIcon, d.DeviceID, d.ConnectionType, d.Status, modelInfo)).Msg("")
	}
	return nil
}

func checkSystemRequirements(ctx context.Context, runner android.CommandRunner) bool {
	log.Info().Msg("🔍 Checking system requirements...")
	log.Info().Msg(strings.Repeat("-", 50))

	log.Info().Msg("1. Checking ADB installation... ")
	if execRunner, ok := runner.(*android.ExecRunner); ok && !execRunner.Available() {
		log.Error().Msg("❌ FAILED")
		log.Info().Msgf("   Error: %s is not installed or not in PATH.", execRunner.Path)
		log.Info().Msg("   Solution: Install ADB:")
		log.Info().Msg("     - macOS: brew install android-platform-tools")
		log.Info().Msg("     - Linux: sudo apt install android-tools-adb")
		log.Info().Msg("     - Windows: Download from https://developer.android.com/studio/releases/platform-tools")
		return false
	}

	output, err := android.NewADBDevice(runner).Version(ctx)
	if err != nil {
		log.Error().Msg("❌ FAILED")
		log.Info().Msgf("   Error: ADB command failed to run: %v", err)
		return false
	}
	versionLine := strings.TrimSpace(strings.SplitN(output, "\n", 2)[0])
	if versionLine == "" {
		versionLine = "installed"
	}
	log.Info().Msgf("✅ OK (%s)", versionLine)
	return true
}

// printConfiguration prints the configuration information
func printConfiguration(toolkit *qatoolkit.QAToolkit, choices *definitions.CaptureChoices) {
	log.Info().Msg(strings.Repeat("=", 50))
	log.Info().Msg("A11y QA Toolkit")
	log.Info().Msg(strings.Repeat("=", 50))
	if choices.Duration > 0 {
		quality := definitions.ResolveQuality(choices.Quality)
		log.Info().Msgf("Recording: %ds, %s (%s @ %s bps)", choices.Duration, quality.Name, quality.Resolution, quality.BitRate)
	} else {
		log.Info().Msg("Recording: off")
	}
	log.Info().Msgf("Bugreport: %t", choices.Bugreport)
	log.Info().Msgf("Output: %s", toolkit.Config.OutputRoot)
	if toolkit.Config.DeviceID != "" {
		log.Info().Msgf("Device: %s", toolkit.Config.DeviceID)
	}
	if config.Demo {
		log.Info().Msg("Mode: demo")
	}
	log.Info().Msg(strings.Repeat("=", 50))
}
