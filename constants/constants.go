package constants

const (
	ADB = "adb"

	// DemoSerial is the device reported by the offline demo runner.
	DemoSerial = "SAMPLE_SERIAL_1234"
)

// NotAvailable stands in for any device field that could not be read.
const NotAvailable = "N/A"

const (
	DefaultRegression = "No, No issue observed in other app/build version so far"
	DefaultFRStatus   = "5/5"

	DefaultOutputRoot = "output"
	DemoOutputRoot    = "output_demo"
)

// Timestamp layouts used for folder/file names and the report body.
const (
	FileTimestampLayout   = "20060102_150405"
	ReportTimestampLayout = "2006-01-02 15:04:05"
)

// TempRecordPath is where screenrecord writes on the device before the pull.
const TempRecordPath = "/sdcard/tmp_record.mp4"

// Accessibility packages whose versions are reported.
const (
	TalkBackPackage     = "com.google.android.marvin.talkback"
	SwitchAccessPackage = "com.google.android.accessibility.switchaccess"
)

// VersionMarker is searched for in `dumpsys package` output.
const VersionMarker = "versionName"
