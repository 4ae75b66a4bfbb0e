package helper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spance/a11yqa-go/constants"
	"github.com/spance/a11yqa-go/qatoolkit/definitions"
	"github.com/valyala/fasttemplate"
)

const reportTemplate = `Device Info Report
-------------------
{{fields}}

Timestamp: {{timestamp}}
Regression: {{regression}}
F/R: {{fr_status}}`

// RenderReport builds the report text. The output depends only on its
// arguments; captures are listed only when non-empty.
func RenderReport(info definitions.DeviceInfo, notes definitions.ReportNotes, ts time.Time, captures []definitions.CaptureStatus) string {
	fields := info.Fields()
	fieldLines := make([]string, 0, len(fields))
	for _, f := range fields {
		fieldLines = append(fieldLines, fmt.Sprintf("%s: %s", f.Label, f.Value))
	}

	report := fasttemplate.ExecuteString(reportTemplate, "{{", "}}", map[string]interface{}{
		"fields":     strings.Join(fieldLines, "\n"),
		"timestamp":  ts.Format(constants.ReportTimestampLayout),
		"regression": notes.Regression,
		"fr_status":  notes.FRStatus,
	})

	for _, c := range captures {
		report += "\n" + captureLine(c)
	}
	return report
}

func captureLine(c definitions.CaptureStatus) string {
	if c.State == definitions.CaptureOK && c.Path != "" {
		return fmt.Sprintf("%s: %s (%s)", c.Kind, c.State, filepath.Base(c.Path))
	}
	return fmt.Sprintf("%s: %s", c.Kind, c.State)
}

// ReportFileName returns device_report_<ts>.txt.
func ReportFileName(ts time.Time) string {
	return fmt.Sprintf("device_report_%s.txt", ts.Format(constants.FileTimestampLayout))
}

// WriteReport writes content to outputDir, creating it if needed, and returns
// the file path.
func WriteReport(outputDir string, content string, ts time.Time) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", outputDir, err)
	}
	path := filepath.Join(outputDir, ReportFileName(ts))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	return path, nil
}
