package helper

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spance/a11yqa-go/qatoolkit/definitions"
)

// PromptProvider asks the operator for the capture choices on a terminal.
type PromptProvider struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewPromptProvider(in io.Reader, out io.Writer) *PromptProvider {
	return &PromptProvider{reader: bufio.NewReader(in), out: out}
}

func (p *PromptProvider) Choices(ctx context.Context) (*definitions.CaptureChoices, error) {
	fmt.Fprintln(p.out, "=== A11y QA Toolkit ===")

	choices := &definitions.CaptureChoices{}

	durationInput, err := p.ask(fmt.Sprintf("Enter recording duration in seconds (%s): ", joinInts(definitions.ValidDurations)))
	if err != nil {
		return nil, err
	}
	duration, convErr := strconv.Atoi(durationInput)
	if convErr != nil || !definitions.IsValidDuration(duration) {
		log.Warn().Str("input", durationInput).Msg("Invalid record duration. Defaulting to 0 (no recording).")
		duration = 0
	}
	choices.Duration = duration

	qualityInput, err := p.ask(fmt.Sprintf("Choose quality (%s): ", strings.Join(definitions.QualityNames(), ", ")))
	if err != nil {
		return nil, err
	}
	quality := strings.ToLower(qualityInput)
	if !definitions.IsValidQuality(quality) {
		log.Warn().Str("input", qualityInput).Msgf("Invalid quality. Defaulting to '%s'.", definitions.QualityMedium)
		quality = definitions.QualityMedium
	}
	choices.Quality = quality

	bugreportInput, err := p.ask("Generate bugreport? (Y/N): ")
	if err != nil {
		return nil, err
	}
	choices.Bugreport = strings.ToLower(bugreportInput) == "y"

	return choices, ctx.Err()
}

// ask prints the prompt and reads one trimmed line. A missing line at EOF
// reads as empty input.
func (p *PromptProvider) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// StaticProvider returns choices fixed up front, e.g. from flags. Invalid
// values get the same fallbacks as interactive input.
type StaticProvider struct {
	Fixed definitions.CaptureChoices
}

func (p *StaticProvider) Choices(ctx context.Context) (*definitions.CaptureChoices, error) {
	choices := p.Fixed
	choices.Quality = strings.ToLower(choices.Quality)
	durationReset, qualityReset := choices.Normalize()
	if durationReset {
		log.Warn().Int("duration", p.Fixed.Duration).Msg("Invalid record duration. Defaulting to 0 (no recording).")
	}
	if qualityReset {
		log.Warn().Str("quality", p.Fixed.Quality).Msgf("Invalid quality. Defaulting to '%s'.", definitions.QualityMedium)
	}
	return &choices, ctx.Err()
}

func joinInts(values []int) string {
	return strings.Join(lo.Map(values, func(v int, _ int) string {
		return strconv.Itoa(v)
	}), ", ")
}
