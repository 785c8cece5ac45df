package warnings

import (
	"fmt"
	"slices"
	"strings"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

const (
	// NoiseModeDefault keeps all warnings.
	NoiseModeDefault = "default"
	// NoiseModeReduce hides suppressible non-critical warnings.
	NoiseModeReduce = "reduce"
)

// ApplyNoiseControl applies a conservative noise filter to warning output.
// mode is the noise_mode value from config; an unknown mode keeps every warning
// and appends a critical warning about the mode itself.
func ApplyNoiseControl(items []Warning, mode string) []Warning {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", NoiseModeDefault:
		return slices.Clone(items)
	case NoiseModeReduce:
		return slices.DeleteFunc(slices.Clone(items), func(w Warning) bool {
			return w.NoiseSuppressible && !w.Critical()
		})
	default:
		return append(slices.Clone(items), Warning{
			Code:     CodeWarningNoiseModeInvalid,
			Subject:  "noise_mode",
			Message:  fmt.Sprintf(messages.WarningsNoiseModeInvalidFmt, mode, NoiseModeDefault, NoiseModeReduce),
			Fix:      messages.WarningsNoiseModeInvalidFix,
			Source:   SourceInternal,
			Severity: SeverityCritical,
		})
	}
}
