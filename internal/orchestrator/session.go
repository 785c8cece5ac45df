package orchestrator

import "github.com/conn-castle/drupal-module-installer/internal/warnings"

// Session is the state of one host run. It is owned by a single Orchestrator
// and never shared between runs.
type Session struct {
	// Operations counts module operations that reached confirmation.
	Operations int
	// PackageUpdated is set once any package update event arrives.
	PackageUpdated bool
	// SkipAll suppresses every further confirmation for the run.
	SkipAll bool
	// Asked records that the blanket skip question was already answered.
	Asked bool
	// Failures counts tool invocations that failed.
	Failures int
	Warnings []warnings.Warning
}

func (s *Session) warn(w warnings.Warning) {
	s.Warnings = append(s.Warnings, w)
}
