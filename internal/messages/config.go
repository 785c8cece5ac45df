package messages

// Config messages for composer.json and dmi.toml loading and validation.
const (
	// ConfigMissingComposerFmt formats a composer.json that cannot be read.
	ConfigMissingComposerFmt       = "missing composer file %s: %w"
	ConfigInvalidComposerFmt       = "invalid composer file %s: %w"
	ConfigInvalidInstallerPathsFmt = "invalid extra.installer-paths in %s: %w"
	ConfigInstallerPathsNotObject  = "expected an object mapping install paths to package types"
	ConfigReadOverlayFmt           = "failed to read %s: %w"
	ConfigInvalidOverlayFmt        = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt      = "%s contains unrecognized keys: %w (allowed: binary, drupal_root, discovery, include_tests, assume_yes, noise_mode)"

	ConfigValidationFailed = "config validation failed"
	ConfigRootUnresolved   = "Drupal root not found; add a type:drupal-core entry to extra.installer-paths or set extra.drupal-module-installer.drupal_root"
	ConfigurationErrorFmt  = "configuration %s: %v"
)

// Project root discovery messages.
const (
	RootStartRequired      = "start path is required"
	RootComposerNotFileFmt = "%s exists but is not a regular file"
)

// Project .env messages.
const (
	EnvfileOpenFmt                 = "failed to read %s: %w"
	EnvfileInvalidFmt              = "invalid env file %s: %w"
	EnvfileLineErrorFmt            = "line %d: %w"
	EnvfileReadFailedFmt           = "read env content: %w"
	EnvfileExpectedKeyValue        = "expected KEY=VALUE"
	EnvfileUnterminatedQuotedValue = "unterminated quoted value"
	EnvfileInvalidQuotedSuffix     = "unexpected text after quoted value"
)
