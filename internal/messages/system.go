package messages

// System messages for package lookup, module discovery, and tool execution.
const (
	PackagesReadInstalledFmt  = "failed to read %s: %w"
	PackagesParseInstalledFmt = "invalid installed packages file %s: %w"

	DiscoveryUnknownPolicyFmt = "unknown discovery policy %q (expected scan or name)"
	DiscoveryScanFailedFmt    = "scan modules in %s: %v"
	DiscoveryInstallPathEmpty = "package has no install path"
	DiscoveryNotDirectory     = "install path is not a directory"

	// BinaryRunnerFailedFmt wraps a process error with its stderr.
	BinaryRunnerFailedFmt    = "%w: %s"
	BinaryDryRunFmt          = "[dry-run] %s\n"
	BinaryUnknown            = "unknown binary"
	BinaryUnknownIDFmt       = "%q: %w"
	BinaryExecutionFailedFmt = "command %q failed: %v"

	EventMissingPackageFmt = "event %s has no package"
	EventDecodeLineFmt     = "decode event on line %d: %w"
	EventMissingNameFmt    = "event on line %d has no name"
	EventReadStreamFmt     = "read event stream: %w"
	EventNoHandler         = "no handler registered"
	EventHandlerFailedFmt  = "event %s: %v"

	WarningsNoiseModeInvalidFmt = "unknown warnings noise mode %q; expected one of: %s, %s"
	WarningsNoiseModeInvalidFix = "Set noise_mode in dmi.toml to default or reduce."
)
