package messages

// CLI messages for user-facing commands.
const (
	// RootUse is the CLI command name.
	RootUse   = "dmi"
	RootShort = "Install and uninstall Drupal modules as Composer installs and removes their packages"
	RootLong  = "dmi reacts to Composer package events for drupal-module packages and drives drush or\nDrupal Console to enable or uninstall the shipped modules, run database updates, and\nrebuild the cache."

	RootFlagProjectDir = "Project directory containing composer.json (default: current directory)"
	RootFlagQuiet      = "Suppress notices and noise-suppressible warnings"
	RootVersionFlag    = "Print version and exit"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// RunUse is the run command name.
	RunUse                     = "run"
	RunShort                   = "Process a JSON Lines stream of Composer events"
	RunFlagEvents              = "Event stream to read, or - for stdin"
	RunFlagStrict              = "Exit non-zero when the run produced warnings"
	RunOpenEventsFmt           = "open events %s: %w"
	RunEventsFromStdinNeedsYes = "events are read from stdin, so confirmations cannot be answered there; pass --yes or set assume_yes in dmi.toml"
	RunSummaryFmt              = "Processed %d events, %d module operations, %d failed commands.\n"

	FlagYes    = "Apply every module operation without confirmation"
	FlagDryRun = "Print the commands instead of running them"

	InstallUse     = "install <module>..."
	InstallShort   = "Enable Drupal modules with the configured tool"
	UninstallUse   = "uninstall <module>..."
	UninstallShort = "Uninstall Drupal modules with the configured tool"

	StatusUse             = "status"
	StatusShort           = "Check whether the configured tool reaches the site database"
	StatusConnectedFmt    = "connected (%s, root %s)\n"
	StatusNotConnectedFmt = "not connected (%s, root %s)\n"

	BinariesUse         = "binaries"
	BinariesShort       = "List supported tools and the executable each resolves to"
	BinariesHeader      = "ID\tPACKAGE\tEXECUTABLE\tDEFAULT"
	BinariesRowFmt      = "%s\t%s\t%s\t%s\n"
	BinariesDefaultMark = "*"

	EventWarningMessageFmt = "event %s was not applied"
	EventWarningFix        = "Fix the reported problem and re-run the Composer command."
	EventWarningUnknownFix = "Only post-update-cmd, post-install-cmd, post-package-update, post-package-install and pre-package-uninstall are handled."
	ConfigWarningFix       = "Check extra.drupal-module-installer in composer.json and dmi.toml."
)
