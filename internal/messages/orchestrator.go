package messages

// Orchestrator messages for module operations and run-finished tasks.
const (
	OrchestratorNoConnectionFmt  = "Skipping %s: %s has no database connection.\n"
	OrchestratorApplyFmt         = "%s: %s\n"
	OrchestratorCacheRebuild     = "Rebuilding cache.\n"
	OrchestratorUpdateDatabase   = "Running database updates.\n"
	OrchestratorUnknownOperation = "unknown module operation %q"

	OrchestratorExecutionFailedFmt = "%s failed"
	OrchestratorExecutionFix       = "Run the command by hand to see the full output, then fix the site and retry."
	OrchestratorDiscoveryFailedFmt = "could not discover modules in %s"
	OrchestratorDiscoveryFix       = "Check the package install path; the operation was skipped."
)
