package messages

// Prompt messages for confirmation questions.
const (
	// PromptYesDefaultFmt formats yes/no prompts with yes as default.
	PromptYesDefaultFmt   = "%s [Y/n]: "
	PromptNoDefaultFmt    = "%s [y/N]: "
	PromptInvalidResponse = "invalid response %q"
	PromptRetryYesNo      = "Please enter y or n."

	PromptRequiresTerminal = "interactive confirmation requires a terminal; re-run with --yes to skip prompts"
	PromptCancelled        = "confirmation cancelled"
	PromptHandlerRequired  = "confirmation handler is required"
	PromptAffirmative      = "Yes"
	PromptNegative         = "No"
	PromptCancelHelp       = "cancel"

	PromptSkipAll   = "Apply all Drupal module operations in this run without further confirmation?"
	PromptBatchFmt  = "Do you want to %s %s?"
	PromptModuleFmt = "Do you want to %s %s?"
)
