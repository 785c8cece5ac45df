package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

// Prompter provides the confirmation decisions for module operations.
type Prompter interface {
	// SkipAll asks once per run whether later operations may skip confirmation.
	SkipAll() (bool, error)
	// ConfirmBatch asks to apply operation to every module at once.
	ConfirmBatch(operation string, modules []string) (bool, error)
	// ConfirmModule asks to apply operation to a single module.
	ConfirmModule(operation string, module string) (bool, error)
}

// PromptFuncs adapts optional prompt callbacks into a Prompter.
type PromptFuncs struct {
	SkipAllFunc       func() (bool, error)
	ConfirmBatchFunc  func(operation string, modules []string) (bool, error)
	ConfirmModuleFunc func(operation string, module string) (bool, error)
}

// SkipAll returns an error if no SkipAllFunc is configured.
func (p PromptFuncs) SkipAll() (bool, error) {
	if p.SkipAllFunc == nil {
		return false, errors.New(messages.PromptHandlerRequired)
	}
	return p.SkipAllFunc()
}

// ConfirmBatch returns an error if no ConfirmBatchFunc is configured.
func (p PromptFuncs) ConfirmBatch(operation string, modules []string) (bool, error) {
	if p.ConfirmBatchFunc == nil {
		return false, errors.New(messages.PromptHandlerRequired)
	}
	return p.ConfirmBatchFunc(operation, modules)
}

// ConfirmModule returns an error if no ConfirmModuleFunc is configured.
func (p PromptFuncs) ConfirmModule(operation string, module string) (bool, error) {
	if p.ConfirmModuleFunc == nil {
		return false, errors.New(messages.PromptHandlerRequired)
	}
	return p.ConfirmModuleFunc(operation, module)
}

// UIPrompter asks the Prompter questions through a UI. The blanket and batch
// questions default to yes; single-module questions default to no.
type UIPrompter struct {
	UI UI
}

func (p UIPrompter) SkipAll() (bool, error) {
	return p.UI.Confirm(messages.PromptSkipAll, true)
}

func (p UIPrompter) ConfirmBatch(operation string, modules []string) (bool, error) {
	return p.UI.Confirm(fmt.Sprintf(messages.PromptBatchFmt, operation, strings.Join(modules, ", ")), true)
}

func (p UIPrompter) ConfirmModule(operation string, module string) (bool, error) {
	return p.UI.Confirm(fmt.Sprintf(messages.PromptModuleFmt, operation, module), false)
}
