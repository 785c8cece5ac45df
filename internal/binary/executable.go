// Package binary wraps the command-line tools that manage Drupal modules.
package binary

import (
	"strings"

	"github.com/conn-castle/drupal-module-installer/internal/command"
)

// Executable is one supported module-management tool.
// Intent methods append to the pending command and return the same instance.
type Executable interface {
	// Name returns the registry identifier of the tool.
	Name() string
	// Args renders the pending command without executing it.
	Args() []string
	// String renders the pending command line for display.
	String() string

	SetRoot(path string) Executable
	Install(modules []string) Executable
	Uninstall(modules []string) Executable
	CacheRebuild() Executable
	UpdateDatabase(clearCache bool) Executable
	HasDatabaseConnection() Executable

	// Execute runs the pending command and returns stdout lines. The pending command
	// is reset whether or not the run succeeds; a bound root is kept.
	Execute() ([]string, error)
}

// base holds the command state shared by every tool.
type base struct {
	name     string
	command  *command.Builder
	runner   Runner
	rootFlag string
	root     string
}

func newBase(name string, executable string, syntax command.Syntax, rootFlag string, runner Runner) base {
	if runner == nil {
		runner = RealRunner{}
	}
	return base{
		name:     name,
		command:  command.New(executable, syntax),
		runner:   runner,
		rootFlag: rootFlag,
	}
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Args() []string {
	return b.command.Args()
}

func (b *base) String() string {
	return b.command.String()
}

func (b *base) setRoot(path string) {
	b.root = path
	b.command.SetGlobalFlag(b.rootFlag, path)
}

// addModuleParams appends one parameter per module, skipping blank names.
func (b *base) addModuleParams(modules []string) {
	for _, module := range modules {
		module = strings.TrimSpace(module)
		if module == "" {
			continue
		}
		b.command.AddParam(module)
	}
}

func (b *base) execute() ([]string, error) {
	defer b.reset()

	executable := b.command.Executable()
	args := b.command.Args()
	lines, err := b.runner.Run(executable, args)
	if err != nil {
		return nil, &ExecutionError{Executable: executable, Args: args, Err: err}
	}
	return lines, nil
}

func (b *base) reset() {
	b.command.Reset()
	if b.root != "" {
		b.command.SetGlobalFlag(b.rootFlag, b.root)
	}
}

// HasConnection runs the tool's connection check. The connection is healthy only when
// the first output line contains "successful" in any case.
func HasConnection(exe Executable) bool {
	lines, err := exe.HasDatabaseConnection().Execute()
	if err != nil || len(lines) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(lines[0]), "successful")
}
