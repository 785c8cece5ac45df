package binary

import "github.com/conn-castle/drupal-module-installer/internal/command"

// Console drives Drupal Console (the drupal executable).
type Console struct {
	base
}

// NewConsole returns a Console bound to executable.
func NewConsole(executable string, runner Runner) Executable {
	return &Console{base: newBase("drupal", executable, command.Syntax{Arguments: command.ArgumentOption}, "root", runner)}
}

func (c *Console) SetRoot(path string) Executable {
	c.setRoot(path)
	return c
}

// Install adds module:install --yes <modules>.
func (c *Console) Install(modules []string) Executable {
	c.command.AddSubCommand("module:install").AddFlag("yes")
	c.addModuleParams(modules)
	return c
}

// Uninstall adds module:uninstall --yes <modules>.
func (c *Console) Uninstall(modules []string) Executable {
	c.command.AddSubCommand("module:uninstall").AddFlag("yes")
	c.addModuleParams(modules)
	return c
}

func (c *Console) CacheRebuild() Executable {
	c.command.AddSubCommand("cache:rebuild").AddParam("all")
	return c
}

// UpdateDatabase adds update:execute --yes. update:execute has no cache switch, so
// clearCache is ignored; callers follow up with CacheRebuild.
func (c *Console) UpdateDatabase(_ bool) Executable {
	c.command.AddSubCommand("update:execute").AddFlag("yes")
	return c
}

func (c *Console) HasDatabaseConnection() Executable {
	c.command.AddSubCommand("site:status")
	return c
}

func (c *Console) Execute() ([]string, error) {
	return c.execute()
}
