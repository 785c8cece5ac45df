package binary

import "github.com/conn-castle/drupal-module-installer/internal/command"

// Drush drives the drush command-line tool.
type Drush struct {
	base
}

// NewDrush returns a Drush bound to executable.
func NewDrush(executable string, runner Runner) Executable {
	return &Drush{base: newBase("drush", executable, command.Syntax{Arguments: command.ArgumentBare}, "r", runner)}
}

// SetRoot adds -r <path>.
func (d *Drush) SetRoot(path string) Executable {
	d.setRoot(path)
	return d
}

// Install adds pm-enable -y <modules>.
func (d *Drush) Install(modules []string) Executable {
	d.command.AddFlag("y").AddSubCommand("pm-enable")
	d.addModuleParams(modules)
	return d
}

// Uninstall adds pm-uninstall -y <modules>.
func (d *Drush) Uninstall(modules []string) Executable {
	d.command.AddFlag("y").AddSubCommand("pm-uninstall")
	d.addModuleParams(modules)
	return d
}

func (d *Drush) CacheRebuild() Executable {
	d.command.AddSubCommand("cache-rebuild")
	return d
}

// UpdateDatabase adds updatedb cache-clear=<clearCache> entity-updates=true -y.
func (d *Drush) UpdateDatabase(clearCache bool) Executable {
	d.command.
		AddSubCommand("updatedb").
		AddArgument("cache-clear", clearCache).
		AddArgument("entity-updates", true).
		AddFlag("y")
	return d
}

// HasDatabaseConnection adds status bootstrap; drush prints "Drupal bootstrap : Successful"
// when it can reach the database.
func (d *Drush) HasDatabaseConnection() Executable {
	d.command.AddSubCommand("status").AddSubCommand("bootstrap")
	return d
}

func (d *Drush) Execute() ([]string, error) {
	return d.execute()
}
