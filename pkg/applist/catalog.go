package applist

import (
	"strings"
)

// App is a package together with the executables it provides
type App struct {
	Name string
	// Commands[0] is the probe used to decide whether the app is installed
	Commands []string
}

// Catalog resolves package names to Apps using a command table
type Catalog struct {
	commands map[string][]string
}

// NewCatalog creates a Catalog. commands maps package names to executables
// for packages whose binary is not simply their name.
func NewCatalog(commands map[string][]string) *Catalog {
	return &Catalog{commands: commands}
}

// App returns the App for a package name
func (c *Catalog) App(name string) App {
	for _, key := range []string{name, strings.ToLower(name)} {
		if cmds, ok := c.commands[key]; ok && len(cmds) > 0 {
			return App{Name: name, Commands: append([]string(nil), cmds...)}
		}
	}
	return App{Name: name, Commands: []string{DefaultCommand(name)}}
}

// Apps maps every name of list through App
func (c *Catalog) Apps(list List) []App {
	apps := make([]App, 0, len(list))
	for _, name := range list {
		apps = append(apps, c.App(name))
	}
	return apps
}

// DefaultCommand derives an executable name from a package name
func DefaultCommand(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// Probe returns the executable used to check whether the app is installed
func (a App) Probe() string {
	if len(a.Commands) == 0 {
		return DefaultCommand(a.Name)
	}
	return a.Commands[0]
}
