package gitensure

import (
	"github.com/arthur-debert/dotstrap/pkg/environment"
)

// Step is one privileged command of an install recipe
type Step []string

// Alternative installs git with a specific tool
type Alternative struct {
	// Tool must be on the search path for this alternative to apply
	Tool  string
	Steps []Step
}

// Recipe lists the alternatives for a distribution, in preference order
type Recipe struct {
	Alternatives []Alternative
}

// Recipes maps each supported distribution family to its git install recipe
var Recipes = map[environment.Distro]Recipe{
	environment.DistroDebian: {Alternatives: []Alternative{
		{Tool: "apt-get", Steps: []Step{
			{"apt-get", "update", "-y"},
			{"apt-get", "install", "-y", "git"},
		}},
	}},
	environment.DistroFedora: {Alternatives: []Alternative{
		{Tool: "dnf", Steps: []Step{{"dnf", "install", "-y", "git"}}},
		{Tool: "yum", Steps: []Step{{"yum", "install", "-y", "git"}}},
	}},
	environment.DistroArch: {Alternatives: []Alternative{
		{Tool: "pacman", Steps: []Step{{"pacman", "-Sy", "--noconfirm", "git"}}},
	}},
	environment.DistroAlpine: {Alternatives: []Alternative{
		{Tool: "apk", Steps: []Step{{"apk", "add", "git"}}},
	}},
	environment.DistroSuse: {Alternatives: []Alternative{
		{Tool: "zypper", Steps: []Step{{"zypper", "install", "-y", "git"}}},
	}},
}
