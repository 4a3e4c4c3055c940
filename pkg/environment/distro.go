package environment

import (
	"bufio"
	"bytes"
	"strings"
)

// Distro identifies a Linux distribution family
type Distro string

// Supported distribution families
const (
	DistroUnknown Distro = "unknown"
	DistroDebian  Distro = "debian"
	DistroFedora  Distro = "fedora"
	DistroArch    Distro = "arch"
	DistroAlpine  Distro = "alpine"
	DistroSuse    Distro = "suse"
)

// distroAliases maps os-release ID / ID_LIKE tokens to a family
var distroAliases = map[string]Distro{
	"debian":              DistroDebian,
	"ubuntu":              DistroDebian,
	"linuxmint":           DistroDebian,
	"mint":                DistroDebian,
	"pop":                 DistroDebian,
	"raspbian":            DistroDebian,
	"elementary":          DistroDebian,
	"fedora":              DistroFedora,
	"rhel":                DistroFedora,
	"centos":              DistroFedora,
	"rocky":               DistroFedora,
	"almalinux":           DistroFedora,
	"alma":                DistroFedora,
	"amzn":                DistroFedora,
	"ol":                  DistroFedora,
	"arch":                DistroArch,
	"archarm":             DistroArch,
	"manjaro":             DistroArch,
	"endeavouros":         DistroArch,
	"alpine":              DistroAlpine,
	"opensuse":            DistroSuse,
	"opensuse-leap":       DistroSuse,
	"opensuse-tumbleweed": DistroSuse,
	"sles":                DistroSuse,
	"suse":                DistroSuse,
}

// fallbackProbes is consulted in order when os-release is missing or
// unrecognised; the first tool found on the search path decides
var fallbackProbes = []struct {
	tool   string
	distro Distro
}{
	{"apt-get", DistroDebian},
	{"dnf", DistroFedora},
	{"yum", DistroFedora},
	{"pacman", DistroArch},
	{"apk", DistroAlpine},
	{"zypper", DistroSuse},
}

// ParseOSRelease parses os-release KEY=VALUE content, stripping quotes
func ParseOSRelease(data []byte) map[string]string {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return fields
}

// DistroFromOSRelease classifies parsed os-release fields, trying ID first
// and then every ID_LIKE token
func DistroFromOSRelease(fields map[string]string) Distro {
	candidates := []string{fields["ID"]}
	candidates = append(candidates, strings.Fields(fields["ID_LIKE"])...)
	for _, id := range candidates {
		if d, ok := distroAliases[strings.ToLower(id)]; ok {
			return d
		}
	}
	return DistroUnknown
}
