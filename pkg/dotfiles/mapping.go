package dotfiles

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
)

// Root says which target directory a mapping lands in
type Root string

const (
	RootHome   Root = "home"
	RootConfig Root = "config"
)

// Mapping pairs a source entry with the path that should link to it
type Mapping struct {
	Source string
	Target string
	Root   Root
}

// Name is the entry's base name, shared by source and target
func (m Mapping) Name() string {
	return filepath.Base(m.Source)
}

// Layout locates the source tree and the two target roots
type Layout struct {
	SourceDir   string
	HomeSubtree string
	Home        string
	ConfigHome  string
	Ignore      []string
}

// Discover lists the mappings for a source tree: home subtree entries
// first, then top-level entries, each group in lexical order
func Discover(fsys filesystem.FS, layout Layout) ([]Mapping, error) {
	ignored := make(map[string]bool, len(layout.Ignore)+1)
	for _, name := range layout.Ignore {
		ignored[name] = true
	}

	var mappings []Mapping

	homeDir := filepath.Join(layout.SourceDir, layout.HomeSubtree)
	if info, err := fsys.Stat(homeDir); err == nil && info.IsDir() {
		names, err := entryNames(fsys, homeDir, ignored)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			mappings = append(mappings, Mapping{
				Source: filepath.Join(homeDir, name),
				Target: filepath.Join(layout.Home, name),
				Root:   RootHome,
			})
		}
	}

	// The home subtree is never linked as a config entry itself
	ignored[layout.HomeSubtree] = true
	names, err := entryNames(fsys, layout.SourceDir, ignored)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		mappings = append(mappings, Mapping{
			Source: filepath.Join(layout.SourceDir, name),
			Target: filepath.Join(layout.ConfigHome, name),
			Root:   RootConfig,
		})
	}

	return mappings, nil
}

func entryNames(fsys filesystem.FS, dir string, ignored map[string]bool) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", dir).WithDetail("path", dir)
	}
	var names []string
	for _, entry := range entries {
		if ignored[entry.Name()] {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
