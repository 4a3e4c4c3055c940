// Package applist reads the plain-text package lists the apps command
// installs from.
//
// A list lives at <lists_dir>/<name>.txt, one package name per line. Blank
// lines and lines starting with # are ignored. Names keep their first-seen
// order and are compared case-sensitively. The reserved name "full" is the
// union of every list on disk.
package applist

import (
	"bufio"
	"bytes"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/logging"
)

// FullList is the reserved name for the union of all lists
const FullList = "full"

const listExt = ".txt"

// List is an ordered, de-duplicated sequence of package names
type List []string

// Parse turns list file content into a List
func Parse(data []byte) List {
	var list List
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		list = append(list, name)
	}
	return list
}

// Loader reads lists from a directory
type Loader struct {
	fs  filesystem.FS
	dir string
	// order is the concatenation order used for the full list
	order []string
}

// NewLoader creates a Loader over dir. order names the lists that lead the
// full list; remaining lists follow in lexical order.
func NewLoader(fsys filesystem.FS, dir string, order []string) *Loader {
	return &Loader{fs: fsys, dir: dir, order: order}
}

// Dir returns the directory lists are read from
func (l *Loader) Dir() string {
	return l.dir
}

// Load returns the named list
func (l *Loader) Load(name string) (List, error) {
	logger := logging.GetLogger("applist")

	name = strings.TrimSuffix(strings.TrimSpace(name), listExt)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid list name %q", name).WithDetail("list", name)
	}

	if name == FullList && !l.hasFile(FullList) {
		return l.loadFull()
	}

	path := l.path(name)
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrListNotFound, "app list %q not found at %s", name, path).
			WithDetail("list", name).
			WithDetail("path", path)
	}

	list := Parse(data)
	logger.Debug().Str("list", name).Int("count", len(list)).Msg("App list loaded")
	return list, nil
}

// Names returns the lists available on disk, in full-list order
func (l *Loader) Names() ([]string, error) {
	entries, err := l.fs.ReadDir(l.dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrListNotFound, "cannot read app list directory %s", l.dir).
			WithDetail("path", l.dir)
	}

	onDisk := make(map[string]bool)
	var rest []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != listExt {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), listExt)
		if name == FullList {
			continue
		}
		onDisk[name] = true
		rest = append(rest, name)
	}
	sort.Strings(rest)

	var names []string
	placed := make(map[string]bool)
	for _, name := range l.order {
		if onDisk[name] && !placed[name] {
			names = append(names, name)
			placed[name] = true
		}
	}
	for _, name := range rest {
		if !placed[name] {
			names = append(names, name)
		}
	}
	return names, nil
}

func (l *Loader) loadFull() (List, error) {
	names, err := l.Names()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.Newf(errors.ErrListNotFound, "no app lists found in %s", l.dir).
			WithDetail("list", FullList).
			WithDetail("path", l.dir)
	}

	var full List
	seen := make(map[string]bool)
	for _, name := range names {
		list, err := l.Load(name)
		if err != nil {
			return nil, err
		}
		for _, app := range list {
			if !seen[app] {
				seen[app] = true
				full = append(full, app)
			}
		}
	}
	return full, nil
}

func (l *Loader) hasFile(name string) bool {
	return filesystem.Exists(l.fs, l.path(name))
}

func (l *Loader) path(name string) string {
	return filepath.Join(l.dir, name+listExt)
}
