package filesystem

import (
	"io/fs"
)

// FS is the filesystem surface used across dotstrap
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error
}

// Exists reports whether name exists, following symlinks
func Exists(fsys FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}
