// Package filesystem provides filesystem implementations for dotstrap.
//
// The FS interface is the narrow set of calls the list loader and the dotfiles
// installer need, including the symlink primitives. NewOS talks to the real
// filesystem; NewAferoFS adapts any afero.Fs, which is how tests run the list
// loader against an in-memory tree.
package filesystem
