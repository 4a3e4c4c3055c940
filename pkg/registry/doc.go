// Package registry provides a small generic, thread-safe name → item
// registry. dotstrap uses it to map package manager modes to the factories
// that build their adapters.
package registry
