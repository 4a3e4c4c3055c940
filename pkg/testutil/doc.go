// Package testutil provides utilities for testing dotstrap components.
//
// Key components:
//   - FakeRunner: scripted runner.Runner that records every subprocess call
//   - Tree helpers: declarative file/dir/symlink setup under t.TempDir()
//   - Home: isolated HOME / XDG_CONFIG_HOME / XDG_STATE_HOME for a test
//
// Usage guidelines:
//   - Tests that care about symlinks use real temp directories
//   - Tests that only read lists use afero.NewMemMapFs via filesystem.NewAferoFS
//   - All test data should be defined inline, not in external files
package testutil
