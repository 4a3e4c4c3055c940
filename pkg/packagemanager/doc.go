// Package packagemanager adapts Homebrew and Miniforge (mamba) behind one
// Manager interface.
//
// Every adapter follows the same contract:
//
//   - an app whose probe command is already on PATH is Skipped without
//     running a single subprocess, unless a reinstall is forced
//   - the package manager itself is bootstrapped lazily, at most once,
//     right before the first real install
//   - failures are reported in the Result; only bootstrap failures carry
//     BOOTSTRAP_FAILED, which callers use to stop a run early
//
// Adapters are looked up by mode name through New, backed by a registry so
// the CLI's --mode choices always match what is implemented.
package packagemanager
