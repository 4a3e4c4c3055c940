// Package config handles configuration management for dotstrap.
//
// Configuration is layered, later layers winning:
//
//  1. embedded/defaults.toml, compiled into the binary
//  2. the user file: an explicit --config path, or the first of
//     config.toml / config.yaml / config.yml found under
//     $XDG_CONFIG_HOME/dotstrap and the system XDG config dirs
//  3. DOTSTRAP_<SECTION>__<KEY> environment variables
//     (e.g. DOTSTRAP_MINIFORGE__ENV_NAME=tools)
//
// The merged tree is decoded into Config. Paths starting with ~ are expanded
// and relative lists/source directories are resolved against the working
// directory and then the executable's directory.
package config
