// Package file persists application settings as config.toml in the
// ghtask configuration directory (~/.ghtask by default).
//
// Adapters:
//   - ConfigStore: typed settings encoded with go-toml, addressed by dotted keys
package file
