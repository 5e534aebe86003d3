// Package config manages user-level settings stored at ~/.portico/config.yaml
// and the per-project portico-registries.yaml override. It exposes both raw
// key access for the config command and the typed registry/overlay view the
// loaders consume.
package config
