// Package config loads the controller settings from YAML.
//
// Every field has a default matching the reference robot, so a settings file
// only needs the values that differ. Tunables are read once at startup and are
// never written back.
package config
