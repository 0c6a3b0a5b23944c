// Package config manages the puzzle layout catalogue: built-in curated
// layouts merged with JSON layout files from a config directory, with
// case-insensitive lookup by name. File layouts shadow curated ones so
// boards can be adjusted without recompiling.
package config
