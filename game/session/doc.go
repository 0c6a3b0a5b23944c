// Package session tracks active games by UUID and optionally persists them
// across restarts through a pluggable Persistence backend.
package session
