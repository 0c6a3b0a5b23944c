// Package websocket pushes live puzzle state to watchers.
//
// The package uses a hub-and-spoke model: a central Hub tracks every
// connection by session ID, and the REST API broadcasts through it after
// each mutating operation. Connections are read-only from the client's
// perspective; slides arrive over HTTP, never over the socket.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded Message values: the session ID, an
// event name ("state_update", "victory", or a custom event), and either a
// full GameState snapshot or an arbitrary payload.
//
// Connection Lifecycle:
//
// 1. Client connects to /ws?session=<id>
// 2. Connection registered with the hub
// 3. State updates broadcast to every watcher of that session
// 4. Disconnection or a full send buffer triggers cleanup
//
// Concurrency:
//
// The hub is safe for concurrent use; each connection runs dedicated read
// and write goroutines.
package websocket
