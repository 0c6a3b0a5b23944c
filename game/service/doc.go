// Package service wires the puzzle engine, session store, layout catalogue
// and generator behind the GameService interface consumed by the REST API,
// the websocket hub and the MCP transport.
package service
