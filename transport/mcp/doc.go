// Package mcp provides a Model Context Protocol interface to the ricochet
// puzzle server.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for puzzle operations
//   - Thin proxying of every tool call to the REST API
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current game state with a board rendering
//   - slide: Execute a single directional slide
//   - bulk_slide: Execute multiple slides in sequence
//   - reset_game: Reset the puzzle to its initial state
//   - solve_puzzle: Report the optimal continuation from the current state
//   - move_history: Retrieve move history with pagination
//   - create_session: Create a new session with layout selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_layouts: List the board layout catalogue
//   - new_puzzle: Generate a fresh puzzle for a difficulty band
//   - game_instructions: Complete rules and strategy notes
//
// Architecture:
//
// The Client never touches game state directly. Every tool handler issues an
// HTTP request against the REST API, so MCP agents and REST/WebSocket clients
// always observe the same sessions.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// The slide and bulk_slide tools carry an optional intent parameter. It is
// not interpreted; it exists so agents articulate their plan before acting.
package mcp
