// Package api provides the HTTP REST surface of the ricochet puzzle server.
//
// The api package implements:
//   - RESTful endpoints for puzzle play
//   - Session management endpoints
//   - Layout listing and puzzle generation
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"layout": "Crystal Maze"}; a
//     difficulty name generates a fresh puzzle; empty uses the default layout)
//   - GET /api/sessions - List sessions (sort, order, limit query params)
//   - GET /api/sessions/{id} - Get one session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/move - Execute one slide ({"direction": "north"})
//   - POST /api/sessions/{id}/bulk-move - Execute a sequence ({"moves": ["north", "east"]})
//   - POST /api/sessions/{id}/reset - Restart the puzzle
//   - GET /api/sessions/{id}/history - Move history with pagination (page, limit, order)
//   - GET /api/sessions/{id}/solve - Optimal continuation from the current state
//
// Layouts and Generation:
//   - GET /api/layouts - List the layout catalogue
//   - GET /api/layouts/{name} - Get one layout with its full wall list
//   - POST /api/puzzles - Generate a puzzle ({"difficulty": "easy|medium|hard"})
//
// All endpoints accept and return JSON. Errors are returned as JSON with
// appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// State changes are additionally broadcast to WebSocket watchers connected
// via /ws?session=<id>.
package api
