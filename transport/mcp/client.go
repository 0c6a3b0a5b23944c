package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Edju03/Richochet/game/engine"
	"github.com/Edju03/Richochet/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Ricochet Puzzle",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Ricochet Puzzle - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Slide the robot to collect the amber and violet items, then cross the goal
cell. The robot slides in a straight line until a wall stops it; every cell
crossed during a slide counts for collection. The goal only scores once both
items are held.

AVAILABLE TOOLS:
- game_state: Get current game state with a board rendering
- slide: Single slide (north/south/east/west) - requires intent explanation
- bulk_slide: Multiple slides at once - requires intent explanation
- reset_game: Reset to initial state
- solve_puzzle: Ask the solver for the optimal continuation
- move_history: View past slides
- create_session: Create new puzzle session
- get_session: Get session details
- list_sessions: List all active sessions
- list_layouts: List available board layouts
- new_puzzle: Generate a fresh puzzle for a difficulty
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on slide/bulk_slide tools serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new puzzle session with optional layout selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"layout": map[string]interface{}{
					"type":        "string",
					"description": "Name of the board layout to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active puzzle sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "slide",
		Description: "Slide the robot in a direction until a wall stops it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"north", "south", "east", "west"},
					"description": "Direction to slide",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this slide (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleSlide)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_slide",
		Description: "Execute multiple slides in sequence",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"north", "south", "east", "west"},
					},
					"description": "Array of slides",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of slides (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkSlide)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the puzzle to its initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_puzzle",
		Description: "Ask the solver for the optimal move sequence from the current position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get slide history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_layouts",
		Description: "List available board layouts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListLayouts)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "new_puzzle",
		Description: "Generate a fresh solvable puzzle for a difficulty and register its layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"difficulty": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"easy", "medium", "hard"},
					"description": "Target difficulty band for the optimal solution length",
				},
			},
			Required: []string{"difficulty"},
		},
	}, c.handleNewPuzzle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	layout, _ := args["layout"].(string)

	body := map[string]string{}
	if layout != "" {
		body["layout"] = layout
	}

	var session service.SessionInfo
	if err := c.apiCall("POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nLayout: %s\n\n%s", session.ID, session.LayoutName, session.BoardRender)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall("GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		fmt.Fprintf(&sb, "- %s (Layout: %s, Created: %s)\n",
			s.ID, s.LayoutName, s.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(session.GameState, session.BoardRender)), nil
}

func (c *Client) handleSlide(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - no processing needed
	_ = intent

	body := map[string]interface{}{"direction": direction}

	var result service.MoveResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkSlide(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]interface{})
	intent, _ := args["intent"].(string)
	_ = intent

	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if s, ok := m.(string); ok {
			moves = append(moves, s)
		}
	}

	body := map[string]interface{}{"moves": moves}

	var result service.BulkMoveResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/bulk-move", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatBulkMoveResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), map[string]string{}, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\nRobot back at %s with nothing collected.", response.Message, response.State.Robot)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.SolveResult
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/solve", sessionID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Solvable {
		return mcp.NewToolResultText("No solution exists from the current position. Try reset_game."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Optimal continuation (%d moves): %s",
		result.OptimalMoves, strings.Join(result.Directions, ", "))), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	path := fmt.Sprintf("/api/sessions/%s/history?order=asc", sessionID)
	if page, ok := args["page"].(float64); ok {
		path += fmt.Sprintf("&page=%d", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		path += fmt.Sprintf("&limit=%d", int(limit))
	}

	var history service.HistoryResponse
	if err := c.apiCall("GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Move History (page %d of %d, %d total moves):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)
	for _, m := range history.Moves {
		status := "blocked"
		if m.Success {
			status = "ok"
		}
		fmt.Fprintf(&sb, "%3d. %-5s %s -> %s [%s]\n", m.MoveNumber, m.Direction, m.From, m.To, status)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleListLayouts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var layouts []service.LayoutInfo
	if err := c.apiCall("GET", "/api/layouts", nil, &layouts); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Available Layouts (%d):\n\n", len(layouts))
	for _, l := range layouts {
		fmt.Fprintf(&sb, "- %s (%dx%d", l.Name, l.Rows, l.Cols)
		if l.Difficulty != "" {
			fmt.Fprintf(&sb, ", %s", l.Difficulty)
		}
		if l.OptimalMoves > 0 {
			fmt.Fprintf(&sb, ", optimal %d", l.OptimalMoves)
		}
		sb.WriteString(")\n")
		if l.Description != "" {
			fmt.Fprintf(&sb, "  %s\n", l.Description)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleNewPuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	difficulty, _ := args["difficulty"].(string)

	var puzzle service.PuzzleInfo
	if err := c.apiCall("POST", "/api/puzzles", map[string]string{"difficulty": difficulty}, &puzzle); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generated puzzle: %s\nDifficulty: %s (optimal %d moves)\n",
		puzzle.Name, puzzle.Difficulty, puzzle.OptimalMoves)
	if puzzle.Fallback {
		sb.WriteString("Served from the curated catalogue (generation budget exhausted).\n")
	}
	fmt.Fprintf(&sb, "\n%s\nUse create_session with layout %q to play it.", puzzle.BoardRender, puzzle.Name)
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `RICOCHET PUZZLE - COMPLETE RULES

THE BOARD:
A small grid with walls between cells. The border is walled. Markers:
  S = robot start, A = amber item, V = violet item, G = goal.

MOVEMENT:
The robot never takes a single step. A slide moves it in one cardinal
direction (north/south/east/west) until the next cell is blocked by a wall
or the border. A slide that cannot move at all does not count as a move.

COLLECTION:
Every cell CROSSED during a slide counts, not just the stopping cell.
- Crossing amber or violet collects it (once; re-crossing does nothing).
- Crossing the goal scores ONLY when amber and violet are both already
  held at that instant. A single slide crossing amber, violet and then the
  goal in that order wins outright.

WINNING:
Collect amber and violet (any order), then cross the goal. Fewer slides is
better; solve_puzzle reports the optimal continuation.

STRATEGY TIPS:
1. Think in stopping positions: walls and the border define where you can
   end up, and those anchor every route.
2. Items are collected in passing, so plan slides that sweep through them
   on the way somewhere useful.
3. Crossing the goal early is harmless; it only scores with both items.
4. If you are stuck, reset_game is free and solve_puzzle shows the line.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatters

func formatSessionInfo(s *service.SessionInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Session: %s\n", s.ID)
	fmt.Fprintf(&sb, "Layout: %s", s.LayoutName)
	if s.Difficulty != "" {
		fmt.Fprintf(&sb, " (%s)", s.Difficulty)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Created: %s\n", s.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Last accessed: %s\n\n", s.LastAccessedAt.Format(time.RFC3339))
	sb.WriteString(formatGameState(s.GameState, s.BoardRender))
	return sb.String()
}

func formatGameState(state *engine.GameState, boardRender string) string {
	if state == nil {
		return "No game state available."
	}
	var sb strings.Builder
	if boardRender != "" {
		sb.WriteString(boardRender)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Robot: %s\n", state.Robot)
	fmt.Fprintf(&sb, "Collected: %s\n", state.Collected)
	fmt.Fprintf(&sb, "Moves: %d\n", state.MoveCount)
	if state.Won {
		fmt.Fprintf(&sb, "SOLVED in %d moves!\n", state.MoveCount)
	} else if state.Message != "" {
		fmt.Fprintf(&sb, "Status: %s\n", state.Message)
	}
	return sb.String()
}

func formatMoveResult(r *service.MoveResult) string {
	var sb strings.Builder
	if r.Success {
		fmt.Fprintf(&sb, "Slid %s: %s -> %s\n", r.Direction, r.From, r.To)
		if len(r.CollectedNow) > 0 {
			fmt.Fprintf(&sb, "Collected: %s\n", strings.Join(r.CollectedNow, ", "))
		}
	} else {
		fmt.Fprintf(&sb, "Blocked: cannot slide %s from %s\n", r.Direction, r.From)
	}
	if r.GameState != nil {
		if r.GameState.Won {
			fmt.Fprintf(&sb, "SOLVED in %d moves!\n", r.GameState.MoveCount)
		} else {
			fmt.Fprintf(&sb, "Now holding: %s (move %d)\n", r.GameState.Collected, r.GameState.MoveCount)
		}
	}
	if len(r.PossibleMoves) > 0 {
		fmt.Fprintf(&sb, "Possible moves: %s\n", strings.Join(r.PossibleMoves, ", "))
	}
	return sb.String()
}

func formatBulkMoveResult(r *service.BulkMoveResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Executed %d of %d moves: %s -> %s\n",
		r.MovesExecuted, r.RequestedMoves, r.StartPos, r.EndPos)
	if r.StoppedReason != "" {
		fmt.Fprintf(&sb, "Stopped: %s (move %d)\n", r.StoppedReason, r.StoppedOnMove)
	}
	for _, step := range r.Steps {
		status := "blocked"
		if step.Success {
			status = "ok"
		}
		if step.Victory {
			status = "VICTORY"
		}
		fmt.Fprintf(&sb, "  %d. %-5s %s -> %s [%s]\n", step.Idx+1, step.Dir, step.From, step.To, status)
	}
	if r.GameState != nil && r.GameState.Won {
		fmt.Fprintf(&sb, "SOLVED in %d moves!\n", r.GameState.MoveCount)
	}
	return sb.String()
}
