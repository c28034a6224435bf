package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/dateq"
	"github.com/aretw0/dateq/pkg/domain"
)

// FindEquationsResponse aligns with the JSON export schema and provides a
// unified structure across adapters.
type FindEquationsResponse struct {
	Input     string             `json:"input" jsonschema_description:"The raw input the digits were extracted from"`
	Digits    string             `json:"digits" jsonschema_description:"The extracted digit sequence"`
	Count     int                `json:"count" jsonschema_description:"Number of equations returned"`
	Total     int                `json:"total" jsonschema_description:"Number of equations found"`
	Equations []EquationPayload  `json:"equations" jsonschema_description:"The equations, both sides evaluating to the same value"`
	Stats     domain.SearchStats `json:"stats" jsonschema_description:"Search effort counters"`
}

// EquationPayload is one equation in a tool response.
type EquationPayload struct {
	Number    int     `json:"number"`
	LeftSide  string  `json:"left_side"`
	RightSide string  `json:"right_side"`
	Value     float64 `json:"value"`
}

// Engine defines the interface required by the MCP server to run searches.
type Engine interface {
	GenerateWith(ctx context.Context, input string, opts domain.SearchOptions) (*domain.Result, error)
	Options() domain.SearchOptions
}

// Server wraps the search engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("dateq-mcp", strings.TrimSpace(dateq.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: find_equations
	findTool := mcp.NewTool("find_equations",
		mcp.WithDescription("Search the digits of a date or number for valid arithmetic identities. Returns equations whose two sides evaluate to the same value."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Date or number to search, e.g. '09/05/2005'. Non-digits are ignored.")),
		mcp.WithString("operators", mcp.Description("Operator palette: 'basic' (+ - * /) or 'extended' (adds ^ and root)")),
		mcp.WithBoolean("factorial", mcp.Description("Also try fact(n) for single-digit groups")),
		mcp.WithNumber("max_groups", mcp.Description("Maximum groups per partition, 2 to 6 (default 5)")),
		mcp.WithNumber("tolerance", mcp.Description("Inclusive value-matching tolerance (default 1e-10)")),
		mcp.WithString("sort", mcp.Description("Equation order: 'value', 'value-desc', 'length', 'length-desc' or 'alpha' (optional)")),
		mcp.WithNumber("limit", mcp.Description("Maximum equations to return (optional)")),
		mcp.WithOutputSchema[FindEquationsResponse](),
	)
	s.mcpServer.AddTool(findTool, mcp.NewStructuredToolHandler(s.handleFindEquations))

	// TOOL: extract_digits
	s.mcpServer.AddTool(mcp.NewTool("extract_digits",
		mcp.WithDescription("Extract the digit sequence a search would run on, without searching."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Date or number to extract digits from")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := request.GetString("input", "")
		digits, err := domain.ExtractDigits(input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("extract failed: %v", err)), nil
		}
		return mcp.NewToolResultText(digits.String()), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleFindEquations(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (FindEquationsResponse, error) {
	input, _ := args["input"].(string)

	opts := s.engine.Options()
	if name, ok := args["operators"].(string); ok && name != "" {
		set, err := domain.ParseOperatorSet(name)
		if err != nil {
			return FindEquationsResponse{}, err
		}
		opts.Operators = set
	}
	if v, ok := args["factorial"].(bool); ok {
		opts.Factorial = v
	}
	if v, ok := args["max_groups"].(float64); ok {
		opts.MaxGroups = int(v)
	}
	if v, ok := args["tolerance"].(float64); ok {
		opts.Tolerance = v
	}

	sortPolicy := domain.SortNone
	if name, ok := args["sort"].(string); ok && name != "" {
		var err error
		sortPolicy, err = domain.ParseSortPolicy(name)
		if err != nil {
			return FindEquationsResponse{}, err
		}
	}
	limit := 0
	if v, ok := args["limit"].(float64); ok {
		limit = int(v)
	}

	result, err := s.engine.GenerateWith(ctx, input, opts)
	if err != nil {
		slog.Warn("MCP FindEquations: search rejected", "input", input, "error", err)
		return FindEquationsResponse{}, fmt.Errorf("search failed: %w", err)
	}

	equations := make([]domain.Equation, len(result.Equations))
	copy(equations, result.Equations)
	domain.SortEquations(equations, sortPolicy)
	if limit > 0 && limit < len(equations) {
		equations = equations[:limit]
	}

	resp := FindEquationsResponse{
		Input:     result.Input,
		Digits:    result.Digits.String(),
		Count:     len(equations),
		Total:     len(result.Equations),
		Equations: make([]EquationPayload, 0, len(equations)),
		Stats:     result.Stats,
	}
	for i, eq := range equations {
		resp.Equations = append(resp.Equations, EquationPayload{
			Number:    i + 1,
			LeftSide:  eq.Left,
			RightSide: eq.Right,
			Value:     eq.Value,
		})
	}
	return resp, nil
}

func (s *Server) registerResources() {
	// EXPOSE: dateq://operators
	s.mcpServer.AddResource(mcp.NewResource("dateq://operators", "Operator Palettes",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		payload := map[string]any{
			"basic":           operatorSymbols(domain.OperatorsBasic),
			"extended":        operatorSymbols(domain.OperatorsExtended),
			"max_factorial":   domain.MaxFactorial,
			"max_group_value": domain.MaxGroupValue,
		}
		jsonBytes, _ := json.Marshal(payload)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "dateq://operators",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func operatorSymbols(set domain.OperatorSet) []string {
	ops := set.Operators()
	symbols := make([]string, 0, len(ops))
	for _, op := range ops {
		symbols = append(symbols, op.String())
	}
	return symbols
}
