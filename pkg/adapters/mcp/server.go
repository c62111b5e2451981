package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/transposer"
	"github.com/aretw0/transposer/pkg/domain"
	"github.com/aretw0/transposer/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TransposeResponse is the structured result of the transpose tool.
type TransposeResponse struct {
	Text        string `json:"text" jsonschema_description:"The text with its note annotations re-spelled"`
	Annotations int    `json:"annotations" jsonschema_description:"Number of annotations rewritten"`
	Truncated   bool   `json:"truncated" jsonschema_description:"True when an unmatched '(' stopped the scan"`
	UnmatchedAt int    `json:"unmatched_at" jsonschema_description:"Byte offset of the unmatched '('"`
}

// ScaleResponse is the structured result of the build_scale tool.
type ScaleResponse struct {
	Key        domain.Key `json:"key"`
	Convention string     `json:"convention" jsonschema_description:"sharp or flat"`
	Notes      []string   `json:"notes" jsonschema_description:"The rotated scale, tonic first"`
}

// KeyMapResponse is the structured result of the build_key_map tool.
type KeyMapResponse struct {
	From    domain.Key           `json:"from"`
	To      domain.Key           `json:"to"`
	Entries []domain.KeyMapEntry `json:"entries"`
}

// Server exposes the transposer as an MCP Server.
type Server struct {
	sink      ports.Sink
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. The sink is optional; when set,
// stored results are exposed as resources.
func NewServer(sink ports.Sink) *Server {
	s := &Server{
		sink:      sink,
		mcpServer: server.NewMCPServer("transposer-mcp", strings.TrimSpace(transposer.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
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

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
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
	// TOOL: transpose
	transposeTool := mcp.NewTool("transpose",
		mcp.WithDescription("Re-spell the parenthesized note annotations of a Roman-numeral analysis for another key."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Analysis text, e.g. \"I (B) V\"")),
		mcp.WithString("from", mcp.Required(), mcp.Description("Original tonic, e.g. A, F#, Bb")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Destination tonic")),
		mcp.WithString("mode", mcp.Description("major (default) or minor")),
		mcp.WithOutputSchema[TransposeResponse](),
	)
	s.mcpServer.AddTool(transposeTool, mcp.NewStructuredToolHandler(s.handleTranspose))

	// TOOL: build_scale
	scaleTool := mcp.NewTool("build_scale",
		mcp.WithDescription("Build the rotated scale of a key, spelled with its sharp or flat convention."),
		mcp.WithString("tonic", mcp.Required(), mcp.Description("Tonic, e.g. D, Eb, C#")),
		mcp.WithString("mode", mcp.Description("major (default) or minor")),
		mcp.WithOutputSchema[ScaleResponse](),
	)
	s.mcpServer.AddTool(scaleTool, mcp.NewStructuredToolHandler(s.handleBuildScale))

	// TOOL: build_key_map
	keyMapTool := mcp.NewTool("build_key_map",
		mcp.WithDescription("Show how note names of one key are re-spelled in another."),
		mcp.WithString("from", mcp.Required(), mcp.Description("Original tonic")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Destination tonic")),
		mcp.WithString("mode", mcp.Description("major (default) or minor")),
		mcp.WithOutputSchema[KeyMapResponse](),
	)
	s.mcpServer.AddTool(keyMapTool, mcp.NewStructuredToolHandler(s.handleBuildKeyMap))
}

func (s *Server) handleTranspose(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TransposeResponse, error) {
	text, _ := args["text"].(string)
	from, to, err := keyPair(args)
	if err != nil {
		return TransposeResponse{}, err
	}

	out, loc, err := transposer.TransposeText(text, from, to)
	if err != nil {
		return TransposeResponse{}, fmt.Errorf("transpose failed: %w", err)
	}
	if loc.Truncated {
		slog.Warn("MCP Transpose: Unmatched parenthesis", "offset", loc.UnmatchedAt)
	}

	return TransposeResponse{
		Text:        out,
		Annotations: len(loc.Annotations),
		Truncated:   loc.Truncated,
		UnmatchedAt: loc.UnmatchedAt,
	}, nil
}

func (s *Server) handleBuildScale(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ScaleResponse, error) {
	tonic, _ := args["tonic"].(string)
	key, err := parseKey(tonic, args)
	if err != nil {
		return ScaleResponse{}, err
	}

	scale, err := key.Scale()
	if err != nil {
		return ScaleResponse{}, err
	}
	return ScaleResponse{
		Key:        key,
		Convention: domain.ConventionFor(key.Tonic, key.Major()).String(),
		Notes:      scale.Strings(),
	}, nil
}

func (s *Server) handleBuildKeyMap(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (KeyMapResponse, error) {
	from, to, err := keyPair(args)
	if err != nil {
		return KeyMapResponse{}, err
	}

	origScale, err := from.Scale()
	if err != nil {
		return KeyMapResponse{}, err
	}
	destScale, err := to.Scale()
	if err != nil {
		return KeyMapResponse{}, err
	}
	return KeyMapResponse{
		From:    from,
		To:      to,
		Entries: domain.BuildKeyMap(origScale, destScale).Entries(),
	}, nil
}

func keyPair(args map[string]interface{}) (domain.Key, domain.Key, error) {
	fromStr, _ := args["from"].(string)
	toStr, _ := args["to"].(string)

	from, err := parseKey(fromStr, args)
	if err != nil {
		return domain.Key{}, domain.Key{}, fmt.Errorf("from: %w", err)
	}
	to, err := parseKey(toStr, args)
	if err != nil {
		return domain.Key{}, domain.Key{}, fmt.Errorf("to: %w", err)
	}
	return from, to, nil
}

func parseKey(tonic string, args map[string]interface{}) (domain.Key, error) {
	modeStr, _ := args["mode"].(string)
	mode, err := domain.ParseMode(modeStr)
	if err != nil {
		return domain.Key{}, err
	}
	return domain.NewKey(tonic, mode.IsMajor())
}

func (s *Server) registerResources() {
	// EXPOSE: transposer://destinations
	s.mcpServer.AddResource(mcp.NewResource("transposer://destinations", "Conventional destination keys",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dests := append(domain.AllDestinations(domain.Major), domain.AllDestinations(domain.Minor)...)
		jsonBytes, _ := json.Marshal(dests)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "transposer://destinations",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	if s.sink == nil {
		return
	}

	// EXPOSE: transposer://results/{piece}/{destination}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate("transposer://results/{piece}/{destination}", "Stored transposition result",
		mcp.WithTemplateMIMEType("text/plain"),
	), s.readResult)
}

func (s *Server) readResult(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	parts := strings.Split(strings.TrimPrefix(uri, "transposer://results/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid result uri %q", uri)
	}

	res, err := s.sink.Read(ctx, parts[0], parts[1])
	if err != nil {
		if errors.Is(err, ports.ErrResultNotFound) {
			return nil, fmt.Errorf("no result for %s in %s: %w", parts[0], parts[1], err)
		}
		return nil, fmt.Errorf("failed to read result: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     res.Text,
		},
	}, nil
}
