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

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/menutrail"
	httpadapter "github.com/aretw0/menutrail/pkg/adapters/http"
	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/aretw0/menutrail/pkg/ports"
)

// MenusURI is the resource listing the known menus.
const MenusURI = "menutrail://menus"

// SelectionResponse aligns with the HTTP adapter and provides a unified structure across adapters.
type SelectionResponse struct {
	Menu     string          `json:"menu" jsonschema_description:"The menu the selection was taken from"`
	Relation domain.Relation `json:"relation" jsonschema_description:"The positional relation that was selected"`
	Reason   domain.Reason   `json:"reason" jsonschema_description:"Why the selection has the shape it has"`
	Trail    domain.Trail    `json:"trail" jsonschema_description:"The root-first trail the selection was taken at"`
	Tree     domain.Tree     `json:"tree" jsonschema_description:"The selected links keyed by link id, in menu order"`
}

// BlockResponse wraps a block. Dropped is set when an empty block was not kept.
type BlockResponse struct {
	Block   *menutrail.Block `json:"block,omitempty" jsonschema_description:"The block prepared for display"`
	Dropped bool             `json:"dropped" jsonschema_description:"The selection was empty and the block is not shown"`
}

// TrailResponse is the node-first trail of a link.
type TrailResponse struct {
	Trail []string `json:"trail" jsonschema_description:"The link, its ancestors and the root sentinel"`
}

// Navigator defines what the MCP server needs from the navigator.
// The request trail is attached to the context, so the navigator must read
// its active trail through httpadapter.ContextTrail.
type Navigator interface {
	Explain(ctx context.Context, rel domain.Relation, menuName string, anchor *domain.AnchorEntity) (domain.Selection, error)
	Build(ctx context.Context, cfg menutrail.BlockConfig, menuName string, anchor *domain.AnchorEntity) (*menutrail.Block, error)
	LinkManager() ports.LinkManager
}

// menuLister is implemented by stores that can enumerate their menus.
type menuLister interface {
	Menus(ctx context.Context) ([]string, error)
}

// Server wraps the navigator and exposes it as an MCP Server.
type Server struct {
	nav       Navigator
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(nav Navigator) *Server {
	s := &Server{
		nav:       nav,
		mcpServer: server.NewMCPServer("menutrail-mcp", strings.TrimSpace(menutrail.Version)),
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
	// TOOL: select_relatives
	selectTool := mcp.NewTool("select_relatives",
		mcp.WithDescription("Select the links related to the current position in a menu (children, parent, siblings, next, previous)."),
		mcp.WithString("menu", mcp.Required(), mcp.Description("Menu name")),
		mcp.WithString("relation", mcp.Required(), mcp.Description("One of children, parent, siblings, next, previous")),
		mcp.WithString("current", mcp.Description("Current link id; its ancestors are looked up (optional)")),
		mcp.WithString("trail", mcp.Description("Comma-separated node-first trail, e.g. 'B,R,' (optional, wins over current)")),
		mcp.WithObject("entity", mcp.Description("Anchor entity whose menu links position the request (optional)")),
		mcp.WithOutputSchema[SelectionResponse](),
	)
	s.mcpServer.AddTool(selectTool, mcp.NewStructuredToolHandler(s.handleSelect))

	// TOOL: build_block
	blockTool := mcp.NewTool("build_block",
		mcp.WithDescription("Build a display block for a relation, with titles overridden and entities rendered."),
		mcp.WithString("menu", mcp.Required(), mcp.Description("Menu name")),
		mcp.WithObject("config", mcp.Description("Block configuration: relation, show_empty, title, view_modes (optional)")),
		mcp.WithString("current", mcp.Description("Current link id (optional)")),
		mcp.WithString("trail", mcp.Description("Comma-separated node-first trail (optional)")),
		mcp.WithObject("entity", mcp.Description("Anchor entity (optional)")),
		mcp.WithOutputSchema[BlockResponse](),
	)
	s.mcpServer.AddTool(blockTool, mcp.NewStructuredToolHandler(s.handleBlock))

	// TOOL: resolve_trail
	trailTool := mcp.NewTool("resolve_trail",
		mcp.WithDescription("Resolve the node-first trail of a link: the link, its ancestors and the root."),
		mcp.WithString("current", mcp.Required(), mcp.Description("Link id")),
		mcp.WithOutputSchema[TrailResponse](),
	)
	s.mcpServer.AddTool(trailTool, mcp.NewStructuredToolHandler(s.handleTrail))
}

func (s *Server) handleSelect(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SelectionResponse, error) {
	menuName, _ := args["menu"].(string)
	relation, _ := args["relation"].(string)

	rel, err := domain.ParseRelation(relation)
	if err != nil {
		return SelectionResponse{}, err
	}

	ctx, anchor, err := s.position(ctx, args)
	if err != nil {
		return SelectionResponse{}, err
	}

	sel, err := s.nav.Explain(ctx, rel, menuName, anchor)
	if err != nil {
		return SelectionResponse{}, fmt.Errorf("select failed: %w", err)
	}

	return SelectionResponse{
		Menu:     menuName,
		Relation: sel.Relation,
		Reason:   sel.Reason,
		Trail:    sel.Trail,
		Tree:     sel.Tree,
	}, nil
}

func (s *Server) handleBlock(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (BlockResponse, error) {
	menuName, _ := args["menu"].(string)

	var cfg menutrail.BlockConfig
	if err := decodeArg(args, "config", &cfg); err != nil {
		return BlockResponse{}, err
	}
	if cfg.Relation != "" {
		rel, err := domain.ParseRelation(string(cfg.Relation))
		if err != nil {
			return BlockResponse{}, err
		}
		cfg.Relation = rel
	}

	ctx, anchor, err := s.position(ctx, args)
	if err != nil {
		return BlockResponse{}, err
	}

	block, err := s.nav.Build(ctx, cfg, menuName, anchor)
	if err != nil {
		return BlockResponse{}, fmt.Errorf("build failed: %w", err)
	}
	return BlockResponse{Block: block, Dropped: block == nil}, nil
}

func (s *Server) handleTrail(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TrailResponse, error) {
	current, _ := args["current"].(string)
	ids, err := httpadapter.TrailOf(ctx, s.nav.LinkManager(), current)
	if err != nil {
		return TrailResponse{}, err
	}
	return TrailResponse{Trail: ids}, nil
}

// position attaches the requested trail to ctx and decodes the anchor entity.
func (s *Server) position(ctx context.Context, args map[string]interface{}) (context.Context, *domain.AnchorEntity, error) {
	var anchor *domain.AnchorEntity
	if _, ok := args["entity"]; ok {
		anchor = &domain.AnchorEntity{}
		if err := decodeArg(args, "entity", anchor); err != nil {
			return nil, nil, err
		}
	}

	if trail, _ := args["trail"].(string); trail != "" {
		return httpadapter.ContextWithTrail(ctx, strings.Split(trail, ",")), anchor, nil
	}
	if current, _ := args["current"].(string); current != "" {
		ids, err := httpadapter.TrailOf(ctx, s.nav.LinkManager(), current)
		if err != nil {
			return nil, nil, err
		}
		return httpadapter.ContextWithTrail(ctx, ids), anchor, nil
	}
	return ctx, anchor, nil
}

// decodeArg decodes args[key] into out. The value may be an object or its JSON encoding.
func decodeArg(args map[string]interface{}, key string, out any) error {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil
	}
	if str, ok := raw.(string); ok {
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(str), &m); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		raw = m
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	return nil
}

func (s *Server) registerResources() {
	// EXPOSE: menutrail://menus
	s.mcpServer.AddResource(mcp.NewResource(MenusURI, "Known Menus",
		mcp.WithMIMEType("application/json"),
	), s.readMenus)
}

func (s *Server) readMenus(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	lister, ok := s.nav.LinkManager().(menuLister)
	if !ok {
		return nil, errors.New("the link manager cannot list menus")
	}
	menus, err := lister.Menus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	jsonBytes, _ := json.Marshal(menus)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      MenusURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
