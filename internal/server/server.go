// Package server exposes uimap over the Model Context Protocol.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/uimap/internal/config"
	"github.com/mj1618/uimap/internal/platform"
	"github.com/mj1618/uimap/internal/version"
)

// Transports accepted by Serve.
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable-http"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// Server wraps the MCP server with the platform provider and tree cache.
type Server struct {
	provider *platform.Provider
	cfg      *config.Config
	cache    *TreeCache
	// UI Automation calls are serialized across tool invocations.
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
}

// New creates an MCP server with the uimap tools registered.
func New(provider *platform.Provider, cfg *config.Config, cacheTTL time.Duration) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Server{
		provider: provider,
		cfg:      cfg,
		cache:    NewTreeCache(cacheTTL),
	}
	s.mcp = mcpserver.NewMCPServer("uimap", version.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case TransportStdio:
		return mcpserver.ServeStdio(s.mcp)
	case TransportStreamableHTTP:
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func withTarget() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("title", mcp.Description("Window title substring (case-insensitive)")),
		mcp.WithNumber("pid", mcp.Description("Process ID")),
		mcp.WithString("path", mcp.Description("Executable name or path of a running program (e.g. 'notepad.exe')")),
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List top-level windows with title, class and process ID"),
			mcp.WithNumber("pid", mcp.Description("Filter by process ID")),
			mcp.WithString("app", mcp.Description("Filter by process name")),
			mcp.WithBoolean("all", mcp.Description("Include untitled windows")),
		),
		s.handleListWindows,
	)

	annotateOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Capture a window and draw a numbered, color-coded box over every visible control. Returns the annotated image and a listing of the numbered controls."),
		mcp.WithNumber("depth", mcp.Description("Max depth to traverse (0 = unlimited)")),
		mcp.WithString("output", mcp.Description("Where to save the image (default: timestamped file in the screenshot directory)")),
	}, withTarget()...)
	s.mcp.AddTool(mcp.NewTool("annotate_window", annotateOpts...), s.handleAnnotateWindow)

	treeOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Dump a window's control tree: index, depth, control type, class name and text. Indices match the labels drawn by annotate_window."),
		mcp.WithNumber("depth", mcp.Description("Max depth to traverse (0 = unlimited)")),
		mcp.WithString("type", mcp.Description("Comma-separated control types to keep (e.g. 'Button,Edit')")),
		mcp.WithString("text", mcp.Description("Keep controls whose text contains this substring")),
		mcp.WithString("format", mcp.Description("Output format: text, yaml, json (default: text)")),
	}, withTarget()...)
	s.mcp.AddTool(mcp.NewTool("control_tree", treeOpts...), s.handleControlTree)
}
