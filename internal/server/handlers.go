package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mj1618/uimap/internal/model"
	"github.com/mj1618/uimap/internal/output"
	"github.com/mj1618/uimap/internal/platform"
	"github.com/mj1618/uimap/internal/session"
)

func (s *Server) handleListWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	opts := platform.ListOptions{
		PID:        intParam(params, "pid", 0),
		App:        stringParam(params, "app", ""),
		TitledOnly: !boolParam(params, "all", false),
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	windows, err := s.provider.Reader.ListWindows(opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if windows == nil {
		windows = []model.Window{}
	}

	var buf bytes.Buffer
	if err := output.PrintYAML(&buf, output.WindowsResult{Windows: windows}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleAnnotateWindow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	target, err := connectParams(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg := *s.cfg
	cfg.Depth = intParam(params, "depth", cfg.Depth)
	savePath := stringParam(params, "output", "")

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	sess := session.New(s.provider, &cfg)
	if _, err := sess.Connect(ctx, target); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := sess.Annotate(ctx, savePath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.InvalidateWindow(res.Window.Handle)

	var text strings.Builder
	fmt.Fprintf(&text, "Window: %s (pid %d)\nFound %d controls, annotated %d\n",
		res.Window.Title, res.Window.PID, len(res.Controls), len(res.Annotations))
	output.WriteAnnotations(&text, res.Annotations)
	fmt.Fprintf(&text, "Screenshot saved to: %s\n", res.Path)

	var img bytes.Buffer
	if err := png.Encode(&img, res.Image); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("png encode: %v", err)), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text.String()},
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(img.Bytes()),
				MIMEType: "image/png",
			},
		},
	}, nil
}

func (s *Server) handleControlTree(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	target, err := connectParams(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	depth := intParam(params, "depth", s.cfg.Depth)
	format, err := output.ParseFormat(stringParam(params, "format", string(output.FormatText)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	win, err := platform.ResolveWindow(s.provider.Reader, target)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	root, err := s.cache.ReadControls(s.provider.Reader, platform.ReadOptions{Window: win, Depth: depth})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	controls := model.FilterControls(model.Flatten(root),
		splitList(stringParam(params, "type", "")), stringParam(params, "text", ""))

	var buf bytes.Buffer
	if format == output.FormatText {
		err = output.WriteTree(&buf, controls)
	} else {
		err = output.Fprint(&buf, format, output.TreeResult{
			App:      win.App,
			PID:      win.PID,
			Window:   win.Title,
			TS:       time.Now().Unix(),
			MaxDepth: model.MaxDepth(controls),
			Controls: controls,
		})
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
