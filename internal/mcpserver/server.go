// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the publish pipeline and the published content tree for LLM
// integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/content"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/storage"
)

// PublishFunc runs the full publish pipeline and returns its stats. A nil
// result means the export tree held no markdown files.
type PublishFunc func(ctx context.Context) (*models.RunStats, error)

// Server wraps the MCP server with Ansuz tools.
type Server struct {
	mcp     *server.MCPServer
	tree    storage.Provider
	publish PublishFunc
}

// New creates a new MCP server with all Ansuz tools registered. tree is the
// published content tree.
func New(tree storage.Provider, publish PublishFunc) *Server {
	s := &Server{tree: tree, publish: publish}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("publish_notes",
		mcp.WithDescription("Run the note publish pipeline: export, reconcile, commit, push. "+
			"Returns the run statistics."),
	), s.publishNotes)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List the published posts (slug, title, note identity)."),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Read the canonical document of a published post."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Slug of the published post")),
	), s.readPost)

	s.mcp.AddTool(mcp.NewTool("get_note_format",
		mcp.WithDescription("Returns the source note format contract. Call this before "+
			"drafting notes meant for publication."),
	), s.getNoteFormat)

	s.mcp.AddResource(
		mcp.NewResource("ansuz://note-format", "Note Format Contract",
			mcp.WithResourceDescription("Source note format the publish pipeline expects."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNoteFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) publishNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.publish(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if stats == nil {
		return mcp.NewToolResultText("no exported markdown files found"), nil
	}
	out, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx, err := content.LoadIndex(s.tree)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	records := idx.Records()
	if len(records) == 0 {
		return mcp.NewToolResultText("no published posts"), nil
	}
	var lines []string
	for _, rec := range records {
		lines = append(lines, fmt.Sprintf("%s\t%s (%s)", rec.Slug, rec.Title, rec.Identity))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.tree.Read(path.Join(slug, content.IndexFile))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) getNoteFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(NoteFormatContract), nil
}

func (s *Server) readNoteFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://note-format",
			MIMEType: "text/markdown",
			Text:     NoteFormatContract,
		},
	}, nil
}
