package mcpserver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/ansuz/internal/content"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/storage"
)

func testServer(t *testing.T, publish PublishFunc) (*Server, storage.Provider) {
	t.Helper()
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if publish == nil {
		publish = func(context.Context) (*models.RunStats, error) {
			return &models.RunStats{}, nil
		}
	}
	return New(store, publish), store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct test entry point, so the handlers are called
	// directly.
	var result *mcp.CallToolResult
	var err error
	switch name {
	case "publish_notes":
		result, err = srv.publishNotes(ctx, req)
	case "list_posts":
		result, err = srv.listPosts(ctx, req)
	case "read_post":
		result, err = srv.readPost(ctx, req)
	case "get_note_format":
		result, err = srv.getNoteFormat(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}
	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func writeBundle(t *testing.T, store storage.Provider, slug, title, noteID string) {
	t.Helper()
	doc := content.Document{Title: title, NoteID: noteID, Body: "Body."}
	if err := store.Write(slug+"/index.md", doc.Encode()); err != nil {
		t.Fatal(err)
	}
}

func TestPublishNotes(t *testing.T) {
	srv, _ := testServer(t, func(context.Context) (*models.RunStats, error) {
		return &models.RunStats{Processed: 2, Changed: 1}, nil
	})

	r := callTool(t, srv, "publish_notes", nil)
	text := resultText(r)
	if !strings.Contains(text, `"Processed": 2`) {
		t.Errorf("publish result = %q", text)
	}
}

func TestPublishNotes_EmptyExport(t *testing.T) {
	srv, _ := testServer(t, func(context.Context) (*models.RunStats, error) {
		return nil, nil
	})
	r := callTool(t, srv, "publish_notes", nil)
	if resultText(r) != "no exported markdown files found" {
		t.Errorf("result = %q", resultText(r))
	}
}

func TestPublishNotes_Failure(t *testing.T) {
	srv, _ := testServer(t, func(context.Context) (*models.RunStats, error) {
		return nil, errors.New("git push failed")
	})
	r := callTool(t, srv, "publish_notes", nil)
	if !r.IsError {
		t.Error("expected tool error")
	}
}

func TestListPosts(t *testing.T) {
	srv, store := testServer(t, nil)
	writeBundle(t, store, "b-post", "Second", "bbb222")
	writeBundle(t, store, "a-post", "First", "aaa111")

	text := resultText(callTool(t, srv, "list_posts", nil))
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("list = %q", text)
	}
	if !strings.HasPrefix(lines[0], "a-post\t") || !strings.Contains(lines[0], "First (aaa111)") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestListPosts_Empty(t *testing.T) {
	srv, _ := testServer(t, nil)
	if got := resultText(callTool(t, srv, "list_posts", nil)); got != "no published posts" {
		t.Errorf("result = %q", got)
	}
}

func TestReadPost(t *testing.T) {
	srv, store := testServer(t, nil)
	writeBundle(t, store, "a-post", "First", "aaa111")

	text := resultText(callTool(t, srv, "read_post", map[string]interface{}{"slug": "a-post"}))
	if !strings.Contains(text, `title: "First"`) {
		t.Errorf("read result = %q", text)
	}
}

func TestReadPost_Missing(t *testing.T) {
	srv, _ := testServer(t, nil)
	r := callTool(t, srv, "read_post", map[string]interface{}{"slug": "nope"})
	if !r.IsError {
		t.Error("expected error for missing post")
	}
}

func TestGetNoteFormat(t *testing.T) {
	srv, _ := testServer(t, nil)
	text := resultText(callTool(t, srv, "get_note_format", nil))
	if !strings.Contains(text, "#publish") {
		t.Errorf("contract missing control tags: %q", text)
	}
}
