package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ashwell/codecards/internal/cards"
	"github.com/ashwell/codecards/internal/pipeline"
	"github.com/ashwell/codecards/internal/scan"
	"github.com/ashwell/codecards/internal/testutil"
)

func testServer(t *testing.T) (*Server, *cards.Store) {
	t.Helper()

	root := testutil.SourceTree(t, map[string]string{
		"a.py":   "print(1)",
		"b/c.js": "console.log(1)",
	})
	store := testutil.CardStore(t, root)

	runner := &pipeline.Runner{
		Root: root,
		Exts: scan.ParseExts("py,js"),
		Client: testutil.StubClient(map[string]string{
			"a.py":   "CARD-A",
			"b/c.js": "CARD-B",
		}, nil),
		Store:  store,
		Logger: testutil.Logger(),
	}

	return New(store, runner), store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so the handler
	// functions are called directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "generate_cards":
		result, err = srv.generateCards(ctx, req)
	case "list_cards":
		result, err = srv.listCards(ctx, req)
	case "read_card":
		result, err = srv.readCard(ctx, req)
	case "get_card_contract":
		result, err = srv.getCardContract(ctx, req)
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

func TestGenerateThenListAndRead(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "generate_cards", map[string]interface{}{})
	text := resultText(r)
	if !strings.HasPrefix(text, "2 cards written") {
		t.Errorf("generate result = %q", text)
	}

	r = callTool(t, srv, "list_cards", map[string]interface{}{})
	text = resultText(r)
	if !strings.Contains(text, "a.py.md") || !strings.Contains(text, "b__c.js.md") {
		t.Errorf("list result = %q", text)
	}

	r = callTool(t, srv, "read_card", map[string]interface{}{"name": "b__c.js.md"})
	if got := resultText(r); got != "CARD-B" {
		t.Errorf("read result = %q", got)
	}
}

func TestListCardsEmpty(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "list_cards", map[string]interface{}{})
	if got := resultText(r); got != "no cards generated yet" {
		t.Errorf("list result = %q", got)
	}
}

func TestReadCardMissing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "read_card", map[string]interface{}{"name": "nope.md"})
	if !r.IsError {
		t.Error("expected error for missing card")
	}
}

func TestGetCardContract(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_card_contract", map[string]interface{}{})
	text := resultText(r)
	for _, want := range []string{"emitsOrListeners", "__", "ALL_CARDS.md"} {
		if !strings.Contains(text, want) {
			t.Errorf("contract missing %q", want)
		}
	}
}
