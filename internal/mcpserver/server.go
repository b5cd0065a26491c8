// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes generated code cards to LLM consumers via stdio transport.
package mcpserver

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ashwell/codecards/internal/cards"
	"github.com/ashwell/codecards/internal/pipeline"
)

// Server wraps the MCP server with codecards tools.
type Server struct {
	mcp    *server.MCPServer
	store  *cards.Store
	runner *pipeline.Runner
}

// New creates a new MCP server with all codecards tools registered.
func New(store *cards.Store, runner *pipeline.Runner) *Server {
	s := &Server{store: store, runner: runner}

	s.mcp = server.NewMCPServer(
		"codecards",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("generate_cards",
		mcp.WithDescription("Run card generation once over the configured source tree. "+
			"Writes one Markdown card per matching file plus the ALL_CARDS.md aggregate, "+
			"then returns a summary of cards written and per-file failures."),
	), s.generateCards)

	s.mcp.AddTool(mcp.NewTool("list_cards",
		mcp.WithDescription("List the derived filenames of all generated cards."),
	), s.listCards)

	s.mcp.AddTool(mcp.NewTool("read_card",
		mcp.WithDescription("Read the full text of one generated card."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Derived card filename (e.g. src__util.py.md)")),
	), s.readCard)

	s.mcp.AddTool(mcp.NewTool("get_card_contract",
		mcp.WithDescription("Returns the card format contract: the fields every card carries "+
			"and how card filenames are derived from source paths."),
	), s.getCardContract)

	// Resource: card format contract.
	s.mcp.AddResource(
		mcp.NewResource("codecards://card-format", "Card Format Contract",
			mcp.WithResourceDescription("Canonical card format produced by the generator."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCardFormatResource,
	)

	return s
}

// Listen serves MCP over the given streams until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) generateCards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.runner.Run(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d cards written to %s (aggregate: %s)\n",
		report.CardsWritten(), s.store.Root(), report.AggregatePath)
	for _, f := range report.Failures() {
		fmt.Fprintf(&b, "failed: %s: %v\n", f.RelPath, f.Err)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) listCards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.store.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(names) == 0 {
		return mcp.NewToolResultText("no cards generated yet"), nil
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) readCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", name)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) getCardContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(CardFormatContract), nil
}

func (s *Server) readCardFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "codecards://card-format",
			MIMEType: "text/markdown",
			Text:     CardFormatContract,
		},
	}, nil
}
