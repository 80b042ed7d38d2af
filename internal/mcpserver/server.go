// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes workspace tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/komumoyu/Motion/internal/identity"
	"github.com/komumoyu/Motion/internal/models"
	"github.com/komumoyu/Motion/internal/workspace"
)

// Server wraps the MCP server with workspace tools. All tools run under a
// fixed principal configured at startup, since stdio has no per-request
// authentication.
type Server struct {
	mcp       *server.MCPServer
	svc       *workspace.Service
	principal identity.Principal
}

// New creates a new MCP server with all workspace tools registered.
func New(svc *workspace.Service, subject string) *Server {
	s := &Server{svc: svc, principal: identity.Principal{Subject: subject}}

	s.mcp = server.NewMCPServer(
		"Motion",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_documents",
		mcp.WithDescription("Full-text search through document titles and content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchDocuments)

	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read a document: title, content and metadata."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
	), s.readDocument)

	s.mcp.AddTool(mcp.NewTool("create_page",
		mcp.WithDescription("Create a new page document, optionally nested under a parent."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Page title")),
		mcp.WithString("parent", mcp.Description("Optional parent document id")),
	), s.createPage)

	s.mcp.AddTool(mcp.NewTool("list_databases",
		mcp.WithDescription("List the caller's databases with ids and titles."),
	), s.listDatabases)

	s.mcp.AddTool(mcp.NewTool("database_table",
		mcp.WithDescription("Render a database as a markdown table: columns, rows and cell values."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Database document id")),
	), s.databaseTable)

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

func (s *Server) ctx(ctx context.Context) context.Context {
	return identity.WithPrincipal(ctx, s.principal)
}

func (s *Server) searchDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(s.ctx(ctx), query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.svc.GetByID(s.ctx(ctx), id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(doc, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	parent := ""
	if p, perr := req.RequireString("parent"); perr == nil {
		parent = p
	}
	doc, err := s.svc.Create(s.ctx(ctx), workspace.CreateInput{
		Title:          title,
		ParentDocument: parent,
		Kind:           models.KindPage,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", doc.ID)), nil
}

func (s *Server) listDatabases(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dbs, err := s.svc.UserDatabases(s.ctx(ctx))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(dbs) == 0 {
		return mcp.NewToolResultText("no databases"), nil
	}
	var lines []string
	for _, db := range dbs {
		lines = append(lines, fmt.Sprintf("%s\t%s", db.ID, db.Title))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) databaseTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c := s.ctx(ctx)

	props, err := s.svc.DatabaseProperties(c, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rows, err := s.svc.DatabaseRows(c, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("|")
	for _, p := range props {
		b.WriteString(" " + p.Name + " |")
	}
	b.WriteString("\n|")
	for range props {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, row := range rows {
		values, err := s.svc.DocumentProperties(c, row.ID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		byProp := make(map[string]models.Value, len(values))
		for _, v := range values {
			byProp[v.PropertyID] = v.Value
		}
		b.WriteString("|")
		for i, p := range props {
			cell := displayValue(byProp[p.ID])
			// The first column falls back to the row title.
			if i == 0 && cell == "" {
				cell = row.Title
			}
			b.WriteString(" " + cell + " |")
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

func displayValue(v models.Value) string {
	switch v.Kind() {
	case models.ValueString:
		s, _ := v.AsString()
		return s
	case models.ValueNumber:
		n, _ := v.AsNumber()
		return strconv.FormatFloat(n, 'f', -1, 64)
	case models.ValueBool:
		b, _ := v.AsBool()
		if b {
			return "true"
		}
		return "false"
	case models.ValueList:
		items, _ := v.AsList()
		return strings.Join(items, ", ")
	default:
		return ""
	}
}
