// Package mcp exposes the merge and split operations, and the site content,
// as Model Context Protocol tools for AI assistants.
//
// # Usage with Claude Desktop
//
// Add to your claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "galaxypdf": {
//	      "command": "galaxypdf",
//	      "args": ["mcp"]
//	    }
//	  }
//	}
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/lvillar/galaxypdf/content"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the PDF tools.
type Server struct {
	catalog *content.Catalog
	mcp     *server.MCPServer
}

// NewServer creates an MCP server answering site questions from cat.
func NewServer(cat *content.Catalog) *Server {
	s := &Server{catalog: cat}

	s.mcp = server.NewMCPServer(
		"galaxypdf",
		Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(mergePDFsTool, s.handleMergePDFs)
	s.mcp.AddTool(splitPDFTool, s.handleSplitPDF)
	s.mcp.AddTool(pageCountTool, s.handlePageCount)
	s.mcp.AddTool(sitePageTool, s.handleSitePage)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
