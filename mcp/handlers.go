package mcp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lvillar/galaxypdf/pageops"
)

// handleMergePDFs merges the input files in order into outputPath.
func (s *Server) handleMergePDFs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inputs := request.GetStringSlice("inputPaths", nil)
	if len(inputs) < 2 {
		return mcp.NewToolResultError("Please select at least two PDF files to merge."), nil
	}
	output, err := request.RequireString("outputPath")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: outputPath"), nil
	}

	if err := pageops.MergeFiles(output, inputs...); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("merge failed: %v", err)), nil
	}

	doc, err := pageops.Open(output)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading merged file: %v", err)), nil
	}
	pages, err := pageops.PageCount(doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading merged file: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Merged %d files into %s (%d pages, %d bytes)", len(inputs), output, pages, len(doc.Data),
	)), nil
}

// handleSplitPDF splits inputPath into a zip archive at outputPath.
func (s *Server) handleSplitPDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("inputPath")
	if err != nil {
		return mcp.NewToolResultError("Please select a PDF file to split."), nil
	}
	output, err := request.RequireString("outputPath")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: outputPath"), nil
	}
	expr := strings.TrimSpace(request.GetString("range", ""))
	perPage := request.GetBool("perPage", false)
	if expr == "" && !perPage {
		return mcp.NewToolResultError(`Please provide a page range or select the "split per page" option.`), nil
	}

	n, err := pageops.SplitToArchive(output, input, expr, perPage)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("split failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Wrote %d PDF files to %s", n, output)), nil
}

// handlePageCount reports the number of pages of a PDF file.
func (s *Server) handlePageCount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	doc, err := pageops.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return mcp.NewToolResultError(fmt.Sprintf("file not found: %s", path)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := pageops.PageCount(doc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %d pages", path, n)), nil
}

// handleSitePage returns the markdown source of an informational page.
func (s *Server) handleSitePage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	p, ok := s.catalog.Page(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no page %q", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("# %s\n\n%s", p.Title, strings.TrimSpace(p.Source))), nil
}
