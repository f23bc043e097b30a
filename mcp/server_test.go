package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/phpdave11/gofpdf"

	"github.com/lvillar/galaxypdf/content"
	"github.com/lvillar/galaxypdf/pageops"
)

// writeTestPDF writes a PDF with the given number of pages.
func writeTestPDF(t *testing.T, path string, pages int) {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 14)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.Cell(40, 10, fmt.Sprintf("Page %d", i))
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("writing test PDF: %v", err)
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func countPages(t *testing.T, path string) int {
	t.Helper()
	doc, err := pageops.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	n, err := pageops.PageCount(doc)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestHandleMergePDFs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	b := filepath.Join(dir, "b.pdf")
	out := filepath.Join(dir, "merged.pdf")
	writeTestPDF(t, a, 2)
	writeTestPDF(t, b, 3)

	srv := NewServer(content.MustLoad())
	ctx := context.Background()

	t.Run("merge", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"inputPaths": []any{a, b},
			"outputPath": out,
		}
		result, err := srv.handleMergePDFs(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if got := countPages(t, out); got != 5 {
			t.Errorf("expected 5 pages, got %d", got)
		}
		if text := resultText(t, result); !strings.Contains(text, "5 pages") {
			t.Errorf("unexpected result text %q", text)
		}
	})

	t.Run("single input", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"inputPaths": []any{a},
			"outputPath": out,
		}
		result, _ := srv.handleMergePDFs(ctx, req)
		if !result.IsError {
			t.Error("expected error for a single input")
		}
	})

	t.Run("missing input file", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"inputPaths": []any{a, filepath.Join(dir, "missing.pdf")},
			"outputPath": filepath.Join(dir, "other.pdf"),
		}
		result, _ := srv.handleMergePDFs(ctx, req)
		if !result.IsError {
			t.Error("expected error for a missing input")
		}
	})
}

func TestHandleSplitPDF(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	writeTestPDF(t, in, 4)

	srv := NewServer(content.MustLoad())
	ctx := context.Background()

	t.Run("per page", func(t *testing.T) {
		out := filepath.Join(dir, "pages.zip")
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"inputPath":  in,
			"outputPath": out,
			"perPage":    true,
		}
		result, err := srv.handleSplitPDF(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if text := resultText(t, result); !strings.HasPrefix(text, "Wrote 4 PDF files") {
			t.Errorf("unexpected result text %q", text)
		}
		if _, err := os.Stat(out); err != nil {
			t.Errorf("archive not written: %v", err)
		}
	})

	t.Run("range", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"inputPath":  in,
			"outputPath": filepath.Join(dir, "ranges.zip"),
			"range":      "1-2, 4",
		}
		result, _ := srv.handleSplitPDF(ctx, req)
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if text := resultText(t, result); !strings.HasPrefix(text, "Wrote 2 PDF files") {
			t.Errorf("unexpected result text %q", text)
		}
	})

	t.Run("no directive", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"inputPath":  in,
			"outputPath": filepath.Join(dir, "none.zip"),
			"range":      "   ",
		}
		result, _ := srv.handleSplitPDF(ctx, req)
		if !result.IsError {
			t.Fatal("expected error without range or perPage")
		}
		if text := resultText(t, result); !strings.Contains(text, "split per page") {
			t.Errorf("unexpected error text %q", text)
		}
	})

	t.Run("range outside document", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"inputPath":  in,
			"outputPath": filepath.Join(dir, "bad.zip"),
			"range":      "3-7",
		}
		result, _ := srv.handleSplitPDF(ctx, req)
		if !result.IsError {
			t.Error("expected error for a range beyond the last page")
		}
	})
}

func TestHandlePageCount(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	writeTestPDF(t, in, 3)

	srv := NewServer(content.MustLoad())
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"path": in}
	result, err := srv.handlePageCount(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := resultText(t, result); text != in+": 3 pages" {
		t.Errorf("unexpected result text %q", text)
	}

	req.Params.Arguments = map[string]any{"path": filepath.Join(dir, "missing.pdf")}
	result, _ = srv.handlePageCount(ctx, req)
	if !result.IsError {
		t.Error("expected error for a missing file")
	}
	if text := resultText(t, result); !strings.HasPrefix(text, "file not found") {
		t.Errorf("unexpected error text %q", text)
	}
}

func TestHandleSitePage(t *testing.T) {
	srv := NewServer(content.MustLoad())
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"id": "guide"}
	result, err := srv.handleSitePage(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := resultText(t, result); !strings.HasPrefix(text, "# How to Use") {
		t.Errorf("unexpected result text %q", text)
	}

	req.Params.Arguments = map[string]any{"id": "about,contact"}
	result, _ = srv.handleSitePage(ctx, req)
	if !result.IsError {
		t.Error("expected error for an unknown page")
	}
}

func TestResources(t *testing.T) {
	srv := NewServer(content.MustLoad())
	ctx := context.Background()

	contents, err := srv.handleArticleResource(ctx, mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	article := contents[0].(mcp.TextResourceContents)
	if !strings.Contains(article.Text, "Frequently Asked Questions") {
		t.Error("article resource is missing the FAQ")
	}

	contents, err = srv.handleSchemaResource(ctx, mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	schema := contents[0].(mcp.TextResourceContents)
	if !strings.Contains(schema.Text, `"FAQPage"`) {
		t.Error("schema resource is missing the FAQPage node")
	}
}
