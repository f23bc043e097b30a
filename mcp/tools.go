package mcp

import "github.com/mark3labs/mcp-go/mcp"

var mergePDFsTool = mcp.NewTool("merge_pdfs",
	mcp.WithDescription("Merge two or more PDF files into one, in the order given. Each page keeps its original size."),
	mcp.WithArray("inputPaths",
		mcp.Required(),
		mcp.Description("Paths of the PDF files to merge, in merge order"),
		mcp.WithStringItems(),
	),
	mcp.WithString("outputPath",
		mcp.Required(),
		mcp.Description("Path of the merged PDF to write"),
	),
)

var splitPDFTool = mcp.NewTool("split_pdf",
	mcp.WithDescription("Split a PDF into a zip archive of smaller PDFs, either one per page or one per item of a page range expression such as \"1-5, 8, 11-13\"."),
	mcp.WithString("inputPath",
		mcp.Required(),
		mcp.Description("Path of the PDF to split"),
	),
	mcp.WithString("outputPath",
		mcp.Required(),
		mcp.Description("Path of the zip archive to write"),
	),
	mcp.WithString("range",
		mcp.Description("Comma-separated pages and spans, e.g. \"1-5, 8, 11-13\""),
	),
	mcp.WithBoolean("perPage",
		mcp.Description("Write every page to its own PDF; the range is ignored"),
	),
)

var pageCountTool = mcp.NewTool("page_count",
	mcp.WithDescription("Count the pages of a PDF file."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path of the PDF file"),
	),
)

var sitePageTool = mcp.NewTool("site_page",
	mcp.WithDescription("Get an informational page of the Galaxy PDF site (about, contact, guide, privacy, terms, dmca) as markdown."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Page id"),
		mcp.Enum("about", "contact", "guide", "privacy", "terms", "dmca"),
	),
)
