// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes seoscout tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/seoscout/internal/intent"
	"github.com/starford/seoscout/internal/outline"
	"github.com/starford/seoscout/internal/planfile"
	"github.com/starford/seoscout/internal/render"
	"github.com/starford/seoscout/internal/seo"
	"github.com/starford/seoscout/internal/storage"
)

// PlanFormatURI identifies the plan format contract resource.
const PlanFormatURI = "seoscout://plan-format"

// Server wraps the MCP server with seoscout tools.
type Server struct {
	mcp      *server.MCPServer
	svc      *seo.Service
	plans    storage.Provider
	longtail int
}

// New creates a new MCP server with all seoscout tools registered. plans, if
// non-nil, lets generate_outline read plan files by path.
func New(svc *seo.Service, plans storage.Provider, longtail int) *Server {
	if longtail < 1 {
		longtail = seo.DefaultLongtailCount
	}
	s := &Server{svc: svc, plans: plans, longtail: longtail}

	s.mcp = server.NewMCPServer(
		"seoscout",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("classify_keyword",
		mcp.WithDescription("Classify the search intent of a keyword as informational, transactional or navigational."),
		mcp.WithString("keyword", mcp.Required(), mcp.Description("Keyword to classify")),
	), s.classifyKeyword)

	s.mcp.AddTool(mcp.NewTool("analyze_keyword",
		mcp.WithDescription("Analyse a keyword: intent, longtail queries and a site plan. "+
			"The result is stored and returned as JSON."),
		mcp.WithString("keyword", mcp.Required(), mcp.Description("Keyword to analyse")),
		mcp.WithNumber("longtail", mcp.Description("Number of longtail queries (default 20)")),
		mcp.WithBoolean("save", mcp.Description("Also write the report and plan files to the output directory")),
	), s.analyzeKeyword)

	s.mcp.AddTool(mcp.NewTool("generate_outline",
		mcp.WithDescription("Generate a content outline from a site plan. Pass either the plan "+
			"content (JSON, YAML or Markdown with frontmatter) or the path of a plan file. "+
			"Read the contract first via get_plan_contract or the "+PlanFormatURI+" resource."),
		mcp.WithString("plan", mcp.Description("Plan content")),
		mcp.WithString("path", mcp.Description("Plan file path relative to the plans directory")),
	), s.generateOutline)

	s.mcp.AddTool(mcp.NewTool("list_keywords",
		mcp.WithDescription("List stored keywords, most recently analysed first."),
		mcp.WithNumber("limit", mcp.Description("Max results (default 100)")),
	), s.listKeywords)

	s.mcp.AddTool(mcp.NewTool("get_plan_contract",
		mcp.WithDescription("Returns the site plan format accepted by generate_outline."),
	), s.getPlanContract)

	s.mcp.AddResource(
		mcp.NewResource(PlanFormatURI, "Plan Format Contract",
			mcp.WithResourceDescription("Site plan format accepted by the outline generator."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPlanFormatResource,
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

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := render.JSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) classifyKeyword(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kw, err := req.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kw = intent.Normalize(kw)
	if kw == "" {
		return mcp.NewToolResultError("keyword is empty"), nil
	}
	return mcp.NewToolResultText(intent.Classify(kw).String()), nil
}

func (s *Server) analyzeKeyword(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kw, err := req.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	count := req.GetInt("longtail", s.longtail)
	if count < 0 {
		return mcp.NewToolResultError("longtail must not be negative"), nil
	}

	report, err := s.svc.Analyze(ctx, kw, count)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if req.GetBool("save", false) {
		files, err := s.svc.SaveReport(report)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(struct {
			*seo.Report
			Files []string `json:"files"`
		}{report, files})
	}
	return jsonResult(report)
}

func (s *Server) generateOutline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content := req.GetString("plan", "")
	path := req.GetString("path", "")

	var (
		src outline.Source
		err error
	)
	switch {
	case strings.TrimSpace(content) != "":
		src, err = planfile.Parse("plan.yaml", []byte(content))
	case path != "":
		src, err = s.readPlan(path)
	default:
		return mcp.NewToolResultError("either plan or path is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.svc.Outline(ctx, src)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (s *Server) readPlan(path string) (outline.Source, error) {
	if s.plans == nil {
		return outline.Source{}, fmt.Errorf("plans directory is not configured")
	}
	data, err := s.plans.Read(path)
	if err != nil {
		return outline.Source{}, fmt.Errorf("not found: %s", path)
	}
	return planfile.Parse(path, data)
}

func (s *Server) listKeywords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kws, err := s.svc.Keywords(ctx, req.GetInt("limit", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(kws)
}

func (s *Server) getPlanContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PlanFormatContract), nil
}

func (s *Server) readPlanFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      PlanFormatURI,
			MIMEType: "text/markdown",
			Text:     PlanFormatContract,
		},
	}, nil
}
