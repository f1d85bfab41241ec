package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func RegisterExplorePrompts(s *server.MCPServer) {
	prompt := mcp.NewPrompt("explore_keyword",
		mcp.WithPromptDescription("Walk through the dashboard widgets for a research keyword"),
		mcp.WithArgument("keyword", mcp.ArgumentDescription("Research keyword to explore"), mcp.RequiredArgument()),
		mcp.WithArgument("years", mcp.ArgumentDescription("Optional year range, e.g. 2010-2020")),
	)
	s.AddPrompt(prompt, exploreKeywordHandler)

	reviewPrompt := mcp.NewPrompt("review_faculty",
		mcp.WithPromptDescription("Look up a faculty member and leave a review"),
		mcp.WithArgument("faculty", mcp.ArgumentDescription("Faculty member name"), mcp.RequiredArgument()),
	)
	s.AddPrompt(reviewPrompt, reviewFacultyHandler)
}

func exploreKeywordHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	keyword := request.Params.Arguments["keyword"]
	years := strings.TrimSpace(request.Params.Arguments["years"])

	yearHint := "use the default year bounds from dashboard_options"
	if years != "" {
		yearHint = fmt.Sprintf("restrict publications to %s via min_year and max_year", years)
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Exploring %s", keyword),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Use keyword_ranking for %q and %s. Then call keyword_impact with the same selection, "+
						"and university_detail for the top ranked university. Summarise which institutions and faculty lead the topic.",
						keyword, yearHint),
				},
			},
		},
	}, nil
}

func reviewFacultyHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	faculty := request.Params.Arguments["faculty"]

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Reviewing %s", faculty),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Call faculty_detail with value %q, show most_cited_publications for them, then open_reviews. "+
						"Ask me for a rating from 1 to 5 and review text before calling submit_review.", faculty),
				},
			},
		},
	}, nil
}
