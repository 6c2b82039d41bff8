package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/code-skeleton/internal/grammar"
	"github.com/mvp-joe/code-skeleton/internal/skeleton"
)

// ErrOutsideRoot indicates a requested path that escapes the project root.
var ErrOutsideRoot = errors.New("path outside project root")

// ToolHandler is the mcp-go handler signature.
type ToolHandler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// AddCodeSkeletonTool registers the code_skeleton tool with an MCP server.
func AddCodeSkeletonTool(s *server.MCPServer, service *skeleton.Service, projectRoot string) {
	tool := mcp.NewTool(
		"code_skeleton",
		mcp.WithDescription("Return the skeleton of a Java or Python source file: the signature of every class, method and function nested by containment, with line spans, plus any syntax errors with surrounding lines. Pass start_line and end_line to keep only the entities and errors touching that range."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Source file path, relative to the project root")),
		mcp.WithString("language",
			mcp.Description("Source language: java or python. Detected from the file extension when omitted.")),
		mcp.WithNumber("start_line",
			mcp.Description("First line of the range (1-indexed, inclusive). Requires end_line.")),
		mcp.WithNumber("end_line",
			mcp.Description("Last line of the range (inclusive). Requires start_line.")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createCodeSkeletonHandler(service, projectRoot))
}

// AddCodeSignaturesTool registers the code_signatures tool with an MCP server.
func AddCodeSignaturesTool(s *server.MCPServer, service *skeleton.Service, projectRoot string) {
	tool := mcp.NewTool(
		"code_signatures",
		mcp.WithDescription("Return the signature tree of a Java or Python source file as JSON, one entry per declared entity with its kind, name, signature text and location."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Source file path, relative to the project root")),
		mcp.WithString("language",
			mcp.Description("Source language: java or python. Detected from the file extension when omitted.")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createCodeSignaturesHandler(service, projectRoot))
}

func createCodeSkeletonHandler(service *skeleton.Service, projectRoot string) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, ok := request.GetRawArguments().(map[string]any); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req SkeletonRequest
		if err := bindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if req.Path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}
		if (req.StartLine == nil) != (req.EndLine == nil) {
			return mcp.NewToolResultError("start_line and end_line must be given together"), nil
		}

		path, err := resolvePath(projectRoot, req.Path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var rng *skeleton.LineRange
		if req.StartLine != nil {
			rng = &skeleton.LineRange{Start: *req.StartLine, End: *req.EndLine}
		}

		doc, err := service.Skeleton(ctx, path, req.Language, rng)
		if err != nil {
			if isUserError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, err
		}
		return mcp.NewToolResultText(doc.Text), nil
	}
}

func createCodeSignaturesHandler(service *skeleton.Service, projectRoot string) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, ok := request.GetRawArguments().(map[string]any); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req SignaturesRequest
		if err := bindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if req.Path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}

		path, err := resolvePath(projectRoot, req.Path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		forest, err := service.Signatures(ctx, path, req.Language)
		if err != nil {
			if isUserError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, err
		}

		return marshalToolResponse(&SignaturesResponse{
			Path:     req.Path,
			Entities: forest,
			Total:    forest.Len(),
		})
	}
}

// resolvePath joins a relative path to projectRoot and rejects anything that
// resolves outside it, lexically or through a symlink. Absolute paths inside
// the root are accepted.
func resolvePath(projectRoot, path string) (string, error) {
	root := filepath.Clean(projectRoot)
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, path)
	}
	abs = filepath.Clean(abs)

	if !within(root, abs) || !within(realPath(root), realPath(abs)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return abs, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// realPath resolves symlinks in the longest existing prefix of path and
// appends the rest unchanged, so a missing file under a linked directory
// still resolves to where it would be created.
func realPath(path string) string {
	rest := ""
	for dir := path; ; {
		if real, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(real, rest)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return path
		}
		rest = filepath.Join(filepath.Base(dir), rest)
		dir = parent
	}
}

// isUserError reports whether err describes a bad request that should be
// shown to the client rather than treated as a server failure.
func isUserError(err error) bool {
	return errors.Is(err, grammar.ErrUnsupportedLanguage) ||
		errors.Is(err, grammar.ErrReadSource) ||
		errors.Is(err, skeleton.ErrInvalidRange) ||
		errors.Is(err, ErrOutsideRoot)
}

// marshalToolResponse marshals a response object to JSON and returns it as an MCP tool result.
func marshalToolResponse(response any) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
