package agent

import "github.com/okheath/crew/internal/tool"

// Canonical tool names understood by the dispatch backend.
const (
	ToolReadFile   = "read_file"
	ToolWriteFile  = "write_file"
	ToolEditFile   = "edit_file"
	ToolRunCommand = "run_command"
	ToolSearchCode = "search_code"
	ToolGitDiff    = "git_diff"
	ToolGitMerge   = "git_merge"
	ToolGitStatus  = "git_status"
)

// writeTools are the tools whose target path lands in the result's
// files-changed set.
var writeTools = map[string]bool{
	ToolWriteFile: true,
	ToolEditFile:  true,
}

// toolCatalog holds the definitions roles assemble their allow-lists from.
// The schemas mirror what the dispatch backend advertises; the loop itself
// never interprets them beyond forwarding to the model.
var toolCatalog = map[string]tool.Definition{
	ToolReadFile: {
		Name:        ToolReadFile,
		Description: "Read the contents of a file at the given path.",
		Properties: map[string]any{
			"path": map[string]any{"type": "string", "description": "File path to read"},
		},
		Required: []string{"path"},
	},
	ToolWriteFile: {
		Name:        ToolWriteFile,
		Description: "Create or overwrite a file with the given content.",
		Properties: map[string]any{
			"path":    map[string]any{"type": "string", "description": "File path to write"},
			"content": map[string]any{"type": "string", "description": "Full file content"},
		},
		Required: []string{"path", "content"},
	},
	ToolEditFile: {
		Name:        ToolEditFile,
		Description: "Replace an exact text span within an existing file.",
		Properties: map[string]any{
			"path":     map[string]any{"type": "string", "description": "File path to edit"},
			"old_text": map[string]any{"type": "string", "description": "Exact text to replace"},
			"new_text": map[string]any{"type": "string", "description": "Replacement text"},
		},
		Required: []string{"path", "old_text", "new_text"},
	},
	ToolRunCommand: {
		Name:        ToolRunCommand,
		Description: "Run a shell command in the task workspace and return its output.",
		Properties: map[string]any{
			"command": map[string]any{"type": "string", "description": "Command to execute"},
		},
		Required: []string{"command"},
	},
	ToolSearchCode: {
		Name:        ToolSearchCode,
		Description: "Search the codebase for a pattern and return matching locations.",
		Properties: map[string]any{
			"pattern": map[string]any{"type": "string", "description": "Regex or literal to search for"},
			"glob":    map[string]any{"type": "string", "description": "Optional file glob filter"},
		},
		Required: []string{"pattern"},
	},
	ToolGitDiff: {
		Name:        ToolGitDiff,
		Description: "Show the diff between two refs or the working tree.",
		Properties: map[string]any{
			"base": map[string]any{"type": "string", "description": "Base ref"},
			"head": map[string]any{"type": "string", "description": "Head ref (default: working tree)"},
		},
		Required: []string{"base"},
	},
	ToolGitMerge: {
		Name:        ToolGitMerge,
		Description: "Attempt to merge a branch and report conflicting files.",
		Properties: map[string]any{
			"branch": map[string]any{"type": "string", "description": "Branch to merge"},
		},
		Required: []string{"branch"},
	},
	ToolGitStatus: {
		Name:        ToolGitStatus,
		Description: "Report the current branch, staged and unstaged changes.",
		Properties:  map[string]any{},
	},
}

// toolSet resolves catalog definitions for the given names.
func toolSet(names ...string) []tool.Definition {
	defs := make([]tool.Definition, 0, len(names))
	for _, name := range names {
		if d, ok := toolCatalog[name]; ok {
			defs = append(defs, d)
		}
	}
	return defs
}
