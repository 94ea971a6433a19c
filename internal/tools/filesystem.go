package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Void-n-Null/MiniCouncil/internal/schema"
	"github.com/Void-n-Null/MiniCouncil/internal/workspace"
)

// pathDomainError converts a guard or OS failure into a ToolError the model
// can read and recover from.
func pathDomainError(path string, err error) error {
	var pe *workspace.PathError
	if errors.As(err, &pe) {
		return schema.NewToolError("path_invalid", "%s", pe.Error())
	}
	if errors.Is(err, os.ErrNotExist) {
		return schema.NewToolError("file_not_found", "file not found: %s", path)
	}
	if errors.Is(err, os.ErrPermission) {
		return schema.NewToolError("permission_denied", "permission denied: %s", path)
	}
	return err
}

// ---------------------------------------------------------------------------
// read_file
// ---------------------------------------------------------------------------

// ReadFileTool reads a file and returns its contents, optionally windowed by
// a byte offset and length.
type ReadFileTool struct {
	guard *workspace.Guard
}

func NewReadFileTool(guard *workspace.Guard) *ReadFileTool {
	return &ReadFileTool{guard: guard}
}

func (t *ReadFileTool) Name() string { return "read_file" }
func (t *ReadFileTool) Description() string {
	return "Read the contents of a file at the given path. Optionally start at a byte offset and limit the number of bytes returned."
}

func (t *ReadFileTool) Parameters() []schema.Parameter {
	return []schema.Parameter{
		{Name: "path", Type: schema.ParamString, Description: "The file path to read"},
		{Name: "offset", Type: schema.ParamInteger, Description: "Byte offset to start reading from", Default: 0},
		{Name: "num_bytes", Type: schema.ParamInteger, Description: "Maximum bytes to return (0 = all)", Default: 0},
	}
}

func (t *ReadFileTool) Execute(_ context.Context, args map[string]any) (any, error) {
	path := args["path"].(string)
	offset := args["offset"].(int)
	numBytes := args["num_bytes"].(int)

	fp, err := t.guard.ValidatePath(path)
	if err != nil {
		return nil, pathDomainError(path, err)
	}
	info, err := os.Stat(fp)
	if err != nil {
		return nil, pathDomainError(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, schema.NewToolError("not_a_file", "not a file: %s", path)
	}
	data, err := os.ReadFile(fp)
	if err != nil {
		return nil, pathDomainError(path, err)
	}

	if offset < 0 {
		offset = 0
	}
	if offset > len(data) {
		offset = len(data)
	}
	end := len(data)
	if numBytes > 0 && offset+numBytes < end {
		end = offset + numBytes
	}
	return string(data[offset:end]), nil
}

// ---------------------------------------------------------------------------
// write_file
// ---------------------------------------------------------------------------

// WriteFileTool writes or appends content to a file, creating parent
// directories as needed.
type WriteFileTool struct {
	guard *workspace.Guard
}

func NewWriteFileTool(guard *workspace.Guard) *WriteFileTool {
	return &WriteFileTool{guard: guard}
}

func (t *WriteFileTool) Name() string { return "write_file" }
func (t *WriteFileTool) Description() string {
	return "Write content to a file at the given path, creating parent directories if needed. Set append to add to the end instead of overwriting."
}

func (t *WriteFileTool) Parameters() []schema.Parameter {
	return []schema.Parameter{
		{Name: "path", Type: schema.ParamString, Description: "The file path to write to"},
		{Name: "content", Type: schema.ParamString, Description: "The content to write"},
		{Name: "append", Type: schema.ParamBoolean, Description: "Append instead of overwrite", Default: false},
	}
}

func (t *WriteFileTool) Execute(_ context.Context, args map[string]any) (any, error) {
	path := args["path"].(string)
	content := args["content"].(string)
	appendMode := args["append"].(bool)

	fp, err := t.guard.ValidatePath(path)
	if err != nil {
		return nil, pathDomainError(path, err)
	}
	if err := t.guard.EnsureParentExists(fp); err != nil {
		return nil, pathDomainError(path, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendMode {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(fp, flags, 0o644)
	if err != nil {
		return nil, pathDomainError(path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return nil, pathDomainError(path, err)
	}
	verb := "wrote"
	if appendMode {
		verb = "appended"
	}
	return fmt.Sprintf("Successfully %s %d bytes to %s", verb, len(content), path), nil
}

// ---------------------------------------------------------------------------
// list_dir
// ---------------------------------------------------------------------------

// ListDirTool lists directory contents, directories first marked [D].
type ListDirTool struct {
	guard *workspace.Guard
}

func NewListDirTool(guard *workspace.Guard) *ListDirTool {
	return &ListDirTool{guard: guard}
}

func (t *ListDirTool) Name() string        { return "list_dir" }
func (t *ListDirTool) Description() string { return "List the contents of a directory." }

func (t *ListDirTool) Parameters() []schema.Parameter {
	return []schema.Parameter{
		{Name: "path", Type: schema.ParamString, Description: "The directory path to list"},
	}
}

func (t *ListDirTool) Execute(_ context.Context, args map[string]any) (any, error) {
	path := args["path"].(string)

	dp, err := t.guard.ValidatePath(path)
	if err != nil {
		return nil, pathDomainError(path, err)
	}
	info, err := os.Stat(dp)
	if err != nil {
		return nil, schema.NewToolError("dir_not_found", "directory not found: %s", path)
	}
	if !info.IsDir() {
		return nil, schema.NewToolError("not_a_directory", "not a directory: %s", path)
	}
	entries, err := os.ReadDir(dp)
	if err != nil {
		return nil, pathDomainError(path, err)
	}
	if len(entries) == 0 {
		return fmt.Sprintf("Directory %s is empty", path), nil
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var lines []string
	for _, e := range entries {
		prefix := "[F] "
		if e.IsDir() {
			prefix = "[D] "
		}
		lines = append(lines, prefix+e.Name())
	}
	return strings.Join(lines, "\n"), nil
}

// ---------------------------------------------------------------------------
// file_size
// ---------------------------------------------------------------------------

// FileSizeTool reports the size of a file in bytes, returned as a structured
// result so the model gets machine-readable JSON.
type FileSizeTool struct {
	guard *workspace.Guard
}

func NewFileSizeTool(guard *workspace.Guard) *FileSizeTool {
	return &FileSizeTool{guard: guard}
}

func (t *FileSizeTool) Name() string        { return "file_size" }
func (t *FileSizeTool) Description() string { return "Get the size of a file in bytes." }

func (t *FileSizeTool) Parameters() []schema.Parameter {
	return []schema.Parameter{
		{Name: "path", Type: schema.ParamString, Description: "The file path to inspect"},
	}
}

func (t *FileSizeTool) Execute(_ context.Context, args map[string]any) (any, error) {
	path := args["path"].(string)

	size, err := t.guard.GetSize(path)
	if err != nil {
		return nil, pathDomainError(path, err)
	}
	return map[string]any{"path": path, "bytes": size}, nil
}
