package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Void-n-Null/MiniCouncil/internal/schema"
	"github.com/Void-n-Null/MiniCouncil/internal/workspace"
)

func testGuard(t *testing.T) (*workspace.Guard, string) {
	t.Helper()
	dir := t.TempDir()
	// TempDir may live under a symlink (e.g. /tmp on macOS); resolve so the
	// guard's boundary check and the test's expectations agree.
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return workspace.NewGuard(resolved, resolved), resolved
}

func TestWriteThenReadFile(t *testing.T) {
	guard, _ := testGuard(t)
	ctx := context.Background()

	write := NewWriteFileTool(guard)
	out, err := write.Execute(ctx, map[string]any{
		"path": "notes/jokes.txt", "content": "why did the gopher cross the road", "append": false,
	})
	require.NoError(t, err)
	assert.Contains(t, out.(string), "Successfully wrote")

	read := NewReadFileTool(guard)
	got, err := read.Execute(ctx, map[string]any{"path": "notes/jokes.txt", "offset": 0, "num_bytes": 0})
	require.NoError(t, err)
	assert.Equal(t, "why did the gopher cross the road", got)
}

func TestWriteFile_Append(t *testing.T) {
	guard, _ := testGuard(t)
	ctx := context.Background()
	write := NewWriteFileTool(guard)

	_, err := write.Execute(ctx, map[string]any{"path": "log.txt", "content": "one\n", "append": false})
	require.NoError(t, err)
	_, err = write.Execute(ctx, map[string]any{"path": "log.txt", "content": "two\n", "append": true})
	require.NoError(t, err)

	read := NewReadFileTool(guard)
	got, err := read.Execute(ctx, map[string]any{"path": "log.txt", "offset": 0, "num_bytes": 0})
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", got)
}

func TestReadFile_OffsetWindow(t *testing.T) {
	guard, _ := testGuard(t)
	ctx := context.Background()

	_, err := NewWriteFileTool(guard).Execute(ctx, map[string]any{
		"path": "data.txt", "content": "abcdefgh", "append": false,
	})
	require.NoError(t, err)

	read := NewReadFileTool(guard)
	got, err := read.Execute(ctx, map[string]any{"path": "data.txt", "offset": 2, "num_bytes": 3})
	require.NoError(t, err)
	assert.Equal(t, "cde", got)

	// Offset past EOF yields an empty string, not an error.
	got, err = read.Execute(ctx, map[string]any{"path": "data.txt", "offset": 100, "num_bytes": 0})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestReadFile_NotFoundIsDomainError(t *testing.T) {
	guard, _ := testGuard(t)

	_, err := NewReadFileTool(guard).Execute(context.Background(), map[string]any{
		"path": "missing.txt", "offset": 0, "num_bytes": 0,
	})
	var te schema.ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "file_not_found", te.Code)
}

func TestSandboxEscapeRejected(t *testing.T) {
	guard, _ := testGuard(t)

	_, err := NewReadFileTool(guard).Execute(context.Background(), map[string]any{
		"path": "../../etc/passwd", "offset": 0, "num_bytes": 0,
	})
	var te schema.ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "path_invalid", te.Code)
}

func TestListDir(t *testing.T) {
	guard, root := testGuard(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644))

	out, err := NewListDirTool(guard).Execute(ctx, map[string]any{"path": "."})
	require.NoError(t, err)
	assert.Equal(t, "[F] a.txt\n[D] sub", out)

	_, err = NewListDirTool(guard).Execute(ctx, map[string]any{"path": "a.txt"})
	var te schema.ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "not_a_directory", te.Code)
}

func TestFileSize(t *testing.T) {
	guard, root := testGuard(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "five.txt"), []byte("12345"), 0o644))

	out, err := NewFileSizeTool(guard).Execute(context.Background(), map[string]any{"path": "five.txt"})
	require.NoError(t, err)
	result := out.(map[string]any)
	assert.Equal(t, int64(5), result["bytes"])
	assert.Equal(t, "five.txt", result["path"])
}
