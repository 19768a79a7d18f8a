package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name          string
		setupDir      func(t *testing.T) string
		wantNil       bool
		wantErr       string
		wantFunctions map[string][]string // namespace -> functions
	}{
		{
			name:     "empty path",
			setupDir: func(t *testing.T) string { return "" },
			wantNil:  true,
		},
		{
			name:     "non-existent directory",
			setupDir: func(t *testing.T) string { return "/nonexistent/path/to/scripts" },
			wantNil:  true,
		},
		{
			name: "not a directory",
			setupDir: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "scripts")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
				return path
			},
			wantErr: "not a directory",
		},
		{
			name: "functions exported, private and non-function globals skipped",
			setupDir: func(t *testing.T) string {
				dir := t.TempDir()
				writeScript(t, dir, "songs.star", `
VERSE = "la la"

def sing():
    return VERSE

def hum(tune):
    return "You hum " + tune + "."

def _helper():
    pass
`)
				writeScript(t, dir, "notes.txt", "ignored")
				return dir
			},
			wantFunctions: map[string][]string{"songs": {"hum", "sing"}},
		},
		{
			name: "syntax error",
			setupDir: func(t *testing.T) string {
				dir := t.TempDir()
				writeScript(t, dir, "broken.star", "def oops(:\n")
				return dir
			},
			wantErr: "scripts/broken.star: ",
		},
		{
			name: "every broken file reported",
			setupDir: func(t *testing.T) string {
				dir := t.TempDir()
				writeScript(t, dir, "a.star", "def oops(:\n")
				writeScript(t, dir, "b.star", "x = 1 // 0\n")
				writeScript(t, dir, "ok.star", "def fine():\n    pass\n")
				return dir
			},
			wantErr: "scripts/b.star: ",
		},
		{
			name: "while loops and sets allowed",
			setupDir: func(t *testing.T) string {
				dir := t.TempDir()
				writeScript(t, dir, "loops.star", `
def countdown(n):
    seen = set()
    while n > 0:
        seen = seen.union([n])
        n -= 1
    return len(seen)
`)
				return dir
			},
			wantFunctions: map[string][]string{"loops": {"countdown"}},
		},
		{
			name: "invalid namespace",
			setupDir: func(t *testing.T) string {
				dir := t.TempDir()
				writeScript(t, dir, "9lives.star", "def f():\n    pass\n")
				return dir
			},
			wantErr: "must be an identifier",
		},
		{
			name: "dashed file name",
			setupDir: func(t *testing.T) string {
				dir := t.TempDir()
				writeScript(t, dir, "old-books.star", "def f():\n    pass\n")
				return dir
			},
			wantErr: `file name "old-books" must be an identifier`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modules, err := NewLoader(tt.setupDir(t)).Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, modules)
				return
			}

			got := make(map[string][]string)
			for _, m := range modules {
				got[m.Namespace] = m.FunctionNames()
			}
			assert.Equal(t, tt.wantFunctions, got)
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"books", true},
		{"_private", true},
		{"snake_case2", true},
		{"9lives", false},
		{"two words", false},
		{"a.b", false},
		{"kebab-case", false},
		{"def", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isIdentifier(tt.name))
		})
	}
}
