package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// writeTree creates files under root. Keys are slash-separated relative paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// rels converts absolute paths under root to slash-separated relative paths.
func rels(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

var sampleTree = map[string]string{
	"a.py":                  "print(1)\n",
	"b.cs":                  "class B {}\n",
	"notes.txt":             "not code\n",
	"Makefile":              "all:\n",
	"src/c.js":              "let c;\n",
	"src/d.java":            "class D {}\n",
	"bin/x.cs":              "compiled\n",
	"obj/Debug/y.cs":        "compiled\n",
	"binder/z.py":           "z = 1\n",
	"tools/Bin/Release/w.c": "int w;\n",
}

func TestSelect_AllLanguagesSegmentExclusion(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, sampleTree)

	files, err := Select(root, Options{Languages: "all"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"a.py", "b.cs", "binder/z.py", "src/c.js", "src/d.java"}, rels(t, root, files))
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f))
	}
}

func TestSelect_SubstringModeKeepsLegacyHeuristic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, sampleTree)

	files, err := Select(root, Options{Languages: "all", ExcludeMode: ExcludeSubstring}, zaptest.NewLogger(t))
	require.NoError(t, err)

	// "binder" contains "bin", so it is dropped too.
	assert.Equal(t, []string{"a.py", "b.cs", "src/c.js", "src/d.java"}, rels(t, root, files))
	for _, f := range files {
		dir := strings.ToLower(filepath.Dir(f))
		assert.NotContains(t, dir, "bin")
		assert.NotContains(t, dir, "debug")
	}
}

func TestSelect_LanguageTokens(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, sampleTree)

	files, err := Select(root, Options{Languages: "python, javascript"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "binder/z.py", "src/c.js"}, rels(t, root, files))

	// "javascript" must not pull in java files.
	files, err = Select(root, Options{Languages: "javascript"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"src/c.js"}, rels(t, root, files))
}

func TestSelect_EmptyLanguagesSelectsNothing(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, sampleTree)

	files, err := Select(root, Options{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSelect_UnknownExtensionsNeverSelected(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"README.md": "x", "go.mod": "x", "main.go": "x"})

	files, err := Select(root, Options{Languages: "all"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSelect_SkipsOutputFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": "x\n", "bundle.py": "old bundle\n"})

	files, err := Select(root, Options{Languages: "python", Output: "bundle.py"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, rels(t, root, files))
}

func TestSelect_IgnoreFileAndPatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, sampleTree)
	writeTree(t, root, map[string]string{
		".bundleignore": "# skip java\n*.java\n",
		"gen/e.py":      "generated\n",
	})

	files, err := Select(root, Options{Languages: "all", Exclude: []string{"gen/"}}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "b.cs", "binder/z.py", "src/c.js"}, rels(t, root, files))
}

func TestSelect_LogsDecidingPattern(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".bundleignore": "# skip java\n*.java\n",
		"a.py":          "x\n",
		"src/d.java":    "class D {}\n",
		"Bin/x.cs":      "compiled\n",
	})
	core, logs := observer.New(zapcore.DebugLevel)

	files, err := Select(root, Options{Languages: "all"}, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, rels(t, root, files))

	dirs := logs.FilterMessage("Skipping ignored directory").AllUntimed()
	require.Len(t, dirs, 1)
	assert.Equal(t, "Bin", dirs[0].ContextMap()["directory"])
	assert.Equal(t, "bin/", dirs[0].ContextMap()["pattern"])
	assert.NotContains(t, dirs[0].ContextMap(), "source")

	skipped := logs.FilterMessage("Skipping ignored file").AllUntimed()
	require.Len(t, skipped, 1)
	fields := skipped[0].ContextMap()
	assert.Equal(t, "src/d.java", fields["file"])
	assert.Equal(t, "*.java", fields["pattern"])
	assert.Equal(t, filepath.Join(root, ".bundleignore"), fields["source"])
	assert.EqualValues(t, 2, fields["lineNo"])
}

func TestSelect_MissingRoot(t *testing.T) {
	_, err := Select(filepath.Join(t.TempDir(), "missing"), Options{Languages: "all"}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestSelect_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": "x"})

	_, err := Select(filepath.Join(root, "a.py"), Options{Languages: "all"}, nil)
	assert.Error(t, err)
}

func TestParseExcludeMode(t *testing.T) {
	m, err := ParseExcludeMode("")
	require.NoError(t, err)
	assert.Equal(t, ExcludeSegment, m)

	m, err = ParseExcludeMode(" Substring ")
	require.NoError(t, err)
	assert.Equal(t, ExcludeSubstring, m)

	_, err = ParseExcludeMode("exact")
	assert.Error(t, err)
}
