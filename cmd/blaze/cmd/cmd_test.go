package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/VDFOREVER/blaze/internal/store"
	"github.com/VDFOREVER/blaze/pkg/core/config"
)

// execute runs the command tree with fresh flag values
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv(config.EnvLogLevel, "")

	resetFlags(rootCmd)
	appConfig, appLogger = nil, nil

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestRoot_Help(t *testing.T) {
	out, _, err := execute(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Blaze Db 0.0.1a - available commands:")
	assert.Contains(t, out, "create   - create a new datablaze")
}

func TestRoot_UnknownCommand(t *testing.T) {
	_, _, err := execute(t, "", "compile")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Blaze Db 0.0.1a")
	assert.Contains(t, out, "Datablaze:  format 1")
}

func TestLexer(t *testing.T) {
	t.Run("from flag", func(t *testing.T) {
		out, _, err := execute(t, "", "lexer", "--code", "a.b")
		require.NoError(t, err)
		assert.Equal(t, "Alphanumeric(\"a\") at 1:1\nDot(\".\") at 1:2\nAlphanumeric(\"b\") at 1:3\n", out)
	})

	t.Run("first line of stdin", func(t *testing.T) {
		out, _, err := execute(t, "mut x;\nignored", "lexer")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, `Mut("mut") at 1:1`, lines[0])
	})

	t.Run("lexical error", func(t *testing.T) {
		out, errOut, err := execute(t, "", "lexer", "--code", "@")
		require.ErrorIs(t, err, errReported)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "Lexical Error:")
		assert.Contains(t, errOut, "Unexpected character '@'")
		assert.Contains(t, errOut, "<-= Shell:1:1")
	})
}

func TestParser(t *testing.T) {
	t.Run("counts statements", func(t *testing.T) {
		out, _, err := execute(t, "mut x = 1; fin y = f(x, two=2);\n", "parser")
		require.NoError(t, err)
		assert.Equal(t, "Parsing successfully completed! Nodes Count: 2\n", out)
	})

	t.Run("empty input prints nothing", func(t *testing.T) {
		out, _, err := execute(t, "\n", "parser")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("tree", func(t *testing.T) {
		out, _, err := execute(t, "", "parser", "--ast", "--code", "mut x = 1;")
		require.NoError(t, err)
		assert.Contains(t, out, "Body (1 statements)")
		assert.Contains(t, out, "VariableDeclaration mut x")
	})

	t.Run("syntax error", func(t *testing.T) {
		out, errOut, err := execute(t, "", "parser", "--code", "x y")
		require.ErrorIs(t, err, errReported)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "Syntax Error:")
		assert.Contains(t, errOut, "';' is expected <-= Shell:1:3")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := execute(t, "", "parser", "--format", "xml", "--code", "x;")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})
}

func TestParser_EncodedTree(t *testing.T) {
	out, _, err := execute(t, "", "parser", "--format", "json", "--code", "fin answer = 42;")
	require.NoError(t, err)

	jsonPart := out[strings.Index(out, "{"):]
	var tree map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(jsonPart), &tree))
	assert.Equal(t, "Body", tree["kind"])
	nodes := tree["nodes"].([]interface{})
	require.Len(t, nodes, 1)
	decl := nodes[0].(map[string]interface{})
	assert.Equal(t, "answer", decl["name"])
	assert.Equal(t, false, decl["mutable"])

	out, _, err = execute(t, "", "parser", "--format", "yaml", "--code", "fin answer = 42;")
	require.NoError(t, err)

	yamlPart := out[strings.Index(out, "\n")+1:]
	tree = nil
	require.NoError(t, yaml.Unmarshal([]byte(yamlPart), &tree))
	assert.Equal(t, "Body", tree["kind"])
}

func TestParser_ConfigSourceLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blaze.toml")
	require.NoError(t, os.WriteFile(path, []byte("[script]\nsource_label = \"repl\"\n"), 0o644))

	_, errOut, err := execute(t, "", "--config", path, "parser", "--code", "x y")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "<-= repl:1:3")
}

func TestCreateAndHistory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "main")

	out, _, err := execute(t, "", "create", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Datablaze created: "+dir)

	_, _, err = execute(t, "", "create", dir)
	assert.Error(t, err)

	out, _, err = execute(t, "", "history", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "0 parses")
	assert.Contains(t, out, "No parses recorded")

	db, err := store.Open(dir)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, db.RecordParse(ctx, &store.Record{SourceLabel: "Shell", Source: "mut x = 1;", Success: true, Statements: 1}))
	require.NoError(t, db.RecordParse(ctx, &store.Record{SourceLabel: "Shell", Source: "x y", Diagnostic: "Syntax Error: ';' is expected <-= Shell:1:3"}))
	require.NoError(t, db.Close())

	out, _, err = execute(t, "", "history", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 parses (1 ok, 1 failed)")
	assert.Contains(t, out, "1 statements")
	assert.Contains(t, out, "';' is expected")

	out, _, err = execute(t, "", "history", "--limit", "1", "--format", "json", dir)
	require.NoError(t, err)
	var records []store.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "x y", records[0].Source)
}

func TestCreate_PromptsForPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompted")

	out, _, err := execute(t, dir+"\n", "create")
	require.NoError(t, err)
	assert.Contains(t, out, "Specify a path to a datablaze")
	assert.True(t, store.Exists(dir))
}

func TestHistory_Errors(t *testing.T) {
	_, _, err := execute(t, "", "history")
	assert.Error(t, err)

	_, _, err = execute(t, "", "history", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b", oneLine("a\nb"))
	assert.Len(t, oneLine(strings.Repeat("x", 100)), 40)
}
