package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/urfave/cli.v1"

	"github.com/shader-tools/glslpp/internal/preprocessor"
)

func TestLoadConfigFile_MergesDefinesAndToggles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glslpp.toml")
	toml := "PreserveComments = true\n\n[Defines]\nFOO = \"1\"\nBAR = \"two\"\n"
	require.NoError(t, os.WriteFile(path, []byte(toml), 0o644))

	opts := &preprocessor.Options{Defines: map[string]string{}}
	require.NoError(t, loadConfigFile(path, opts))

	require.True(t, opts.PreserveComments)
	require.Equal(t, "1", opts.Defines["FOO"])
	require.Equal(t, "two", opts.Defines["BAR"])
}

func TestLoadConfigFile_CommandLineDefineOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glslpp.toml")
	toml := "[Defines]\nFOO = \"from-config\"\n"
	require.NoError(t, os.WriteFile(path, []byte(toml), 0o644))

	opts := &preprocessor.Options{Defines: map[string]string{}}
	require.NoError(t, loadConfigFile(path, opts))

	name, value := splitDefine("FOO=from-flag")
	opts.Defines[name] = value

	require.Equal(t, "from-flag", opts.Defines["FOO"])
}

func TestSplitDefine(t *testing.T) {
	name, value := splitDefine("FOO=bar")
	require.Equal(t, "FOO", name)
	require.Equal(t, "bar", value)

	name, value = splitDefine("FOO")
	require.Equal(t, "FOO", name)
	require.Equal(t, "", value)
}

func TestWriteEnvTable_RendersRowsInDefinitionOrder(t *testing.T) {
	env := preprocessor.NewEnvironment()
	env.Define("FIRST", &preprocessor.Macro{Body: "1"})
	env.Define("SECOND", &preprocessor.Macro{Params: []string{"a", "b"}, Body: "a + b", IsFunction: true})

	var buf bytes.Buffer
	writeEnvTable(&buf, env)

	out := buf.String()
	firstIdx := bytes.Index(buf.Bytes(), []byte("FIRST"))
	secondIdx := bytes.Index(buf.Bytes(), []byte("SECOND"))
	require.GreaterOrEqual(t, firstIdx, 0)
	require.GreaterOrEqual(t, secondIdx, 0)
	require.Less(t, firstIdx, secondIdx)
	require.Contains(t, out, "function")
	require.Contains(t, out, "object")
	require.Contains(t, out, "a, b")
}

func TestCLI_RoundTripMatchesLibraryCall(t *testing.T) {
	dir := t.TempDir()
	src := "#define X Y\n#define Y Z\nX"
	path := filepath.Join(dir, "in.glsl")
	outPath := filepath.Join(dir, "out.glsl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	want, err := preprocessor.Preprocess(src, preprocessor.Options{Defines: map[string]string{}, StopOnError: true})
	require.NoError(t, err)

	app := cli.NewApp()
	app.Flags = []cli.Flag{defineFlag, configFlag, outFlag, preserveCommentsFlag, noStopOnErrorFlag, dumpEnvFlag, debugASTFlag, noColorFlag}
	app.Action = run
	require.NoError(t, app.Run([]string{"glslpp", "--no-color", "--out", outPath, path}))

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, want, string(got))
}
