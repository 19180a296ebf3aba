package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/markuid/pkg/markuid"
)

const (
	validXAML    = `<Grid xmlns:x="http://schemas.microsoft.com/winfx/2006/xaml" x:Uid="Root"><Button x:Uid="Ok"/></Grid>`
	invalidXAML  = `<Grid xmlns:x="http://schemas.microsoft.com/winfx/2006/xaml" x:Uid="Root"><Button/><Label x:Uid="Root"/></Grid>`
	fixedXAML    = `<Grid xmlns:x="http://schemas.microsoft.com/winfx/2006/xaml" x:Uid="Root"><Button x:Uid="Button_1"/><Label x:Uid="Label_1"/></Grid>`
	strippedXAML = `<Grid xmlns:x="http://schemas.microsoft.com/winfx/2006/xaml"><Button/><Label/></Grid>`
)

// newProject writes files and a markuid.yaml into a temporary project root.
func newProject(t *testing.T, configYAML string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, markuid.ConfigFileName), []byte(configYAML), 0o644))
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

func noEnv(t *testing.T, env map[string]string) {
	t.Helper()
	original := lookupEnv
	t.Cleanup(func() { lookupEnv = original })
	lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func execute(t *testing.T, op markuid.Operation, dir string, flags operationFlags, paths ...string) (string, string, error) {
	t.Helper()
	if flags.configDir == "" {
		flags.configDir = dir
	}
	if len(paths) == 0 {
		paths = []string{dir}
	}
	var stdout, stderr bytes.Buffer
	err := executeOperation(context.Background(), op, paths, flags, false, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestExecuteOperation_Check(t *testing.T) {
	noEnv(t, nil)
	dir := newProject(t, "", map[string]string{
		"Views/Valid.xaml":   validXAML,
		"Views/Invalid.xaml": invalidXAML,
	})

	out, _, err := execute(t, markuid.OperationCheck, dir, operationFlags{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, markuid.ErrCheckFailed))
	assert.Equal(t, markuid.ExitCheckFailed, markuid.ExitCodeForError(err))
	assert.Contains(t, out, "Invalid.xaml")
	assert.Contains(t, out, "<Button> missing identifier")
	assert.Contains(t, out, `<Label> duplicate identifier "Root"`)
	assert.Equal(t, invalidXAML, readFile(t, dir, "Views/Invalid.xaml"), "check never writes")
}

func TestExecuteOperation_UpdateThenCheck(t *testing.T) {
	noEnv(t, nil)
	dir := newProject(t, "workers: 2\n", map[string]string{
		"Valid.xaml":   validXAML,
		"Invalid.xaml": invalidXAML,
	})

	out, _, err := execute(t, markuid.OperationUpdate, dir, operationFlags{})
	require.NoError(t, err)
	assert.Contains(t, out, "Updated 1 of 2 file(s)")
	assert.Equal(t, fixedXAML, readFile(t, dir, "Invalid.xaml"))
	assert.Equal(t, validXAML, readFile(t, dir, "Valid.xaml"))

	_, err = os.Stat(filepath.Join(dir, "obj", "markuid"))
	assert.True(t, os.IsNotExist(err), "empty intermediate directory is removed")

	_, _, err = execute(t, markuid.OperationCheck, dir, operationFlags{})
	assert.NoError(t, err)
}

func TestExecuteOperation_DryRun(t *testing.T) {
	noEnv(t, nil)
	dir := newProject(t, "", map[string]string{"Invalid.xaml": invalidXAML})

	out, _, err := execute(t, markuid.OperationUpdate, dir, operationFlags{dryRun: true})

	require.NoError(t, err)
	assert.Contains(t, out, "would update")
	assert.Equal(t, invalidXAML, readFile(t, dir, "Invalid.xaml"))
}

func TestExecuteOperation_Remove(t *testing.T) {
	noEnv(t, nil)
	dir := newProject(t, "", map[string]string{"Fixed.xaml": fixedXAML})

	_, _, err := execute(t, markuid.OperationRemove, dir, operationFlags{})

	require.NoError(t, err)
	assert.Equal(t, strippedXAML, readFile(t, dir, "Fixed.xaml"))
}

func TestExecuteOperation_JSON(t *testing.T) {
	noEnv(t, nil)
	dir := newProject(t, "", map[string]string{"Invalid.xaml": invalidXAML})

	out, _, err := execute(t, markuid.OperationCheck, dir, operationFlags{json: true})
	require.ErrorIs(t, err, markuid.ErrCheckFailed)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got["run_id"])
	assert.Equal(t, "check", got["operation"])
	summary := got["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["invalid"])
	assert.Equal(t, float64(2), summary["diagnostics"])
}

func TestExecuteOperation_ConfigIncludeExclude(t *testing.T) {
	noEnv(t, nil)
	dir := newProject(t, "include:\n  - \"Views/**/*.xaml\"\nexclude:\n  - \"Views/Generated/**\"\n", map[string]string{
		"Views/Main.xaml":           invalidXAML,
		"Views/Generated/Auto.xaml": invalidXAML,
		"Other/Skipped.xaml":        invalidXAML,
	})

	_, _, err := execute(t, markuid.OperationUpdate, dir, operationFlags{})

	require.NoError(t, err)
	assert.Equal(t, fixedXAML, readFile(t, dir, "Views/Main.xaml"))
	assert.Equal(t, invalidXAML, readFile(t, dir, "Views/Generated/Auto.xaml"))
	assert.Equal(t, invalidXAML, readFile(t, dir, "Other/Skipped.xaml"))
}

func TestExecuteOperation_ExplicitFileBypassesGlobs(t *testing.T) {
	noEnv(t, nil)
	dir := newProject(t, "", map[string]string{"Page.markup": invalidXAML})

	_, _, err := execute(t, markuid.OperationUpdate, dir, operationFlags{}, filepath.Join(dir, "Page.markup"))

	require.NoError(t, err)
	assert.Equal(t, fixedXAML, readFile(t, dir, "Page.markup"))
}

func TestExecuteOperation_IntermediateDirFlag(t *testing.T) {
	noEnv(t, nil)
	dir := newProject(t, "", map[string]string{"Invalid.xaml": invalidXAML})
	scratch := filepath.Join(t.TempDir(), "scratch")

	_, _, err := execute(t, markuid.OperationUpdate, dir, operationFlags{intermediateDir: scratch})

	require.NoError(t, err)
	assert.Equal(t, fixedXAML, readFile(t, dir, "Invalid.xaml"))
	_, err = os.Stat(filepath.Join(dir, "obj"))
	assert.True(t, os.IsNotExist(err), "default intermediate directory is not used")
}

func TestExecuteOperation_Errors(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		env      map[string]string
		flags    operationFlags
		files    map[string]string
		paths    func(dir string) []string
		wantErr  error
		wantExit int
	}{
		{
			name:     "no files",
			files:    map[string]string{"readme.txt": "hello"},
			wantErr:  markuid.ErrNoFiles,
			wantExit: markuid.ExitUsageError,
		},
		{
			name:     "missing path",
			paths:    func(dir string) []string { return []string{filepath.Join(dir, "nope")} },
			wantErr:  markuid.ErrUsage,
			wantExit: markuid.ExitUsageError,
		},
		{
			name:     "unknown config key",
			config:   "wrokers: 2\n",
			wantErr:  markuid.ErrInvalidConfig,
			wantExit: markuid.ExitConfigError,
		},
		{
			name:     "invalid glob",
			config:   "include:\n  - \"[\"\n",
			wantErr:  markuid.ErrInvalidConfig,
			wantExit: markuid.ExitConfigError,
		},
		{
			name:     "bad environment value",
			env:      map[string]string{"MARKUID_WORKERS": "many"},
			wantErr:  markuid.ErrInvalidConfig,
			wantExit: markuid.ExitConfigError,
		},
		{
			name:     "negative workers flag",
			flags:    operationFlags{workers: -1},
			wantErr:  markuid.ErrInvalidConfig,
			wantExit: markuid.ExitConfigError,
		},
		{
			name:     "malformed file",
			files:    map[string]string{"Broken.xaml": `<Grid><Button></Grid>`},
			wantErr:  markuid.ErrProcessingFailed,
			wantExit: markuid.ExitProcessingFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noEnv(t, tt.env)
			dir := newProject(t, tt.config, tt.files)
			var paths []string
			if tt.paths != nil {
				paths = tt.paths(dir)
			}

			_, _, err := execute(t, markuid.OperationCheck, dir, tt.flags, paths...)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantExit, markuid.ExitCodeForError(err))
		})
	}
}

func TestExecuteOperation_MissingExplicitConfig(t *testing.T) {
	noEnv(t, nil)
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	err := executeOperation(context.Background(), markuid.OperationCheck, []string{dir}, operationFlags{configDir: dir}, false, &stdout, &stderr)

	assert.ErrorIs(t, err, markuid.ErrInvalidConfig)
}

func TestExecuteOperation_EnvOverridesFile(t *testing.T) {
	scratch := filepath.Join(t.TempDir(), "env-scratch")
	noEnv(t, map[string]string{"MARKUID_INTERMEDIATE_DIR": scratch})
	dir := newProject(t, "intermediate_dir: from-file\n", map[string]string{"Invalid.xaml": invalidXAML})

	_, stderr, err := executeWithVerbose(t, markuid.OperationUpdate, dir)

	require.NoError(t, err)
	assert.Contains(t, stderr, "intermediate directory: "+scratch)
	_, err = os.Stat(filepath.Join(dir, "from-file"))
	assert.True(t, os.IsNotExist(err))
}

func executeWithVerbose(t *testing.T, op markuid.Operation, dir string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := executeOperation(context.Background(), op, []string{dir}, operationFlags{configDir: dir}, true, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestCheckCmd_ThroughCobra(t *testing.T) {
	noEnv(t, nil)
	dir := newProject(t, "", map[string]string{"Valid.xaml": validXAML})
	t.Cleanup(func() { checkFlags = operationFlags{} })

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"check", dir, "--config", dir, "--json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "check", got["operation"])
}

func TestCommands_Registered(t *testing.T) {
	for _, name := range []string{"check", "update", "remove", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	assert.Nil(t, checkCmd.Flags().Lookup("dry-run"), "check never writes")
	assert.NotNil(t, updateCmd.Flags().Lookup("dry-run"))
	assert.NotNil(t, removeCmd.Flags().Lookup("dry-run"))
}
