package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/figtemplate/figstyle"
	"github.com/benoitkugler/figtemplate/figure"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(figstyle.Reset)

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// clearEnv unsets the configuration variables for the test.
func clearEnv(t *testing.T) {
	for _, key := range []string{envOutput, envFormat, envBackend, envDPI, envUseTeX} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestRootDrawsFigure(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "img", "sample.pdf")

	stdout, stderr, err := run(t, "--output", path, "--env", filepath.Join("testdata", "empty.env"))
	require.NoError(t, err)
	assert.Equal(t, "Saved sample figure to "+path+"\n", stdout)
	assert.Contains(t, stderr, "Loaded academic style settings.")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}

func TestRootFromEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	path := filepath.Join(dir, "sample.out")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"FIGTEMPLATE_OUTPUT="+path+"\nFIGTEMPLATE_FORMAT=svg\nFIGTEMPLATE_USETEX=false\n"), 0o644))

	stdout, _, err := run(t, "--env", envFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("<?xml")))
	assert.False(t, figstyle.Current().UseTeX)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(envDPI, "not a number")

	cfg := &config{}
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--dpi", "50"}))
	cfg.dpi = 50
	assert.NoError(t, cfg.applyEnv(cmd.Flags()))
	assert.Equal(t, 50., cfg.dpi)

	cmd = newRootCmd()
	assert.Error(t, cfg.applyEnv(cmd.Flags()))
}

func TestDrawOptions(t *testing.T) {
	cfg := &config{format: "svg", backend: "contentstream"}
	opts, err := cfg.drawOptions()
	require.NoError(t, err)
	assert.Equal(t, figure.SVG, opts.Format)
	assert.Equal(t, figure.BackendContentStream, opts.Backend)
	assert.Equal(t, "fig_template_sample.svg", filepath.Base(opts.Path))

	cfg = &config{format: "eps"}
	_, err = cfg.drawOptions()
	assert.ErrorIs(t, err, figure.ErrUnknownFormat)

	cfg = &config{backend: "cairo"}
	_, err = cfg.drawOptions()
	assert.ErrorIs(t, err, figure.ErrUnknownBackend)
}

func TestMissingEnvFile(t *testing.T) {
	clearEnv(t)
	_, _, err := run(t, "style", "--env", filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	// the default file is optional
	assert.NoError(t, loadEnvFile(""))
}

func TestStyleCommand(t *testing.T) {
	clearEnv(t)
	stdout, _, err := run(t, "style", "--no-tex", "--env", filepath.Join("testdata", "empty.env"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "text.usetex")
	assert.Contains(t, stdout, "false")
	assert.Contains(t, stdout, `["Times New Roman" "Computer Modern Roman"]`)
	assert.Contains(t, stdout, "6.4 x 4.8")
}

func TestInspectCommand(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sample.svg")
	_, _, err := run(t, "-o", path, "--env", filepath.Join("testdata", "empty.env"))
	require.NoError(t, err)

	stdout, _, err := run(t, "inspect", path, "--env", filepath.Join("testdata", "empty.env"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "axes:   3\n")
	assert.Contains(t, stdout, `label:  $z_0$`)

	_, _, err = run(t, "inspect", filepath.Join(t.TempDir(), "missing.svg"))
	assert.Error(t, err)
	_, _, err = run(t, "inspect")
	assert.Error(t, err)
}

func TestJSONLogs(t *testing.T) {
	clearEnv(t)
	_, stderr, err := run(t, "style", "--log-format", "json", "--env", filepath.Join("testdata", "empty.env"))
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"Loaded academic style settings."`)
	assert.Contains(t, stderr, `"level":"INFO"`)

	_, _, err = run(t, "style", "--log-format", "xml")
	assert.Error(t, err)
}

func TestDrawErrorNotLogged(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sample.bmp")
	_, stderr, err := run(t, "-o", path, "--env", filepath.Join("testdata", "empty.env"))
	require.ErrorIs(t, err, figure.ErrUnknownFormat)
	assert.Contains(t, err.Error(), "drawing sample figure")
	// the error is only reported once, by main
	assert.NotContains(t, stderr, "level=ERROR")
	assert.NotContains(t, stderr, "sample.bmp")
}
