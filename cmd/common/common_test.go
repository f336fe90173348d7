package common

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Modes(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf)
	l.ShowEmojis = false

	l.Info("loaded %d instruments", 6)
	l.Debug("hidden")
	l.Success("done")
	assert.Contains(t, buf.String(), "[INFO]  loaded 6 instruments")
	assert.Contains(t, buf.String(), "[SUCCESS] done")
	assert.NotContains(t, buf.String(), "hidden")

	buf.Reset()
	l.SetSilentMode(true)
	l.Info("quiet")
	l.Error("boom")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "[ERROR] boom")
}

func TestSetupLogger(t *testing.T) {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	cf := RegisterCommonFlags(fs)
	require.NoError(t, fs.Parse([]string{"-verbose", "-no-emojis", "-no-colors"}))

	l := NewLoggerTo(&bytes.Buffer{})
	SetupLogger(l, cf)

	assert.Equal(t, LogLevelDebug, l.Level)
	assert.False(t, l.ShowEmojis)
	assert.False(t, l.ShowColors)
	assert.False(t, l.SilentMode)
	assert.Equal(t, ".env", *cf.EnvFile)
}

func TestFlagValidator(t *testing.T) {
	v := NewFlagValidator()
	assert.NoError(t, v.ValidateChoice("side", "buy", []string{"buy", "sell"}).GetError())

	v.ValidateChoice("side", "hold", []string{"buy", "sell"})
	require.True(t, v.HasErrors())
	assert.EqualError(t, v.GetError(), "validation error: side must be one of [buy, sell], got: hold")

	v.ValidateFloat("amount", -1, 0, 1e9).AddError("extra")
	assert.Contains(t, v.GetError().Error(), "validation errors:\n  - side")
}

func TestCheckHelpAndVersion(t *testing.T) {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	cf := RegisterCommonFlags(fs)
	require.NoError(t, fs.Parse([]string{"-version"}))

	var buf bytes.Buffer
	usage := NewUsageFormatter("dashboard", "Mock market dashboard")
	assert.True(t, CheckHelpAndVersion(&buf, "dashboard", cf, usage, fs))
	assert.Contains(t, buf.String(), "dashboard v"+ProjectVersion)

	fs = flag.NewFlagSet("dashboard", flag.ContinueOnError)
	cf = RegisterCommonFlags(fs)
	require.NoError(t, fs.Parse([]string{"-help"}))
	buf.Reset()
	usage.AddExample("dashboard -symbol ETH", "Show Ethereum")
	assert.True(t, CheckHelpAndVersion(&buf, "dashboard", cf, usage, fs))
	assert.Contains(t, buf.String(), "EXAMPLES:")
	assert.Contains(t, buf.String(), "-no-emojis")

	fs = flag.NewFlagSet("dashboard", flag.ContinueOnError)
	cf = RegisterCommonFlags(fs)
	require.NoError(t, fs.Parse(nil))
	assert.False(t, CheckHelpAndVersion(&buf, "dashboard", cf, usage, fs))
}

func TestResolvePath(t *testing.T) {
	f := NewFileUtils()

	assert.Equal(t, filepath.Join("exports", "btc.xlsx"), f.ResolvePath("btc", "exports", ".xlsx"))
	assert.Equal(t, filepath.Join("exports", "tape.csv"), f.ResolvePath("tape.csv", "exports", ".xlsx"))
	assert.Equal(t, "out/x.xlsx", f.ResolvePath("out/x.xlsx", "exports", ".xlsx"))
	assert.Equal(t, "", f.ResolvePath("", "exports", ".xlsx"))
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoader(NewLoggerTo(&bytes.Buffer{}))

	assert.NoError(t, l.LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DASHBOARD_TEST_ENV_LOADER=yes\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("DASHBOARD_TEST_ENV_LOADER") })

	require.NoError(t, l.LoadEnvFile(path))
	assert.Equal(t, "yes", os.Getenv("DASHBOARD_TEST_ENV_LOADER"))
}
