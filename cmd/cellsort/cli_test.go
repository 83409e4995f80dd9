package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"

	"cellsort/internal/config"
	"cellsort/internal/manifest"
	"cellsort/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	cfg.Logging.Level = "error"
	homeDir := filepath.Join(testsupport.BaseDir(cfg), "home")
	require.NoError(t, os.MkdirAll(homeDir, 0o755))
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(testsupport.BaseDir(cfg), "cellsort.toml")
	data, err := toml.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, data, 0o644))
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	require.NoError(t, err)
	require.Contains(t, out, "Configuration valid")
	require.Contains(t, out, env.cfg.Paths.OrganizedDir)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	require.NoError(t, err)
	require.Contains(t, out, "Wrote sample configuration")
	require.FileExists(t, target)

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	require.Error(t, err, "init must refuse to overwrite without --overwrite")
}

func TestClassifyCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteInput(t, env.cfg.Paths.InputDir, "Redox/b3_redox_iv_25c_20230601.csv", "")

	out, _, err := runCLI(t, []string{"classify", "--json", path}, env.configPath)
	require.NoError(t, err)

	var results []classifyJSON
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	require.Equal(t, "B3_redox_temperature_T25_IV_20230601.CSV", results[0].Canonical)
	require.Equal(t, "redox/temperature", results[0].Dir)
	require.True(t, results[0].Readable)
}

func TestClassifyCommandTable(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteInput(t, env.cfg.Paths.InputDir, "sh7_air_starvation_eis.csv", "Frequency\n")

	out, _, err := runCLI(t, []string{"classify", path}, env.configPath)
	require.NoError(t, err)
	require.Contains(t, out, "SH7")
	require.Contains(t, out, "starvation")
	require.Contains(t, out, "ICTE")
}

func TestLocateCommand(t *testing.T) {
	path := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "run.csv"),
		"Instrument header\nE(Volts),I(A)\n0.9,0.1\n0.8,0.2\n0.7,0.3\n")

	out, _, err := runCLI(t, []string{"locate", "--preview", "2", path}, "")
	require.NoError(t, err)
	require.Contains(t, out, "line 2 (header_marker)")
	require.Contains(t, out, "E(Volts) | I(A)")
	require.Contains(t, out, "[OK] 3")
	require.Contains(t, out, "0.9\t0.1\n0.8\t0.2\n")
	require.NotContains(t, out, "0.7\t0.3")
}

func TestLocateCommandNoData(t *testing.T) {
	path := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "notes.txt"), "nothing tabular here\n")

	out, _, err := runCLI(t, []string{"locate", path}, "")
	require.NoError(t, err)
	require.Contains(t, out, "no data found")
}

func TestOrganizeAndHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteInput(t, env.cfg.Paths.InputDir, "Redox/b3_redox_iv_25c_20230601.csv", "E(Volts),I(A)\n0.9,0.1\n")
	testsupport.WriteInput(t, env.cfg.Paths.InputDir, "Redox/b3_photo.png", "img")

	out, _, err := runCLI(t, []string{"organize", "--json"}, env.configPath)
	require.NoError(t, err)

	var summary organizeJSON
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	require.NotEmpty(t, summary.RunID)
	require.Equal(t, manifest.Counts{Discovered: 1, Copied: 1, Converted: 1}, summary.Counts)
	require.Len(t, summary.Files, 1)
	require.Equal(t, "B3_redox_temperature_T25_IV_20230601.CSV", summary.Files[0].Canonical)
	require.FileExists(t, summary.Files[0].Txt)

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	require.NoError(t, err)
	var runs []manifest.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	require.Equal(t, summary.RunID, runs[0].ID)
	require.Equal(t, manifest.TriggerOrganize, runs[0].Trigger)

	out, _, err = runCLI(t, []string{"history", "show", summary.RunID}, env.configPath)
	require.NoError(t, err)
	require.Contains(t, out, "b3_redox_iv_25c_20230601.csv")
	require.Contains(t, out, "converted")

	out, _, err = runCLI(t, []string{"history", "file", summary.Files[0].Source}, env.configPath)
	require.NoError(t, err)
	require.Contains(t, out, summary.RunID)
	require.Contains(t, out, summary.Files[0].Txt)

	out, _, err = runCLI(t, []string{"history", "prune", "--days", "1"}, env.configPath)
	require.NoError(t, err)
	require.Contains(t, out, "Removed 0 runs")
}

func TestOrganizeTableOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteInput(t, env.cfg.Paths.InputDir, "c2_healthy_notes.txt", "no data\n")

	out, _, err := runCLI(t, []string{"organize", "--no-convert"}, env.configPath)
	require.NoError(t, err)
	require.Contains(t, out, "C2_healthy_misc_T750Air100V07_OC_20241218.CSV")
	require.Contains(t, out, "conversion disabled")
	require.Contains(t, out, "== Summary ==")
}

func TestHistoryEmpty(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	require.NoError(t, err)
	require.Equal(t, "No runs recorded", strings.TrimSpace(out))
}

func TestLogsCommandFiltersByRun(t *testing.T) {
	env := setupCLITestEnv(t)
	logPath := filepath.Join(env.cfg.Paths.LogDir, "cellsort.log")
	testsupport.WriteFile(t, logPath, strings.Join([]string{
		"2026-01-01T00:00:00Z INFO organizer: run started run_id=aaa",
		"2026-01-01T00:00:01Z INFO organizer: file organized run_id=bbb source=x.csv",
		"2026-01-01T00:00:02Z INFO organizer: run finished run_id=aaa",
	}, "\n")+"\n")

	out, _, err := runCLI(t, []string{"logs", "-n", "2"}, env.configPath)
	require.NoError(t, err)
	require.NotContains(t, out, "run started")
	require.Contains(t, out, "file organized")
	require.Contains(t, out, "run finished")

	out, _, err = runCLI(t, []string{"logs", "--run", "aaa"}, env.configPath)
	require.NoError(t, err)
	require.Contains(t, out, "run started")
	require.Contains(t, out, "run finished")
	require.NotContains(t, out, "file organized")
}

func TestRunExitCodes(t *testing.T) {
	env := setupCLITestEnv(t)
	require.Equal(t, 0, run([]string{"--config", env.configPath, "classify", testsupport.WriteInput(t, env.cfg.Paths.InputDir, "sh1_ocv.csv", "")}))
	require.Equal(t, 1, run([]string{"--config", env.configPath, "history", "show", "missing-run"}))
}
