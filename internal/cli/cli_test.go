package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/WireCut/internal/export"
	"github.com/piwi3910/WireCut/internal/model"
	"github.com/piwi3910/WireCut/internal/project"
)

// execute runs the command tree against a private config file and
// returns what was written to stdout.
func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", configPath, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func tempConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func TestSimulate_LevelWirePassesEveryPlate(t *testing.T) {
	out, err := execute(t, tempConfig(t), "simulate")
	require.NoError(t, err)
	assert.Contains(t, out, "Plates: 144  Passed: 144  Failed: 0")
	assert.Contains(t, out, "Plate #")
	assert.Equal(t, 144, strings.Count(out, "PASS"))
}

func TestSimulate_JSON(t *testing.T) {
	out, err := execute(t, tempConfig(t), "simulate", "--json", "--plates", "3", "--offset", "0.1")
	require.NoError(t, err)

	var result model.SimulationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Plates, 3)
	assert.InDelta(t, 5.4, result.Plates[0].FinalHeight, 1e-9)
	assert.Equal(t, 3, result.Summary.Failed)
	assert.NotEmpty(t, result.ID)
}

func TestSimulate_StrictFailsOutOfTolerance(t *testing.T) {
	_, err := execute(t, tempConfig(t), "simulate", "--strict", "--plates", "4", "--offset", "0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 of 4 plates")
}

func TestSimulate_FailedOnly(t *testing.T) {
	// A 1-degree wire from the top drops about 0.026 in per plate.
	out, err := execute(t, tempConfig(t), "simulate", "--failed-only", "--plates", "5", "--angle", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "PASS")
	assert.Contains(t, out, "FAIL")
}

func TestSimulate_InvalidFlags(t *testing.T) {
	_, err := execute(t, tempConfig(t), "simulate", "--side", "left")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--side")

	_, err = execute(t, tempConfig(t), "simulate", "--plates", "0")
	require.Error(t, err)

	_, err = execute(t, tempConfig(t), "simulate", "--angle", "90")
	require.Error(t, err)
}

func TestSimulate_JobFile(t *testing.T) {
	dir := t.TempDir()
	jobPath := filepath.Join(dir, "job.ini")
	job := model.DefaultJob()
	job.Name = "from file"
	job.Stack.PlateCount = 7
	require.NoError(t, project.SaveJobFile(jobPath, job))

	out, err := execute(t, tempConfig(t), "simulate", "--job", jobPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Plates: 7")

	// Flags win over the file.
	out, err = execute(t, tempConfig(t), "simulate", "--job", jobPath, "--plates", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Plates: 2")
}

func TestSweep_Every(t *testing.T) {
	out, err := execute(t, tempConfig(t), "sweep", "--plates", "2", "--steps", "5", "--every", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	var steps []int
	for _, line := range lines {
		var frame model.SweepFrame
		require.NoError(t, json.Unmarshal([]byte(line), &frame))
		assert.Len(t, frame.PlateHeights, 2)
		steps = append(steps, frame.Step)
	}
	assert.Equal(t, []int{0, 2, 4}, steps)
}

func TestSweep_Errors(t *testing.T) {
	_, err := execute(t, tempConfig(t), "sweep", "--steps", "1")
	require.Error(t, err)

	_, err = execute(t, tempConfig(t), "sweep", "--every", "0")
	require.Error(t, err)
}

func TestExport_WritesFilesAndRecordsThem(t *testing.T) {
	cfgPath := tempConfig(t)
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, cfgPath, "export", "--plates", "6", "-f", "csv,dxf,csv", "-o", outDir)
	require.NoError(t, err)

	csvPath := filepath.Join(outDir, "cut_simulation_results.csv")
	dxfPath := filepath.Join(outDir, "stack_side_view.dxf")
	assert.FileExists(t, csvPath)
	assert.FileExists(t, dxfPath)
	assert.Equal(t, 2, len(strings.Split(strings.TrimSpace(out), "\n")))

	cfg, err := project.LoadAppConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, []string{dxfPath, csvPath}, cfg.RecentExports)
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := execute(t, tempConfig(t), "export", "-f", "svg", "-o", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "svg")
}

func TestExpandFormats(t *testing.T) {
	got, err := expandFormats([]string{"PDF", " csv", "pdf"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "pdf", got[0].Name)
	assert.Equal(t, "csv", got[1].Name)

	got, err = expandFormats([]string{"csv", "all"})
	require.NoError(t, err)
	assert.Len(t, got, len(export.Formats))
}

func TestCompare(t *testing.T) {
	out, err := execute(t, tempConfig(t), "compare", "--plates", "10", "--angle", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "All plates pass for wire angles within")
}

func TestGCode_Stdout(t *testing.T) {
	out, err := execute(t, tempConfig(t), "gcode", "--plates", "3", "--steps", "3",
		"--profiles", filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "G20")
	assert.Contains(t, out, "M3")
	assert.Contains(t, out, "M5")
}

func TestGCode_CustomProfileToFile(t *testing.T) {
	dir := t.TempDir()
	profilesPath := filepath.Join(dir, "profiles.json")
	custom := model.GetProfile("Grbl")
	custom.Name = "Shop Saw"
	custom.StartCode = append([]string{"G17"}, custom.StartCode...)
	require.NoError(t, project.SaveCustomProfiles(profilesPath, []model.GCodeProfile{custom}))

	outPath := filepath.Join(dir, "cut.nc")
	_, err := execute(t, tempConfig(t), "gcode", "--plates", "2", "--profile", "Shop Saw",
		"--profiles", profilesPath, "-o", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Profile: Shop Saw")
	assert.Contains(t, string(data), "G17")
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	sheet := filepath.Join(dir, "jobs.csv")
	require.NoError(t, os.WriteFile(sheet, []byte(
		"name,plates,angle\nlevel,4,0\ntilted,4,1\nbroken,0,0\n"), 0644))
	exportDir := filepath.Join(dir, "results")

	out, err := execute(t, tempConfig(t), "batch", sheet, "--export-dir", exportDir)
	require.NoError(t, err)
	assert.Contains(t, out, "level")
	assert.Contains(t, out, "tilted")
	assert.NotContains(t, out, "broken")

	entries, err := os.ReadDir(exportDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestBatch_NoJobs(t *testing.T) {
	sheet := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(sheet, []byte("name,plates\n"), 0644))

	_, err := execute(t, tempConfig(t), "batch", sheet)
	require.Error(t, err)
}

func TestBatchFileName(t *testing.T) {
	assert.Equal(t, "Run_1_a_b_ab12cd34.csv", batchFileName("Run 1/a:b", "ab12cd34"))
}

func TestBackupRestore(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	profilesPath := filepath.Join(dir, "profiles.json")
	backupPath := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.FeedRate = 33
	require.NoError(t, project.SaveAppConfig(cfgPath, cfg))
	custom := model.GetProfile("LinuxCNC")
	custom.Name = "Mill 2"
	require.NoError(t, project.SaveCustomProfiles(profilesPath, []model.GCodeProfile{custom}))

	_, err := execute(t, cfgPath, "backup", backupPath, "--profiles", profilesPath)
	require.NoError(t, err)

	restoredCfg := filepath.Join(dir, "restored", "config.json")
	restoredProfiles := filepath.Join(dir, "restored", "profiles.json")
	_, err = execute(t, restoredCfg, "restore", backupPath, "--profiles", restoredProfiles)
	require.NoError(t, err)

	got, err := project.LoadAppConfig(restoredCfg)
	require.NoError(t, err)
	assert.Equal(t, 33.0, got.FeedRate)

	profiles, err := project.LoadCustomProfiles(restoredProfiles)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Mill 2", profiles[0].Name)
}

func TestSetupLogging_RejectsUnknownLevel(t *testing.T) {
	_, err := execute(t, tempConfig(t), "simulate", "--log-level", "chatty")
	require.Error(t, err)
}
