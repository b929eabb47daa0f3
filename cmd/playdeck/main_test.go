package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/scenario"
	"github.com/verte-zerg/playdeck/internal/store"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PLAYDECK_CONFIG", path)
	t.Setenv("PLAYDECK_SCENARIOS", "")
}

func TestPlayConfigPrecedence(t *testing.T) {
	writeConfig(t, "[play]\ndifficulty = \"hard\"\nscenarios = \"from-file.json\"\nmuted = false\n")
	t.Setenv("PLAYDECK_SCENARIOS", "from-env.json")

	s, err := loadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	cmd := newDotsCmd()
	if err := cmd.Flags().Set("muted", "true"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	applyPlayConfig(cmd, s)

	if playDifficulty != "hard" {
		t.Fatalf("expected file difficulty, got %q", playDifficulty)
	}
	if playScenarios != "from-env.json" {
		t.Fatalf("expected env scenarios, got %q", playScenarios)
	}
	if !playMuted {
		t.Fatalf("expected flag to win over file")
	}
}

func TestApplyConfigSkipsUnknownFlags(t *testing.T) {
	cmd := newPoolCmd()
	target := "unchanged"
	value := "file"
	applyStringConfig(cmd, "scenarios", &target, &value)
	if target != "unchanged" {
		t.Fatalf("expected flag without definition to be ignored, got %q", target)
	}
	n := 3
	applyIntConfig(cmd, "win-score", &n, nil)
	if n != 3 {
		t.Fatalf("expected nil value to be ignored, got %d", n)
	}
}

func TestScenariosCommandListsDefaultSuite(t *testing.T) {
	writeConfig(t, "")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"scenarios"})
	if err := root.Execute(); err != nil {
		t.Fatalf("scenarios: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Shapes") || !strings.Contains(text, "Scenarios") {
		t.Fatalf("unexpected listing:\n%s", text)
	}
	if !strings.Contains(text, "Square") {
		t.Fatalf("expected default shape in listing:\n%s", text)
	}
}

func TestExportThenImport(t *testing.T) {
	writeConfig(t, "")
	dir := t.TempDir()
	exported := filepath.Join(dir, "suite.ts")

	root := newRootCmd()
	root.SetArgs([]string{"export", "--out", exported})
	if err := root.Execute(); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(exported)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "export const gameConfig") {
		t.Fatalf("expected module export, got %q", string(data[:min(len(data), 40)]))
	}

	installed := filepath.Join(dir, "installed.json")
	root = newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"import", exported, "--out", installed})
	if err := root.Execute(); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out.String(), installed) {
		t.Fatalf("expected install path in output, got %q", out.String())
	}
	got, err := scenario.Load(installed)
	if err != nil {
		t.Fatalf("load installed: %v", err)
	}
	want, err := scenario.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if len(got.Shapes) != len(want.Shapes) || len(got.Scenarios) != len(want.Scenarios) {
		t.Fatalf("imported suite differs: %d/%d shapes, %d/%d scenarios",
			len(got.Shapes), len(want.Shapes), len(got.Scenarios), len(want.Scenarios))
	}
}

func TestImportRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("not a config"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"import", path, "--out", filepath.Join(t.TempDir(), "out.json")})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected invalid file to fail")
	}
}

func TestSplitLevels(t *testing.T) {
	got := splitLevels(" Square, ,Star ")
	if len(got) != 2 || got[0] != "Square" || got[1] != "Star" {
		t.Fatalf("unexpected levels: %v", got)
	}
	if splitLevels("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestStatsReportForPipedOutput(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "rounds.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer closeStore(st)
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []model.RoundRecord{
		{Game: model.GameDots, Name: "Square", Outcome: model.OutcomeCompleted},
		{Game: model.GameDots, Name: "Square", Outcome: model.OutcomeCompleted, Mistakes: 2},
		{Game: model.GamePool, Name: "Pool", Outcome: model.OutcomeOpponent},
	}
	for i := range records {
		records[i].StartedAt = start.Add(time.Duration(i) * time.Minute)
		records[i].EndedAt = records[i].StartedAt.Add(10 * time.Second)
		records[i].DurationMs = 10000
	}
	if _, err := st.InsertRounds(context.Background(), records); err != nil {
		t.Fatalf("insert rounds: %v", err)
	}

	cmd := newStatsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := writeStatsReport(cmd, st, model.StatsConfig{CurveWindow: 2}, nil); err != nil {
		t.Fatalf("report: %v", err)
	}
	text := out.String()
	for _, want := range []string{"Summary", "Square", "Level Completion %"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in report:\n%s", want, text)
		}
	}
}
