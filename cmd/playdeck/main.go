// Package main provides the CLI entrypoint for playdeck.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/playdeck/internal/config"
	"github.com/verte-zerg/playdeck/internal/generator"
	"github.com/verte-zerg/playdeck/internal/hangman"
	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/pool"
	"github.com/verte-zerg/playdeck/internal/scenario"
	"github.com/verte-zerg/playdeck/internal/stats"
	"github.com/verte-zerg/playdeck/internal/statsui"
	"github.com/verte-zerg/playdeck/internal/store"
	"github.com/verte-zerg/playdeck/internal/tui"
)

const (
	defaultDifficulty   = "all"
	defaultLabelTimeout = 120
	defaultCurveWindow  = 5
	topLevelCurves      = 3
)

var (
	playDifficulty string
	playScenarios  string
	playMuted      bool
	labelTimeout   int
	labelSavePath  string
	poolWinScore   int
	poolSeed       int64
	hangmanWords   string

	exportModule bool
	exportOut    string
	importOut    string
	editorOut    string

	statsGame        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsLevels      string
)

// settings is the resolved configuration: defaults, then the config file,
// then PLAYDECK_* variables, then flags.
type settings struct {
	file config.FileConfig
	env  config.Env
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "playdeck",
		Short:         "Educational mini-games for the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.AddCommand(newDotsCmd())
	rootCmd.AddCommand(newLabelCmd())
	rootCmd.AddCommand(newPoolCmd())
	rootCmd.AddCommand(newHangmanCmd())
	rootCmd.AddCommand(newScenariosCmd())
	rootCmd.AddCommand(newEditorCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func addPlayFlags(cmd *cobra.Command, withSuite bool) {
	if withSuite {
		cmd.Flags().StringVar(&playDifficulty, "difficulty", defaultDifficulty, "easy, medium, hard or all")
		cmd.Flags().StringVar(&playScenarios, "scenarios", "", "game config file (JSON or wrapped module)")
	}
	cmd.Flags().BoolVar(&playMuted, "muted", false, "silence the terminal bell")
}

func loadSettings() (settings, error) {
	env, err := config.ParseEnv()
	if err != nil {
		return settings{}, fmt.Errorf("failed to read environment: %w", err)
	}
	file, err := config.LoadConfig(env.ConfigPathOr(config.DefaultConfigPath()))
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	if env.Scenarios != "" {
		file.Play.Scenarios = &env.Scenarios
	}
	if env.Words != "" {
		file.Play.Words = &env.Words
	}
	if env.Muted != nil {
		file.Play.Muted = env.Muted
	}
	return settings{file: file, env: env}, nil
}

// applyPlayConfig fills the shared play flags the user did not set.
func applyPlayConfig(cmd *cobra.Command, s settings) {
	applyStringConfig(cmd, "difficulty", &playDifficulty, s.file.Play.Difficulty)
	applyStringConfig(cmd, "scenarios", &playScenarios, s.file.Play.Scenarios)
	applyBoolConfig(cmd, "muted", &playMuted, s.file.Play.Muted)
}

func parseDifficulty() (model.Difficulty, error) {
	d, ok := model.ParseDifficulty(strings.ToLower(strings.TrimSpace(playDifficulty)))
	if !ok {
		return "", fmt.Errorf("--difficulty must be easy, medium, hard or all")
	}
	return d, nil
}

func loadSuite(path string) (model.Suite, error) {
	suite, err := scenario.Load(path)
	if err != nil {
		return model.Suite{}, fmt.Errorf("failed to load scenarios: %w", err)
	}
	return suite, nil
}

func openStore(s settings) (*store.Store, error) {
	st, err := store.Open(s.env.DBPathOr(config.DefaultDBPath()))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func runProgram(m tea.Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newDotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dots",
		Short: "Play connect-the-dots",
		Args:  cobra.NoArgs,
		RunE:  runDotsCmd,
	}
	addPlayFlags(cmd, true)
	return cmd
}

func runDotsCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	applyPlayConfig(cmd, s)
	difficulty, err := parseDifficulty()
	if err != nil {
		return err
	}
	suite, err := loadSuite(playScenarios)
	if err != nil {
		return err
	}
	if len(suite.Shapes) == 0 {
		return fmt.Errorf("the game config has no shapes")
	}
	st, err := openStore(s)
	if err != nil {
		return err
	}
	defer closeStore(st)
	return runProgram(tui.NewDots(suite, difficulty, st, tui.NewBellAudio(nil, playMuted)))
}

func newLabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Play the labelling game",
		Args:  cobra.NoArgs,
		RunE:  runLabelCmd,
	}
	addPlayFlags(cmd, true)
	cmd.Flags().IntVar(&labelTimeout, "timeout", defaultLabelTimeout, "seconds per scenario")
	cmd.Flags().StringVar(&labelSavePath, "save", "", "where the in-game editor saves (default: config dir)")
	return cmd
}

func runLabelCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	applyPlayConfig(cmd, s)
	applyIntConfig(cmd, "timeout", &labelTimeout, s.file.Play.LabelTimeout)
	difficulty, err := parseDifficulty()
	if err != nil {
		return err
	}
	if labelTimeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	suite, err := loadSuite(playScenarios)
	if err != nil {
		return err
	}
	if len(suite.Scenarios) == 0 {
		return fmt.Errorf("the game config has no scenarios")
	}
	savePath := labelSavePath
	if savePath == "" {
		savePath = config.DefaultExportPath(false)
	}
	st, err := openStore(s)
	if err != nil {
		return err
	}
	defer closeStore(st)
	opts := tui.LabelOptions{
		Difficulty: difficulty,
		Timeout:    time.Duration(labelTimeout) * time.Second,
		SavePath:   savePath,
	}
	return runProgram(tui.NewLabel(suite, opts, st, tui.NewBellAudio(nil, playMuted)))
}

func newPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Play pool addition against the computer",
		Args:  cobra.NoArgs,
		RunE:  runPoolCmd,
	}
	addPlayFlags(cmd, false)
	cmd.Flags().IntVar(&poolWinScore, "win-score", pool.DefaultWinScore, "points needed to win")
	cmd.Flags().Int64Var(&poolSeed, "seed", 0, "random seed (0 uses the clock)")
	return cmd
}

func runPoolCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	applyBoolConfig(cmd, "muted", &playMuted, s.file.Play.Muted)
	applyIntConfig(cmd, "win-score", &poolWinScore, s.file.Play.PoolWinScore)
	if poolWinScore <= 0 {
		return fmt.Errorf("--win-score must be > 0")
	}
	gen := generator.New()
	if poolSeed != 0 {
		gen = generator.NewSeeded(poolSeed)
	}
	st, err := openStore(s)
	if err != nil {
		return err
	}
	defer closeStore(st)
	return runProgram(tui.NewPool(gen, poolWinScore, st, tui.NewBellAudio(nil, playMuted)))
}

func newHangmanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hangman",
		Short: "Play hangman",
		Args:  cobra.NoArgs,
		RunE:  runHangmanCmd,
	}
	addPlayFlags(cmd, false)
	cmd.Flags().StringVar(&hangmanWords, "words", "", "word pack file with [Level] sections")
	return cmd
}

func runHangmanCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	applyBoolConfig(cmd, "muted", &playMuted, s.file.Play.Muted)
	applyStringConfig(cmd, "words", &hangmanWords, s.file.Play.Words)
	var levels []hangman.Level
	if hangmanWords != "" {
		levels, err = hangman.LoadLevels(hangmanWords)
		if err != nil {
			return err
		}
	}
	st, err := openStore(s)
	if err != nil {
		return err
	}
	defer closeStore(st)
	return runProgram(tui.NewHangman(levels, st, tui.NewBellAudio(nil, playMuted)))
}

func newScenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List and validate the shapes and scenarios",
		Args:  cobra.NoArgs,
		RunE:  runScenariosCmd,
	}
	cmd.Flags().StringVar(&playScenarios, "scenarios", "", "game config file (JSON or wrapped module)")
	return cmd
}

func runScenariosCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "scenarios", &playScenarios, s.file.Play.Scenarios)
	suite, err := loadSuite(playScenarios)
	if err != nil {
		return err
	}
	return writeSuiteListing(cmd, suite)
}

func writeSuiteListing(cmd *cobra.Command, suite model.Suite) error {
	out := cmd.OutOrStdout()
	lines := []string{"Shapes"}
	for i, shape := range suite.Shapes {
		lines = append(lines, fmt.Sprintf("  %2d. %-16s %-6s %d dots", i+1, shape.Name, shape.Difficulty, len(shape.Dots)))
	}
	lines = append(lines, "Scenarios")
	for i, scn := range suite.Scenarios {
		name := scn.Name
		if name == "" {
			name = scn.Title
		}
		lines = append(lines, fmt.Sprintf("  %2d. %-16s %-6s %d labels", i+1, name, scn.Difficulty, len(scn.Labels)))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := scenario.Validate(suite); err != nil {
		return fmt.Errorf("game config is invalid: %w", err)
	}
	return nil
}

func newEditorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editor",
		Short: "Edit label positions of the scenarios",
		Args:  cobra.NoArgs,
		RunE:  runEditorCmd,
	}
	cmd.Flags().StringVar(&playScenarios, "scenarios", "", "game config file to edit")
	cmd.Flags().StringVar(&editorOut, "out", "", "where to save (default: config dir)")
	return cmd
}

func runEditorCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "scenarios", &playScenarios, s.file.Play.Scenarios)
	suite, err := loadSuite(playScenarios)
	if err != nil {
		return err
	}
	out := editorOut
	if out == "" {
		out = config.DefaultExportPath(false)
	}
	editor, err := tui.NewEditor(suite, out)
	if err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return runProgram(editor)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the game config as JSON or a wrapped module",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&playScenarios, "scenarios", "", "game config file to export")
	cmd.Flags().BoolVar(&exportModule, "module", false, "print \"export const gameConfig = ...\" (files follow their extension)")
	cmd.Flags().StringVar(&exportOut, "out", "-", "output file, - for stdout")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "scenarios", &playScenarios, s.file.Play.Scenarios)
	suite, err := loadSuite(playScenarios)
	if err != nil {
		return err
	}
	if exportOut != "-" {
		if err := scenario.Save(exportOut, suite); err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		logErrf("Wrote %s\n", exportOut)
		return nil
	}
	export := scenario.ExportJSON
	if exportModule {
		export = scenario.ExportModule
	}
	data, err := export(suite)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Validate a game config and install it",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importOut, "out", "", "install path (default: config dir)")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	suite, err := loadSuite(args[0])
	if err != nil {
		return err
	}
	out := importOut
	if out == "" {
		out = config.DefaultExportPath(false)
	}
	if err := scenario.Save(out, suite); err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d shapes and %d scenarios to %s\nUse it with: playdeck label --scenarios %s\n",
		len(suite.Shapes), len(suite.Scenarios), out, out)
	return err
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsGame, "game", "", "game filter ("+strings.Join(model.Games, ", ")+")")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N rounds")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsLevels, "level", "", "comma separated levels for per-level curves")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "last", &statsLast, s.file.Stats.Last)
	applyIntConfig(cmd, "curve-window", &statsCurveWindow, s.file.Stats.CurveWindow)

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	game := strings.ToLower(strings.TrimSpace(statsGame))
	if game != "" && !isGame(game) {
		return fmt.Errorf("--game must be one of %s", strings.Join(model.Games, ", "))
	}
	cfg := model.StatsConfig{
		Game:        game,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := openStore(s)
	if err != nil {
		return err
	}
	defer closeStore(st)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return writeStatsReport(cmd, st, cfg, splitLevels(statsLevels))
	}
	return runProgram(statsui.NewModel(st, cfg, splitLevels(statsLevels)))
}

// writeStatsReport prints the plain report used when stdout is piped. Without
// explicit levels the most played ones get curves.
func writeStatsReport(cmd *cobra.Command, st *store.Store, cfg model.StatsConfig, levels []string) error {
	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Rounds); err != nil {
		return err
	}
	if err := stats.RenderCurves(out, report.Rounds, cfg.CurveWindow); err != nil {
		return err
	}
	if err := stats.RenderNameTable(out, report.NamesWindow); err != nil {
		return err
	}
	if len(levels) == 0 {
		levels = stats.TopNamesByPlays(report.NamesAll, topLevelCurves)
	}
	if len(levels) == 0 {
		return nil
	}
	return stats.RenderNameCurvesWithSize(out, report.Rounds, levels, cfg.CurveWindow, 0, 8, false)
}

func isGame(game string) bool {
	for _, g := range model.Games {
		if g == game {
			return true
		}
	}
	return false
}

func splitLevels(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	env, err := config.ParseEnv()
	if err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	path := env.ConfigPathOr(config.DefaultConfigPath())
	if err := config.WriteTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
