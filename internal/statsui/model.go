// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/stats"
	"github.com/verte-zerg/playdeck/internal/store"
)

const (
	tabOverview = iota
	tabLevelTable
	tabLevelCurves
)

const (
	plotHeight   = 6
	defaultNames = 5
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	tabs        []string
	activeTab   int
	viewports   []viewport.Model
	levelTable  table.Model
	levelLayout tableLayout

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	names       []string
	namesCustom bool

	nameInputMode bool
	nameInput     textinput.Model
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs a stats UI model. names preselects the levels shown
// on the curves tab; empty means the hardest ones.
func NewModel(st *store.Store, cfg model.StatsConfig, names []string) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		tabs:  []string{"Overview", "Levels", "Level Curves"},
	}
	if len(names) > 0 {
		m.names = names
		m.namesCustom = true
	}
	m.initInputs()
	m.initNameInput()
	m.levelTable = buildLevelTable(nil, 0, 1)
	m.initViewports()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.nameInputMode {
			return m.updateNameInput(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "g":
			m.cfg.Game = nextGame(m.cfg.Game)
			m.refreshReport()
			return m, nil
		case "/":
			return m.startFilter()
		case "enter":
			if m.activeTab == tabLevelCurves {
				return m.startNameInput()
			}
			return m, nil
		case "home":
			if m.activeTab == tabLevelTable {
				m.levelTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabLevelTable {
				m.levelTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabLevelTable {
				var cmd tea.Cmd
				m.levelTable, cmd = m.levelTable.Update(msg)
				return m, cmd
			}
			var cmd tea.Cmd
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.nameInputMode {
		return fitLines(m.renderNameModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Game: "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Curve window: "),
	}
	m.filterInputs[0].Placeholder = strings.Join(model.Games, "|")
	m.setInputsFromConfig()
}

func (m *Model) initNameInput() {
	m.nameInput = newFilterInput("Levels: ")
	m.nameInput.Placeholder = "Square, Star, CAT"
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[0].SetValue(m.cfg.Game)
	if m.cfg.Since != nil {
		m.filterInputs[1].SetValue(m.cfg.Since.Format("2006-01-02"))
	} else {
		m.filterInputs[1].SetValue("")
	}
	if m.cfg.Last > 0 {
		m.filterInputs[2].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[2].SetValue("")
	}
	m.filterInputs[3].SetValue(strconv.Itoa(m.cfg.CurveWindow))
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.setLevelTableSize(m.width, bodyHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
	m.nameInput.Width = maxInt(10, modalInnerWidth(m.width)-lipgloss.Width(m.nameInput.Prompt))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabLevelTable {
		m.levelTable.Focus()
	} else {
		m.levelTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return padLines(m.renderTabs(), m.width) + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	game := m.cfg.Game
	if game == "" {
		game = "all"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: game=%s  since=%s  last=%s  window=%d", game, since, last, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Game: g  Window: -/=  Settings: /  Quit: q"
	if m.activeTab == tabLevelCurves {
		help = "Nav: left/right  Edit levels: enter  Game: g  Window: -/=  Settings: /  Quit: q"
	}
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabLevelTable {
		switch {
		case len(m.report.Rounds) == 0:
			return fitLines("No rounds found.", m.width, height)
		case len(m.report.NamesAll) == 0:
			return fitLines("No level stats found.", m.width, height)
		default:
			return fitLines(tableMutedStyle.Render(m.levelTable.View()), m.width, height)
		}
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	if !m.namesCustom {
		m.names = stats.SelectHardest(report.NamesWindow, defaultNames)
	}
	m.levelTable.SetRows(buildLevelRows(report.NamesAll))
	m.levelLayout.rowCount = len(report.NamesAll)
	m.updateLayout()
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report.Rounds, m.cfg.CurveWindow, width))
	m.viewports[tabLevelCurves].SetContent(renderLevelCurves(m.report.Rounds, m.names, m.cfg.CurveWindow, width))
}

func renderOverview(rounds []model.RoundAggregate, window, width int) string {
	if len(rounds) == 0 {
		return "No rounds found."
	}
	sections := []string{renderSummaryCards(rounds, width)}
	for _, s := range stats.Summarize(rounds) {
		sections = append(sections, headerStyle.Render(fmt.Sprintf("%s  %s", s.Game, stats.Sparkline(stats.CompletionSeries(forGame(rounds, s.Game))))))
	}
	sections = append(sections, renderCurves(rounds, window, width))
	return strings.TrimRight(strings.Join(sections, "\n\n"), "\n")
}

func renderSummaryCards(rounds []model.RoundAggregate, width int) string {
	summaries := stats.Summarize(rounds)
	cards := make([]string, 0, len(summaries))
	for _, s := range summaries {
		cards = append(cards, gameCard(s))
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	var rows []string
	for i := 0; i < len(cards); i += 2 {
		end := minInt(i+2, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func gameCard(s stats.Summary) string {
	lines := []string{
		cardValueStyle.Render(s.Game),
		cardTitleStyle.Render("Rounds     ") + cardValueStyle.Render(strconv.Itoa(s.Plays)),
		cardTitleStyle.Render("Completed  ") + cardValueStyle.Render(fmt.Sprintf("%.1f%%", s.CompletionRate()*100)),
		cardTitleStyle.Render("Mistakes   ") + cardValueStyle.Render(fmt.Sprintf("%.2f", s.AvgMistakes())),
		cardTitleStyle.Render("Avg time   ") + cardValueStyle.Render(s.AvgDuration().Round(time.Second).String()),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func renderCurves(rounds []model.RoundAggregate, window, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderCurvesWithSize(&buf, rounds, window, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderLevelCurves(rounds []model.RoundAggregate, names []string, window, width int) string {
	if len(rounds) == 0 {
		return "No rounds found."
	}
	if len(names) == 0 {
		return "No levels selected. Press Enter to choose levels."
	}
	header := headerStyle.Render("Levels: " + strings.Join(names, ", "))
	var buf bytes.Buffer
	if err := stats.RenderNameCurvesWithSize(&buf, rounds, names, window, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render level curves: %v", err)
	}
	return strings.TrimRight(header+"\n"+buf.String(), "\n")
}

func forGame(rounds []model.RoundAggregate, game string) []model.RoundAggregate {
	var out []model.RoundAggregate
	for _, r := range rounds {
		if r.Game == game {
			out = append(out, r)
		}
	}
	return out
}

func levelColumns() []table.Column {
	return []table.Column{
		{Title: "Game", Width: 8},
		{Title: "Level", Width: 16},
		{Title: "Plays", Width: 6},
		{Title: "Completed", Width: 10},
		{Title: "Mistakes", Width: 9},
		{Title: "Avg Time", Width: 9},
	}
}

func buildLevelTable(aggs []model.NameAggregate, width, height int) table.Model {
	t := table.New(
		table.WithColumns(levelColumns()),
		table.WithRows(buildLevelRows(aggs)),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(levelTableStyles())
	return t
}

func buildLevelRows(aggs []model.NameAggregate) []table.Row {
	sorted := sortByPlays(aggs)
	rows := make([]table.Row, 0, len(sorted))
	for _, agg := range sorted {
		completed := 0.0
		avg := time.Duration(0)
		if agg.Plays > 0 {
			completed = float64(agg.Completed) / float64(agg.Plays) * 100
			avg = time.Duration(agg.DurationMs/int64(agg.Plays)) * time.Millisecond
		}
		rows = append(rows, table.Row{
			agg.Game,
			agg.Name,
			strconv.Itoa(agg.Plays),
			fmt.Sprintf("%.1f%%", completed),
			strconv.Itoa(agg.Mistakes),
			avg.Round(100 * time.Millisecond).String(),
		})
	}
	return rows
}

func (m *Model) setLevelTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.levelLayout.width == width && m.levelLayout.height == viewportHeight {
		return
	}
	m.levelLayout.width = width
	m.levelLayout.height = viewportHeight
	m.levelTable.SetWidth(width)
	m.levelTable.SetHeight(viewportHeight)
	// The header border takes lines the table does not count.
	if extra := lipgloss.Height(m.levelTable.View()) - height; extra > 0 {
		m.levelTable.SetHeight(maxInt(1, viewportHeight-extra))
	}
}

func levelTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) startNameInput() (tea.Model, tea.Cmd) {
	m.nameInputMode = true
	m.nameInput.SetValue(strings.Join(m.names, ", "))
	return m, m.nameInput.Focus()
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) updateNameInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.nameInputMode = false
		return m, nil
	case tea.KeyEnter:
		m.applyNameInput()
		m.nameInputMode = false
		m.renderTabContents()
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	game := strings.ToLower(strings.TrimSpace(m.filterInputs[0].Value()))
	if game != "" && !slices.Contains(model.Games, game) {
		return fmt.Errorf("invalid game (use one of %s)", strings.Join(model.Games, ", "))
	}

	var since *time.Time
	if sinceInput := strings.TrimSpace(m.filterInputs[1].Value()); sinceInput != "" {
		parsed, err := time.ParseInLocation("2006-01-02", sinceInput, time.Local)
		if err != nil {
			return fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		since = &parsed
	}

	last := 0
	if lastInput := strings.TrimSpace(m.filterInputs[2].Value()); lastInput != "" {
		parsed, err := strconv.Atoi(lastInput)
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		last = parsed
	}

	window := 0
	if windowInput := strings.TrimSpace(m.filterInputs[3].Value()); windowInput != "" {
		parsed, err := strconv.Atoi(windowInput)
		if err != nil || parsed < 1 {
			return fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		window = parsed
	}

	m.cfg = model.StatsConfig{
		Game:        game,
		Since:       since,
		Last:        last,
		CurveWindow: window,
	}
	return nil
}

func (m *Model) applyNameInput() {
	names := parseNames(m.nameInput.Value())
	if len(names) == 0 {
		m.namesCustom = false
		m.names = stats.SelectHardest(m.report.NamesWindow, defaultNames)
		return
	}
	m.namesCustom = true
	m.names = names
}

func (m *Model) renderNameModal() string {
	body := []string{
		cardValueStyle.Render("Select Levels"),
		m.nameInput.View(),
		headerStyle.Render("Comma separated shape, scenario or word names."),
		headerStyle.Render("Empty selects the hardest levels. Enter to apply / Esc to cancel"),
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// parseNames splits a comma separated list, dropping blanks and repeats.
func parseNames(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" || slices.Contains(out, part) {
			continue
		}
		out = append(out, part)
	}
	return out
}

// nextGame cycles the game filter through every game and back to all.
func nextGame(game string) string {
	idx := slices.Index(model.Games, game)
	if idx == len(model.Games)-1 {
		return ""
	}
	return model.Games[idx+1]
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func sortByPlays(aggs []model.NameAggregate) []model.NameAggregate {
	out := append([]model.NameAggregate(nil), aggs...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Plays != out[j].Plays {
			return out[i].Plays > out[j].Plays
		}
		if out[i].Game != out[j].Game {
			return out[i].Game < out[j].Game
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width) - 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
