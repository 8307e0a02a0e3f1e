package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pato/ratatype/internal/heatmap"
	statsPkg "github.com/pato/ratatype/internal/stats"
)

// keyboardRows lays out the QWERTY letter rows with their stagger indents.
var keyboardRows = []struct {
	keys   string
	indent string
}{
	{keys: "qwertyuiop", indent: "  "},
	{keys: "asdfghjkl", indent: "   "},
	{keys: "zxcvbnm", indent: "     "},
}

var speedBandColors = map[heatmap.SpeedBand]string{
	heatmap.SpeedFastest: "#3FB950",
	heatmap.SpeedFast:    "#90EE90",
	heatmap.SpeedMedium:  "#FFD700",
	heatmap.SpeedSlow:    "#FF6347",
	heatmap.SpeedSlowest: "#FF4D4F",
	heatmap.SpeedNoData:  "#8C8C8C",
	heatmap.SpeedUnused:  "#4A4A4A",
}

var accuracyBandColors = map[heatmap.AccuracyBand]string{
	heatmap.AccuracyHighest: "#3FB950",
	heatmap.AccuracyHigh:    "#90EE90",
	heatmap.AccuracyMedium:  "#FFD700",
	heatmap.AccuracyLow:     "#FF6347",
	heatmap.AccuracyLowest:  "#FF4D4F",
	heatmap.AccuracyNoData:  "#8C8C8C",
	heatmap.AccuracyUnused:  "#4A4A4A",
}

func (m *Model) viewResults() string {
	panels := m.renderPanels()
	sections := []string{
		titleStyle.Render("Test Complete!"),
		"",
		m.renderResultsTable(),
		"",
		panels,
		"",
		m.renderWPMChart(),
		"",
		hintStyle.Render("Press ESC to exit or ENTER to restart"),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m *Model) renderPanels() string {
	speed := m.renderSpeedPanel()
	accuracy := m.renderAccuracyPanel()
	// Side by side on wide terminals, stacked on narrow ones.
	if m.width == 0 || m.width >= 100 {
		return lipgloss.JoinHorizontal(lipgloss.Top, speed, "    ", accuracy)
	}
	return lipgloss.JoinVertical(lipgloss.Left, speed, "", accuracy)
}

func (m *Model) renderResultsTable() string {
	rows := [][]string{
		{"Average WPM", fmt.Sprintf("%.1f", m.engine.WPM().Average())},
		{"Peak WPM", fmt.Sprintf("%.1f", m.engine.WPM().Peak())},
		{"Accuracy", fmt.Sprintf("%.1f%%", m.engine.Accuracy())},
		{"Characters Typed", fmt.Sprintf("%d", m.engine.Cursor())},
		{"Keystrokes", fmt.Sprintf("%d", m.engine.Keystrokes())},
		{"Errors", fmt.Sprintf("%d", m.engine.Errors())},
		{"Test Duration", fmt.Sprintf("%.0fs", m.engine.Duration().Seconds())},
	}
	lines := statsPkg.FormatTable(nil, rows, map[int]bool{1: true})
	return strings.Join(lines, "\n")
}

func (m *Model) renderSpeedPanel() string {
	keys := m.engine.Keys()
	rightAlign := map[int]bool{1: true}

	fastRows := [][]string{}
	for _, ks := range keys.Fastest(rankingSize) {
		fastRows = append(fastRows, []string{
			fmt.Sprintf("'%c'", ks.Char),
			fmt.Sprintf("%d", ks.Mean.Milliseconds()),
		})
	}
	if len(fastRows) == 0 {
		fastRows = append(fastRows, []string{"No data", "-"})
	}

	slowRows := [][]string{}
	for _, ks := range keys.Slowest(rankingSize) {
		slowRows = append(slowRows, []string{
			fmt.Sprintf("'%c'", ks.Char),
			fmt.Sprintf("%d", ks.Mean.Milliseconds()),
		})
	}
	if len(slowRows) == 0 {
		slowRows = append(slowRows, []string{"No data", "-"})
	}

	lines := []string{sectionStyle.Render("Key Speed"), ""}
	lines = append(lines, statsPkg.FormatTable([]string{"Fastest Keys", "Time (ms)"}, fastRows, rightAlign)...)
	lines = append(lines, "")
	lines = append(lines, statsPkg.FormatTable([]string{"Slowest Keys", "Time (ms)"}, slowRows, rightAlign)...)
	lines = append(lines, "")

	mapper := heatmap.NewMapper(keys)
	lines = append(lines, renderKeyboard(func(r rune) lipgloss.Style {
		return keyCapStyle(speedBandColors[mapper.Speed(r)])
	})...)
	lines = append(lines, "", speedLegend())
	return strings.Join(lines, "\n")
}

func (m *Model) renderAccuracyPanel() string {
	keys := m.engine.Keys()
	rightAlign := map[int]bool{1: true}

	problemRows := [][]string{}
	for _, ke := range keys.MostErrorProne(rankingSize) {
		problemRows = append(problemRows, []string{
			fmt.Sprintf("'%c'", ke.Char),
			fmt.Sprintf("%d", ke.Errors),
		})
	}
	if len(problemRows) == 0 {
		problemRows = append(problemRows, []string{"No data", "-"})
	}

	bestRows := [][]string{}
	for _, ka := range keys.MostAccurate(rankingSize) {
		bestRows = append(bestRows, []string{
			fmt.Sprintf("'%c'", ka.Char),
			fmt.Sprintf("%.0f%%", ka.Accuracy),
		})
	}
	if len(bestRows) == 0 {
		bestRows = append(bestRows, []string{"No data", "-"})
	}

	lines := []string{sectionStyle.Render("Key Accuracy"), ""}
	lines = append(lines, statsPkg.FormatTable([]string{"Problem Keys", "Errors"}, problemRows, rightAlign)...)
	lines = append(lines, "")
	lines = append(lines, statsPkg.FormatTable([]string{"Best Keys", "Accuracy"}, bestRows, rightAlign)...)
	lines = append(lines, "")

	mapper := heatmap.NewMapper(keys)
	lines = append(lines, renderKeyboard(func(r rune) lipgloss.Style {
		return keyCapStyle(accuracyBandColors[mapper.Accuracy(r)])
	})...)
	lines = append(lines, "", accuracyLegend())
	return strings.Join(lines, "\n")
}

// renderKeyboard draws the three QWERTY rows as band-colored key caps.
func renderKeyboard(styleFor func(rune) lipgloss.Style) []string {
	lines := make([]string, 0, len(keyboardRows))
	for _, row := range keyboardRows {
		var b strings.Builder
		b.WriteString(row.indent)
		for i, ch := range row.keys {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(styleFor(ch).Render(fmt.Sprintf(" %c ", ch)))
		}
		lines = append(lines, b.String())
	}
	return lines
}

func keyCapStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color(color))
}

func speedLegend() string {
	bands := []heatmap.SpeedBand{
		heatmap.SpeedFastest,
		heatmap.SpeedFast,
		heatmap.SpeedMedium,
		heatmap.SpeedSlow,
		heatmap.SpeedSlowest,
	}
	parts := make([]string, 0, len(bands))
	for _, band := range bands {
		parts = append(parts, keyCapStyle(speedBandColors[band]).Render(" "+band.String()+" "))
	}
	return strings.Join(parts, " ")
}

func accuracyLegend() string {
	bands := []heatmap.AccuracyBand{
		heatmap.AccuracyHighest,
		heatmap.AccuracyHigh,
		heatmap.AccuracyMedium,
		heatmap.AccuracyLow,
		heatmap.AccuracyLowest,
	}
	parts := make([]string, 0, len(bands))
	for _, band := range bands {
		parts = append(parts, keyCapStyle(accuracyBandColors[band]).Render(" "+band.String()+" "))
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderWPMChart() string {
	values := m.engine.WPM().Values()
	if len(values) == 0 {
		return footerStyle.Render("No WPM samples recorded.")
	}
	width := 0
	if m.width > 0 {
		total := m.width
		if total > 100 {
			total = 100
		}
		width = statsPkg.PlotWidthFor(total)
	}
	var buf bytes.Buffer
	series := []statsPkg.Series{{Name: "WPM", Values: values}}
	if err := statsPkg.PlotWithColor(&buf, "WPM Performance", series, width, 6, true); err != nil {
		return footerStyle.Render(fmt.Sprintf("failed to render WPM chart: %v", err))
	}
	return strings.TrimRight(buf.String(), "\n")
}
