// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pato/ratatype/internal/session"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes styles the first limit target runes against the echo
// buffer: green when typed correctly, orange when corrected after an error,
// red when wrong, a block cursor at the typing position, dim when untyped.
// Wrong cells keep showing the expected rune, except spaces which become a
// bullet so the miss stays visible.
func buildStyledRunes(snap session.Snapshot, limit int) []styledRune {
	end := len(snap.Target)
	if limit > 0 && end > limit {
		end = limit
	}
	out := make([]styledRune, 0, end)
	for i := 0; i < end; i++ {
		target := snap.Target[i]
		displayed := target
		style := pendingStyle
		typed := i < len(snap.Echo)
		switch {
		case typed && snap.Echo[i] != target:
			style = wrongStyle
			if target == ' ' {
				displayed = '•'
			}
		case typed && snap.Marks[i]:
			style = correctedStyle
		case typed:
			style = correctStyle
		case i == snap.Cursor:
			style = cursorStyle
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: target == ' ',
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes word-wraps styled cells to width columns, breaking at the
// last space on the line when there is one.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
