package ui

import (
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// ColumnString fits text into exactly width display cells: shorter text is
// padded with spaces, longer text is cut and ends in "...". Widths below 4
// leave room only for dots.
func ColumnString(text string, width int) string {
	switch {
	case width <= 0:
		return ""
	case width <= 3:
		return strings.Repeat(".", width)
	}
	w := xansi.StringWidth(text)
	if w == width {
		return text
	}
	if w < width {
		return text + strings.Repeat(" ", width-w)
	}
	out := xansi.Truncate(text, width, "...")
	// Wide runes can leave a cell free.
	if ow := xansi.StringWidth(out); ow < width {
		out += strings.Repeat(" ", width-ow)
	}
	return out
}

type column struct {
	title string
	width int
}

func headerRow(cols []column) string {
	cells := make([]string, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, centered(c.title, c.width))
	}
	return styleTableHeader().Render(strings.Join(cells, "|")) + "\n"
}

// row joins already-fitted cells with the same separators as headerRow.
func row(cells ...string) string {
	return strings.Join(cells, "|") + "\n"
}

func cell(text string, width int) string {
	return " " + ColumnString(oneLine(text), width-2) + " "
}

func centered(text string, width int) string {
	w := xansi.StringWidth(text)
	if w >= width {
		return ColumnString(text, width)
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-w-left)
}

func sectionHeader(title string, width int) string {
	title = " " + title + " "
	w := xansi.StringWidth(title)
	if w >= width {
		return styleSection().Render(title) + "\n"
	}
	left := (width - w) / 2
	line := strings.Repeat("-", left) + title + strings.Repeat("-", width-w-left)
	return styleSection().Render(line) + "\n"
}

func footer(entries ...string) string {
	return "\n" + styleMuted().Render(strings.Join(entries, " | ")) + "\n"
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\t", " ")
}

func formatID(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

// parseID accepts a decimal item id, as typed on the pages.
func parseID(s string) (uint32, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
