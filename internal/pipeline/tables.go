package pipeline

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Precompiled regex patterns for table conversion.
var (
	tablePattern = elementPattern("table")
	theadPattern = elementPattern("thead")
	tbodyPattern = elementPattern("tbody")
	rowPattern   = elementPattern("tr")
	cellPattern  = elementPattern("t[hd]")
)

// minColumnWidth is the narrowest column; a separator needs three dashes.
const minColumnWidth = 3

// ConvertTables turns <table> elements into pipe tables.
// The header row comes from <thead>, or the first row when there is none.
// Body rows come from <tbody> elements when present, else every other row.
// Cells hold plain text: tags are removed and whitespace collapsed.
// A table without any cells converts to an empty string.
func ConvertTables(text string, _ *Options) string {
	return replaceAllSubmatchFunc(tablePattern, text, func(m []string) string {
		return renderTable(tableRows(m[2]))
	})
}

// tableRows extracts cell text row by row, header row first.
func tableRows(body string) [][]string {
	var rows [][]string

	rest := body
	if loc := theadPattern.FindStringSubmatchIndex(body); loc != nil {
		if header := rowPattern.FindStringSubmatch(body[loc[4]:loc[5]]); header != nil {
			if cells := rowCells(header[2]); len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
		rest = body[:loc[0]] + body[loc[1]:]
	}

	if bodies := tbodyPattern.FindAllStringSubmatch(rest, -1); len(bodies) > 0 {
		var b strings.Builder
		for _, tb := range bodies {
			b.WriteString(tb[2])
		}
		rest = b.String()
	}

	for _, row := range rowPattern.FindAllStringSubmatch(rest, -1) {
		if cells := rowCells(row[2]); len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// rowCells returns the tag-stripped, pipe-escaped text of each cell in a row.
func rowCells(row string) []string {
	matches := cellPattern.FindAllStringSubmatch(row, -1)
	if len(matches) == 0 {
		return nil
	}
	cells := make([]string, len(matches))
	for i, c := range matches {
		cells[i] = strings.ReplaceAll(collapseWhitespace(stripTags(c[2])), "|", `\|`)
	}
	return cells
}

// renderTable lays out rows as a pipe table. Columns are as wide as their
// widest cell in display cells, so wide (CJK) characters stay aligned.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = minColumnWidth
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(rows[0], widths))
	separator := make([]string, cols)
	for i, w := range widths {
		separator[i] = strings.Repeat("-", w)
	}
	lines = append(lines, formatRow(separator, widths))
	for _, row := range rows[1:] {
		lines = append(lines, formatRow(row, widths))
	}

	return "\n" + strings.Join(lines, "\n") + "\n\n"
}

// formatRow renders one table line, padding cells on the right.
// Missing trailing cells render empty.
func formatRow(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteString("|")
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(" ")
		b.WriteString(runewidth.FillRight(cell, w))
		b.WriteString(" |")
	}
	return b.String()
}
