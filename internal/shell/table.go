package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/stemsi/roster/internal/model"
)

var columns = []string{"ID", "Name", "Age", "Class"}

// RenderTable writes students as an aligned table in ID, Name, Age, Class
// column order, followed by a row count.
func RenderTable(w io.Writer, students []model.Student) error {
	rows := make([][]string, 0, len(students)+1)
	rows = append(rows, columns)
	for _, s := range students {
		rows = append(rows, []string{s.ID, s.Name, strconv.Itoa(s.Age), s.ClassName})
	}

	widths := make([]int, len(columns))
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	rule := make([]string, len(columns))
	for i, n := range widths {
		rule[i] = strings.Repeat("-", n)
	}

	var b strings.Builder
	writeRow(&b, widths, rows[0])
	writeRow(&b, widths, rule)
	for _, row := range rows[1:] {
		writeRow(&b, widths, row)
	}
	fmt.Fprintf(&b, "Total: %d\n", len(students))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, widths []int, cells []string) {
	var line strings.Builder
	last := len(cells) - 1
	for i, cell := range cells {
		if i == last {
			line.WriteString(cell)
			break
		}
		fmt.Fprintf(&line, "%-*s  ", widths[i], cell)
	}
	b.WriteString(strings.TrimRight(line.String(), " "))
	b.WriteByte('\n')
}
