package pipeline

import (
	"strings"
	"testing"
)

func TestConvertTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "first row is header",
			input: "<table><tr><th>Name</th><th>Longvalue</th></tr><tr><td>a</td><td>b</td></tr></table>",
			want: "\n| Name | Longvalue |\n" +
				"| ---- | --------- |\n" +
				"| a    | b         |\n\n",
		},
		{
			name: "thead and tbody",
			input: `<table class="t">
  <thead><tr><th>H</th></tr></thead>
  <tbody><tr><td>x</td></tr><tr><td>yy</td></tr></tbody>
</table>`,
			want: "\n| H   |\n" +
				"| --- |\n" +
				"| x   |\n" +
				"| yy  |\n\n",
		},
		{
			name:  "multiple tbody elements",
			input: "<table><thead><tr><th>K</th></tr></thead><tbody><tr><td>1</td></tr></tbody><tbody><tr><td>2</td></tr></tbody></table>",
			want:  "\n| K   |\n| --- |\n| 1   |\n| 2   |\n\n",
		},
		{
			name:  "rows after thead without tbody",
			input: "<table><thead><tr><th>K</th></tr></thead><tr><td>v</td></tr></table>",
			want:  "\n| K   |\n| --- |\n| v   |\n\n",
		},
		{
			name:  "cell tags stripped and pipes escaped",
			input: "<table><tr><td>a|b</td></tr><tr><td>  <b>c</b>\n d </td></tr></table>",
			want:  "\n| a\\|b |\n| ---- |\n| c d  |\n\n",
		},
		{
			name:  "short rows padded",
			input: "<table><tr><th>A</th><th>B</th></tr><tr><td>x</td></tr></table>",
			want:  "\n| A   | B   |\n| --- | --- |\n| x   |     |\n\n",
		},
		{
			name:  "rows without cells skipped",
			input: "<table><tr></tr><tr><td>only</td></tr></table>",
			want:  "\n| only |\n| ---- |\n\n",
		},
		{
			name:  "empty table",
			input: "<table></table>",
			want:  "",
		},
		{
			name:  "table with text around",
			input: "x<table><tr><td>1</td></tr></table>y",
			want:  "x\n| 1   |\n| --- |\n\ny",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ConvertTables(tt.input, nil)
			if got != tt.want {
				t.Errorf("ConvertTables(%q) =\n%q\nwant\n%q", tt.input, got, tt.want)
			}
		})
	}
}

func TestConvertTables_CellsArePlainText(t *testing.T) {
	t.Parallel()

	input := `<table><tr><th>Tool</th></tr><tr><td><a href="https://x.com">x</a> <b>y</b></td></tr><tr><td><code>go</code><em>vet</em></td></tr></table>`
	got := ConvertTables(input, nil)
	want := "\n| Tool  |\n| ----- |\n| x y   |\n| govet |\n\n"
	if got != want {
		t.Errorf("ConvertTables(%q) =\n%q\nwant\n%q", input, got, want)
	}
}

func TestConvertTables_WideCharacters(t *testing.T) {
	t.Parallel()

	got := ConvertTables("<table><tr><th>言語</th></tr><tr><td>Go</td></tr></table>", nil)
	want := "\n| 言語 |\n| ---- |\n| Go   |\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConvertTables_DataCellsPaddedToHeaderWidth(t *testing.T) {
	t.Parallel()

	input := "<table><tr><th>Name</th><th>Longvalue</th></tr>" +
		"<tr><td>a</td><td>1</td></tr><tr><td>bb</td><td>22</td></tr></table>"
	got := strings.TrimSpace(ConvertTables(input, nil))

	for _, line := range strings.Split(got, "\n")[2:] {
		cells := strings.Split(line, "|")
		// "| a    | 1         |" splits into "", " a    ", " 1         ", "".
		if len(cells) != 4 {
			t.Fatalf("unexpected row %q", line)
		}
		if width := len(cells[2]) - 2; width < len("Longvalue") {
			t.Errorf("row %q: column 2 width %d, want >= %d", line, width, len("Longvalue"))
		}
	}
}
