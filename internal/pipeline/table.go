package pipeline

import (
	"fmt"

	"golang.org/x/net/html"
)

// TableData is the payload of a <Table data={...} /> component.
// Rows are not required to have len(Headers) cells.
type TableData struct {
	Headers []string
	Rows    [][]string
}

// rawTableData accepts any scalar cell so numbers and booleans in the
// expression do not fail decoding.
type rawTableData struct {
	Headers []any   `yaml:"headers"`
	Rows    [][]any `yaml:"rows"`
}

// DecodeTable reads TableData from the "data" expression attribute.
func DecodeTable(p Props) (TableData, error) {
	var raw rawTableData
	if err := p.Decode("data", &raw); err != nil {
		return TableData{}, err
	}

	data := TableData{
		Headers: make([]string, len(raw.Headers)),
		Rows:    make([][]string, len(raw.Rows)),
	}
	for i, h := range raw.Headers {
		data.Headers[i] = cellText(h)
	}
	for i, row := range raw.Rows {
		data.Rows[i] = make([]string, len(row))
		for j, cell := range row {
			data.Rows[i][j] = cellText(cell)
		}
	}
	return data, nil
}

func cellText(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}

// RenderTable renders a header row followed by one row per data row,
// in the given order. Cell text is escaped.
func RenderTable(data TableData) (TrustedHTML, error) {
	table := newElementNode("table", nil)

	thead := newElementNode("thead", nil)
	headRow := newElementNode("tr", nil)
	for _, h := range data.Headers {
		headRow.AppendChild(cell("th", h))
	}
	thead.AppendChild(headRow)
	table.AppendChild(thead)

	tbody := newElementNode("tbody", nil)
	for _, row := range data.Rows {
		tr := newElementNode("tr", nil)
		for _, c := range row {
			tr.AppendChild(cell("td", c))
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)

	return renderNode(table)
}

func cell(tag, text string) *html.Node {
	n := newElementNode(tag, nil)
	n.AppendChild(newTextNode(text))
	return n
}

// NewTable returns the component for <Table data={{headers, rows}} />.
func NewTable() Component {
	return func(p Props) (TrustedHTML, error) {
		data, err := DecodeTable(p)
		if err != nil {
			return "", err
		}
		return RenderTable(data)
	}
}
