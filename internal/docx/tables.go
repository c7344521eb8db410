package docx

// rawCell is a table cell before vertical merges are resolved.
type rawCell struct {
	cell TableCell
	// vMerge is "" (no merge), "restart" or "continue".
	vMerge string
}

func (b *bodyReader) table(n *node) (*Table, error) {
	t := &Table{}
	t.StyleID = n.child("tblPr").child("tblStyle").attr("val")
	t.StyleName = b.styles.name("table", t.StyleID)

	var rows [][]rawCell
	var headers []bool
	for _, tr := range tableRows(n) {
		var cells []rawCell
		for _, tc := range rowCells(tr) {
			c, err := b.cell(tc)
			if err != nil {
				return nil, err
			}
			cells = append(cells, c)
		}
		rows = append(rows, cells)
		headers = append(headers, tr.child("trPr").child("tblHeader").toggle())
	}

	t.Rows = mergeRows(rows, headers)
	return t, nil
}

func (b *bodyReader) cell(tc *node) (rawCell, error) {
	tcPr := tc.child("tcPr")
	c := rawCell{cell: TableCell{
		ColSpan: max(atoiOr(tcPr.child("gridSpan").attr("val"), 1), 1),
		RowSpan: 1,
	}}
	if vm := tcPr.child("vMerge"); vm != nil {
		if vm.attr("val") == "restart" {
			c.vMerge = "restart"
		} else {
			c.vMerge = "continue"
		}
	}

	blocks, err := b.blocks(tc.children)
	if err != nil {
		return rawCell{}, err
	}
	c.cell.Blocks = blocks
	return c, nil
}

// mergeRows removes cells continuing a vertical merge and extends the row
// span of the cell that started it. Cells are tracked by grid column.
func mergeRows(rows [][]rawCell, headers []bool) []TableRow {
	type origin struct{ row, idx int }
	open := make(map[int]origin)
	out := make([]TableRow, 0, len(rows))

	for r, cells := range rows {
		row := TableRow{Header: headers[r]}
		col := 0
		for _, c := range cells {
			if c.vMerge == "continue" {
				if o, ok := open[col]; ok {
					out[o.row].Cells[o.idx].RowSpan++
					col += c.cell.ColSpan
					continue
				}
			}
			if c.vMerge == "" {
				delete(open, col)
			} else {
				open[col] = origin{row: r, idx: len(row.Cells)}
			}
			row.Cells = append(row.Cells, c.cell)
			col += c.cell.ColSpan
		}
		out = append(out, row)
	}
	return out
}

// tableRows returns the w:tr elements of a table, unwrapping content
// controls and custom XML around rows.
func tableRows(tbl *node) []*node {
	return collect(tbl.children, "tr")
}

// rowCells returns the w:tc elements of a row.
func rowCells(tr *node) []*node {
	return collect(tr.children, "tc")
}

func collect(nodes []*node, local string) []*node {
	var out []*node
	for _, n := range nodes {
		switch n.local {
		case local:
			out = append(out, n)
		case "sdt", "sdtContent", "customXml":
			out = append(out, collect(transparent(n), local)...)
		}
	}
	return out
}
