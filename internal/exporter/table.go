package exporter

// Table is an ordered set of columns and rows. Cells hold either a string
// or a float64; missing cells render empty.
type Table struct {
	Name    string
	columns []string
	index   map[string]int
	rows    []map[string]interface{}
}

// NewTable creates an empty table with the given leading columns
func NewTable(name string, columns ...string) *Table {
	t := &Table{Name: name, index: make(map[string]int)}
	for _, c := range columns {
		t.addColumn(c)
	}
	return t
}

func (t *Table) addColumn(label string) {
	if _, ok := t.index[label]; ok {
		return
	}
	t.index[label] = len(t.columns)
	t.columns = append(t.columns, label)
}

// Row is a single row under construction
type Row struct {
	table *Table
	cells map[string]interface{}
}

// NewRow appends an empty row and returns it for filling
func (t *Table) NewRow() *Row {
	cells := make(map[string]interface{})
	t.rows = append(t.rows, cells)
	return &Row{table: t, cells: cells}
}

// Set stores a cell, registering the column on first use
func (r *Row) Set(column string, value interface{}) *Row {
	r.table.addColumn(column)
	r.cells[column] = value
	return r
}

// Columns returns the column labels in order
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Cell returns the raw cell value, nil when unset
func (t *Table) Cell(row int, column string) interface{} {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	return t.rows[row][column]
}

// Records renders every row as strings in column order
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.rows))
	for i := range t.rows {
		record := make([]string, len(t.columns))
		for j, c := range t.columns {
			record[j] = formatCell(t.rows[i][c])
		}
		records = append(records, record)
	}
	return records
}
