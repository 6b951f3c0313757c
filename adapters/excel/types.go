package excel

// Row maps a column header to the raw cell text
type Row map[string]string

// Table is a header row plus data rows from one sheet or CSV file
type Table struct {
	Headers []string
	Rows    []Row
}

// HasColumn reports whether the table has the named header
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}
