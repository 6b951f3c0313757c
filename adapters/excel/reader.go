package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"classci/internal"
	"classci/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader reads labeled samples from Excel or CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader picks the format from the file extension; anything other
// than .csv is read as a workbook
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: internal.DefaultLogger}
}

// WithLogger sets the logger used while reading
func (r *DataReader) WithLogger(l *internal.Logger) *DataReader {
	r.logger = l
	return r
}

// ReadData reads the whole file into a Table
func (r *DataReader) ReadData() (*Table, error) {
	r.logger.Debug("reading %s file %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.InvalidInput(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath))
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	default:
		return r.readExcelData()
	}
}

// readExcelData reads the first sheet of the workbook
func (r *DataReader) readExcelData() (*Table, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidInput("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	r.logger.Debug("sheet %s read in %.2fms (%d rows)", sheets[0], float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

func (r *DataReader) readCSVData() (*Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV file")
	}
	return r.processRows(rows)
}

// processRows turns raw rows into a Table keyed by the trimmed header row
func (r *DataReader) processRows(rows [][]string) (*Table, error) {
	if len(rows) < 2 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s file must have a header row and at least one data row",
			strings.ToUpper(r.fileType)))
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	data := make([]Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		if blankRow(raw) {
			continue
		}
		row := make(Row, len(headers))
		for j, cell := range raw {
			if j < len(headers) {
				row[headers[j]] = strings.TrimSpace(cell)
			}
		}
		data = append(data, row)
	}

	r.logger.Debug("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(data))
	return &Table{Headers: headers, Rows: data}, nil
}

func blankRow(raw []string) bool {
	for _, cell := range raw {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Column returns the raw values of one column; every row must have one
func (t *Table) Column(name string) ([]string, error) {
	if !t.HasColumn(name) {
		return nil, errors.InvalidInput(fmt.Sprintf("column %q not found (have %s)", name, strings.Join(t.Headers, ", ")))
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		v := row[name]
		if v == "" {
			return nil, errors.InvalidInput(fmt.Sprintf("column %q is empty in data row %d", name, i+1))
		}
		values[i] = v
	}
	return values, nil
}

// BinaryColumn parses one column as integers. true/false and yes/no map to
// 1/0; other integers pass through so the estimator can report them.
func (t *Table) BinaryColumn(name string) ([]int, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	values := make([]int, len(raw))
	for i, v := range raw {
		parsed, err := parseBinary(v)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("column %q data row %d: %v", name, i+1, err))
		}
		values[i] = parsed
	}
	return values, nil
}

func parseBinary(v string) (int, error) {
	switch strings.ToLower(v) {
	case "true", "yes", "y", "t":
		return 1, nil
	case "false", "no", "n", "f":
		return 0, nil
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not an integer", v)
	}
	return int(f), nil
}

// ReadSample reads aligned binary label and prediction columns
func ReadSample(path, labelColumn, predictionColumn string) ([]int, []int, error) {
	table, err := NewDataReader(path).ReadData()
	if err != nil {
		return nil, nil, err
	}
	labels, err := table.BinaryColumn(labelColumn)
	if err != nil {
		return nil, nil, err
	}
	predictions, err := table.BinaryColumn(predictionColumn)
	if err != nil {
		return nil, nil, err
	}
	return labels, predictions, nil
}

// ReadClassSample reads aligned class label and predicted class columns
func ReadClassSample(path, labelColumn, predictionColumn string) ([]string, []string, error) {
	table, err := NewDataReader(path).ReadData()
	if err != nil {
		return nil, nil, err
	}
	labels, err := table.Column(labelColumn)
	if err != nil {
		return nil, nil, err
	}
	predictions, err := table.Column(predictionColumn)
	if err != nil {
		return nil, nil, err
	}
	return labels, predictions, nil
}
