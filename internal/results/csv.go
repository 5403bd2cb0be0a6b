package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteCSV serializes a finalized table, header row first, rows in insertion
// order. Null metrics and absent metadata serialize as empty cells.
func WriteCSV(table *Table, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	cells := make([]string, len(table.Columns))
	for i, row := range table.Rows {
		for j, col := range table.Columns {
			cells[j] = row[col]
		}
		if err := writer.Write(cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile serializes a finalized table to a file path.
func WriteCSVFile(table *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(table, f); err != nil {
		return err
	}
	return f.Close()
}

// ReadCSV reconstructs a table from serialized form. The first record is the
// column set; every following record becomes one row.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	columns, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	table := &Table{Columns: columns}
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(table.Rows)+1, err)
		}

		row := make(map[string]string, len(columns))
		for i, col := range columns {
			row[col] = cells[i]
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// ReadCSVFile reconstructs a table from a CSV file path.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}
