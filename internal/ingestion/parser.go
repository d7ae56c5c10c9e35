package ingestion

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned when an uploaded file is not supported.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrParse is returned when an upload is syntactically malformed.
	ErrParse = errors.New("malformed upload")

	byteOrderMark = []byte{0xEF, 0xBB, 0xBF}
)

// Record is one parsed row, raw field name to raw string value.
type Record map[string]string

// parseRecords turns an uploaded file into an ordered sequence of records.
// The parser knows nothing about entity semantics and touches no storage.
func parseRecords(fileName string, payload []byte) ([]Record, error) {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".csv":
		return parseCSV(payload)
	case ".json":
		return parseJSON(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// parseCSV reads the first line as the header and every later line as one
// record. Values are trimmed of surrounding whitespace; ragged rows are
// padded to the header width.
func parseCSV(payload []byte) ([]Record, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read csv: %v", ErrParse, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: csv file has no header row", ErrParse)
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				rec[header] = strings.TrimSpace(row[i])
			} else {
				rec[header] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseJSON expects an array of objects. Values arrive well-typed so no
// trimming is applied.
func parseJSON(payload []byte) ([]Record, error) {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()

	var rows []map[string]any
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: failed to decode json: %v", ErrParse, err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(row))
		for key, value := range row {
			rec[key] = stringifyJSONValue(value)
		}
		records = append(records, rec)
	}
	return records, nil
}

// stringifyJSONValue renders a decoded JSON scalar as the string the field
// helpers expect. Numbers keep their literal form, so no float artifacts.
func stringifyJSONValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
