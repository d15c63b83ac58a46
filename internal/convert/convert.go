// Package convert maps a collection file between its JSON, CSV, and YAML
// on-disk forms. Field names are preserved; values coming out of CSV are
// opportunistically parsed as int, then float, then left as text.
package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// Record is one row of a collection, shape unknown to the converter.
type Record = map[string]any

// Format identifies an on-disk collection encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// FormatForPath derives the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".yml", ".yaml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("cannot tell the format of %q from its extension", path)
	}
}

// Convert reads the source collection and writes it at the destination in
// the destination's format.
func Convert(src, dst string) error {
	srcFormat, err := FormatForPath(src)
	if err != nil {
		return err
	}
	dstFormat, err := FormatForPath(dst)
	if err != nil {
		return err
	}

	records, fields, err := Load(src, srcFormat)
	if err != nil {
		return err
	}
	return Save(dst, dstFormat, records, fields)
}

// Load reads a collection in the given format. The returned field list
// preserves the order of first appearance across all records.
func Load(path string, format Format) ([]Record, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	switch format {
	case FormatJSON:
		return parseJSON(path, data)
	case FormatCSV:
		return parseCSV(path, data)
	case FormatYAML:
		return parseYAML(path, data)
	default:
		return nil, nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Save writes a collection in the given format.
func Save(path string, format Format, records []Record, fields []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	switch format {
	case FormatJSON:
		return saveJSON(path, records, fields)
	case FormatCSV:
		return saveCSV(path, records, fields)
	case FormatYAML:
		return saveYAML(path, records)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// parseJSON walks the array with jsoniter's iterator so field order is kept
// as it appears in the document.
func parseJSON(path string, data []byte) ([]Record, []string, error) {
	it := jsoniter.ParseBytes(jsoniter.ConfigCompatibleWithStandardLibrary, data)

	var records []Record
	var fields []string
	seen := map[string]bool{}

	for it.ReadArray() {
		rec := Record{}
		for field := it.ReadObject(); field != ""; field = it.ReadObject() {
			rec[field] = it.Read()
			if !seen[field] {
				seen[field] = true
				fields = append(fields, field)
			}
		}
		records = append(records, rec)
	}
	if it.Error != nil && !errors.Is(it.Error, io.EOF) {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, it.Error)
	}
	return records, fields, nil
}

func parseCSV(path string, data []byte) ([]Record, []string, error) {
	r := csv.NewReader(strings.NewReader(string(data)))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	fields := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{}
		for i, field := range fields {
			if i < len(row) {
				rec[field] = coerce(row[i])
			}
		}
		records = append(records, rec)
	}
	return records, fields, nil
}

func parseYAML(path string, data []byte) ([]Record, []string, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var fields []string
	seen := map[string]bool{}
	for _, rec := range records {
		for field := range rec {
			if !seen[field] {
				seen[field] = true
				fields = append(fields, field)
			}
		}
	}
	return records, fields, nil
}

// indentedJSON writes with the collections' 4-space indent.
var indentedJSON = jsoniter.Config{IndentionStep: 4}.Froze()

// saveJSON writes the records field by field so the output keeps the field
// order instead of the alphabetical order map marshaling would impose.
func saveJSON(path string, records []Record, fields []string) error {
	if len(records) == 0 {
		return os.WriteFile(path, []byte("[]"), 0600)
	}

	stream := indentedJSON.BorrowStream(nil)
	defer indentedJSON.ReturnStream(stream)

	stream.WriteArrayStart()
	for i, rec := range records {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectStart()
		first := true
		for _, field := range fields {
			v, ok := rec[field]
			if !ok {
				continue
			}
			if !first {
				stream.WriteMore()
			}
			first = false
			stream.WriteObjectField(field)
			stream.WriteVal(v)
		}
		stream.WriteObjectEnd()
	}
	stream.WriteArrayEnd()
	if stream.Error != nil {
		return fmt.Errorf("encoding JSON: %w", stream.Error)
	}
	return os.WriteFile(path, stream.Buffer(), 0600)
}

func saveCSV(path string, records []Record, fields []string) error {
	if len(records) == 0 {
		return fmt.Errorf("nothing to convert: the collection is empty")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return err
	}
	for _, rec := range records {
		row := make([]string, len(fields))
		for i, field := range fields {
			row[i] = formatValue(rec[field])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func saveYAML(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// coerce parses a CSV cell as int, then float, then leaves it as text.
func coerce(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// formatValue renders a value for a CSV cell. Whole floats lose their
// decimal point so a JSON→CSV→JSON trip keeps integers integral.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
