// Package output renders entries and statistics for the console in one of
// three formats: an aligned table, JSON or YAML.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the accepted format names.
var Formats = []string{FormatTable, FormatJSON, FormatYAML}

// maxCell truncates long free-text columns in tables.
const maxCell = 40

// Formatter writes data to w.
type Formatter interface {
	Write(w io.Writer, data any) error
}

// NewFormatter returns the formatter for format. Empty means table.
func NewFormatter(format string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatTable:
		return &TableFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// TableFormatter prints slices of structs as columns and single structs as
// "Field: value" lines. Headers come from json tag names; fields tagged
// `table:"-"` are skipped.
type TableFormatter struct{}

func (f *TableFormatter) Write(w io.Writer, data any) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			fmt.Fprintln(tw, "Nothing selected.")
			return flush(tw, &buf, w)
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice:
		if v.Len() == 0 {
			fmt.Fprintln(tw, "No entries found.")
			break
		}
		elem := v.Type().Elem()
		if elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(tw, v.Index(i).Interface())
			}
			break
		}
		cols := columns(elem)
		headers := make([]string, len(cols))
		for i, c := range cols {
			headers[i] = strings.ToUpper(c.name)
		}
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
		for i := 0; i < v.Len(); i++ {
			row := reflect.Indirect(v.Index(i))
			vals := make([]string, len(cols))
			for j, c := range cols {
				vals[j] = truncate(fmt.Sprint(row.Field(c.index).Interface()))
			}
			fmt.Fprintln(tw, strings.Join(vals, "\t"))
		}
	case reflect.Struct:
		for _, c := range columns(v.Type()) {
			fmt.Fprintf(tw, "%s:\t%v\n", c.label, v.Field(c.index).Interface())
		}
	default:
		fmt.Fprintln(tw, data)
	}

	return flush(tw, &buf, w)
}

func flush(tw *tabwriter.Writer, buf *bytes.Buffer, w io.Writer) error {
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

type column struct {
	index int
	name  string
	label string
}

func columns(t reflect.Type) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Tag.Get("table") == "-" {
			continue
		}
		name := sf.Name
		if tag, _, _ := strings.Cut(sf.Tag.Get("json"), ","); tag != "" && tag != "-" {
			name = tag
		}
		cols = append(cols, column{index: i, name: name, label: sf.Name})
	}
	return cols
}

func truncate(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= maxCell {
		return s
	}
	r := []rune(s)
	return string(r[:maxCell-3]) + "..."
}

// JSONFormatter writes indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Write(w io.Writer, data any) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("format json: %w", err)
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// YAMLFormatter writes YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Write(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("format yaml: %w", err)
	}
	return enc.Close()
}
