package rockset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Value stores the contents of a single cell from a query result.
type Value any

// ResultSet stores the result of a query execution.
type ResultSet struct {
	// QueryID identifies the execution on the server.
	QueryID string
	// Schema describes the columns of the result set.
	Schema Schema
	// TotalRows is the number of rows in the result set.
	TotalRows int64
	// Stats carries server-side execution statistics.
	Stats *QueryStats

	rows []json.RawMessage
}

func (resp *queryResponse) toResultSet() *ResultSet {
	var schema Schema
	for _, f := range resp.ColumnFields {
		schema = append(schema, &FieldSchema{Name: f.Name, Type: f.Type})
	}
	return &ResultSet{
		QueryID:   resp.QueryID,
		Schema:    schema,
		TotalRows: int64(len(resp.Results)),
		Stats:     resp.Stats,
		rows:      resp.Results,
	}
}

// ToMaps reads the result set and returns each row as a map from column
// name to its raw decoded value.
func (rs *ResultSet) ToMaps() ([]map[string]any, error) {
	maps := make([]map[string]any, 0, len(rs.rows))
	for _, raw := range rs.rows {
		var row map[string]any
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, err
		}
		maps = append(maps, row)
	}
	return maps, nil
}

// ToValues reads the result set and returns the rows as a 2D array of
// values, i.e., rows of value lists ordered by the schema, with each
// cell converted per its declared data type.
//
// A field absent from a row decodes as NULL; a cell that does not match
// its declared type is an error.
func (rs *ResultSet) ToValues() ([][]Value, error) {
	var valueLists [][]Value
	for _, raw := range rs.rows {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var row map[string]any
		if err := dec.Decode(&row); err != nil {
			return nil, err
		}

		var values []Value
		for _, fs := range rs.Schema {
			v, ok := row[fs.Name]
			if !ok || v == nil {
				values = append(values, nil)
				continue
			}
			val, err := convertValue(v, fs.Type)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", fs.Name, err)
			}
			values = append(values, val)
		}
		valueLists = append(valueLists, values)
	}
	return valueLists, nil
}

func convertValue(v any, typ DataType) (Value, error) {
	switch typ {
	case StringDataType:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return s, nil
	case IntDataType:
		n, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", v)
		}
		return n.Int64()
	case FloatDataType:
		n, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", v)
		}
		return n.Float64()
	case BooleanDataType:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", v)
		}
		return b, nil
	case TimestampDataType:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected timestamp string, got %T", v)
		}
		return time.Parse(time.RFC3339Nano, s)
	case ObjectDataType, ArrayDataType:
		return v, nil
	case NullDataType:
		return nil, nil
	default:
		return nil, fmt.Errorf("unrecognized type: %s", typ)
	}
}

// Schema describes the fields in a query result.
type Schema []*FieldSchema

// FieldSchema describes a single field.
type FieldSchema struct {
	// Name is the field name.
	Name string
	// Type is the field data type.
	Type DataType
}

// DataType is the type of field.
type DataType string

const (
	// StringDataType is a string data type.
	StringDataType DataType = "string"
	// IntDataType is an int data type.
	IntDataType DataType = "int"
	// FloatDataType is a float data type.
	FloatDataType DataType = "float"
	// BooleanDataType is a bool data type.
	BooleanDataType DataType = "bool"
	// TimestampDataType is a timestamp data type.
	TimestampDataType DataType = "timestamp"
	// ObjectDataType is a JSON object data type.
	ObjectDataType DataType = "object"
	// ArrayDataType is a JSON array data type.
	ArrayDataType DataType = "array"
	// NullDataType is the type of a column with only NULL values.
	NullDataType DataType = "null"
)
