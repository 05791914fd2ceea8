package rockset

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// ToArrowBatch converts the result set into a single Arrow record batch.
//
// Object and array cells are carried as their JSON text; columns of an
// unrecognized type map to strings.
func (rs *ResultSet) ToArrowBatch() (arrow.Record, error) {
	rows, err := rs.ToValues()
	if err != nil {
		return nil, err
	}

	pool := memory.NewGoAllocator()
	b := array.NewRecordBuilder(pool, rs.Schema.toArrowSchema())
	defer b.Release()

	for _, row := range rows {
		for i, v := range row {
			if err := appendValue(b.Field(i), v); err != nil {
				return nil, fmt.Errorf("column %s: %w", rs.Schema[i].Name, err)
			}
		}
	}
	return b.NewRecord(), nil
}

func (s Schema) toArrowSchema() *arrow.Schema {
	fields := make([]arrow.Field, 0, len(s))
	for _, fs := range s {
		fields = append(fields, arrow.Field{
			Name:     fs.Name,
			Type:     fs.Type.arrowType(),
			Nullable: true,
		})
	}
	return arrow.NewSchema(fields, nil)
}

func (t DataType) arrowType() arrow.DataType {
	switch t {
	case IntDataType:
		return arrow.PrimitiveTypes.Int64
	case FloatDataType:
		return arrow.PrimitiveTypes.Float64
	case BooleanDataType:
		return arrow.FixedWidthTypes.Boolean
	case TimestampDataType:
		return arrow.FixedWidthTypes.Timestamp_us
	default:
		return arrow.BinaryTypes.String
	}
}

func appendValue(b array.Builder, v Value) error {
	if v == nil {
		b.AppendNull()
		return nil
	}

	switch b := b.(type) {
	case *array.Int64Builder:
		i, ok := v.(int64)
		if !ok {
			return fmt.Errorf("expected int64, got %T", v)
		}
		b.Append(i)
	case *array.Float64Builder:
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("expected float64, got %T", v)
		}
		b.Append(f)
	case *array.BooleanBuilder:
		bv, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
		b.Append(bv)
	case *array.TimestampBuilder:
		ts, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected time.Time, got %T", v)
		}
		b.Append(arrow.Timestamp(ts.UnixMicro()))
	case *array.StringBuilder:
		if s, ok := v.(string); ok {
			b.Append(s)
			return nil
		}
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		b.Append(string(data))
	default:
		return fmt.Errorf("unsupported builder type: %T", b)
	}
	return nil
}

// encodeRecordBatches encodes the given record batches into a base64 encoded byte slice.
func encodeRecordBatches(batches []arrow.Record) (payload []byte, err error) {
	if len(batches) == 0 {
		return nil, errors.New("cannot encode empty batches")
	}

	var buf bytes.Buffer
	defer func() {
		if err == nil {
			payload = buf.Bytes()
		}
	}()

	encoder := base64.NewEncoder(base64.StdEncoding, &buf)
	defer func() {
		err = errors.Join(err, encoder.Close())
	}()

	schema := batches[0].Schema()
	writer := ipc.NewWriter(encoder, ipc.WithSchema(schema))
	defer func() {
		err = errors.Join(err, writer.Close())
	}()

	for _, batch := range batches {
		if err := writer.Write(batch); err != nil {
			return nil, err
		}
	}
	return
}

// decodeRecordBatches decodes the given base64 encoded byte slice into record batches.
func decodeRecordBatches(data []byte) ([]arrow.Record, error) {
	decoder := base64.NewDecoder(base64.StdEncoding, bytes.NewReader(data))
	reader, err := ipc.NewReader(decoder, ipc.WithDelayReadSchema(true))
	if err != nil {
		return nil, err
	}

	batches := make([]arrow.Record, 0)
	for reader.Next() {
		batch := reader.Record()
		batch.Retain()
		batches = append(batches, batch)
	}
	return batches, nil
}

// MarshalArrow encodes the result set as a base64 Arrow IPC stream, for
// handing the rows to Arrow-native consumers.
func (rs *ResultSet) MarshalArrow() ([]byte, error) {
	batch, err := rs.ToArrowBatch()
	if err != nil {
		return nil, err
	}
	defer batch.Release()
	return encodeRecordBatches([]arrow.Record{batch})
}

// UnmarshalArrow decodes a base64 Arrow IPC stream produced by
// MarshalArrow into record batches.
func UnmarshalArrow(data []byte) ([]arrow.Record, error) {
	return decodeRecordBatches(data)
}
