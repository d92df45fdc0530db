package pebblestore

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/buger/jsonparser"
	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/store"
	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/errors"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"
)

const (
	metaKey      = "m"
	recordPrefix = 'r'

	// record flags, as stored in the first byte of a DBF record.
	flagLive    byte = ' '
	flagDeleted byte = '*'
)

func recordKey(index int) []byte {
	var key [9]byte
	key[0] = recordPrefix
	binary.BigEndian.PutUint64(key[1:], uint64(index))
	return key[:]
}

// meta is the header of a table.
type meta struct {
	ID      uuid.UUID      `json:"id"`
	Fields  []record.Field `json:"fields"`
	Count   int            `json:"count"`
	Updated string         `json:"updated"`
}

func newMeta(schema record.Schema) meta {
	return meta{
		ID:      uuid.New(),
		Fields:  schema.Fields,
		Updated: types.NewDateValue(time.Now()).String(),
	}
}

func (m *meta) schema() record.Schema {
	return record.Schema{Fields: m.Fields}
}

func (m *meta) lastUpdate() time.Time {
	t, err := types.ParseDate(m.Updated)
	if err != nil {
		return time.Time{}
	}

	return t
}

func (m *meta) touch() {
	m.Updated = types.NewDateValue(time.Now()).String()
}

func encodeMeta(m *meta) ([]byte, error) {
	return json.Marshal(m)
}

func decodeMeta(data []byte) (*meta, error) {
	var m meta
	err := json.Unmarshal(data, &m)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "invalid metadata"), store.ErrCorrupted)
	}

	err = m.schema().Validate()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "invalid metadata"), store.ErrCorrupted)
	}
	if m.Count < 0 {
		return nil, errors.Mark(errors.Errorf("invalid record count %d", m.Count), store.ErrCorrupted)
	}

	return &m, nil
}

// encodeRecord writes the deletion flag followed by the values
// as a JSON array.
func encodeRecord(r record.Record) ([]byte, error) {
	var buf bytes.Buffer

	if r.Deleted {
		buf.WriteByte(flagDeleted)
	} else {
		buf.WriteByte(flagLive)
	}

	enc := jsontext.NewEncoder(&buf)
	if err := enc.WriteToken(jsontext.ArrayStart); err != nil {
		return nil, err
	}
	for i := range r.Values {
		b, err := r.Value(i).MarshalJSON()
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", i)
		}
		if err := enc.WriteValue(b); err != nil {
			return nil, errors.Wrapf(err, "value %d", i)
		}
	}
	if err := enc.WriteToken(jsontext.ArrayEnd); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func decodeRecord(schema record.Schema, index int, data []byte) (record.Record, error) {
	r := schema.Blank(index)

	if len(data) < 1 {
		return r, errors.Mark(errors.Errorf("record %d is empty", index), store.ErrCorrupted)
	}

	switch data[0] {
	case flagLive:
	case flagDeleted:
		r.Deleted = true
	default:
		return r, errors.Mark(errors.Errorf("record %d has an invalid flag %q", index, data[0]), store.ErrCorrupted)
	}

	var i int
	var verr error
	_, err := jsonparser.ArrayEach(data[1:], func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if verr != nil {
			return
		}
		if err != nil {
			verr = err
			return
		}
		if i >= schema.Len() {
			verr = errors.Errorf("too many values")
			return
		}

		v, err := decodeValue(schema.Fields[i].Type, dataType, value)
		if err != nil {
			verr = errors.Wrapf(err, "field %q", schema.Fields[i].Name)
			return
		}

		r.Values[i] = v
		i++
	})
	if err == nil {
		err = verr
	}
	if err != nil {
		return r, errors.Mark(errors.Wrapf(err, "record %d", index), store.ErrCorrupted)
	}

	return r, nil
}

func decodeValue(tp types.Type, dataType jsonparser.ValueType, data []byte) (types.Value, error) {
	if dataType == jsonparser.Null {
		return types.NewNullValue(), nil
	}

	switch tp {
	case types.TypeText:
		if dataType != jsonparser.String {
			break
		}
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, err
		}
		return types.NewTextValue(s), nil
	case types.TypeNumeric:
		if dataType != jsonparser.Number {
			break
		}
		f, err := jsonparser.ParseFloat(data)
		if err != nil {
			return nil, err
		}
		return types.NewNumericValue(f), nil
	case types.TypeInteger:
		if dataType != jsonparser.Number {
			break
		}
		n, err := jsonparser.ParseInt(data)
		if err != nil {
			return nil, err
		}
		return types.NewIntegerValue(n), nil
	case types.TypeBoolean:
		if dataType != jsonparser.Boolean {
			break
		}
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return nil, err
		}
		return types.NewBooleanValue(b), nil
	case types.TypeDate:
		if dataType != jsonparser.String {
			break
		}
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, err
		}
		t, err := types.ParseDate(s)
		if err != nil {
			return nil, err
		}
		return types.NewDateValue(t), nil
	}

	return nil, errors.Errorf("cannot decode %s as %s", dataType, tp)
}
