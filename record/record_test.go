package record_test

import (
	"testing"

	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/types"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) record.Schema {
	s, err := record.NewSchema(
		record.Field{Name: "NAME", Type: types.TypeText, Length: 5},
		record.Field{Name: "AGE", Type: types.TypeInteger},
		record.Field{Name: "ACTIVE", Type: types.TypeBoolean},
		record.Field{Name: "BORN", Type: types.TypeDate},
	)
	require.NoError(t, err)
	return s
}

func TestSchema(t *testing.T) {
	s := testSchema(t)

	t.Run("IndexOf", func(t *testing.T) {
		require.Equal(t, 0, s.IndexOf("NAME"))
		require.Equal(t, 1, s.IndexOf("age"))
		require.Equal(t, -1, s.IndexOf("missing"))
	})

	t.Run("Validate", func(t *testing.T) {
		_, err := record.NewSchema(record.Field{Name: "A", Type: types.TypeText}, record.Field{Name: "a", Type: types.TypeText})
		require.Error(t, err)

		_, err = record.NewSchema(record.Field{Name: "", Type: types.TypeText})
		require.Error(t, err)

		_, err = record.NewSchema(record.Field{Name: "A"})
		require.Error(t, err)
	})

	t.Run("Blank", func(t *testing.T) {
		r := s.Blank(7)
		require.Equal(t, 7, r.Index)
		require.False(t, r.Deleted)
		require.Equal(t, types.NewTextValue(""), r.Value(0))
		require.Equal(t, types.NewIntegerValue(0), r.Value(1))
		require.True(t, types.IsNull(r.Value(3)))
	})

	t.Run("Convert", func(t *testing.T) {
		v, err := s.Convert(1, types.NewTextValue("12"))
		require.NoError(t, err)
		require.Equal(t, types.NewIntegerValue(12), v)

		_, err = s.Convert(0, types.NewTextValue("too long"))
		require.Error(t, err)

		_, err = s.Convert(3, types.NewBooleanValue(true))
		require.Error(t, err)

		v, err = s.Convert(3, types.NewNullValue())
		require.NoError(t, err)
		require.True(t, types.IsNull(v))

		_, err = s.Convert(10, types.NewNullValue())
		require.Error(t, err)
	})
}

func TestRecord(t *testing.T) {
	r := record.Record{Index: 3, Values: []types.Value{types.NewTextValue("a"), types.NewIntegerValue(1)}}

	c := r.Clone()
	c.SetValue(0, types.NewTextValue("b"))
	require.Equal(t, types.NewTextValue("a"), r.Value(0))
	require.Equal(t, types.NewTextValue("b"), c.Value(0))

	// out of range accesses are ignored
	c.SetValue(5, types.NewTextValue("x"))
	require.True(t, types.IsNull(c.Value(5)))

	require.Equal(t, "{a, 1}", r.String())
	r.Deleted = true
	require.Equal(t, "*{a, 1}", r.String())
}
