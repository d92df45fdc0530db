package types_test

import (
	"math"
	"testing"
	"time"

	"github.com/chaisql/dbfgrid/types"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want types.Type
		fail bool
	}{
		{"C", types.TypeText, false},
		{"text", types.TypeText, false},
		{"N", types.TypeNumeric, false},
		{"f", types.TypeNumeric, false},
		{"I", types.TypeInteger, false},
		{"L", types.TypeBoolean, false},
		{"logical", types.TypeBoolean, false},
		{"D", types.TypeDate, false},
		{" date ", types.TypeDate, false},
		{"M", 0, true},
		{"", 0, true},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			tp, err := types.ParseType(test.in)
			if test.fail {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.want, tp)
		})
	}
}

func TestTypeText(t *testing.T) {
	for _, tp := range []types.Type{types.TypeText, types.TypeNumeric, types.TypeInteger, types.TypeBoolean, types.TypeDate} {
		b, err := tp.MarshalText()
		require.NoError(t, err)

		var got types.Type
		require.NoError(t, got.UnmarshalText(b))
		require.Equal(t, tp, got)
	}
}

func TestZero(t *testing.T) {
	require.Equal(t, types.NewTextValue(""), types.TypeText.Zero())
	require.Equal(t, types.NewNumericValue(0), types.TypeNumeric.Zero())
	require.Equal(t, types.NewIntegerValue(0), types.TypeInteger.Zero())
	require.Equal(t, types.NewBooleanValue(false), types.TypeBoolean.Zero())
	require.True(t, types.IsNull(types.TypeDate.Zero()))
}

func TestCastAs(t *testing.T) {
	date := types.NewDateValue(time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name   string
		v      types.Value
		target types.Type
		want   types.Value
		fail   bool
	}{
		{"text to numeric", types.NewTextValue(" 10.5 "), types.TypeNumeric, types.NewNumericValue(10.5), false},
		{"text to integer", types.NewTextValue("42"), types.TypeInteger, types.NewIntegerValue(42), false},
		{"text float to integer", types.NewTextValue("42.9"), types.TypeInteger, types.NewIntegerValue(42), false},
		{"bad text to integer", types.NewTextValue("foo"), types.TypeInteger, nil, true},
		{"huge text to integer", types.NewTextValue("1e30"), types.TypeInteger, nil, true},
		{"overflowing text to integer", types.NewTextValue("9223372036854775808"), types.TypeInteger, nil, true},
		{"NaN text to integer", types.NewTextValue("NaN"), types.TypeInteger, nil, true},
		{"max text to integer", types.NewTextValue("9223372036854775807"), types.TypeInteger, types.NewIntegerValue(math.MaxInt64), false},
		{"text to boolean", types.NewTextValue("Y"), types.TypeBoolean, types.NewBooleanValue(true), false},
		{"unknown boolean", types.NewTextValue("maybe"), types.TypeBoolean, nil, true},
		{"text to date", types.NewTextValue("2021-03-04"), types.TypeDate, date, false},
		{"compact text to date", types.NewTextValue("20210304"), types.TypeDate, date, false},
		{"blank text to date", types.NewTextValue("  "), types.TypeDate, types.NewNullValue(), false},
		{"numeric to integer", types.NewNumericValue(3.7), types.TypeInteger, types.NewIntegerValue(3), false},
		{"numeric to text", types.NewNumericValue(3.5), types.TypeText, types.NewTextValue("3.5"), false},
		{"numeric to date", types.NewNumericValue(3.5), types.TypeDate, nil, true},
		{"integer to numeric", types.NewIntegerValue(3), types.TypeNumeric, types.NewNumericValue(3), false},
		{"boolean to text", types.NewBooleanValue(true), types.TypeText, types.NewTextValue("T"), false},
		{"boolean to date", types.NewBooleanValue(true), types.TypeDate, nil, true},
		{"date to text", date, types.TypeText, types.NewTextValue("2021-03-04"), false},
		{"null to integer", types.NewNullValue(), types.TypeInteger, types.NewNullValue(), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.v.CastAs(test.target)
			if test.fail {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, types.Equal(test.want, got), "want %v, got %v", test.want, got)
		})
	}
}

func TestNewValue(t *testing.T) {
	v, err := types.NewValue("a")
	require.NoError(t, err)
	require.Equal(t, types.NewTextValue("a"), v)

	v, err = types.NewValue(12)
	require.NoError(t, err)
	require.Equal(t, types.NewIntegerValue(12), v)

	v, err = types.NewValue(nil)
	require.NoError(t, err)
	require.True(t, types.IsNull(v))

	v, err = types.NewValue(time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "2020-01-02", v.String())

	_, err = types.NewValue([]int{1})
	require.Error(t, err)
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		v    types.Value
		want string
	}{
		{types.NewTextValue(`a"b`), `"a\"b"`},
		{types.NewNumericValue(1.5), `1.5`},
		{types.NewIntegerValue(-3), `-3`},
		{types.NewBooleanValue(true), `true`},
		{types.NewDateValue(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)), `"1999-12-31"`},
		{types.NewNullValue(), `null`},
	}

	for _, test := range tests {
		b, err := test.v.MarshalJSON()
		require.NoError(t, err)
		require.Equal(t, test.want, string(b))
	}
}
