package types

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dromara/carbon/v2"
)

// DateLayout is the textual representation of dates.
const DateLayout = "2006-01-02"

// compactDateLayout is how dBase files store dates.
const compactDateLayout = "20060102"

var _ Value = NewDateValue(time.Time{})

// DateValue is a calendar date, without time of day.
type DateValue time.Time

// NewDateValue returns a date value. The time of day is dropped and the
// date is normalized to UTC.
func NewDateValue(x time.Time) DateValue {
	y, m, d := x.Date()
	return DateValue(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (v DateValue) V() any {
	return time.Time(v)
}

func (v DateValue) Type() Type {
	return TypeDate
}

func (v DateValue) String() string {
	return time.Time(v).Format(DateLayout)
}

func (v DateValue) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(v.String())), nil
}

func (v DateValue) CastAs(target Type) (Value, error) {
	switch target {
	case TypeDate:
		return v, nil
	case TypeText:
		return NewTextValue(v.String()), nil
	}

	return nil, errors.Errorf("cannot cast %s as %s", v.Type(), target)
}

// ParseDate parses a date written either as YYYYMMDD or in any layout
// understood by carbon.
func ParseDate(s string) (time.Time, error) {
	var c *carbon.Carbon
	if len(s) == len(compactDateLayout) {
		c = carbon.ParseByLayout(s, compactDateLayout, "UTC")
	}
	if c == nil || c.Error != nil {
		c = carbon.Parse(s, "UTC")
	}
	if c.Error != nil {
		return time.Time{}, errors.Newf("invalid date %q", s)
	}

	return time.Time(NewDateValue(c.StdTime())), nil
}
