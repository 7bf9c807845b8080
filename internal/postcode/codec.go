package postcode

import (
	"database/sql/driver"
	"fmt"
)

// MarshalText implements encoding.TextMarshaler. The zero value encodes as
// empty text, which UnmarshalText rejects; use a *Postcode for optional
// fields.
func (p Postcode) MarshalText() ([]byte, error) {
	return []byte(p.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler by running Parse.
func (p *Postcode) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value implements driver.Valuer. The zero value is stored as NULL.
func (p Postcode) Value() (driver.Value, error) {
	if p.IsZero() {
		return nil, nil
	}
	return p.value, nil
}

// Scan implements sql.Scanner by running Parse over the column value.
// NULL scans to the zero value.
func (p *Postcode) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = Postcode{}
		return nil
	case string:
		return p.UnmarshalText([]byte(v))
	case []byte:
		return p.UnmarshalText(v)
	default:
		return fmt.Errorf("postcode: cannot scan %T", src)
	}
}
