package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// EnteredUnit records which of the material's two units the user typed the
// quantity and price in. The other unit's quantity is derived via density.
type EnteredUnit int

const (
	EnteredUnitPrimary   EnteredUnit = 0
	EnteredUnitSecondary EnteredUnit = 1
)

func (u EnteredUnit) String() string {
	return [...]string{"primary", "secondary"}[u]
}

// ParseEnteredUnit parses a string into an EnteredUnit
func ParseEnteredUnit(s string) (EnteredUnit, error) {
	switch s {
	case "primary":
		return EnteredUnitPrimary, nil
	case "secondary":
		return EnteredUnitSecondary, nil
	}
	return 0, fmt.Errorf("unknown entered unit %q", s)
}

func (u EnteredUnit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *EnteredUnit) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*u = EnteredUnit(i)
		return nil
	}
	parsed, err := ParseEnteredUnit(str)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u EnteredUnit) Value() (driver.Value, error) {
	return int64(u), nil
}

func (u *EnteredUnit) Scan(value interface{}) error {
	if value == nil {
		*u = EnteredUnitPrimary
		return nil
	}
	switch v := value.(type) {
	case int64:
		*u = EnteredUnit(v)
	case int:
		*u = EnteredUnit(v)
	}
	return nil
}
