package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ReceiptType distinguishes incoming (purchase) from outgoing (export) receipts
type ReceiptType int

const (
	ReceiptTypePurchase ReceiptType = 0
	ReceiptTypeExport   ReceiptType = 1
)

func (t ReceiptType) String() string {
	return [...]string{"purchase", "export"}[t]
}

// Prefix returns the receipt-number prefix for this type
// (PN = phiếu nhập / purchase, PX = phiếu xuất / export)
func (t ReceiptType) Prefix() string {
	return [...]string{"PN", "PX"}[t]
}

// ParseReceiptType parses a string into a ReceiptType
func ParseReceiptType(s string) (ReceiptType, error) {
	switch s {
	case "purchase":
		return ReceiptTypePurchase, nil
	case "export":
		return ReceiptTypeExport, nil
	}
	return 0, fmt.Errorf("unknown receipt type %q", s)
}

func (t ReceiptType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ReceiptType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = ReceiptType(i)
		return nil
	}
	parsed, err := ParseReceiptType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t ReceiptType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *ReceiptType) Scan(value interface{}) error {
	if value == nil {
		*t = ReceiptTypePurchase
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = ReceiptType(v)
	case int:
		*t = ReceiptType(v)
	}
	return nil
}
