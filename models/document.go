package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Document is an opaque JSON value. The bytes received are the bytes stored and
// the bytes returned; nothing re-encodes them.
type Document json.RawMessage

// MarshalJSON emits the stored bytes verbatim.
func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON keeps a copy of the raw bytes.
func (d *Document) UnmarshalJSON(data []byte) error {
	if d == nil {
		return fmt.Errorf("models.Document: UnmarshalJSON on nil pointer")
	}
	*d = append((*d)[0:0], data...)
	return nil
}

// Value implements driver.Valuer.
func (d Document) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return string(d), nil
}

// Scan implements sql.Scanner.
func (d *Document) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = nil
	case []byte:
		*d = append(Document(nil), v...)
	case string:
		*d = Document(v)
	default:
		return fmt.Errorf("models.Document: cannot scan %T", value)
	}
	return nil
}

// GormDataType reports the generic gorm type.
func (Document) GormDataType() string {
	return "json"
}

// GormDBDataType picks a column type that keeps the submitted text intact:
// postgres json (jsonb would normalize), mysql longtext (its JSON type normalizes too).
func (Document) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "json"
	case "mysql":
		return "longtext"
	default:
		return "text"
	}
}
