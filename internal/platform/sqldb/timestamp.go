package sqldb

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// timestampLayouts are the text forms SQLite drivers store timestamps in.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// timestamp scans TIMESTAMP columns from either driver into UTC time.
type timestamp struct {
	dst *time.Time
}

func scanTime(dst *time.Time) timestamp {
	return timestamp{dst: dst}
}

// Scan implements sql.Scanner.
func (t timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t.dst = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		*t.dst = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (t timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t.dst = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// dbTime normalizes a time for storage.
func dbTime(t time.Time) driver.Value {
	return t.UTC()
}
