package db

import (
	"database/sql"
	"time"
)

// NullString maps the empty string to NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullStringValue returns the string value or empty string if not valid.
func NullStringValue(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

// NullMillis stores a positive duration as milliseconds and anything else
// as NULL.
func NullMillis(d time.Duration) sql.NullInt64 {
	return sql.NullInt64{Int64: d.Milliseconds(), Valid: d > 0}
}

// MillisValue converts a nullable millisecond column back to a duration.
func MillisValue(n sql.NullInt64) time.Duration {
	if !n.Valid {
		return 0
	}
	return time.Duration(n.Int64) * time.Millisecond
}
