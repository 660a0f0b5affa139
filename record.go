package listservice

import "time"

// TimeFormat is the fixed textual timestamp format used for created_at and
// updated_at attributes: ISO-8601 UTC with microsecond precision and a
// literal Z suffix.
const TimeFormat = "2006-01-02T15:04:05.000000Z"

// Record is one stored list: identifier, ordered items, derived item count,
// and creation/update timestamps. The identifier is globally unique and
// immutable after creation. created_at never changes once set; updated_at is
// refreshed on every write.
type Record struct {
	ListID    string   `json:"list_id" dynamodbav:"list_id"`
	Items     []string `json:"items" dynamodbav:"items"`
	Count     int      `json:"count" dynamodbav:"count"`
	CreatedAt string   `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt string   `json:"updated_at" dynamodbav:"updated_at"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}
