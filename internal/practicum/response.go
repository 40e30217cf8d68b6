package practicum

import (
	"bytes"
	"encoding/json"
)

// Homework is a single submission entry from the review API.
type Homework struct {
	Name   string `json:"homework_name"`
	Status string `json:"status"`
}

// Response is a validated review API payload.
// Homeworks may legitimately be empty: it means nothing changed since the
// cursor, not an error.
type Response struct {
	Homeworks   []Homework
	CurrentDate int64
}

// ValidateResponse shape-checks a raw API payload.
//
// The top level must be a JSON object carrying a "homeworks" list and an
// integer "current_date"; anything else is a *ShapeError naming the offending
// field. Missing keys and wrong-typed keys are checked explicitly so they are
// never confused with zero values.
func ValidateResponse(raw json.RawMessage) (*Response, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, &ShapeError{Reason: "not a JSON object"}
	}

	hwRaw, ok := top["homeworks"]
	if !ok {
		return nil, &ShapeError{Field: "homeworks", Reason: "is missing"}
	}
	// json.Unmarshal treats a literal null as a no-op, so it must be rejected
	// explicitly or a null list/timestamp would slip through as zero values
	// (and a null current_date would rewind the poll cursor to the epoch).
	if isJSONNull(hwRaw) {
		return nil, &ShapeError{Field: "homeworks", Reason: "is not a list"}
	}
	var homeworks []Homework
	if err := json.Unmarshal(hwRaw, &homeworks); err != nil {
		return nil, &ShapeError{Field: "homeworks", Reason: "is not a list"}
	}

	cdRaw, ok := top["current_date"]
	if !ok {
		return nil, &ShapeError{Field: "current_date", Reason: "is missing"}
	}
	if isJSONNull(cdRaw) {
		return nil, &ShapeError{Field: "current_date", Reason: "is not an integer"}
	}
	var currentDate int64
	if err := json.Unmarshal(cdRaw, &currentDate); err != nil {
		return nil, &ShapeError{Field: "current_date", Reason: "is not an integer"}
	}

	return &Response{Homeworks: homeworks, CurrentDate: currentDate}, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
