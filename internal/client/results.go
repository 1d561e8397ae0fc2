package client

import (
	"encoding/json"

	"avkngifts-api/internal/model"
)

// BalanceResult carries both the verbatim upstream reply and, on success,
// the decoded payload.
type BalanceResult struct {
	StatusCode int
	Body       []byte
	Balance    model.BalanceResponse
}

// OK reports whether the upstream replied with a 2xx status.
func (r *BalanceResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// GiftResult carries both the verbatim upstream reply and, on success, the
// decoded payload.
type GiftResult struct {
	StatusCode int
	Body       []byte
	Response   model.GiftResponse
}

// OK reports whether the upstream replied with a 2xx status.
func (r *GiftResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Detail extracts the {"detail": "..."} message upstream errors carry,
// falling back to the generic error field.
func Detail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Error
}
