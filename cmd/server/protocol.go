// Package main provides a TCP server exposing the diary data layer.
package main

import (
	"encoding/json"

	"github.com/jfranmatheu/EverydayFODMAP-sub001/core"
)

// Request is one operation from the client, one JSON object per line.
// Op is "run" (execute for effect), "all" (select many), "one" (select
// first) or "wipe" (hard reset, no query).
type Request struct {
	Op     string `json:"op"`
	Query  string `json:"query,omitempty"`
	Params []any  `json:"params,omitempty"`
}

// Response is the server's reply to a request.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Type    string          `json:"type,omitempty"` // "exec", "rows", "row", "auth", "wipe"
	Result  json.RawMessage `json:"result,omitempty"`
}

// ExecResponse reports a mutation's effect.
type ExecResponse struct {
	GeneratedID  int64 `json:"generated_id,omitempty"`
	RowsAffected int   `json:"rows_affected"`
}

// RowsResponse carries selected records.
type RowsResponse struct {
	Rows  []core.Record `json:"rows"`
	Count int           `json:"count"`
}

// RowResponse carries a single record, null when nothing matched.
type RowResponse struct {
	Row core.Record `json:"row"`
}

// AuthResponse reports the result of an AUTH command.
type AuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	User          string `json:"user,omitempty"`
	ExpiresIn     int    `json:"expires_in,omitempty"`
}

// EncodeResponse serializes a Response to JSON with a newline.
func EncodeResponse(resp Response) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DecodeRequest parses a JSON request from a byte slice.
func DecodeRequest(data []byte) (Request, error) {
	var req Request
	err := json.Unmarshal(data, &req)
	return req, err
}
