package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iho/fxreport/internal/domain"
)

// envelope covers the success and error shapes the proxy is known to
// produce. Which field is populated depends on the upstream driver.
type envelope struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Error     string            `json:"error"`
	Data      []json.RawMessage `json:"data"`
	Recordset []json.RawMessage `json:"recordset"`
	Results   []json.RawMessage `json:"results"`
}

// Normalize parses a raw gateway response body into an ordered row
// sequence. It accepts a bare array or one of the data/recordset/
// results envelopes; error envelopes become an *AppError and anything
// unrecognized becomes a *NormalizeError.
func Normalize(body []byte) ([]domain.Row, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &NormalizeError{Message: "empty response body"}
	}

	if trimmed[0] == '[' {
		return decodeRows(trimmed)
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, &NormalizeError{Message: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if env.Status == "error" || env.Error != "" {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = "unspecified upstream error"
		}
		return nil, &AppError{Message: msg}
	}

	for _, raw := range [][]json.RawMessage{env.Data, env.Recordset, env.Results} {
		if raw != nil {
			return decodeRawRows(raw)
		}
	}

	return nil, &NormalizeError{Message: "no recognized result field in response"}
}

func decodeRows(data []byte) ([]domain.Row, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rows []domain.Row
	if err := dec.Decode(&rows); err != nil {
		return nil, &NormalizeError{Message: fmt.Sprintf("invalid row array: %v", err)}
	}
	if rows == nil {
		rows = []domain.Row{}
	}
	return rows, nil
}

func decodeRawRows(raw []json.RawMessage) ([]domain.Row, error) {
	rows := make([]domain.Row, 0, len(raw))
	for i, r := range raw {
		dec := json.NewDecoder(bytes.NewReader(r))
		dec.UseNumber()

		var row domain.Row
		if err := dec.Decode(&row); err != nil {
			return nil, &NormalizeError{Message: fmt.Sprintf("invalid row at index %d: %v", i, err)}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
