package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Envelope is the top-level shape of every JSON document the CLI prints.
// Meta carries counts or hints; Data is the payload.
type Envelope struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// Write writes v wrapped in an Envelope.
func Write(w io.Writer, v any, meta any, pretty bool) error {
	return WriteJSON(w, Envelope{Data: v, Meta: meta}, pretty)
}

// WriteJSON writes strict JSON output for CLI commands.
//
// NOTE: Output stays strict JSON only. If you need to communicate how to
// fetch more data, use the meta object.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
