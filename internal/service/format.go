package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const indent = "  "

// FormatPayload re-emits a valid JSON document with a two-space indent.
// Object keys keep their input order, numbers keep their literal text and
// strings are written without escaping HTML or non-ASCII characters.
// The result ends with a newline.
func FormatPayload(payload []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var buf bytes.Buffer
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if err := formatValue(dec, &buf, tok, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func formatValue(dec *json.Decoder, buf *bytes.Buffer, tok json.Token, depth int) error {
	switch v := tok.(type) {
	case json.Delim:
		return formatContainer(dec, buf, v, depth)
	case string:
		return writeString(buf, v)
	case json.Number:
		buf.WriteString(v.String())
	case bool:
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %v", tok)
	}
	return nil
}

func formatContainer(dec *json.Decoder, buf *bytes.Buffer, open json.Delim, depth int) error {
	isObject := open == '{'
	buf.WriteByte(byte(open))

	n := 0
	for ; dec.More(); n++ {
		if n > 0 {
			buf.WriteByte(',')
		}
		newline(buf, depth+1)

		if isObject {
			key, err := dec.Token()
			if err != nil {
				return err
			}
			s, ok := key.(string)
			if !ok {
				return fmt.Errorf("unexpected object key %v", key)
			}
			if err := writeString(buf, s); err != nil {
				return err
			}
			buf.WriteString(": ")
		}

		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if err := formatValue(dec, buf, tok, depth+1); err != nil {
			return err
		}
	}

	// closing delimiter
	if _, err := dec.Token(); err != nil {
		return err
	}
	if n > 0 {
		newline(buf, depth)
	}
	if isObject {
		buf.WriteByte('}')
	} else {
		buf.WriteByte(']')
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	return nil
}

func newline(buf *bytes.Buffer, depth int) {
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}
