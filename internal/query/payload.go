package query

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/segmentio/encoding/json"
	"golang.org/x/text/unicode/norm"
)

// EncodePayload serializes v into JSON text ready to sit inside a
// JSON '...' clause.
//
// Any value encoding/json accepts is accepted (maps, slices, structs with
// json tags, json.RawMessage). Two keys of one object that normalize to
// the same form are rejected. The output is deterministic:
//   - object keys NFC normalized and sorted bytewise
//   - string values written byte for byte, HTML characters not escaped
//   - numbers kept in their original textual form
//   - single quotes doubled, so the text is one CQL string literal
func EncodePayload(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}

	var buf bytes.Buffer
	if err := writePayload(&buf, tree); err != nil {
		return "", err
	}
	return strings.ReplaceAll(buf.String(), "'", "''"), nil
}

func writePayload(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		buf.WriteString(val.String())
	case string:
		return writePayloadString(buf, val)
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writePayload(buf, elem); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make(map[string]string, len(val))
		for k := range val {
			nk := norm.NFC.String(k)
			if prev, ok := keys[nk]; ok {
				a, b := min(prev, k), max(prev, k)
				return fmt.Errorf("keys %q and %q are the same after NFC normalization", a, b)
			}
			keys[nk] = k
		}
		sorted := slices.Sorted(maps.Keys(keys))

		buf.WriteByte('{')
		for i, nk := range sorted {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writePayloadString(buf, nk); err != nil {
				return fmt.Errorf("key %q: %w", nk, err)
			}
			buf.WriteByte(':')
			if err := writePayload(buf, val[keys[nk]]); err != nil {
				return fmt.Errorf("%q: %w", nk, err)
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported payload value %T", v)
	}
	return nil
}

// writePayloadString writes s as a JSON string without HTML escaping.
func writePayloadString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder appends a newline.
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
