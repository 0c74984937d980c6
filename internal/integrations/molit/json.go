package molit

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSONParser reads the registry's JSON envelope
type JSONParser struct{}

func (JSONParser) ContentType() string { return "application/json" }

type jsonEnvelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items json.RawMessage `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// Items returns response.body.items.item as a list. The registry sends a bare
// object when there is exactly one trade and an empty string when there are
// none.
func (JSONParser) Items(body []byte) ([]map[string]string, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %v", err)
	}
	if !resultOK(env.Response.Header.ResultCode) {
		return nil, fmt.Errorf("result code %s: %s", env.Response.Header.ResultCode, env.Response.Header.ResultMsg)
	}

	raw := bytes.TrimSpace(env.Response.Body.Items)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}
	var items struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse items: %v", err)
	}

	item := bytes.TrimSpace(items.Item)
	switch {
	case len(item) == 0:
		return nil, nil
	case item[0] == '[':
		var list []json.RawMessage
		if err := json.Unmarshal(item, &list); err != nil {
			return nil, fmt.Errorf("failed to parse item list: %v", err)
		}
		out := make([]map[string]string, 0, len(list))
		for _, entry := range list {
			m, err := decodeItem(entry)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
		return out, nil
	case item[0] == '{':
		m, err := decodeItem(item)
		if err != nil {
			return nil, err
		}
		return []map[string]string{m}, nil
	default:
		return nil, nil
	}
}

// decodeItem flattens one item object to strings; numbers keep their
// literal text.
func decodeItem(raw json.RawMessage) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("failed to parse item: %v", err)
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		switch v := v.(type) {
		case string:
			out[k] = v
		case json.Number:
			out[k] = v.String()
		case nil:
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out, nil
}
