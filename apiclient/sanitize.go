package apiclient

import "encoding/json"

// Sanitize converts the invoice to its wire map with record-internal
// markers stripped: "_id" and "__v" at the top level, per item, and inside
// each item's data record. The service assigns those on its side.
func Sanitize(inv any) (map[string]any, error) {
	buf, err := json.Marshal(inv)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(buf, &payload); err != nil {
		return nil, err
	}

	delete(payload, "_id")
	delete(payload, "__v")

	items, ok := payload["items"].([]any)
	if !ok {
		return payload, nil
	}
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		delete(item, "_id")
		delete(item, "__v")
		if data, ok := item["data"].(map[string]any); ok {
			delete(data, "_id")
			delete(data, "__v")
		}
	}
	return payload, nil
}
