package utils

import (
	json "github.com/bytedance/sonic"
)

// JsonString encodes obj on one line; encoding errors yield "{}".
func JsonString(obj any) string {
	data, err := json.Marshal(obj)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// JsonIndent is JsonString with two-space indentation, for log output.
func JsonIndent(obj any) string {
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
