/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package smoke

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errNullBody = errors.New("body is null")

type ParseStatus int

const (
	ParseOK ParseStatus = iota
	ParseMalformed
)

// Parsed is the result of decoding a response body.  Malformed bodies are not
// errors, each check decides what one means for its outcome.
type Parsed[T any] struct {
	Status ParseStatus
	Value  T
	Err    error
}

func (p Parsed[T]) OK() bool {
	return p.Status == ParseOK
}

// ParseJSON decodes a JSON body.  A literal null is malformed, as no check can
// do anything useful with one.
func ParseJSON[T any](body []byte) Parsed[T] {
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return Parsed[T]{Status: ParseMalformed, Err: errNullBody}
	}

	var value T

	if err := json.Unmarshal(body, &value); err != nil {
		return Parsed[T]{Status: ParseMalformed, Err: err}
	}

	return Parsed[T]{Status: ParseOK, Value: value}
}

// stringField returns a non-null field of a decoded object as a string.
func stringField(object map[string]any, key string) (string, bool) {
	value, ok := object[key]
	if !ok || value == nil {
		return "", false
	}

	if s, ok := value.(string); ok {
		return s, true
	}

	return formatValue(value), true
}

// formatValue renders a decoded JSON value for display.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64, bool:
		return fmt.Sprint(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}

		return string(data)
	}
}
