package mcp

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/mvp-joe/code-skeleton/internal/signature"
)

// SkeletonRequest holds code_skeleton arguments.
type SkeletonRequest struct {
	Path      string `json:"path"`
	Language  string `json:"language,omitempty"`
	StartLine *int   `json:"start_line,omitempty"`
	EndLine   *int   `json:"end_line,omitempty"`
}

// SignaturesRequest holds code_signatures arguments.
type SignaturesRequest struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
}

// SignaturesResponse is the JSON body returned by code_signatures.
type SignaturesResponse struct {
	Path     string           `json:"path"`
	Entities signature.Forest `json:"entities"`
	Total    int              `json:"total"`
}

// argumentGetter is satisfied by mcp.CallToolRequest.
type argumentGetter interface {
	GetArguments() map[string]any
}

// bindArguments decodes request arguments into target using json tags.
// Some clients send every value as a string, so numeric and boolean strings
// are coerced.
func bindArguments[T any](request argumentGetter, target *T) error {
	var stringHook mapstructure.DecodeHookFuncType = func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		raw := strings.TrimSpace(data.(string))
		if raw == "" {
			return data, nil
		}

		switch {
		case t.Kind() == reflect.Bool:
			if raw == "true" || raw == "false" {
				return raw == "true", nil
			}
		case t.Kind() >= reflect.Int && t.Kind() <= reflect.Float64:
			var n json.Number
			if err := json.Unmarshal([]byte(raw), &n); err == nil {
				return n, nil
			}
		}
		return data, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       stringHook,
		Result:           target,
		TagName:          "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(request.GetArguments())
}
