package extractor

import (
	"fmt"
	"strings"

	"github.com/Jeffail/gabs"
)

// Settings maps a setting key to its decoded JSON definition. Definitions
// are kept as opaque decoded values; only the differ looks inside them.
type Settings map[string]interface{}

// ParseError reports input that is not well-formed JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing configuration JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractionError reports a query that did not resolve to an object.
// A query landing on a scalar, array or missing path is an error rather
// than an empty mapping, so a moved settings file never reads as "no
// settings found".
type ExtractionError struct {
	Query  string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("query %q: %s", e.Query, e.Reason)
}

// Extract parses data as JSON and projects out the settings object the
// query points at. Queries use jq-style dotted paths ("contributes.configuration.properties");
// a leading dot is accepted. An empty query or "." selects the whole document.
func Extract(data []byte, query string) (Settings, error) {
	doc, err := gabs.ParseJSON(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	target := doc
	if path := normalizeQuery(query); path != "" {
		if !doc.ExistsP(path) {
			return nil, &ExtractionError{Query: query, Reason: "path does not exist in document"}
		}
		target = doc.Path(path)
	}

	obj, ok := target.Data().(map[string]interface{})
	if !ok {
		return nil, &ExtractionError{
			Query:  query,
			Reason: fmt.Sprintf("resolved to %s, expected an object", jsonKind(target.Data())),
		}
	}

	settings := make(Settings, len(obj))
	for key, value := range obj {
		settings[key] = value
	}

	return settings, nil
}

func normalizeQuery(query string) string {
	q := strings.TrimSpace(query)
	return strings.TrimPrefix(q, ".")
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case string:
		return "a string"
	case []interface{}:
		return "an array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
