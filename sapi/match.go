package sapi

import (
	"strings"
)

func splitPath(s string) []string {
	return strings.Split(s, "/")
}

// isPlaceholder reports whether a template segment is a {name} placeholder.
// One character segments consisting of a lone brace are treated as literals.
func isPlaceholder(segment string) bool {
	return len(segment) >= 2 && segment[0] == '{' && segment[len(segment)-1] == '}'
}

// matchEndpoint matches the URI segments remaining after the group prefix
// against an endpoint's path template and extracts placeholder values.
//
// An endpoint with an empty template is the group root: it matches only an
// empty remainder or a single empty trailing segment (URI ended with "/").
// Any other template matches when the segment counts are equal, or when the
// URI has exactly one extra empty trailing segment. Literal segments compare
// case-sensitively.
func matchEndpoint(endpoint *Endpoint, uriParts []string) (PathParams, bool) {
	if endpoint.Path == "" {
		if len(uriParts) == 0 || (len(uriParts) == 1 && uriParts[0] == "") {
			return PathParams{}, true
		}

		return nil, false
	}

	templateParts := splitPath(endpoint.Path)

	if len(uriParts) != len(templateParts) &&
		!(len(uriParts) == len(templateParts)+1 && uriParts[len(uriParts)-1] == "") {
		return nil, false
	}

	params := PathParams{}

	for i, uriPart := range uriParts {
		templatePart := ""
		if i < len(templateParts) {
			templatePart = templateParts[i]
		}

		if isPlaceholder(templatePart) {
			params[templatePart[1:len(templatePart)-1]] = uriPart
			continue
		}

		if uriPart != templatePart {
			return nil, false
		}
	}

	return params, true
}
