package router

import "strings"

// Pattern translates an Express-style template to a chi pattern:
// ":id" becomes "{id}" and "*" stays a trailing wildcard.
func Pattern(template string) string {
	segments := strings.Split(template, "/")
	for i, s := range segments {
		if name, ok := strings.CutPrefix(s, ":"); ok && name != "" {
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/")
}
