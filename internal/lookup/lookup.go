// Package lookup resolves dotted property paths on untyped values. It backs
// the object parser's remap bindings and the cross-field rule helpers.
package lookup

import (
	"strconv"
	"strings"
)

// Get navigates v by the dotted path ("address.email", "items.2.sku"),
// descending maps by key and sequences by index. The boolean result
// distinguishes "absent" from a present nil.
func Get(v any, path string) (any, bool) {
	if path == "" {
		return v, true
	}
	cur := v
	for _, seg := range strings.Split(path, ".") {
		switch c := cur.(type) {
		case map[string]any:
			nv, ok := c[seg]
			if !ok {
				return nil, false
			}
			cur = nv
		case map[any]any:
			nv, ok := c[seg]
			if !ok {
				return nil, false
			}
			cur = nv
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(c) {
				return nil, false
			}
			cur = c[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Set assigns val at the dotted path inside m, creating intermediate maps for
// missing segments. Existing non-map intermediates are replaced.
func Set(m map[string]any, path string, val any) {
	segs := strings.Split(path, ".")
	cur := m
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
	cur[segs[len(segs)-1]] = val
}
