package core

import (
	"maps"
	"reflect"
	"slices"
	"strings"
)

const eventPrefix = "on"

// isEvent reports whether key names an event listener: "on" followed by
// an upper-case ASCII letter.
func isEvent(key string) bool {
	return len(key) > len(eventPrefix) &&
		strings.HasPrefix(key, eventPrefix) &&
		key[len(eventPrefix)] >= 'A' && key[len(eventPrefix)] <= 'Z'
}

func isAttribute(key string) bool {
	return key != ChildrenKey && !isEvent(key)
}

// eventName maps "onClick" to "click".
func eventName(key string) string {
	return strings.ToLower(key[len(eventPrefix):])
}

// changed compares prop values. Function values are never equal, so
// listeners are always rebound.
func changed(prev, next any) bool {
	return !reflect.DeepEqual(prev, next)
}

// applyProps patches node from prev to next. Keys are visited in sorted
// order so the sequence of host calls is deterministic.
func applyProps(h Host, node HostNode, prev, next Props) {
	prevKeys := slices.Sorted(maps.Keys(prev))
	nextKeys := slices.Sorted(maps.Keys(next))

	for _, key := range prevKeys {
		if !isEvent(key) {
			continue
		}
		if nv, ok := next[key]; !ok || changed(prev[key], nv) {
			h.RemoveEventListener(node, eventName(key), prev[key])
		}
	}
	for _, key := range prevKeys {
		if !isAttribute(key) {
			continue
		}
		if _, ok := next[key]; !ok {
			h.ClearAttribute(node, key)
		}
	}
	for _, key := range nextKeys {
		if !isAttribute(key) {
			continue
		}
		if pv, ok := prev[key]; !ok || changed(pv, next[key]) {
			h.SetAttribute(node, key, next[key])
		}
	}
	for _, key := range nextKeys {
		if !isEvent(key) {
			continue
		}
		if pv, ok := prev[key]; !ok || changed(pv, next[key]) {
			h.AddEventListener(node, eventName(key), next[key])
		}
	}
}
