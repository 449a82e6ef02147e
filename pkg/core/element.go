package core

import (
	"fmt"
	"strings"
)

// ElementType identifies what an Element renders. It is either a HostType
// (a node created by the Host) or a *ComponentType.
//
// Types are compared with ==: host types by tag, components by identity.
type ElementType interface {
	typeName() string
}

// HostType is the tag of a node created by the Host.
type HostType string

func (t HostType) typeName() string { return string(t) }

// TextType is the host type of text leaves.
const TextType HostType = "TEXT_ELEMENT"

const (
	// ChildrenKey is the reserved prop name for child elements. It is never
	// applied to host nodes.
	ChildrenKey = "children"
	// NodeValueKey holds the content of a text element.
	NodeValueKey = "nodeValue"
)

// RenderFunc renders a component. The returned Element is the component's
// only child; the zero Element renders nothing.
type RenderFunc func(ctx *RenderContext, props Props) Element

// ComponentType is a function component. Create it once with Component and
// reuse the pointer: two component elements match only if their types are
// the same *ComponentType.
type ComponentType struct {
	Name   string
	Render RenderFunc
}

func (c *ComponentType) typeName() string { return c.Name }

// Component registers a named function component.
func Component(name string, render RenderFunc) *ComponentType {
	return &ComponentType{Name: name, Render: render}
}

// Props maps attribute and event listener names to values.
//
// Keys starting with "on" followed by an upper-case letter are event
// listeners ("onClick" listens to "click"); every other key except
// ChildrenKey is a plain attribute.
type Props map[string]any

// Get returns the value for key, or nil.
func (p Props) Get(key string) any {
	if p == nil {
		return nil
	}
	return p[key]
}

// String returns the string value for key, or "" if it is absent or not a string.
func (p Props) String(key string) string {
	s, _ := p.Get(key).(string)
	return s
}

// Element is an immutable description of one node of the desired tree.
// Children are kept beside Props; they are the "children" prop of the node.
type Element struct {
	Type     ElementType
	Props    Props
	Children []Element
}

// IsZero reports whether e describes nothing.
func (e Element) IsZero() bool {
	return e.Type == nil
}

// TypeName returns the tag or component name of e.
func (e Element) TypeName() string {
	return typeName(e.Type)
}

// String returns a compact description such as div#main or "text".
func (e Element) String() string {
	if e.Type == nil {
		return "<nil>"
	}
	if e.Type == TextType {
		return fmt.Sprintf("%q", e.Props.String(NodeValueKey))
	}
	var sb strings.Builder
	sb.WriteString(e.TypeName())
	if id := e.Props.String("id"); id != "" {
		sb.WriteString("#")
		sb.WriteString(id)
	}
	if len(e.Children) > 0 {
		fmt.Fprintf(&sb, "[%d]", len(e.Children))
	}
	return sb.String()
}

func typeName(t ElementType) string {
	if t == nil {
		return "root"
	}
	return t.typeName()
}
