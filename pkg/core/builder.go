package core

import (
	"fmt"
)

// El builds an Element. typ is an ElementType or a string (a host tag).
// Children may be Elements, []Element, strings, numbers, booleans or
// fmt.Stringers; everything that is not an Element is wrapped in a text
// element. Nil children and zero Elements are skipped.
func El(typ any, props Props, children ...any) Element {
	el := Element{Type: toType(typ), Props: props}
	if el.Props == nil {
		el.Props = Props{}
	}
	for _, child := range children {
		el.Children = appendChild(el.Children, child)
	}
	return el
}

// Text builds a text element.
func Text(value string) Element {
	return Element{Type: TextType, Props: Props{NodeValueKey: value}}
}

func toType(typ any) ElementType {
	switch t := typ.(type) {
	case ElementType:
		return t
	case string:
		return HostType(t)
	default:
		panic(fmt.Sprintf("core.El: unsupported element type %T", typ))
	}
}

func appendChild(children []Element, child any) []Element {
	switch c := child.(type) {
	case nil:
		return children
	case Element:
		if c.IsZero() {
			return children
		}
		return append(children, c)
	case []Element:
		for _, e := range c {
			children = appendChild(children, e)
		}
		return children
	case string:
		return append(children, Text(c))
	case fmt.Stringer:
		return append(children, Text(c.String()))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
		return append(children, Text(fmt.Sprint(c)))
	default:
		panic(fmt.Sprintf("core.El: unsupported child %T", child))
	}
}
