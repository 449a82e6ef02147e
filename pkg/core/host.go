package core

// HostNode is an opaque handle to an entity of the host tree.
type HostNode any

// Host is the mutable tree a Root renders into.
//
// The Root only calls AppendChild and RemoveChild while committing, in one
// uninterrupted pass. Nodes are created, and receive their initial props,
// while rendering but stay detached until their Placement commits.
type Host interface {
	// CreateNode returns a new detached node for tag.
	CreateNode(tag string) HostNode
	// CreateTextNode returns a new detached text node. Its content is
	// set through the NodeValueKey attribute.
	CreateTextNode() HostNode

	SetAttribute(node HostNode, key string, value any)
	// ClearAttribute resets key to its empty value.
	ClearAttribute(node HostNode, key string)

	AddEventListener(node HostNode, event string, handler any)
	RemoveEventListener(node HostNode, event string, handler any)

	// AppendChild attaches child as the last child of parent.
	AppendChild(parent, child HostNode)
	// RemoveChild detaches child from parent.
	RemoveChild(parent, child HostNode)
}
