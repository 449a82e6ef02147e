package demo

import (
	"fmt"

	"github.com/go-drift/fiber/pkg/host"
)

// Step is one simulated user interaction: event fired on the node whose id
// attribute is Target.
type Step struct {
	Event   string `yaml:"event"`
	Target  string `yaml:"target"`
	Payload any    `yaml:"payload,omitempty"`
}

func (s Step) String() string {
	if s.Payload != nil {
		return fmt.Sprintf("%s #%s %q", s.Event, s.Target, fmt.Sprint(s.Payload))
	}
	return fmt.Sprintf("%s #%s", s.Event, s.Target)
}

// Script drives App through both components.
var Script = []Step{
	{Event: "click", Target: "inc"},
	{Event: "click", Target: "step"},
	{Event: "click", Target: "inc"},
	{Event: "input", Target: "draft", Payload: "write tests"},
	{Event: "click", Target: "add"},
	{Event: "input", Target: "draft", Payload: "ship it"},
	{Event: "click", Target: "add"},
	{Event: "click", Target: "todo-0"},
	{Event: "click", Target: "clear"},
}

// Apply fires step on the first node under container with a matching id.
func Apply(container *host.Node, step Step) error {
	nodes := host.Find(container, func(n *host.Node) bool {
		return n.Attr("id") == step.Target
	})
	if len(nodes) == 0 {
		return fmt.Errorf("%s: no node with id %q", step, step.Target)
	}
	if !host.Dispatch(nodes[0], step.Event, step.Payload) {
		return fmt.Errorf("%s: %s has no %s listener", step, nodes[0], step.Event)
	}
	return nil
}
