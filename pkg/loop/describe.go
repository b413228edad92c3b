package loop

import (
	"fmt"
	"strings"
)

// Describe returns a deterministic, human-readable dump of the handle's
// configuration: role, state, registered event handlers, the circuit body in
// execution order and the reactor factory bindings. Intended for debugging
// and startup logs.
func (h *Handle) Describe() string {
	var b strings.Builder

	fmt.Fprintf(&b, "loop %q [%s]\n", h.eng.Role(), h.State())

	b.WriteString("events:\n")
	registered := h.eng.Events().Registered()
	for _, ev := range AllEvents() {
		mark := "-"
		if _, ok := registered[ev]; ok {
			mark = "handler"
		}
		fmt.Fprintf(&b, "  %-20s %s\n", string(ev), mark)
	}

	b.WriteString("circuit:\n")
	names := h.eng.Actions().Names()
	flags := h.eng.Actions().NotifyFlags()
	if len(names) == 0 {
		b.WriteString("  (empty)\n")
	}
	for i, name := range names {
		mark := ""
		if flags[i] {
			mark = " +reactor"
		}
		fmt.Fprintf(&b, "  %2d. %s%s\n", i+1, name, mark)
	}

	b.WriteString("reactors:\n")
	fmt.Fprintf(&b, "  event:  %s\n", factoryLabel(h.eng.Reactors().EventFactorySet()))
	fmt.Fprintf(&b, "  action: %s\n", factoryLabel(h.eng.Reactors().ActionFactorySet()))

	return b.String()
}

func factoryLabel(custom bool) string {
	if custom {
		return "custom"
	}
	return "default"
}
