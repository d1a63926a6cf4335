package alfafreq

// PopulationNode is one node of the ALFA population metadata tree. Subs holds
// nested sub-populations and may be empty.
type PopulationNode struct {
	BiosampleID string           `json:"biosample_id"`
	Name        string           `json:"name"`
	Subs        []PopulationNode `json:"subs,omitempty"`
}

// PopulationMap maps a biosample identifier to its display name.
type PopulationMap map[string]string

// Name returns the display name for biosampleID, or biosampleID itself if it
// is not known.
func (p PopulationMap) Name(biosampleID string) string {
	if name, exists := p[biosampleID]; exists && name != "" {
		return name
	}

	return biosampleID
}

// Flatten walks every tree in roots depth-first, parents before children, and
// records each node's name. When two nodes share a biosample identifier, the
// one visited later wins.
func Flatten(roots ...PopulationNode) PopulationMap {
	out := make(PopulationMap)

	// Explicit stack so that deep trees cannot exhaust the goroutine stack.
	// Nodes are pushed in reverse so they pop in document order.
	stack := make([]*PopulationNode, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, &roots[i])
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		out[node.BiosampleID] = node.Name

		for i := len(node.Subs) - 1; i >= 0; i-- {
			stack = append(stack, &node.Subs[i])
		}
	}

	return out
}
