package alfafreq

import (
	"strconv"
	"testing"
)

func TestFlattenNested(t *testing.T) {
	root := PopulationNode{
		BiosampleID: "SAMN10492705",
		Name:        "Total",
		Subs: []PopulationNode{
			{BiosampleID: "SAMN10492695", Name: "European"},
			{BiosampleID: "SAMN10492703", Name: "African", Subs: []PopulationNode{
				{BiosampleID: "SAMN10492696", Name: "African Others"},
			}},
		},
	}

	flat := Flatten(root)
	expected := PopulationMap{
		"SAMN10492705": "Total",
		"SAMN10492695": "European",
		"SAMN10492703": "African",
		"SAMN10492696": "African Others",
	}

	if len(flat) != len(expected) {
		t.Fatalf("Expected %d entries, got %d: %v", len(expected), len(flat), flat)
	}
	for k, v := range expected {
		if flat[k] != v {
			t.Errorf("%s: expected %q, got %q", k, v, flat[k])
		}
	}
}

func TestFlattenLaterVisitWins(t *testing.T) {
	root := PopulationNode{
		BiosampleID: "X",
		Name:        "first",
		Subs: []PopulationNode{
			{BiosampleID: "X", Name: "second"},
		},
	}

	if name := Flatten(root)["X"]; name != "second" {
		t.Fatalf("Expected the child to overwrite the parent, got %q", name)
	}
}

func TestFlattenDeepTree(t *testing.T) {
	// Build a chain far deeper than anyone would recurse through comfortably.
	depth := 100000
	root := PopulationNode{BiosampleID: "0", Name: "0"}
	cur := &root
	for i := 1; i < depth; i++ {
		cur.Subs = []PopulationNode{{BiosampleID: strconv.Itoa(i), Name: "n"}}
		cur = &cur.Subs[0]
	}

	if flat := Flatten(root); len(flat) != depth {
		t.Fatalf("Expected %d entries, got %d", depth, len(flat))
	}
}

func TestPopulationMapName(t *testing.T) {
	p := PopulationMap{"SAMN10492695": "European"}
	if n := p.Name("SAMN10492695"); n != "European" {
		t.Errorf("Expected European, got %q", n)
	}
	if n := p.Name("SAMN0"); n != "SAMN0" {
		t.Errorf("Expected fallback to the id, got %q", n)
	}
}
