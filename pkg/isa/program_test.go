package isa

import "testing"

func TestParseSimple(t *testing.T) {
	p, err := Parse("++-.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Len() != 4 {
		t.Fatalf("expected 4 instructions, got %d", p.Len())
	}
}

func TestParseWhitespaceIgnored(t *testing.T) {
	p, err := Parse("+ +\n- \r.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Len() != 4 {
		t.Fatalf("expected 4 instructions, got %d", p.Len())
	}
}

func TestParseTabIsError(t *testing.T) {
	if _, err := Parse("+\t+"); err == nil {
		t.Fatalf("expected parse error: tab is not recognised whitespace")
	}
}

func TestParseUnknownCharacter(t *testing.T) {
	_, err := Parse("+x")
	if err == nil {
		t.Fatalf("expected parse error for unknown character")
	}
}

func TestParseUnbalancedBrackets(t *testing.T) {
	cases := []string{"[", "]", "[[]", "[]]"}
	for _, src := range cases {
		if _, err := Parse(src); err == nil {
			t.Fatalf("expected unbalanced-bracket error for %q", src)
		}
	}
}

func TestBracketResolution(t *testing.T) {
	// "[----]" -> indices: 0:[ 1:- 2:- 3:- 4:- 5:]
	p, err := Parse("[----]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	start := p.Instructions[0]
	end := p.Instructions[5]
	if start.OpA != 6 {
		t.Fatalf("LoopStart OpA = %d, want 6 (one past ])", start.OpA)
	}
	if end.OpA != 1 {
		t.Fatalf("LoopEnd OpA = %d, want 1 (one past [)", end.OpA)
	}
}

func TestRoundTripParse(t *testing.T) {
	src := ">++++++++[<+++++++++>-]<."
	p1, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rendered := p1.Render()
	p2, err := Parse(rendered)
	if err != nil {
		t.Fatalf("unexpected error reparsing: %v", err)
	}
	if p1.Len() != p2.Len() {
		t.Fatalf("length mismatch after round trip")
	}
	for i := range p1.Instructions {
		if p1.Instructions[i] != p2.Instructions[i] {
			t.Fatalf("instruction %d mismatch: %v != %v", i, p1.Instructions[i], p2.Instructions[i])
		}
	}
}

func TestBracketIdempotence(t *testing.T) {
	src := "[+[-]+]"
	p1, _ := Parse(src)
	p2, _ := Parse(src)
	for i := range p1.Instructions {
		if p1.Instructions[i] != p2.Instructions[i] {
			t.Fatalf("instruction %d differs between parses: %v != %v", i, p1.Instructions[i], p2.Instructions[i])
		}
	}
}
