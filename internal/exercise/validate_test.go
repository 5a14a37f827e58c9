package exercise

import "testing"

func textSub(s string) Submission {
	return Submission{ActivityID: "a", QuestionID: "q", Value: Value{Text: s}}
}

func TestValidate_Exact(t *testing.T) {
	key := AnswerKey{Kind: KindExact, Value: "was found"}

	tests := []struct {
		input string
		want  Verdict
	}{
		{"was found", Correct},
		{" was found ", Correct},
		{"WAS FOUND", Correct},
		{"was   found", Incorrect},
		{"\twas found\n", Correct},
		{"was find", Incorrect},
		{"", Incorrect},
		{"   ", Incorrect},
	}

	for _, tc := range tests {
		got := Validate(textSub(tc.input), key).Verdict
		if got != tc.want {
			t.Errorf("Validate(%q, exact %q) = %v, want %v", tc.input, key.Value, got, tc.want)
		}
	}
}

func TestValidate_TrimAndCaseProperty(t *testing.T) {
	answers := []string{"x", "Hogwarts", "film director", "actor/actress", "café"}
	for _, a := range answers {
		key := AnswerKey{Kind: KindExact, Value: a}
		variants := []string{" " + a + " ", upper(a), "  " + upper(a)}
		for _, v := range variants {
			if got := Validate(textSub(v), key).Verdict; got != Correct {
				t.Errorf("Validate(%q, exact %q) = %v, want correct", v, a, got)
			}
		}
	}
}

func TestNormalizeKeepsInnerWhitespace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Science Fiction\t", "science fiction"},
		{"science  fiction", "science  fiction"},
		{"CAFE\u0301", "caf\u00e9"},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	key := AnswerKey{Kind: KindExact, Value: "science fiction"}
	if got := Validate(textSub("science  fiction"), key).Verdict; got != Incorrect {
		t.Errorf("doubled inner space = %v, want incorrect", got)
	}
}

func upper(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - 'a' + 'A'
		}
	}
	return string(out)
}

func TestValidate_UnicodeNormalization(t *testing.T) {
	// Decomposed "é" (e + combining acute) matches the composed form.
	key := AnswerKey{Kind: KindExact, Value: "caf\u00e9"}
	if got := Validate(textSub("CAFE\u0301"), key).Verdict; got != Correct {
		t.Errorf("decomposed input = %v, want correct", got)
	}
}

func TestValidate_OneOf(t *testing.T) {
	key := AnswerKey{Kind: KindOneOf, Values: []string{"actor", "actress", "actor/actress"}}

	tests := []struct {
		input string
		want  Verdict
	}{
		{"actor", Correct},
		{"Actress", Correct},
		{"actor/actress", Correct},
		{"director", Incorrect},
	}
	for _, tc := range tests {
		if got := Validate(textSub(tc.input), key).Verdict; got != tc.want {
			t.Errorf("Validate(%q, one_of) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestValidate_Structural(t *testing.T) {
	key := AnswerKey{Kind: KindStructural, Tag: "C"}

	if got := Validate(Submission{Value: Value{Tag: "C"}}, key).Verdict; got != Correct {
		t.Errorf("matching tag = %v, want correct", got)
	}
	if got := Validate(Submission{Value: Value{Tag: "D"}}, key).Verdict; got != Incorrect {
		t.Errorf("other tag = %v, want incorrect", got)
	}
	if got := Validate(Submission{Value: Value{}}, key).Verdict; got != Incorrect {
		t.Errorf("empty tag = %v, want incorrect", got)
	}
	// Structural matching compares tags exactly.
	if got := Validate(Submission{Value: Value{Tag: "c"}}, key).Verdict; got != Incorrect {
		t.Errorf("lowercase tag = %v, want incorrect", got)
	}
}

func TestValidate_Parts(t *testing.T) {
	key := AnswerKey{Kind: KindParts, Parts: []AnswerKey{
		{Kind: KindExact, Value: "were"},
		{Kind: KindExact, Value: "would get"},
	}}

	tests := []struct {
		name  string
		parts []string
		want  Verdict
		each  []Verdict
	}{
		{"both right", []string{"were", "would get"}, Correct, []Verdict{Correct, Correct}},
		{"first wrong", []string{"was", "would get"}, Incorrect, []Verdict{Incorrect, Correct}},
		{"second wrong", []string{"were", "get"}, Incorrect, []Verdict{Correct, Incorrect}},
		{"short", []string{"were"}, Incorrect, []Verdict{Correct, Incorrect}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Validate(Submission{Value: Value{Parts: tc.parts}}, key)
			if out.Verdict != tc.want {
				t.Errorf("Verdict = %v, want %v", out.Verdict, tc.want)
			}
			for i, v := range tc.each {
				if out.Parts[i] != v {
					t.Errorf("Parts[%d] = %v, want %v", i, out.Parts[i], v)
				}
			}
		})
	}
}

func TestValidate_BoolGridPartialCredit(t *testing.T) {
	key := AnswerKey{Kind: KindBoolGrid, Cells: []Cell{
		{ID: "rosy", Label: "Rosy", Want: false},
		{ID: "jon", Label: "Jon", Want: true},
	}}

	out := Validate(Submission{Value: Value{Cells: map[string]bool{"rosy": true, "jon": true}}}, key)
	if out.Verdict != Incorrect {
		t.Errorf("Verdict = %v, want incorrect", out.Verdict)
	}
	if out.Cells["jon"] != Correct {
		t.Errorf("jon = %v, want correct", out.Cells["jon"])
	}
	if out.Cells["rosy"] != Incorrect {
		t.Errorf("rosy = %v, want incorrect", out.Cells["rosy"])
	}
	if got := out.CorrectCells(); got != 1 {
		t.Errorf("CorrectCells() = %d, want 1", got)
	}

	// Unchecked cells count as false.
	out = Validate(Submission{Value: Value{Cells: map[string]bool{"jon": true}}}, key)
	if out.Verdict != Correct {
		t.Errorf("Verdict = %v, want correct", out.Verdict)
	}
}

func TestValidate_Contains(t *testing.T) {
	key := AnswerKey{Kind: KindContains, Values: []string{"fantasy", "adventure"}}

	tests := []struct {
		input string
		want  Verdict
	}{
		{"Fantasy", Correct},
		{"It is an adventure film", Correct},
		{"comedy", Incorrect},
		{"", Incorrect},
	}
	for _, tc := range tests {
		if got := Validate(textSub(tc.input), key).Verdict; got != tc.want {
			t.Errorf("Validate(%q, contains) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestValidate_MinLengthAndWords(t *testing.T) {
	length := AnswerKey{Kind: KindMinLength, Min: 11}
	if got := Validate(textSub("too short"), length).Verdict; got != Incorrect {
		t.Errorf("short opinion = %v, want incorrect", got)
	}
	if got := Validate(textSub("  I loved every minute  "), length).Verdict; got != Correct {
		t.Errorf("long opinion = %v, want correct", got)
	}

	words := AnswerKey{Kind: KindMinWords, Min: 4}
	if got := Validate(textSub("Alien is scary"), words).Verdict; got != Incorrect {
		t.Errorf("three words = %v, want incorrect", got)
	}
	if got := Validate(textSub("Alien is a horror film"), words).Verdict; got != Correct {
		t.Errorf("five words = %v, want correct", got)
	}
}

func TestValidate_IsPure(t *testing.T) {
	key := AnswerKey{Kind: KindExact, Value: "screen"}
	sub := textSub("Screen")
	first := Validate(sub, key)
	for i := 0; i < 3; i++ {
		if got := Validate(sub, key); got.Verdict != first.Verdict {
			t.Fatalf("call %d = %v, want %v", i, got.Verdict, first.Verdict)
		}
	}
	if sub.Value.Text != "Screen" {
		t.Errorf("submission mutated: %q", sub.Value.Text)
	}
}

func TestValue_MissingParts(t *testing.T) {
	v := Value{Parts: []string{"were", ""}}
	missing := v.MissingParts(2)
	if len(missing) != 1 || missing[0] != 2 {
		t.Errorf("MissingParts(2) = %v, want [2]", missing)
	}
	if got := (Value{}).MissingParts(2); len(got) != 2 {
		t.Errorf("MissingParts on empty = %v, want [1 2]", got)
	}
}
