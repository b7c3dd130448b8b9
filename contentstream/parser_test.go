package contentstream

import (
	"errors"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func mustParse(t *testing.T, input string) []Operation {
	t.Helper()
	ops, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return ops
}

func TestParseOperators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		operators []string
	}{
		{"single", "q", []string{"q"}},
		{"text block", "BT /F1 12 Tf 100 700 Td (Hi) Tj ET", []string{"BT", "Tf", "Td", "Tj", "ET"}},
		{"star operators", "T* f* B*", []string{"T*", "f*", "B*"}},
		{"quote operators", "(a) ' 1 2 (b) \"", []string{"'", "\""}},
		{"digits in operator", "0 0 d0", []string{"d0"}},
		{"comments", "q % save state\nQ %restore", []string{"q", "Q"}},
		{"empty", "", nil},
		{"whitespace only", " \n\t\r ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := mustParse(t, tt.input)
			if len(ops) != len(tt.operators) {
				t.Fatalf("got %d operations, want %d", len(ops), len(tt.operators))
			}
			for i, op := range ops {
				if op.Operator != tt.operators[i] {
					t.Errorf("op %d = %q, want %q", i, op.Operator, tt.operators[i])
				}
			}
		})
	}
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  types.Object
	}{
		{"100 Tz", types.Integer(100)},
		{"-12 Tz", types.Integer(-12)},
		{"1.5 w", types.Float(1.5)},
		{".5 w", types.Float(0.5)},
		{"-.25 w", types.Float(-0.25)},
		{"+3 w", types.Integer(3)},
	}
	for _, tt := range tests {
		ops := mustParse(t, tt.input)
		if len(ops) != 1 || len(ops[0].Operands) != 1 {
			t.Fatalf("%q: unexpected operations %+v", tt.input, ops)
		}
		if got := ops[0].Operands[0]; got != tt.want {
			t.Errorf("%q: operand = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}

func TestParseTextMatrix(t *testing.T) {
	ops := mustParse(t, "1 0 0 1 30.5 712 Tm")
	vals, ok := ops[0].Numbers(6)
	if !ok {
		t.Fatal("Numbers(6) failed")
	}
	want := []float64{1, 0, 0, 1, 30.5, 712}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("operand %d = %v, want %v", i, vals[i], want[i])
		}
	}
	if _, ok := ops[0].Numbers(7); ok {
		t.Error("Numbers(7) should fail with six operands")
	}
}

func TestParseStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "(Hello World) Tj", "Hello World"},
		{"nested parens", "(a (b) c) Tj", "a (b) c"},
		{"escapes", `(a\(b\)\\c\n) Tj`, "a(b)\\c\n"},
		{"octal", `(\101\102\7) Tj`, "AB\x07"},
		{"octal high byte", `(\341) Tj`, "\xe1"},
		{"line continuation", "(ab\\\ncd) Tj", "abcd"},
		{"unknown escape", `(\q) Tj`, "q"},
		{"hex", "<48656C6C6F> Tj", "Hello"},
		{"hex lowercase", "<c1c2> Tj", "\xc1\xc2"},
		{"hex whitespace", "<48 65\n6C> Tj", "Hel"},
		{"hex odd", "<414> Tj", "A@"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := mustParse(t, tt.input)
			b, ok := ops[0].Bytes(0)
			if !ok {
				t.Fatalf("operand is %T, want a string", ops[0].Operands[0])
			}
			if string(b) != tt.want {
				t.Errorf("got %q, want %q", b, tt.want)
			}
		})
	}
}

func TestParseNames(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/F1 12 Tf", "F1"},
		{"/Name#20With#20Spaces 1 Tf", "Name With Spaces"},
		{"/A#2 1 Tf", "A#2"},
	}
	for _, tt := range tests {
		ops := mustParse(t, tt.input)
		got, ok := ops[0].Name(0)
		if !ok || got != tt.want {
			t.Errorf("%q: Name(0) = %q, %v; want %q", tt.input, got, ok, tt.want)
		}
	}
}

func TestParseArray(t *testing.T) {
	ops := mustParse(t, "[(ΑΒ) -250 (ΓΔ) [1 2] /N] TJ")
	arr, ok := ops[0].Operands[0].(types.Array)
	if !ok {
		t.Fatalf("operand is %T, want types.Array", ops[0].Operands[0])
	}
	if len(arr) != 5 {
		t.Fatalf("array length = %d, want 5", len(arr))
	}
	if arr[1] != types.Integer(-250) {
		t.Errorf("arr[1] = %#v, want -250", arr[1])
	}
	if inner, ok := arr[3].(types.Array); !ok || len(inner) != 2 {
		t.Errorf("arr[3] = %#v, want a two element array", arr[3])
	}
	if arr[4] != types.Name("N") {
		t.Errorf("arr[4] = %#v, want /N", arr[4])
	}
}

func TestParseDict(t *testing.T) {
	ops := mustParse(t, "/Span <</MCID 3 /Lang (el) /Empty <<>>>> BDC")
	d, ok := ops[0].Operands[1].(types.Dict)
	if !ok {
		t.Fatalf("operand is %T, want types.Dict", ops[0].Operands[1])
	}
	if d["MCID"] != types.Integer(3) {
		t.Errorf("MCID = %#v, want 3", d["MCID"])
	}
	if d["Lang"] != types.StringLiteral("el") {
		t.Errorf("Lang = %#v, want (el)", d["Lang"])
	}
	if inner, ok := d["Empty"].(types.Dict); !ok || len(inner) != 0 {
		t.Errorf("Empty = %#v, want empty dict", d["Empty"])
	}
}

func TestParseKeywords(t *testing.T) {
	ops := mustParse(t, "true false null op")
	if len(ops) != 1 || len(ops[0].Operands) != 3 {
		t.Fatalf("unexpected operations %+v", ops)
	}
	if ops[0].Operands[0] != types.Boolean(true) || ops[0].Operands[1] != types.Boolean(false) {
		t.Errorf("booleans = %#v %#v", ops[0].Operands[0], ops[0].Operands[1])
	}
	if ops[0].Operands[2] != nil {
		t.Errorf("null = %#v, want nil", ops[0].Operands[2])
	}
}

func TestParseInlineImage(t *testing.T) {
	ops := mustParse(t, "q BI /W 2 /H 1 /CS /G /BPC 8 ID \x00\xffEIx\n EI Q")
	want := []string{"q", "BI", "Q"}
	if len(ops) != len(want) {
		t.Fatalf("got %d operations, want %d: %+v", len(ops), len(want), ops)
	}
	for i := range want {
		if ops[i].Operator != want[i] {
			t.Errorf("op %d = %q, want %q", i, ops[i].Operator, want[i])
		}
	}
}

func TestOperandsDoNotLeak(t *testing.T) {
	ops := mustParse(t, "1 2 3 m 4 l")
	if len(ops[0].Operands) != 3 || len(ops[1].Operands) != 1 {
		t.Errorf("operand counts = %d, %d; want 3, 1", len(ops[0].Operands), len(ops[1].Operands))
	}
	if ops[0].Operands[2] != types.Integer(3) {
		t.Errorf("first op operands were overwritten: %#v", ops[0].Operands)
	}

	// A second parser starts with an empty operand stack.
	again := mustParse(t, "Q")
	if len(again[0].Operands) != 0 {
		t.Errorf("operands leaked across parsers: %#v", again[0].Operands)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"(unterminated Tj",
		"<4142 Tj",
		"<4G> Tj",
		"[1 2 TJ",
		"<</A 1 Tf",
		"BI /W 1 ID data",
		"[1 foo] TJ",
		") Tj",
	} {
		_, err := Parse([]byte(input))
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
			continue
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q) error %v does not wrap ErrSyntax", input, err)
		}
	}
}

func TestStringBytesHexLiteral(t *testing.T) {
	b, ok := StringBytes(types.HexLiteral("0391"))
	if !ok || string(b) != "\x03\x91" {
		t.Errorf("StringBytes(hex) = %q, %v", b, ok)
	}
	if _, ok := StringBytes(types.Integer(1)); ok {
		t.Error("StringBytes should reject non-string operands")
	}
}

func TestOperationAccessorsOutOfRange(t *testing.T) {
	op := Operation{Operator: "Tj"}
	if _, ok := op.Number(0); ok {
		t.Error("Number(0) on empty operands should fail")
	}
	if _, ok := op.Name(-1); ok {
		t.Error("Name(-1) should fail")
	}
	if _, ok := op.Bytes(3); ok {
		t.Error("Bytes(3) should fail")
	}
}
