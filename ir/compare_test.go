package ir

import "testing"

type compareTest struct {
	name string
	a, b *Node
	want int
}

func TestCompare(t *testing.T) {
	tests := []compareTest{
		{name: "nil both", a: nil, b: nil, want: 0},
		{name: "nil left", a: nil, b: Null(), want: -1},
		{name: "null eq", a: Null(), b: Null(), want: 0},
		{name: "type rank", a: FromBool(true), b: FromInt(0), want: -1},
		{name: "bool order", a: FromBool(false), b: FromBool(true), want: -1},
		{name: "int order", a: FromInt(2), b: FromInt(10), want: -1},
		{name: "string order", a: FromString("a"), b: FromString("b"), want: -1},
		{name: "array prefix", a: FromStrings("a"), b: FromStrings("a", "b"), want: -1},
		{name: "array element", a: FromStrings("a", "c"), b: FromStrings("a", "b"), want: 1},
		{
			name: "objects equal under key order",
			a: FromKeyVals(
				KeyVal{Key: "x", Val: FromInt(1)},
				KeyVal{Key: "y", Val: FromInt(2)},
			),
			b: FromKeyVals(
				KeyVal{Key: "y", Val: FromInt(2)},
				KeyVal{Key: "x", Val: FromInt(1)},
			),
			want: 0,
		},
		{
			name: "objects differ in value",
			a:    FromKeyVals(KeyVal{Key: "x", Val: FromInt(1)}),
			b:    FromKeyVals(KeyVal{Key: "x", Val: FromInt(2)}),
			want: -1,
		},
		{
			name: "object subset",
			a:    FromKeyVals(KeyVal{Key: "x", Val: FromInt(1)}),
			b: FromKeyVals(
				KeyVal{Key: "x", Val: FromInt(1)},
				KeyVal{Key: "y", Val: FromInt(2)},
			),
			want: -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare: want %d, got %d", tt.want, got)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare reversed: want %d, got %d", -tt.want, got)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := FromKeyVals(
		KeyVal{Key: "k", Val: FromSlice([]*Node{FromInt(1), FromString("s")})},
	)
	if !Equal(a, a.Clone()) {
		t.Errorf("clone not equal")
	}
	if Equal(a, FromKeyVals(KeyVal{Key: "k", Val: FromStrings("1", "s")})) {
		t.Errorf("number and string compare equal")
	}
}
