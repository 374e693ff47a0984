package ir

import "testing"

type jsonTest struct {
	name string
	y    *Node
	want string
}

func TestToJSON(t *testing.T) {
	tests := []jsonTest{
		{name: "nil", y: nil, want: `null`},
		{name: "null", y: Null(), want: `null`},
		{name: "bool", y: FromBool(true), want: `true`},
		{name: "int", y: FromInt(-3), want: `-3`},
		{name: "float", y: FromFloat(0.5), want: `0.5`},
		{name: "raw number", y: &Node{Type: NumberType, Number: "1e14"}, want: `1e14`},
		{name: "string escape", y: FromString("a\"b"), want: `"a\"b"`},
		{name: "empty array", y: Array(), want: `[]`},
		{name: "empty object", y: Object(), want: `{}`},
		{
			name: "nested order kept",
			y: FromKeyVals(
				KeyVal{Key: "z", Val: FromStrings("1", "2")},
				KeyVal{Key: "a", Val: FromKeyVals(KeyVal{Key: "k", Val: Null()})},
			),
			want: `{"z":["1","2"],"a":{"k":null}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ToJSON(tt.y)
			if err != nil {
				t.Fatalf("ToJSON: %v", err)
			}
			if string(d) != tt.want {
				t.Errorf("want %s, got %s", tt.want, d)
			}
		})
	}
}
