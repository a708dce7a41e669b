package diagram

import "testing"

func TestInferArrowType(t *testing.T) {
	tests := []struct {
		source, target Side
		want           ArrowType
	}{
		{Right, Left, Output},
		{Left, Right, Input},
		{Left, Top, Control},
		{Right, Top, Control},
		{Top, Top, Control},
		{Bottom, Top, Control},
		{Left, Bottom, Mechanism},
		{Right, Bottom, Mechanism},
		{Top, Bottom, Mechanism},
		{Right, Right, Output},
		{Left, Left, Input},
		{Top, Left, Input},
		{Bottom, Left, Input},
		{Top, Right, Input},
		{Bottom, Right, Input},
	}

	for _, tt := range tests {
		t.Run(tt.source.String()+"->"+tt.target.String(), func(t *testing.T) {
			if got := InferArrowType(tt.source, tt.target); got != tt.want {
				t.Errorf("InferArrowType(%s, %s) = %s, want %s", tt.source, tt.target, got, tt.want)
			}
		})
	}
}

func TestSideAndTypeText(t *testing.T) {
	for _, s := range Sides {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Side
		if err := back.UnmarshalText(b); err != nil || back != s {
			t.Errorf("side %s round trip gave %s, %v", s, back, err)
		}
	}
	for _, at := range ArrowTypes {
		b, _ := at.MarshalText()
		var back ArrowType
		if err := back.UnmarshalText(b); err != nil || back != at {
			t.Errorf("type %s round trip gave %s, %v", at, back, err)
		}
	}
	if _, err := Side(9).MarshalText(); err == nil {
		t.Error("expected error for invalid side")
	}
	if _, err := ParseArrowType("sideways"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestNextAlgorithm(t *testing.T) {
	got := []string{}
	a := "add"
	for i := 0; i < 5; i++ {
		a = NextAlgorithm(a)
		got = append(got, a)
	}
	want := []string{"subtract", "multiply", "divide", "add", "subtract"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", got, want)
		}
	}
	if NextAlgorithm("sqrt") != "add" {
		t.Error("unknown algorithm should restart at add")
	}
	if !IsKnownAlgorithm("divide") || IsKnownAlgorithm("modulo") {
		t.Error("IsKnownAlgorithm mismatch")
	}
}
