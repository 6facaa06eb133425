package money

import "testing"

func TestRound2HalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{85.9375, 85.94},
		{171.875, 171.88},
		{68.75, 68.75},
		{412.505, 412.51},
		{0.004, 0},
		{550, 550},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Fatalf("Round2(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestPeso(t *testing.T) {
	if got := Peso(1234.5); got != "PHP 1,234.50" {
		t.Fatalf("unexpected format: %s", got)
	}
	if got := Peso(550); got != "PHP 550.00" {
		t.Fatalf("unexpected format: %s", got)
	}
	if got := Peso(-75.25); got != "PHP -75.25" {
		t.Fatalf("unexpected format: %s", got)
	}
}
