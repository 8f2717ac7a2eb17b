package storage

import "testing"

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"catan", "catan"},
		{"%", `\%`},
		{"_", `\_`},
		{`\`, `\\`},
		{"50%_off", `50\%\_off`},
		{`a\%b`, `a\\\%b`},
	}
	for _, c := range cases {
		if got := escapeLike(c.in); got != c.want {
			t.Errorf("escapeLike(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}
