package receiver

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Morning Yoga", "morning-yoga"},
		{"Утренняя йога", "utrennyaya-yoga"},
		{"Йога 2.0 (новая!)", "yoga-2-0-novaya"},
		{"Власть и сила", "vlast-i-sila"}, // мягкий знак выпадает
		{"!!!", "package"},
		{"", "package"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Fatalf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestUniqueID(t *testing.T) {
	taken := map[string]bool{"yoga": true, "yoga-2": true}
	isTaken := func(id string) bool { return taken[id] }

	if got := UniqueID("pilates", isTaken); got != "pilates" {
		t.Fatalf("free base: %q", got)
	}
	if got := UniqueID("yoga", isTaken); got != "yoga-3" {
		t.Fatalf("taken base: %q", got)
	}
}
