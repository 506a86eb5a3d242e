package step

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		raw  string
		name string
		arg  string
	}{
		{"home", "home", ""},
		{"get_title:movie", "get_title", "movie"},
		{"get_episode:42", "get_episode", "42"},
		{"a:b:c", "a", "b:c"},
		{"", "", ""},
		{":x", "", "x"},
	}
	for _, tc := range cases {
		got := Parse(tc.raw)
		if got.Name != tc.name || got.Arg != tc.arg {
			t.Errorf("Parse(%q) = %+v, want {%q %q}", tc.raw, got, tc.name, tc.arg)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, raw := range []string{"home", "get_title:movie", "get_episode:42", "a:b:c"} {
		if got := Parse(raw).String(); got != raw {
			t.Errorf("Parse(%q).String() = %q", raw, got)
		}
	}
}

func TestWith(t *testing.T) {
	if got := With(GetEpisode, "7").String(); got != "get_episode:7" {
		t.Errorf("With = %q", got)
	}
	if got := With(Home, "").String(); got != "home" {
		t.Errorf("With = %q", got)
	}
}
