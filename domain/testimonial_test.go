package domain

import (
	"errors"
	"testing"
)

func testimonials(names ...string) []*Testimonial {
	ts := make([]*Testimonial, len(names))
	for i, n := range names {
		ts[i] = &Testimonial{ClientName: n, Rating: 5 - i%2}
	}
	return ts
}

func names(pages [][]*Testimonial) [][]string {
	out := make([][]string, len(pages))
	for i, p := range pages {
		for _, t := range p {
			out[i] = append(out[i], t.ClientName)
		}
	}
	return out
}

func TestPair(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want [][]string
	}{
		{"none", nil, [][]string{}},
		{"one", []string{"a"}, [][]string{{"a"}}},
		{"even", []string{"a", "b", "c", "d"}, [][]string{{"a", "b"}, {"c", "d"}}},
		{"odd wraps to the first", []string{"a", "b", "c"}, [][]string{{"a", "b"}, {"c", "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Pair(testimonials(tt.in...)))
			if len(got) != len(tt.want) {
				t.Fatalf("\nwanted:\n%v\ngot:\n%v", tt.want, got)
			}
			for i := range got {
				if len(got[i]) != len(tt.want[i]) {
					t.Fatalf("\nwanted:\n%v\ngot:\n%v", tt.want, got)
				}
				for j := range got[i] {
					if got[i][j] != tt.want[i][j] {
						t.Fatalf("\nwanted:\n%v\ngot:\n%v", tt.want, got)
					}
				}
			}
		})
	}
}

func TestPair_PagesDoNotAlias(t *testing.T) {
	ts := testimonials("a", "b", "c", "d")
	pages := Pair(ts)

	_ = append(pages[0], &Testimonial{ClientName: "x"})
	if ts[2].ClientName != "c" {
		t.Fatalf("\nwanted:\nc\ngot:\n%s", ts[2].ClientName)
	}
}

func TestAverageRating(t *testing.T) {
	if got := AverageRating(nil); got != 0 {
		t.Fatalf("\nwanted:\n0\ngot:\n%v", got)
	}
	// Ratings alternate 5, 4, 5.
	if got := AverageRating(testimonials("a", "b", "c")); got != 14.0/3 {
		t.Fatalf("\nwanted:\n%v\ngot:\n%v", 14.0/3, got)
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := ParseCategory("sound-healing"); err != nil || c != CategorySoundHealing {
		t.Fatalf("\nwanted:\nsound-healing\ngot:\n%v %v", c, err)
	}
	if _, err := ParseCategory("reiki"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("\nwanted:\n%v\ngot:\n%v", ErrInvalidCategory, err)
	}
}
