package theater

import (
	"slices"
	"testing"
)

// testStyle lays text out at ten units per character with an 86 unit wide
// text area.
func testStyle() Style {
	return Style{
		ScreenW: 100,
		ScreenH: 100,
		Measure: func(s string) float64 { return float64(len(s)) * 10 },
	}
}

func TestWrap(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }
	tests := []struct {
		name  string
		in    string
		width float64
		want  []string
	}{
		{name: "empty", in: "", width: 10, want: []string{}},
		{name: "fits", in: "hello there", width: 20, want: []string{"hello there"}},
		{name: "breaks", in: "a bb ccc dd", width: 4, want: []string{"a bb", "ccc", "dd"}},
		{name: "long word", in: "tiny enormous x", width: 5, want: []string{"tiny", "enormous", "x"}},
		{name: "collapses spaces", in: "  a   b ", width: 10, want: []string{"a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrap(tt.in, tt.width, measure)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("wrap(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDialogRevealsOneCharPerDelay(t *testing.T) {
	ctl := &fakeControls{}
	d := NewDialog("hey", testStyle(), ctl)
	s := NewScheduler(nil)
	s.Submit(d)

	want := []string{"h", "he", "hey"}
	for i, w := range want {
		s.Tick(DefaultCharDelay)
		if got := d.Shown()[0]; got != w {
			t.Fatalf("frame %d: shown %q, want %q", i+1, got, w)
		}
	}
	if d.Revealing() {
		t.Fatalf("dialog still revealing after every char was shown")
	}

	ctl.confirm = true
	s.Tick(DefaultCharDelay)
	if !d.Completed() {
		t.Fatalf("confirm on the last page should complete the dialog")
	}
}

func TestDialogConfirmSpeedsUpReveal(t *testing.T) {
	ctl := &fakeControls{}
	d := NewDialog("abcdefgh", testStyle(), ctl)
	s := NewScheduler(nil)
	s.Submit(d)

	ctl.confirm = true
	s.Tick(DefaultCharDelay)
	ctl.release()
	if d.Completed() || d.Shown()[0] != "a" {
		t.Fatalf("confirm while revealing should not skip: shown %q", d.Shown()[0])
	}

	s.Tick(7 * FastCharDelay)
	if d.Shown()[0] != "abcdefgh" {
		t.Fatalf("fast reveal shown %q", d.Shown()[0])
	}
}

func TestDialogPagesThenSets(t *testing.T) {
	ctl := &fakeControls{confirm: true}
	st := testStyle()
	st.Lines = 2
	var pages [][]string
	st.OnPage = func(p []string) { pages = append(pages, slices.Clone(p)) }

	d := NewDialog("one two three four five\nsix", st, ctl)
	s := NewScheduler(nil)
	s.Submit(d)

	s.Tick(10000)
	if got := d.Page(); !slices.Equal(got, []string{"four", "five"}) {
		t.Fatalf("second page = %q", got)
	}
	s.Tick(10000)
	if got := d.Page(); !slices.Equal(got, []string{"six"}) {
		t.Fatalf("second set = %q", got)
	}
	if d.Completed() {
		t.Fatalf("dialog completed with a set left")
	}
	s.Tick(10000)
	if !d.Completed() {
		t.Fatalf("dialog not complete after the last set")
	}

	want := [][]string{{"one two", "three"}, {"four", "five"}, {"six"}}
	if len(pages) != len(want) {
		t.Fatalf("pages = %q, want %q", pages, want)
	}
	for i := range want {
		if !slices.Equal(pages[i], want[i]) {
			t.Fatalf("page %d = %q, want %q", i, pages[i], want[i])
		}
	}
}

func TestDialogSkipsBlankSets(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want [][]string
	}{
		{name: "between", msg: "A\n\nB", want: [][]string{{"A"}, {"B"}}},
		{name: "edges", msg: "\n  \nA\n", want: [][]string{{"A"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctl := &fakeControls{confirm: true}
			st := testStyle()
			var pages [][]string
			st.OnPage = func(p []string) { pages = append(pages, slices.Clone(p)) }
			d := NewDialog(tt.msg, st, ctl)
			s := NewScheduler(nil)
			s.Submit(d)

			for range tt.want {
				s.Tick(10000)
			}
			if !d.Completed() {
				t.Fatalf("dialog needed more than %d confirms", len(tt.want))
			}
			if len(pages) != len(tt.want) {
				t.Fatalf("pages = %q, want %q", pages, tt.want)
			}
			for i := range tt.want {
				if !slices.Equal(pages[i], tt.want[i]) {
					t.Fatalf("page %d = %q, want %q", i, pages[i], tt.want[i])
				}
			}
		})
	}
}

func TestDialogNilControlsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewDialog("x", Style{}, nil)
}
