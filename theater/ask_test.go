package theater

import "testing"

func TestAskCyclesAndAnswers(t *testing.T) {
	ctl := &fakeControls{}
	resp := NewResponse()
	a := NewAsk("Pick one", []string{"red", "green", "blue"}, resp, testStyle(), ctl)
	s := NewScheduler(nil)
	s.Submit(a)

	s.Tick(10000)
	if a.Choosing() {
		t.Fatalf("options shown before the question was confirmed")
	}

	ctl.confirm = true
	s.Tick(16)
	ctl.release()
	if !a.Choosing() {
		t.Fatalf("options not shown after confirming the question")
	}
	if resp.Answered() {
		t.Fatalf("response written before an option was picked")
	}

	steps := []struct {
		name string
		ctl  fakeControls
		want int
	}{
		{name: "prev wraps", ctl: fakeControls{prev: true}, want: 2},
		{name: "next wraps", ctl: fakeControls{next: true}, want: 0},
		{name: "next", ctl: fakeControls{next: true}, want: 1},
		{name: "idle", ctl: fakeControls{}, want: 1},
	}
	for _, st := range steps {
		*ctl = st.ctl
		s.Tick(16)
		if a.Cursor() != st.want {
			t.Fatalf("%s: cursor = %d, want %d", st.name, a.Cursor(), st.want)
		}
	}

	ctl.confirm = true
	s.Tick(16)
	if !a.Completed() {
		t.Fatalf("ask not complete after picking")
	}
	if !resp.Answered() || resp.Shared() {
		t.Fatalf("response answered=%v shared=%v", resp.Answered(), resp.Shared())
	}
	if got := resp.Index(); got != 1 {
		t.Fatalf("Index = %d, want 1", got)
	}
	if !resp.Shared() {
		t.Fatalf("reading the answer should mark it shared")
	}
}

func TestResponseUnanswered(t *testing.T) {
	r := NewResponse()
	if r.Answered() || r.Index() != -1 || r.Shared() {
		t.Fatalf("fresh response should be empty")
	}
}

func TestAskWithoutOptionsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewAsk("?", nil, NewResponse(), Style{}, &fakeControls{})
}

func TestAskCutOffByFade(t *testing.T) {
	tests := []struct {
		name     string
		confirm  bool
		answered bool
	}{
		{name: "while reading", confirm: false, answered: false},
		{name: "while choosing", confirm: true, answered: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctl := &fakeControls{}
			resp := NewResponse()
			a := NewAsk("Go?", []string{"yes", "no"}, resp, testStyle(), ctl)
			f := NewFade(100, 200, 100, nil, nil)
			f.AddAction(a)
			s := NewScheduler(nil)
			s.Submit(f)

			s.Tick(100) // covered
			s.Tick(100) // question revealed
			ctl.confirm = tt.confirm
			s.Tick(100) // hold ends
			ctl.release()
			s.Tick(100) // fade completes

			if !f.Completed() || !a.Completed() {
				t.Fatalf("fade completed=%v ask completed=%v", f.Completed(), a.Completed())
			}
			if resp.Answered() != tt.answered {
				t.Fatalf("answered = %v, want %v", resp.Answered(), tt.answered)
			}
			if tt.answered && resp.Index() != 0 {
				t.Fatalf("cut-off answer should be the highlighted option")
			}
		})
	}
}
