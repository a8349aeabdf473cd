package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubStep struct {
	err   error
	calls int
}

func (s *stubStep) Execute(ctx context.Context, state *State) error {
	s.calls++
	return s.err
}

func TestPipeline_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	first := &stubStep{}
	second := &stubStep{err: boom}
	third := &stubStep{}

	err := New(first, second, third).Execute(context.Background(), &State{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), "step 2") {
		t.Errorf("error must name the failing step: %v", err)
	}
	if first.calls != 1 || second.calls != 1 || third.calls != 0 {
		t.Errorf("calls = %d, %d, %d; want 1, 1, 0", first.calls, second.calls, third.calls)
	}
}

func TestPipeline_AllStepsRun(t *testing.T) {
	steps := []*stubStep{{}, {}, {}}
	if err := New(steps[0], steps[1], steps[2]).Execute(context.Background(), &State{}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	for i, s := range steps {
		if s.calls != 1 {
			t.Errorf("step %d ran %d times, want 1", i, s.calls)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeSuccess, "success"},
		{OutcomeSkipped, "skipped"},
		{OutcomeFailed, "failed"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
