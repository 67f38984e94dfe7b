package etl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) JobStarted(name string) {
	r.events = append(r.events, "start:"+name)
}

func (r *recordingReporter) JobFinished(name string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "fail"
	}
	r.events = append(r.events, status+":"+name)
}

func job(name string, err error, ran *[]string) Job {
	return Job{Name: name, Run: func(ctx context.Context, window *domain.SyncWindow) error {
		*ran = append(*ran, name)
		return err
	}}
}

func TestRunner_Run(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name        string
		errs        map[string]error
		wantSuccess bool
		wantEvents  string
	}{
		{
			name:        "all succeed",
			wantSuccess: true,
			wantEvents:  "start:sleep,ok:sleep,start:work,ok:work,start:finances,ok:finances",
		},
		{
			name:        "failure does not stop later jobs",
			errs:        map[string]error{"work": boom},
			wantSuccess: false,
			wantEvents:  "start:sleep,ok:sleep,start:work,fail:work,start:finances,ok:finances",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ran []string
			jobs := []Job{
				job("sleep", tt.errs["sleep"], &ran),
				job("work", tt.errs["work"], &ran),
				job("finances", tt.errs["finances"], &ran),
			}
			rep := &recordingReporter{}

			got := NewRunner(jobs, rep, zap.NewNop()).Run(context.Background(), nil)
			if got != tt.wantSuccess {
				t.Errorf("Run() = %v, want %v", got, tt.wantSuccess)
			}
			if events := strings.Join(rep.events, ","); events != tt.wantEvents {
				t.Errorf("events = %s, want %s", events, tt.wantEvents)
			}
			if len(ran) != 3 {
				t.Errorf("ran %v, want all three jobs", ran)
			}
		})
	}
}

func TestRunner_Run_RecoversPanic(t *testing.T) {
	var ran []string
	jobs := []Job{
		{Name: "vitals", Run: func(context.Context, *domain.SyncWindow) error { panic("nil map") }},
		job("sleep", nil, &ran),
	}

	if NewRunner(jobs, &recordingReporter{}, zap.NewNop()).Run(context.Background(), nil) {
		t.Error("Run() should report failure")
	}
	if len(ran) != 1 {
		t.Error("job after a panic should still run")
	}
}

func TestRunner_Run_PassesWindow(t *testing.T) {
	want := &domain.SyncWindow{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)}
	var got *domain.SyncWindow
	jobs := []Job{{Name: "finances", Run: func(_ context.Context, w *domain.SyncWindow) error {
		got = w
		return nil
	}}}

	NewRunner(jobs, &recordingReporter{}, zap.NewNop()).Run(context.Background(), want)
	if got != want {
		t.Errorf("window = %v, want %v", got, want)
	}
}

func TestRunner_Run_Cancelled(t *testing.T) {
	var ran []string
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if NewRunner([]Job{job("sleep", nil, &ran)}, &recordingReporter{}, zap.NewNop()).Run(ctx, nil) {
		t.Error("cancelled run should fail")
	}
	if len(ran) != 0 {
		t.Error("no job should start after cancellation")
	}
}

func TestRunner_Select(t *testing.T) {
	var ran []string
	r := NewRunner([]Job{job("sleep", nil, &ran), job("work", nil, &ran), job("vitals", nil, &ran)}, &recordingReporter{}, zap.NewNop())

	if err := r.Select([]string{"vitals", "sleep"}); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	r.Run(context.Background(), nil)
	if strings.Join(ran, ",") != "sleep,vitals" {
		t.Errorf("ran = %v, want configured order", ran)
	}

	if err := r.Select([]string{"email"}); err == nil {
		t.Error("Select() should reject unknown sources")
	}
}

func TestColorReporter(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	rep := NewColorReporter(&buf)

	rep.JobStarted("sleep")
	rep.JobFinished("sleep", 1500*time.Millisecond, nil)
	rep.JobFinished("work", time.Second, errors.New("401"))

	out := buf.String()
	for _, want := range []string{"▶ sleep", "✓ sleep (1.5s)", "✗ work failed after 1s: 401"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
