package dateq_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/dateq"
	"github.com/aretw0/dateq/pkg/domain"
)

func newRunnerEngine(t *testing.T) *dateq.Engine {
	t.Helper()
	engine, err := dateq.New()
	if err != nil {
		t.Fatal(err)
	}
	return engine
}

func TestRunner_Loop(t *testing.T) {
	runner := dateq.NewRunner()
	runner.Input = strings.NewReader("123\nexit\n")
	var out bytes.Buffer
	runner.Output = &out
	runner.Headless = true

	if err := runner.Run(context.Background(), newRunnerEngine(t)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "## 123") {
		t.Errorf("output missing heading:\n%s", got)
	}
	if !strings.Contains(got, "1 + 2 = 3") {
		t.Errorf("output missing equation:\n%s", got)
	}
}

func TestRunner_EOFWithoutNewline(t *testing.T) {
	runner := dateq.NewRunner()
	runner.Input = strings.NewReader("123")
	var out bytes.Buffer
	runner.Output = &out
	runner.Headless = true

	if err := runner.Run(context.Background(), newRunnerEngine(t)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "1 + 2 = 3") {
		t.Errorf("final unterminated line not processed:\n%s", out.String())
	}
}

func TestRunner_SkipsBadInput(t *testing.T) {
	runner := dateq.NewRunner()
	runner.Input = strings.NewReader("12\n123\n")
	var out bytes.Buffer
	runner.Output = &out
	runner.Headless = true

	if err := runner.Run(context.Background(), newRunnerEngine(t)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "error:") || !strings.Contains(got, "insufficient digits") {
		t.Errorf("short input not reported:\n%s", got)
	}
	if !strings.Contains(got, "1 + 2 = 3") {
		t.Errorf("loop did not continue past bad input:\n%s", got)
	}
}

func TestRunner_ExitStopsReading(t *testing.T) {
	runner := dateq.NewRunner()
	runner.Input = strings.NewReader("exit\n123\n")
	var out bytes.Buffer
	runner.Output = &out
	runner.Headless = true

	if err := runner.Run(context.Background(), newRunnerEngine(t)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Contains(out.String(), "1 + 2 = 3") {
		t.Error("input after exit was processed")
	}
}

func TestRunner_Renderer(t *testing.T) {
	runner := dateq.NewRunner()
	runner.Input = strings.NewReader("123\n")
	var out bytes.Buffer
	runner.Output = &out
	runner.Headless = true
	runner.Renderer = func(s string) (string, error) {
		return strings.ToUpper(s), nil
	}

	if err := runner.Run(context.Background(), newRunnerEngine(t)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "EQUATION") {
		t.Errorf("renderer not applied:\n%s", out.String())
	}
}

func TestRunner_Limit(t *testing.T) {
	runner := dateq.NewRunner()
	runner.Input = strings.NewReader("1111\n")
	var out bytes.Buffer
	runner.Output = &out
	runner.Headless = true
	runner.Limit = 1
	runner.Sort = domain.SortLengthAsc

	if err := runner.Run(context.Background(), newRunnerEngine(t)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "more.") {
		t.Errorf("truncation note missing:\n%s", out.String())
	}
}

func TestRunner_RequiresIO(t *testing.T) {
	runner := dateq.NewRunner()
	if err := runner.Run(context.Background(), newRunnerEngine(t)); err == nil {
		t.Error("Run accepted nil IO")
	}
}

func TestRunner_SessionCommands(t *testing.T) {
	runner := dateq.NewRunner()
	runner.Input = strings.NewReader(strings.Join([]string{
		"set operators extended",
		"set factorial on",
		"set groups 6",
		"set sort value",
		"set limit 5",
		"show",
		"224",
		"exit",
	}, "\n") + "\n")
	var out bytes.Buffer
	runner.Output = &out
	runner.Headless = true

	if err := runner.Run(context.Background(), newRunnerEngine(t)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "operators: extended  factorial: true  groups: 6  sort: value  limit: 5") {
		t.Errorf("show did not reflect session settings:\n%s", got)
	}
	if !strings.Contains(got, "2 ^ 2") {
		t.Errorf("search ignored the session operator palette:\n%s", got)
	}
}

func TestRunner_CommandErrors(t *testing.T) {
	runner := dateq.NewRunner()
	runner.Input = strings.NewReader(strings.Join([]string{
		"set groups 99",
		"set factorial maybe",
		"set volume 11",
		"set limit",
		"help",
		"exit",
	}, "\n") + "\n")
	var out bytes.Buffer
	runner.Output = &out
	runner.Headless = true

	if err := runner.Run(context.Background(), newRunnerEngine(t)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"groups must be 2 to 6",
		"factorial must be on or off",
		"unknown setting",
		"usage: set",
		"set operators basic|extended",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestVersionEmbedded(t *testing.T) {
	if strings.TrimSpace(dateq.Version) == "" {
		t.Error("Version is empty")
	}
}
