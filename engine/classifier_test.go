package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"chat-agent/session"

	"go.uber.org/zap"
)

// fixedRand always returns the same index, clamped to the candidate count.
type fixedRand int

func (f fixedRand) Intn(n int) int {
	if int(f) < n {
		return int(f)
	}
	return n - 1
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *session.Store) {
	t.Helper()
	store, err := session.NewStore(16, 50, zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	opts = append([]Option{WithRand(fixedRand(0))}, opts...)
	return New(store, zap.NewNop(), opts...), store
}

func reply(t *testing.T, e *Engine, sessionID, message string) string {
	t.Helper()
	got, err := e.Reply(context.Background(), message, sessionID)
	if err != nil {
		t.Fatalf("Reply(%q) returned error: %v", message, err)
	}
	return got
}

func TestRulePriorityOrder(t *testing.T) {
	tests := []struct {
		name    string
		message string
		pool    []string
	}{
		// Greeting outranks farewell, help, and joke even when their
		// keywords are all present.
		{"greeting_beats_joke", "hello, tell me a joke", greetingReplies},
		{"greeting_beats_farewell", "hi, goodbye for now", greetingReplies},
		{"greeting_beats_help", "hey, can you help?", greetingReplies},
		{"farewell_beats_help", "goodbye, thanks for the help", farewellReplies},
		{"help_beats_calculation", "can you help me calculate 2+2", helpReplies},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			got := reply(t, e, "prio", tt.message)
			if !slices.Contains(tt.pool, got) {
				t.Errorf("Reply(%q) = %q, not in expected pool", tt.message, got)
			}
		})
	}
}

func TestKeywordIntents(t *testing.T) {
	tests := []struct {
		name    string
		message string
		pool    []string
	}{
		{"greeting", "Hello!", greetingReplies},
		{"greeting_embedded", "well hello there", greetingReplies},
		{"status", "how are you doing?", statusReplies},
		{"status_whats_up", "What's up", statusReplies},
		{"status_whats_up_no_apostrophe", "whats up", statusReplies},
		{"farewell", "ok bye now", farewellReplies},
		{"help", "I need some help", helpReplies},
		{"help_what_can_you_do_wins_over_qa", "what can you do", helpReplies},
		{"qa_created", "so who created you anyway?", qaEntries[1].answers},
		{"qa_age", "how old are you?", qaEntries[3].answers},
		{"fallback", "frobnicate quux", fallbackReplies},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			got := reply(t, e, "kw-"+tt.name, tt.message)
			if !slices.Contains(tt.pool, got) {
				t.Errorf("Reply(%q) = %q, not in expected pool", tt.message, got)
			}
		})
	}
}

func TestTimeIntent(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2024, 5, 1, 14, 33, 58, 0, time.UTC)
	}
	e, _ := newTestEngine(t, WithClock(clock))

	got := reply(t, e, "time", "what time is it?")
	want := "The current time is 2:33:58 PM ⏰"
	if got != want {
		t.Errorf("Reply = %q, want %q", got, want)
	}
}

func TestJokeNonRepetition(t *testing.T) {
	e, store := newTestEngine(t)
	const sessionID = "jokes"

	seen := make(map[string]bool)
	for i := 0; i < len(jokePool); i++ {
		got := reply(t, e, sessionID, "tell me a joke")
		if !slices.Contains(jokePool, got) {
			t.Fatalf("request %d: %q is not a pool joke", i+1, got)
		}
		if seen[got] {
			t.Fatalf("request %d: joke %q repeated before pool was exhausted", i+1, got)
		}
		seen[got] = true
	}

	// Pool exhausted: the used set resets and a joke is still returned.
	got := reply(t, e, sessionID, "tell me a joke")
	if !slices.Contains(jokePool, got) {
		t.Fatalf("post-reset request returned %q, not a pool joke", got)
	}
	if store.UsedJokeCount(sessionID) != 0 {
		t.Errorf("used-joke set not reset after exhaustion, count = %d", store.UsedJokeCount(sessionID))
	}
}

func TestJokeSessionsAreIsolated(t *testing.T) {
	e, store := newTestEngine(t)

	reply(t, e, "a", "joke please")
	if got := store.UsedJokeCount("b"); got != 0 {
		t.Errorf("session b used-joke count = %d, want 0", got)
	}
}

func TestMultipleJokes(t *testing.T) {
	e, _ := newTestEngine(t)

	got := reply(t, e, "multi", "5 jokes")

	var b strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "%d. %s\n", i+1, jokePool[i])
	}
	want := strings.TrimSpace(b.String())
	if got != want {
		t.Errorf("Reply(\"5 jokes\") = %q, want %q", got, want)
	}
	if lines := strings.Split(got, "\n"); len(lines) != 5 {
		t.Errorf("expected exactly 5 lines, got %d", len(lines))
	}
}

func TestMultipleJokesCappedAtPoolSize(t *testing.T) {
	e, _ := newTestEngine(t)

	got := reply(t, e, "multi-cap", "give me 100 jokes")
	if lines := strings.Split(got, "\n"); len(lines) != len(jokePool) {
		t.Errorf("expected %d lines, got %d", len(jokePool), len(lines))
	}
}

func TestCalculationIntent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"precedence", "Calculate 2 + 2*3", "The result is 8."},
		{"division", "what is 10 / 4", "The result is 2.5."},
		{"bare_expression", "2+2", "The result is 4."},
		{"bare_expression_parens", "(1 + 2) * 4", "The result is 12."},
		{"compute_trigger", "compute 25 + 37", "The result is 62."},
		{"division_by_zero", "Calculate 1/0", msgCalcFailure},
		{"malformed", "calculate 2 +", msgCalcFailure},
		{"letters_after_trigger", "calculate two plus two", msgUnsafeExpression},
		{"illegal_characters", "solve 2 + x^2", msgUnsafeExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			got := reply(t, e, "calc-"+tt.name, tt.message)
			if got != tt.want {
				t.Errorf("Reply(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestWeatherIntent(t *testing.T) {
	e, _ := newTestEngine(t)

	got := reply(t, e, "weather", "weather in New York please")
	want := "The weather in New York please is sunny with a high of 25°C and a low of 15°C."
	if got != want {
		t.Errorf("Reply = %q, want %q", got, want)
	}
}

func TestWeatherIntentKeepsCityCasing(t *testing.T) {
	e, _ := newTestEngine(t)

	got := reply(t, e, "weather-case", "weather in Tokyo")
	if !strings.Contains(got, "Tokyo") {
		t.Errorf("Reply = %q, expected original casing of city", got)
	}
}

func TestWeatherIntentMissingCity(t *testing.T) {
	e, _ := newTestEngine(t)

	// Normalization trims the message, so an empty city only survives via
	// the raw input path.
	got, ok := e.matchWeather(&matchInput{raw: "weather in   ", normalized: "weather in "})
	if !ok {
		t.Fatal("matchWeather did not match")
	}
	if got != msgMissingCity {
		t.Errorf("matchWeather = %q, want %q", got, msgMissingCity)
	}
}

func TestSearchIntent(t *testing.T) {
	e, _ := newTestEngine(t)

	got := reply(t, e, "search", "search for Go tutorials")
	want := "Search results for \"Go tutorials\":\n1. Example result 1\n2. Example result 2\n3. Example result 3"
	if got != want {
		t.Errorf("Reply = %q, want %q", got, want)
	}
}

func TestSearchIntentMissingQuery(t *testing.T) {
	e, _ := newTestEngine(t)

	got, ok := e.matchSearch(&matchInput{raw: "search for ", normalized: "search for "})
	if !ok {
		t.Fatal("matchSearch did not match")
	}
	if got != msgMissingQuery {
		t.Errorf("matchSearch = %q, want %q", got, msgMissingQuery)
	}
}

func TestRepeatDetection(t *testing.T) {
	e, _ := newTestEngine(t)
	const sessionID = "repeat"

	first := reply(t, e, sessionID, "frobnicate quux")
	if !slices.Contains(fallbackReplies, first) {
		t.Fatalf("first reply %q not in fallback pool", first)
	}

	second := reply(t, e, sessionID, "Frobnicate Quux  ")
	if second != msgRepeatedInput {
		t.Errorf("second reply = %q, want %q", second, msgRepeatedInput)
	}
}

func TestRepeatDetectionRequiresSameSession(t *testing.T) {
	e, _ := newTestEngine(t)

	reply(t, e, "r1", "frobnicate quux")
	got := reply(t, e, "r2", "frobnicate quux")
	if got == msgRepeatedInput {
		t.Error("repeat detection leaked across sessions")
	}
}
