package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"chat-agent/session"
)

// matchInput carries one message through the rule chain. raw preserves the
// caller's casing for extraction rules (weather city, search query);
// normalized is trimmed and lowercased for matching.
type matchInput struct {
	raw        string
	normalized string
	sessionID  string
	history    []session.Turn
}

// rule pairs a name with its predicate-and-handler. Rules run in slice
// order and the first match wins; the ordering is a wire-visible contract
// ("hello, tell me a joke" is a greeting, never a joke).
type rule struct {
	name    string
	handler func(in *matchInput) (string, bool)
}

const calcTriggers = `calculate|what is|solve|evaluate|compute|what's|whats|how much is|how many is|what are|what's the result of`

var (
	statusPattern    = regexp.MustCompile(`how are you|what'?s up`)
	helpPattern      = regexp.MustCompile(`help|what can you do`)
	multiJokePattern = regexp.MustCompile(`(\d+)\s+jokes`)
	// Alternation order matters: matching mirrors leftmost-first semantics,
	// so "what's the result of ..." is stripped only up to "what's".
	calcTriggerPattern    = regexp.MustCompile(`^(` + calcTriggers + `)`)
	calcStripPattern      = regexp.MustCompile(`^(` + calcTriggers + `)\s*`)
	arithmeticOnlyPattern = regexp.MustCompile(`^[-+/*\d\s().]+$`)
)

func (e *Engine) buildRules() []rule {
	return []rule{
		{"greeting", e.matchGreeting},
		{"status", e.matchStatus},
		{"farewell", e.matchFarewell},
		{"help", e.matchHelp},
		{"time", e.matchTime},
		{"joke", e.matchJoke},
		{"calculation", e.matchCalculation},
		{"weather", e.matchWeather},
		{"search", e.matchSearch},
		{"qa", e.matchQA},
		{"repeat", e.matchRepeat},
		{"fallback", e.matchFallback},
	}
}

// classify walks the rule chain and returns the first matching rule's reply.
// The fallback rule always matches, so classify always produces a reply.
func (e *Engine) classify(in *matchInput) string {
	for _, r := range e.rules {
		if reply, ok := r.handler(in); ok {
			return reply
		}
	}
	// Unreachable: fallback matched above.
	return e.pick(fallbackReplies)
}

func (e *Engine) matchGreeting(in *matchInput) (string, bool) {
	for _, keyword := range greetingKeywords {
		if strings.Contains(in.normalized, keyword) {
			return e.pick(greetingReplies), true
		}
	}
	return "", false
}

func (e *Engine) matchStatus(in *matchInput) (string, bool) {
	if statusPattern.MatchString(in.normalized) {
		return e.pick(statusReplies), true
	}
	return "", false
}

func (e *Engine) matchFarewell(in *matchInput) (string, bool) {
	for _, keyword := range farewellKeywords {
		if strings.Contains(in.normalized, keyword) {
			return e.pick(farewellReplies), true
		}
	}
	return "", false
}

func (e *Engine) matchHelp(in *matchInput) (string, bool) {
	if helpPattern.MatchString(in.normalized) {
		return e.pick(helpReplies), true
	}
	return "", false
}

func (e *Engine) matchTime(in *matchInput) (string, bool) {
	if !strings.Contains(in.normalized, "time") {
		return "", false
	}
	return fmt.Sprintf(timeReplyFormat, e.now().Format("3:04:05 PM")), true
}

func (e *Engine) matchJoke(in *matchInput) (string, bool) {
	if !strings.Contains(in.normalized, "joke") {
		return "", false
	}

	// "<N> jokes" returns the first min(N, pool size) jokes, numbered.
	if m := multiJokePattern.FindStringSubmatch(in.normalized); m != nil {
		count, err := strconv.Atoi(m[1])
		if err != nil || count > len(jokePool) {
			count = len(jokePool)
		}
		var b strings.Builder
		for i := 0; i < count; i++ {
			fmt.Fprintf(&b, "%d. %s\n", i+1, jokePool[i])
		}
		return strings.TrimSpace(b.String()), true
	}

	// Single joke, avoiding repeats within the session. Once the pool is
	// exhausted the used set resets and the pick is unconstrained.
	available := make([]string, 0, len(jokePool))
	for _, joke := range jokePool {
		if !e.store.IsJokeUsed(in.sessionID, joke) {
			available = append(available, joke)
		}
	}
	if len(available) == 0 {
		e.store.ResetJokes(in.sessionID)
		return e.pick(jokePool), true
	}
	joke := e.pick(available)
	e.store.RecordJoke(in.sessionID, joke)
	return joke, true
}

func (e *Engine) matchCalculation(in *matchInput) (string, bool) {
	if !calcTriggerPattern.MatchString(in.normalized) && !arithmeticOnlyPattern.MatchString(in.normalized) {
		return "", false
	}

	expr := calcStripPattern.ReplaceAllString(in.normalized, "")
	value, err := evalExpression(expr)
	if err != nil {
		if errors.Is(err, errUnsafeExpression) {
			return msgUnsafeExpression, true
		}
		return msgCalcFailure, true
	}
	return fmt.Sprintf(calcResultFormat, formatResult(value)), true
}

func (e *Engine) matchWeather(in *matchInput) (string, bool) {
	const marker = "weather in "
	if !strings.Contains(in.normalized, marker) {
		return "", false
	}
	// Extract the city from the raw message so its casing survives.
	idx := strings.Index(strings.ToLower(in.raw), marker)
	city := strings.TrimSpace(in.raw[idx+len(marker):])
	if city == "" {
		return msgMissingCity, true
	}
	return fmt.Sprintf(weatherReplyFormat, city), true
}

func (e *Engine) matchSearch(in *matchInput) (string, bool) {
	const marker = "search for "
	if !strings.Contains(in.normalized, marker) {
		return "", false
	}
	idx := strings.Index(strings.ToLower(in.raw), marker)
	query := strings.TrimSpace(in.raw[idx+len(marker):])
	if query == "" {
		return msgMissingQuery, true
	}
	return fmt.Sprintf(searchReplyFormat, query), true
}

func (e *Engine) matchQA(in *matchInput) (string, bool) {
	for _, entry := range qaEntries {
		if strings.Contains(in.normalized, entry.question) {
			return e.pick(entry.answers), true
		}
	}
	return "", false
}

// matchRepeat fires when the previous user message equals the current one
// after trimming and lowercasing. The current user turn is already in the
// history when classification runs, so the comparison target is the
// second-to-last user turn.
func (e *Engine) matchRepeat(in *matchInput) (string, bool) {
	if len(in.history) < 2 {
		return "", false
	}
	var userTurns []session.Turn
	for _, turn := range in.history {
		if turn.Role == "user" {
			userTurns = append(userTurns, turn)
		}
	}
	if len(userTurns) < 2 {
		return "", false
	}
	previous := userTurns[len(userTurns)-2]
	if strings.ToLower(strings.TrimSpace(previous.Content)) == in.normalized {
		return msgRepeatedInput, true
	}
	return "", false
}

func (e *Engine) matchFallback(in *matchInput) (string, bool) {
	return e.pick(fallbackReplies), true
}

// now indirection lets tests pin the clock for the time rule.
func (e *Engine) now() time.Time {
	if e.clock != nil {
		return e.clock()
	}
	return time.Now()
}
