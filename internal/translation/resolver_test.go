package translation

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubProvider answers from a fixed outcome and counts calls.
type stubProvider struct {
	name    string
	outcome Outcome
	calls   int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Translate(ctx context.Context, word, source, target string) Outcome {
	s.calls++
	return s.outcome
}

func okProvider(name, text string) *stubProvider {
	return &stubProvider{name: name, outcome: OK(text)}
}

func TestResolveMultiAggregation(t *testing.T) {
	providers := []Provider{
		okProvider("a", "gato"),
		okProvider("b", "cat"),
		okProvider("c", "cat "),
		okProvider("d", "CAT"),
	}
	r, err := NewMultiResolver(providers, nil)
	if err != nil {
		t.Fatalf("NewMultiResolver failed: %v", err)
	}

	got := r.Resolve(context.Background(), "gato")
	if got != "cat" {
		t.Errorf("Resolve(gato) = %q, want %q", got, "cat")
	}
}

func TestResolveMultiCandidatesFromOneProvider(t *testing.T) {
	providers := []Provider{
		&stubProvider{name: "a", outcome: OK("gato", "cat", "cat ", "CAT")},
		okProvider("b", "the small black cat sits"),
	}
	r, err := NewMultiResolver(providers, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := r.Resolve(context.Background(), "gato"); got != "cat" {
		t.Errorf("Resolve(gato) = %q, want %q", got, "cat")
	}
}

func TestResolveMultiComparesWithWordAsGiven(t *testing.T) {
	r, err := NewMultiResolver([]Provider{okProvider("a", "Harry")}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := r.Resolve(context.Background(), "Harry"); got != "harry" {
		t.Errorf("Resolve(Harry) = %q, want %q", got, "harry")
	}
}

func TestResolveMultiDropsLongAnswers(t *testing.T) {
	providers := []Provider{
		okProvider("a", "cat"),
		okProvider("b", "the small cat sits"),
		okProvider("c", "the small cat sits down"),
	}
	r, err := NewMultiResolver(providers, nil)
	if err != nil {
		t.Fatal(err)
	}

	got := r.Resolve(context.Background(), "gato")
	want := "cat, the small cat sits"
	if got != want {
		t.Errorf("Resolve(gato) = %q, want %q", got, want)
	}
}

func TestResolveMultiKeepsOrderAndSkipsFailures(t *testing.T) {
	failing := &stubProvider{name: "down", outcome: TransportError("down", errors.New("connection refused"))}
	missing := &stubProvider{name: "empty", outcome: NotFound("empty", "perro")}
	providers := []Provider{
		okProvider("a", "Dog"),
		failing,
		missing,
		okProvider("d", "hound"),
	}
	r, err := NewMultiResolver(providers, nil)
	if err != nil {
		t.Fatal(err)
	}

	got := r.Resolve(context.Background(), "perro")
	if got != "dog, hound" {
		t.Errorf("Resolve(perro) = %q, want %q", got, "dog, hound")
	}
	if failing.calls != 1 || missing.calls != 1 {
		t.Errorf("expected every provider to be asked once, got %d and %d", failing.calls, missing.calls)
	}
}

func TestResolveMultiNothingUsable(t *testing.T) {
	r, err := NewMultiResolver([]Provider{okProvider("a", "  "), okProvider("b", "Sol")}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := r.Resolve(context.Background(), "sol"); got != "" {
		t.Errorf("Resolve(sol) = %q, want empty", got)
	}
}

func TestNewMultiResolverTooManyProviders(t *testing.T) {
	providers := []Provider{
		okProvider("a", "x"), okProvider("b", "x"), okProvider("c", "x"),
		okProvider("d", "x"), okProvider("e", "x"),
	}
	if _, err := NewMultiResolver(providers, nil); err == nil {
		t.Error("expected error for five providers")
	}
}

func TestResolveSingle(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{"ok verbatim", OK("The Cat"), "The Cat"},
		{"not found", NotFound("deepl", "gato"), ""},
		{"transport", TransportError("deepl", errors.New("timeout")), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSingleResolver(&stubProvider{name: "deepl", outcome: tt.outcome}, nil)
			if got := r.Resolve(context.Background(), "gato"); got != tt.want {
				t.Errorf("Resolve(gato) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveUsesCache(t *testing.T) {
	p := okProvider("deepl", "cat")
	r := NewSingleResolver(p, nil)

	r.Resolve(context.Background(), "gato")
	r.Resolve(context.Background(), "gato")

	if p.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", p.calls)
	}
	if r.Cache().Len() != 1 {
		t.Errorf("expected 1 cached word, got %d", r.Cache().Len())
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" Multi "); err != nil || m != ModeMulti {
		t.Errorf("ParseMode(Multi) = %q, %v", m, err)
	}
	if _, err := ParseMode("both"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestNewResolverSingleRequiresDeepLKey(t *testing.T) {
	_, err := NewResolver(context.Background(), ModeSingle, nil, &Config{}, nil)
	if err == nil {
		t.Error("expected error without DeepL key")
	}
}

func TestBuildProvidersSkipsMissingCredentials(t *testing.T) {
	config := &Config{LibreTranslateURL: "http://localhost:5000"}
	providers := BuildProviders(context.Background(), DefaultMultiProviders, config, nil)

	var names []string
	for _, p := range providers {
		names = append(names, p.Name())
	}
	want := []string{ProviderLibreTranslate, ProviderMyMemory}
	if len(names) != len(want) {
		t.Fatalf("got providers %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("provider %d = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestOutcomeErrors(t *testing.T) {
	nf := NotFound("mymemory", "gato")
	if !errors.Is(nf.Err, ErrNotFound) {
		t.Errorf("NotFound error should wrap ErrNotFound: %v", nf.Err)
	}
	te := TransportError("mymemory", errors.New("boom"))
	if !errors.Is(te.Err, ErrTransport) {
		t.Errorf("TransportError should wrap ErrTransport: %v", te.Err)
	}
	if te.OK() || nf.OK() || !OK("x").OK() {
		t.Error("OK() misreports outcome kind")
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	p := &stubProvider{name: "flaky", outcome: TransportError("flaky", errors.New("503"))}
	b := WithBreaker(p, BreakerSettings{MaxConsecutiveFailures: 2, Cooldown: time.Hour}, nil)

	for i := 0; i < 4; i++ {
		outcome := b.Translate(context.Background(), "gato", "es", "en")
		if outcome.Kind != KindTransport {
			t.Fatalf("call %d: expected transport error, got %s", i, outcome.Kind)
		}
	}
	if p.calls != 2 {
		t.Errorf("expected breaker to stop calls after 2 failures, provider called %d times", p.calls)
	}
}

func TestBreakerIgnoresNotFound(t *testing.T) {
	p := &stubProvider{name: "sparse", outcome: NotFound("sparse", "gato")}
	b := WithBreaker(p, BreakerSettings{MaxConsecutiveFailures: 1, Cooldown: time.Hour}, nil)

	for i := 0; i < 3; i++ {
		b.Translate(context.Background(), "gato", "es", "en")
	}
	if p.calls != 3 {
		t.Errorf("not found answers must not trip the breaker, provider called %d times", p.calls)
	}
}
