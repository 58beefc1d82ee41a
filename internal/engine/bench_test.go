package engine

import (
	"regexp"
	"strings"
	"testing"

	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/decorator"
	"github.com/sompylasar/draft-js/internal/engine/history"
	"github.com/sompylasar/draft-js/internal/engine/selection"
	"github.com/sompylasar/draft-js/internal/engine/transaction"
)

// ============================================================================
// Setup Helpers
// ============================================================================

func setupLargeState(b *testing.B, blocks int, opts ...Option) *EditorState {
	b.Helper()
	line := strings.Repeat("x", 70) + " #tag " + strings.Repeat("y", 10)
	lines := make([]string, blocks)
	for i := range lines {
		lines[i] = line
	}
	return CreateWithContent(content.FromText(strings.Join(lines, "\n"), nil), opts...)
}

func hashtagDecorator() *decorator.Composite {
	return decorator.NewComposite(decorator.Entry{
		Name:     "hashtag",
		Strategy: decorator.RegexStrategy(regexp.MustCompile(`#\w+`)),
	})
}

// ============================================================================
// Push Benchmarks
// ============================================================================

func BenchmarkPushTyping(b *testing.B) {
	es := setupLargeState(b, 1000, WithDecorator(hashtagDecorator()))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		cs, err := transaction.InsertText(es.Content(), es.Selection(), "a", nil)
		if err != nil {
			b.Fatal(err)
		}
		es = es.Push(cs, history.InsertCharacters, true)
	}
}

func BenchmarkUndoRedo(b *testing.B) {
	es := setupLargeState(b, 1000)
	cs, err := transaction.InsertText(es.Content(), es.Selection(), "a", nil)
	if err != nil {
		b.Fatal(err)
	}
	es = es.Push(cs, history.InsertCharacters, true)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		es = es.Undo().Redo()
	}
}

// ============================================================================
// Cache Benchmarks
// ============================================================================

func BenchmarkSetDecorator(b *testing.B) {
	es := setupLargeState(b, 1000)
	dec := hashtagDecorator()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = es.SetDecorator(dec)
	}
}

func BenchmarkCurrentInlineStyle(b *testing.B) {
	es := setupLargeState(b, 1000)
	last := es.Content().LastBlock()
	es = es.AcceptSelection(selection.Collapsed(last.Key(), 0))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = es.CurrentInlineStyle()
	}
}
