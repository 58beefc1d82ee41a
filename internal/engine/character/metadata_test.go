package character

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleSetCanonical(t *testing.T) {
	a := NewStyleSet("ITALIC", "BOLD", "BOLD", "")
	b := NewStyleSet("BOLD", "ITALIC")

	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Equal(b))
	assert.Equal(t, []string{"BOLD", "ITALIC"}, a.Slice())
	assert.Equal(t, "[BOLD,ITALIC]", a.String())
}

func TestStyleSetAddRemove(t *testing.T) {
	s := StyleSet{}
	assert.True(t, s.IsEmpty())

	s = s.Add("BOLD").Add("CODE").Add("BOLD")
	assert.Equal(t, []string{"BOLD", "CODE"}, s.Slice())
	assert.True(t, s.Has("CODE"))

	s = s.Remove("BOLD").Remove("MISSING")
	assert.Equal(t, []string{"CODE"}, s.Slice())
	assert.False(t, s.Has("BOLD"))
}

func TestStyleSetUnion(t *testing.T) {
	u := NewStyleSet("A", "C").Union(NewStyleSet("B", "C"))
	assert.Equal(t, []string{"A", "B", "C"}, u.Slice())
	assert.True(t, NewStyleSet("A").Union(StyleSet{}).Equal(NewStyleSet("A")))
}

func TestPoolCreateIsIdempotent(t *testing.T) {
	p := NewPool()

	a := p.Create(NewStyleSet("BOLD"), "1")
	b := p.Create(NewStyleSet("BOLD"), "1")
	require.NotNil(t, a)
	assert.Same(t, a, b)

	c := p.Create(NewStyleSet("BOLD"), "2")
	assert.NotSame(t, a, c)
}

func TestPoolEmptySingleton(t *testing.T) {
	p := NewPool()
	assert.Same(t, p.Empty(), p.Create(StyleSet{}, ""))
	assert.Same(t, DefaultPool.Empty(), DefaultPool.Create(NewStyleSet(), ""))
}

func TestPoolApplyStyle(t *testing.T) {
	p := NewPool()
	empty := p.Empty()

	bold := p.ApplyStyle(empty, "BOLD")
	assert.True(t, bold.HasStyle("BOLD"))
	assert.Same(t, bold, p.ApplyStyle(bold, "BOLD"))
	assert.Same(t, empty, p.RemoveStyle(bold, "BOLD"))
	assert.Same(t, bold, p.RemoveStyle(bold, "ITALIC"))
}

func TestPoolApplyEntity(t *testing.T) {
	p := NewPool()
	bold := p.Create(NewStyleSet("BOLD"), "")

	linked := p.ApplyEntity(bold, "7")
	assert.Equal(t, "7", linked.Entity())
	assert.True(t, linked.HasStyle("BOLD"))
	assert.Same(t, linked, p.ApplyEntity(linked, "7"))
	assert.Same(t, bold, p.ApplyEntity(linked, ""))
}

func TestPoolNilMetadata(t *testing.T) {
	p := NewPool()
	var m *Metadata
	assert.Equal(t, "", m.Entity())
	assert.True(t, m.Style().IsEmpty())
	assert.Same(t, p.Empty(), p.ApplyEntity(m, ""))
}

func TestPoolConcurrentCreate(t *testing.T) {
	p := NewPool()
	styles := []string{"BOLD", "ITALIC", "CODE", "UNDERLINE"}

	var wg sync.WaitGroup
	results := make([][]*Metadata, 8)
	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for _, s := range styles {
				results[g] = append(results[g], p.Create(NewStyleSet(s), ""))
			}
		}(g)
	}
	wg.Wait()

	for g := 1; g < len(results); g++ {
		for i := range styles {
			assert.Same(t, results[0][i], results[g][i])
		}
	}
	assert.Equal(t, len(styles)+1, p.Len())
}

func TestRepeat(t *testing.T) {
	p := NewPool()
	run := Repeat(p.Empty(), 3)
	assert.Len(t, run, 3)
	assert.Nil(t, Repeat(p.Empty(), 0))
}
