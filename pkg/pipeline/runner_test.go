package pipeline

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/turkshead/pkg/cache"
	knotio "github.com/matzehuels/turkshead/pkg/io"
	"github.com/matzehuels/turkshead/pkg/knot/factory"
	"github.com/matzehuels/turkshead/pkg/observability"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner left nil fields: %+v", r)
	}
}

func TestExecuteTurksHead(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Execute(context.Background(), Options{Leads: 2, Bights: 3, Formats: []string{"txt", "json"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.RunID == "" || res.Source != knotio.KindTurksHead || res.Synthesis != nil {
		t.Errorf("result header = %q %q %v", res.RunID, res.Source, res.Synthesis)
	}
	if len(res.Knots) != 1 || res.Stats.KnotCount != 1 {
		t.Fatalf("knots = %d", len(res.Knots))
	}
	if res.Stats.Strands != 1 || res.Stats.Crossings != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}

	kr := res.Knots[0]
	if kr.Analysis.Name != "TH(2,3)" {
		t.Errorf("name = %q", kr.Analysis.Name)
	}
	if got, want := string(kr.Artifacts["txt"]), "o o o\n X X X\no o o\n"; got != want {
		t.Errorf("txt artifact = %q, want %q", got, want)
	}
	a, err := knotio.ReadAnalysis(strings.NewReader(string(kr.Artifacts["json"])))
	if err != nil {
		t.Fatal(err)
	}
	if a.Key != "0,0;2,0;4,0;0,2;2,2;4,2" || a.StrandCount != 1 {
		t.Errorf("json artifact = %+v", a)
	}
}

func TestExecuteCachesSynthesisAndArtifacts(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{Layers: factory.Layers{{Count: 3, Height: 2}}, Formats: []string{"dot", "txt"}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.BuildHit || first.CacheInfo.RenderHits != 0 {
		t.Errorf("first run hit the cache: %+v", first.CacheInfo)
	}
	if first.Synthesis == nil || len(first.Knots) != 1 {
		t.Fatalf("synthesis = %+v", first.Synthesis)
	}
	if name := first.Knots[0].Analysis.Name; name != "3@2#1" {
		t.Errorf("name = %q, want 3@2#1", name)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.BuildHit || second.CacheInfo.RenderHits != 2 {
		t.Errorf("second run cache info = %+v", second.CacheInfo)
	}
	if !second.Knots[0].Analysis.Knot.Equal(first.Knots[0].Analysis.Knot) {
		t.Error("cached synthesis returned a different knot")
	}
	if string(second.Knots[0].Artifacts["dot"]) != string(first.Knots[0].Artifacts["dot"]) {
		t.Error("cached DOT differs")
	}
	if second.RunID == first.RunID {
		t.Error("run IDs should differ")
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.BuildHit || third.CacheInfo.RenderHits != 0 {
		t.Errorf("refresh run read the cache: %+v", third.CacheInfo)
	}
}

func TestExecuteLimit(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	// Both rows at {0,4,8} pair every diagonal, so the search finds at least one knot.
	opts := Options{Layers: factory.Layers{{Count: 3, Height: 2}, {Count: 3, Height: 4}}, Limit: 1, Formats: []string{"txt"}}
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Knots) != 1 {
		t.Errorf("knots = %d, want 1", len(res.Knots))
	}
	if len(res.Synthesis.Knots) < 1 {
		t.Errorf("synthesis lost its knots: %+v", res.Synthesis)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("empty options should fail")
	}
	if _, err := r.Execute(context.Background(), Options{Leads: 2, Bights: 3, Formats: []string{"pdf"}}); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestExecuteHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Leads: 3, Bights: 4, Formats: []string{"txt"}}); err != nil {
		t.Fatal(err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	want := []string{"build:turkshead", "built:1", "analyze:8", "analyzed:1:8", "render", "rendered"}
	if strings.Join(h.events, " ") != strings.Join(want, " ") {
		t.Errorf("events = %v, want %v", h.events, want)
	}
}

type recordingHooks struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(s string) {
	h.mu.Lock()
	h.events = append(h.events, s)
	h.mu.Unlock()
}

func (h *recordingHooks) OnBuildStart(_ context.Context, source string) { h.add("build:" + source) }

func (h *recordingHooks) OnBuildComplete(_ context.Context, _ string, knots int, _ time.Duration, _ error) {
	h.add("built:" + strconv.Itoa(knots))
}

func (h *recordingHooks) OnAnalyzeStart(_ context.Context, pivots int) {
	h.add("analyze:" + strconv.Itoa(pivots))
}

func (h *recordingHooks) OnAnalyzeComplete(_ context.Context, strands, crossings int, _ time.Duration, _ error) {
	h.add("analyzed:" + strconv.Itoa(strands) + ":" + strconv.Itoa(crossings))
}

func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.add("render") }

func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.add("rendered")
}
