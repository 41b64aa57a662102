package monitor

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/pulse/internal/poll"
	"github.com/rileyhilliard/pulse/internal/render"
	"github.com/rileyhilliard/pulse/internal/snapshot"
	snaptest "github.com/rileyhilliard/pulse/internal/snapshot/testing"
	"github.com/rileyhilliard/pulse/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine_Live(t *testing.T) {
	line := FormatLine(liveBoard().State(), okResult(3))

	assert.Equal(t,
		`#3 live at=2026-10-14T12:00:00Z score=85 message="All systems nominal" cpu=42.5% load=0.52/0.71 mem=400/1000MB (40%) headroom=60%`,
		line)
}

func TestFormatLine_Offline(t *testing.T) {
	line := FormatLine(liveBoard().State(), failedResult(4))

	assert.Equal(t, `#4 offline error="Endpoint returned HTTP 500"`, line)
}

func TestFormatLine_EmptyBoard(t *testing.T) {
	line := FormatLine(surface.NewBoard().State(), okResult(1))
	assert.Contains(t, line, "score="+placeholder)
}

func TestLinePrinter_PrefersResultSurface(t *testing.T) {
	var out bytes.Buffer
	board := liveBoard()
	printer := NewLinePrinter(board, &out)

	// The board has moved on to a later cycle; the result still carries its own
	captured := board.State()
	render.New(board, nil).RenderLive(snaptest.With(snaptest.Score("12")))
	r := okResult(5)
	r.Surface = captured

	printer.OnCycle(r)

	assert.Contains(t, out.String(), "#5 live")
	assert.Contains(t, out.String(), "score=85")
	assert.NotContains(t, out.String(), "score=12")
}

func TestLinePrinter_FallsBackToBoard(t *testing.T) {
	var out bytes.Buffer
	printer := NewLinePrinter(liveBoard(), &out)

	printer.OnCycle(okResult(1))

	assert.Contains(t, out.String(), "score=85")
}

type fakeSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (f *fakeSender) Send(msg tea.Msg) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}

func TestBridge_OnCycle(t *testing.T) {
	s := &fakeSender{}
	b := NewBridge(s)

	b.OnCycle(okResult(1))
	b.OnCycle(failedResult(2))

	require.Len(t, s.msgs, 2)
	assert.Equal(t, CycleMsg{Result: okResult(1)}, s.msgs[0])
	assert.Equal(t, uint64(2), s.msgs[1].(CycleMsg).Result.Seq)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

type staticFetcher struct{}

func (staticFetcher) Fetch(context.Context) (snapshot.Snapshot, error) {
	return snaptest.Sample(), nil
}

func TestRun_PlainOutput(t *testing.T) {
	out := &syncBuffer{}
	var hooked sync.WaitGroup
	hooked.Add(1)
	var once sync.Once

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, RunOptions{
			Fetcher: staticFetcher{},
			Poll: poll.Options{
				Interval: time.Hour,
				OnCycle:  func(poll.Result) { once.Do(hooked.Done) },
			},
			Endpoint: "http://x",
			Out:      out,
		})
	}()

	hooked.Wait()
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "#1 live") }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
