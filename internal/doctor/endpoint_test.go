package doctor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/snapshot"
	snaptest "github.com/rileyhilliard/pulse/internal/snapshot/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls atomic.Int32
	delay time.Duration
	snap  snapshot.Snapshot
	err   error
}

func (f *countingFetcher) Fetch(ctx context.Context) (snapshot.Snapshot, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.snap, f.err
}

func statuses(results []CheckResult) []CheckStatus {
	out := make([]CheckStatus, len(results))
	for i, r := range results {
		out[i] = r.Status
	}
	return out
}

func TestEndpointChecks_Healthy(t *testing.T) {
	f := &countingFetcher{snap: snaptest.Sample()}

	results := RunAllParallel(context.Background(), EndpointChecks(f, time.Second, time.Second))

	assert.Equal(t, []CheckStatus{StatusPass, StatusPass, StatusPass}, statuses(results))
	assert.Equal(t, int32(1), f.calls.Load(), "checks share one request")
	assert.Contains(t, results[1].Message, `health 85, "All systems nominal"`)
}

func TestEndpointChecks_Unreachable(t *testing.T) {
	f := &countingFetcher{err: errors.New(errors.ErrTransport, "Endpoint returned HTTP 502", "")}

	results := RunAll(context.Background(), EndpointChecks(f, 0, time.Second))

	assert.Equal(t, []CheckStatus{StatusFail, StatusFail, StatusFail}, statuses(results))
	assert.Equal(t, "Endpoint returned HTTP 502", results[0].Message)
	assert.Contains(t, results[0].Suggestion, "pulse agent")
}

func TestEndpointChecks_BadSnapshot(t *testing.T) {
	f := &countingFetcher{err: errors.New(errors.ErrDecode, "Missing field cpu_metric", "")}

	results := RunAll(context.Background(), EndpointChecks(f, 0, time.Second))

	assert.Equal(t, []CheckStatus{StatusPass, StatusFail, StatusPass}, statuses(results))
	assert.Equal(t, "Missing field cpu_metric", results[1].Message)
}

func TestSnapshotCheck_ZeroTotalMemory(t *testing.T) {
	f := &countingFetcher{snap: snaptest.With(snaptest.Memory("0", "0"))}

	results := RunAll(context.Background(), EndpointChecks(f, 0, time.Second))

	assert.Equal(t, StatusWarn, results[1].Status)
	assert.Contains(t, results[1].Message, "total_mb")
}

func TestLatencyCheck_SlowerThanInterval(t *testing.T) {
	f := &countingFetcher{snap: snaptest.Sample(), delay: 30 * time.Millisecond}

	results := RunAll(context.Background(), EndpointChecks(f, 0, 10*time.Millisecond))

	require.Len(t, results, 3)
	assert.Equal(t, StatusWarn, results[2].Status)
	assert.Contains(t, results[2].Message, "longer than the 10ms interval")
}
