package doctor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCheck struct {
	name     string
	category string
	result   CheckResult
}

func (m *mockCheck) Name() string                    { return m.name }
func (m *mockCheck) Category() string                { return m.category }
func (m *mockCheck) Run(context.Context) CheckResult { return m.result }

func TestCheckStatus_String(t *testing.T) {
	assert.Equal(t, "pass", StatusPass.String())
	assert.Equal(t, "warn", StatusWarn.String())
	assert.Equal(t, "fail", StatusFail.String())
	assert.Equal(t, "unknown", CheckStatus(99).String())
}

func TestCheckResult_JSONUsesStatusName(t *testing.T) {
	data, err := json.Marshal(CheckResult{Name: "x", Status: StatusWarn})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"warn"`)
}

func TestRunAll_FillsNameAndCategory(t *testing.T) {
	checks := []Check{
		&mockCheck{name: "one", category: "A", result: CheckResult{Status: StatusPass}},
		&mockCheck{name: "two", category: "B", result: CheckResult{Name: "custom", Status: StatusFail}},
	}

	results := RunAll(context.Background(), checks)

	require.Len(t, results, 2)
	assert.Equal(t, "one", results[0].Name)
	assert.Equal(t, "A", results[0].Category)
	assert.Equal(t, "custom", results[1].Name)
	assert.Equal(t, "B", results[1].Category)
}

func TestRunAllParallel_KeepsOrder(t *testing.T) {
	var checks []Check
	for _, name := range []string{"a", "b", "c", "d"} {
		checks = append(checks, &mockCheck{name: name, category: "T"})
	}

	results := RunAllParallel(context.Background(), checks)

	require.Len(t, results, 4)
	for i, name := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, name, results[i].Name)
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Everything looks good", Summary([]CheckResult{{Status: StatusPass}}))
	assert.Equal(t, "1 issue found", Summary([]CheckResult{{Status: StatusPass}, {Status: StatusWarn}}))
	assert.Equal(t, "2 issues found", Summary([]CheckResult{{Status: StatusFail}, {Status: StatusWarn}}))
}

func TestHasFailures(t *testing.T) {
	assert.False(t, HasFailures([]CheckResult{{Status: StatusPass}, {Status: StatusWarn}}))
	assert.True(t, HasFailures([]CheckResult{{Status: StatusFail}}))
}
