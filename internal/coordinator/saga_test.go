package coordinator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkeshop/ecommerce-orders/internal/coordinator/sagalog"
)

type scriptedStep struct {
	name        string
	execErr     error
	compErr     error
	executed    bool
	compensated *[]string // records compensation order across steps
}

func (s *scriptedStep) Name() string { return s.name }

func (s *scriptedStep) Execute(context.Context) error {
	s.executed = true
	return s.execErr
}

func (s *scriptedStep) Compensate(context.Context) error {
	*s.compensated = append(*s.compensated, s.name)
	return s.compErr
}

type memLog struct {
	entries []sagalog.SagaLog
}

func (m *memLog) Save(_ context.Context, e *sagalog.SagaLog) error {
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memLog) statuses() []sagalog.Status {
	out := make([]sagalog.Status, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Status)
	}
	return out
}

func TestOrchestratorRunsAllSteps(t *testing.T) {
	var order []string
	steps := []Step{
		&scriptedStep{name: "one", compensated: &order},
		&scriptedStep{name: "two", compensated: &order},
	}
	log := &memLog{}

	err := NewOrchestrator("saga-1", `{"ref":"saga-1"}`, steps, log).Start(context.Background())
	require.NoError(t, err)

	assert.Empty(t, order, "no compensation on success")
	assert.Equal(t, []sagalog.Status{
		sagalog.StatusStarted,
		sagalog.StatusStepDone,
		sagalog.StatusStepDone,
		sagalog.StatusCompleted,
	}, log.statuses())
	assert.Equal(t, `{"ref":"saga-1"}`, log.entries[0].Payload, "payload stored on the STARTED row")
}

func TestOrchestratorCompensatesLIFO(t *testing.T) {
	var order []string
	boom := errors.New("step three failed")
	steps := []Step{
		&scriptedStep{name: "one", compensated: &order},
		&scriptedStep{name: "two", compensated: &order},
		&scriptedStep{name: "three", execErr: boom, compensated: &order},
	}
	log := &memLog{}

	err := NewOrchestrator("saga-2", "", steps, log).Start(context.Background())
	require.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"two", "one"}, order, "compensation runs newest-first")
	assert.Equal(t, sagalog.StatusFailed, log.entries[len(log.entries)-1].Status)
	assert.Equal(t, "three", log.entries[len(log.entries)-1].CurrentStep)
}

func TestOrchestratorRecordsCompensationFailures(t *testing.T) {
	var order []string
	steps := []Step{
		&scriptedStep{name: "one", compErr: errors.New("undo failed"), compensated: &order},
		&scriptedStep{name: "two", execErr: errors.New("boom"), compensated: &order},
	}
	log := &memLog{}

	err := NewOrchestrator("saga-3", "", steps, log).Start(context.Background())
	require.Error(t, err)

	last := log.entries[len(log.entries)-1]
	assert.Equal(t, sagalog.StatusFailed, last.Status)
	assert.Contains(t, last.ErrorMessages, "undo failed")
	assert.Contains(t, last.ErrorMessages, "boom")
}

func TestOrchestratorNilLog(t *testing.T) {
	var order []string
	steps := []Step{&scriptedStep{name: "only", compensated: &order}}

	err := NewOrchestrator("saga-4", "", steps, nil).Start(context.Background())
	require.NoError(t, err)
}
