package alert

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthrule/pacewatch/pkg/types"
)

type recordingSink struct {
	name string
	sent []types.OpsAlert
	err  error
}

func (s *recordingSink) Send(alert types.OpsAlert) error {
	s.sent = append(s.sent, alert)
	return s.err
}

func (s *recordingSink) Name() string { return s.name }

func opsAlert(level types.OpsAlertLevel, msg string) types.OpsAlert {
	return types.OpsAlert{
		Level:     level,
		Stage:     "promote",
		Message:   msg,
		Timestamp: time.Now(),
	}
}

func TestDispatch_FansOutToAllSinks(t *testing.T) {
	a := &recordingSink{name: "a"}
	b := &recordingSink{name: "b"}
	d := NewDispatcherWithSinks(a, b)

	d.Dispatch(opsAlert(types.OpsAlertError, "mart insert failed"))

	require.Len(t, a.sent, 1)
	require.Len(t, b.sent, 1)
	assert.Equal(t, "mart insert failed", a.sent[0].Message)
}

func TestDispatch_SinkFailureDoesNotStopOthers(t *testing.T) {
	broken := &recordingSink{name: "broken", err: fmt.Errorf("unreachable")}
	ok := &recordingSink{name: "ok"}
	d := NewDispatcherWithSinks(broken, ok)

	d.Dispatch(opsAlert(types.OpsAlertWarning, "duplicate skipped"))

	assert.Len(t, ok.sent, 1)
}

func TestNewDispatcher_UnknownSinkType(t *testing.T) {
	_, err := NewDispatcher([]Config{{Type: "pager"}})
	assert.ErrorContains(t, err, "unknown alert type")
}

func TestNewDispatcher_MissingSNSTopic(t *testing.T) {
	_, err := NewDispatcher([]Config{{Type: TypeSNS}})
	assert.ErrorContains(t, err, "topic ARN required")
}
