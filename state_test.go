package localsurface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateAttachTable(t *testing.T) {
	tests := []struct {
		from     State
		producer State
		consumer State
	}{
		// A zero result means ErrAlreadyConnected.
		{Undefined, WaitForSink, WaitForSource},
		{WaitForSink, 0, Buffering},
		{WaitForSource, Buffering, 0},
		{Buffering, 0, 0},
		{Running, 0, 0},
		{Underflow, 0, 0},
	}

	for _, tc := range tests {
		for role, want := range map[Role]State{Producer: tc.producer, Consumer: tc.consumer} {
			got, err := tc.from.attach(role)
			if want == 0 {
				assert.Equal(t, ErrAlreadyConnected, err, "%v attach %v", tc.from, role)
				assert.Equal(t, tc.from, got)
			} else {
				assert.NoError(t, err, "%v attach %v", tc.from, role)
				assert.Equal(t, want, got, "%v attach %v", tc.from, role)
			}
		}
	}
}

func TestStateDetachTable(t *testing.T) {
	tests := []struct {
		from     State
		producer State
		consumer State
	}{
		{Undefined, Undefined, Undefined},
		{WaitForSink, Undefined, WaitForSink},
		{WaitForSource, WaitForSource, Undefined},
		{Buffering, WaitForSource, WaitForSink},
		{Running, WaitForSource, WaitForSink},
		{Underflow, WaitForSource, WaitForSink},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.producer, tc.from.detach(Producer), "%v detach producer", tc.from)
		assert.Equal(t, tc.consumer, tc.from.detach(Consumer), "%v detach consumer", tc.from)
	}
}

func TestSurfaceStateSequences(t *testing.T) {
	type step struct {
		attach bool
		role   Role
		want   State
		err    error
	}
	sequences := map[string][]step{
		"producer first": {
			{true, Producer, WaitForSink, nil},
			{true, Producer, WaitForSink, ErrAlreadyConnected},
			{true, Consumer, Buffering, nil},
			{true, Consumer, Buffering, ErrAlreadyConnected},
			{false, Producer, WaitForSource, nil},
			{true, Producer, Buffering, nil},
			{false, Consumer, WaitForSink, nil},
			{false, Producer, Undefined, nil},
		},
		"consumer first": {
			{true, Consumer, WaitForSource, nil},
			{true, Consumer, WaitForSource, ErrAlreadyConnected},
			{true, Producer, Buffering, nil},
			{false, Consumer, WaitForSink, nil},
			{true, Consumer, Buffering, nil},
			{false, Producer, WaitForSource, nil},
			{false, Consumer, Undefined, nil},
		},
	}

	for name, steps := range sequences {
		t.Run(name, func(t *testing.T) {
			s := newSurface(name)
			for i, st := range steps {
				if st.attach {
					assert.Equal(t, st.err, s.Attach(st.role), "step %d", i)
				} else {
					s.Detach(st.role)
				}
				assert.Equal(t, st.want, s.State(), "step %d", i)
			}
		})
	}
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "WaitForSink", WaitForSink.String())
	assert.Equal(t, "State(42)", State(42).String())
	assert.Equal(t, "consumer", Consumer.String())
	assert.True(t, Running.Accepting())
	assert.False(t, Underflow.Accepting())
	assert.True(t, Underflow.Connected())
}
