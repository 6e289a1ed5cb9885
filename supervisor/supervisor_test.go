// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package supervisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/troupe/errors"
)

func TestNewSupervisorDefaults(t *testing.T) {
	supervisor := NewSupervisor()
	require.Equal(t, ResetDirective, supervisor.Directive())
	require.Equal(t, OneForOneStrategy, supervisor.Strategy())
	require.NoError(t, supervisor.Validate())
}

func TestSupervisorOption(t *testing.T) {
	supervisor := NewSupervisor(WithDirective(RestartDirective), WithStrategy(OneForAllStrategy))
	assert.Equal(t, &Supervisor{directive: RestartDirective, strategy: OneForAllStrategy}, supervisor)
}

func TestSupervisorValidate(t *testing.T) {
	testCases := []struct {
		directive Directive
		strategy  Strategy
		valid     bool
	}{
		{TerminateDirective, OneForOneStrategy, true},
		{TerminateDirective, OneForAllStrategy, false},
		{ResumeDirective, OneForOneStrategy, true},
		{ResumeDirective, OneForAllStrategy, false},
		{ResetDirective, OneForOneStrategy, true},
		{ResetDirective, OneForAllStrategy, true},
		{RestartDirective, OneForOneStrategy, true},
		{RestartDirective, OneForAllStrategy, true},
		{Directive(42), OneForOneStrategy, false},
		{ResetDirective, Strategy(42), false},
	}

	for _, tc := range testCases {
		t.Run(tc.directive.String()+"/"+tc.strategy.String(), func(t *testing.T) {
			err := NewSupervisor(WithDirective(tc.directive), WithStrategy(tc.strategy)).Validate()
			if tc.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, gerrors.ErrInvalidSupervision)
		})
	}
}

func TestStrategyString(t *testing.T) {
	require.Equal(t, "OneForOne", OneForOneStrategy.String())
	require.Equal(t, "OneForAll", OneForAllStrategy.String())
	require.Equal(t, "", Strategy(42).String())
}

func TestDirectiveString(t *testing.T) {
	require.Equal(t, "Terminate", TerminateDirective.String())
	require.Equal(t, "Resume", ResumeDirective.String())
	require.Equal(t, "Reset", ResetDirective.String())
	require.Equal(t, "Restart", RestartDirective.String())
	require.Equal(t, "", Directive(42).String())
}
