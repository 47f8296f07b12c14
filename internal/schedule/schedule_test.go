// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/digest-engine/pkg/types"
)

func TestNewValidatesConfig(t *testing.T) {
	job := func() {}

	_, err := New(types.ScheduleConfig{Hour: 24}, job, nil)
	assert.Error(t, err)

	_, err = New(types.ScheduleConfig{Minute: 60}, job, nil)
	assert.Error(t, err)

	_, err = New(types.ScheduleConfig{Timezone: "Mars/Olympus"}, job, nil)
	assert.Error(t, err)
}

func TestNextRun(t *testing.T) {
	s, err := New(types.ScheduleConfig{Hour: 6, Minute: 30}, func() {}, nil)
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	next := s.NextRun()
	require.False(t, next.IsZero())
	assert.Equal(t, 6, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.True(t, next.After(time.Now()))
}

func TestTimezone(t *testing.T) {
	s, err := New(types.ScheduleConfig{Hour: 6, Timezone: "America/New_York"}, func() {}, nil)
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	next := s.NextRun()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, 6, next.In(loc).Hour())
}
