package portal

import (
	"context"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"

	"fretebot/domain/entities"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		status string
		want   entities.Status
	}{
		{"APROVADO", entities.StatusApproved},
		{"aprovado", entities.StatusApproved},
		{"APROVADO PARCIAL", entities.StatusApproved},
		{"RECUSADO", entities.StatusRejected},
		{"RECUSADO POR DOCUMENTO", entities.StatusRejected},
		{"PENDENTE", entities.StatusProcessing},
		{"EM ANÁLISE", entities.StatusProcessing},
		{"", entities.StatusProcessing},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyStatus(tc.status), "status %q", tc.status)
	}
}

// fakeGrid feeds MonitorStatus a scripted sequence of status readings,
// repeating the last one once the script runs out.
func fakeGrid(r *Robot, readings ...func() (string, bool, error)) *int {
	reloads := new(int)
	i := 0
	r.readStatus = func(playwright.Page, string, string) (string, bool, error) {
		reading := readings[i]
		if i < len(readings)-1 {
			i++
		}
		return reading()
	}
	r.reload = func(playwright.Page, time.Duration) error {
		*reloads++
		return nil
	}
	return reloads
}

func pending() (string, bool, error)  { return "PENDENTE", true, nil }
func approved() (string, bool, error) { return "APROVADO", true, nil }
func rejected() (string, bool, error) { return "RECUSADO", true, nil }
func missing() (string, bool, error)  { return "", false, nil }

func TestMonitorStatusTimedOut(t *testing.T) {
	robot := newTestRobot(t)
	fakeGrid(robot, pending)

	result := robot.MonitorStatus(context.Background(), &Session{}, entities.PortalConfig{},
		"12345", "98100", MonitorOptions{PollInterval: 5 * time.Millisecond, MaxWait: 40 * time.Millisecond})

	assert.False(t, result.Success)
	assert.Equal(t, entities.StatusTimedOut, result.Status)
	assert.NotEmpty(t, result.UserMessage)
}

func TestMonitorStatusCancelled(t *testing.T) {
	robot := newTestRobot(t)
	fakeGrid(robot, pending)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := robot.MonitorStatus(ctx, &Session{}, entities.PortalConfig{},
		"12345", "98100", MonitorOptions{PollInterval: time.Hour})

	assert.Equal(t, entities.StatusTimedOut, result.Status)
}

func TestMonitorStatusApproved(t *testing.T) {
	robot := newTestRobot(t)
	reloads := fakeGrid(robot, approved)

	result := robot.MonitorStatus(context.Background(), &Session{}, entities.PortalConfig{},
		"12345", "98100", MonitorOptions{PollInterval: time.Hour})

	assert.True(t, result.Success)
	assert.Equal(t, entities.StatusApproved, result.Status)
	// first reading was final, the grid was never reloaded
	assert.Zero(t, *reloads)
}

func TestMonitorStatusRejected(t *testing.T) {
	robot := newTestRobot(t)
	fakeGrid(robot, rejected)

	result := robot.MonitorStatus(context.Background(), &Session{}, entities.PortalConfig{},
		"12345", "98100", MonitorOptions{PollInterval: time.Hour})

	assert.False(t, result.Success)
	assert.Equal(t, entities.StatusRejected, result.Status)
}

func TestMonitorStatusKeepsWatchingWhileRowMissing(t *testing.T) {
	robot := newTestRobot(t)
	reloads := fakeGrid(robot, missing, approved)

	result := robot.MonitorStatus(context.Background(), &Session{}, entities.PortalConfig{},
		"12345", "98100", MonitorOptions{PollInterval: time.Millisecond, MaxWait: 5 * time.Second})

	assert.Equal(t, entities.StatusApproved, result.Status)
	assert.Equal(t, 1, *reloads)
}
