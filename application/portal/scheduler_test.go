package portal

import (
	"context"
	"errors"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fretebot/domain/entities"
	"fretebot/infrastructure/diagnostics"
)

type fakeSave struct {
	visible  bool
	clicks   int
	clickErr error
}

func (f *fakeSave) WaitFor(options ...playwright.LocatorWaitForOptions) error {
	if !f.visible {
		return errors.New("Timeout 10000ms exceeded")
	}
	return nil
}

func (f *fakeSave) Click(options ...playwright.LocatorClickOptions) error {
	f.clicks++
	return f.clickErr
}

func newTestRobot(t *testing.T) *Robot {
	t.Helper()
	return NewRobot(zap.NewNop(), diagnostics.NewRecorder(t.TempDir(), zap.NewNop()), nil)
}

func TestSplitPhone(t *testing.T) {
	ddd, number, ok := splitPhone("(41) 99999-0000")
	require.True(t, ok)
	assert.Equal(t, "41", ddd)
	assert.Equal(t, "99999-0000", number)

	ddd, number, ok = splitPhone("(11)98888-7777")
	require.True(t, ok)
	assert.Equal(t, "11", ddd)
	assert.Equal(t, "98888-7777", number)

	_, _, ok = splitPhone("99999-0000")
	assert.False(t, ok)
	_, _, ok = splitPhone("")
	assert.False(t, ok)
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "12345678901", onlyDigits("123.456.789-01"))
	assert.Equal(t, "", onlyDigits("abc"))
}

func TestPressSaveDryRunNeverClicks(t *testing.T) {
	robot := newTestRobot(t)
	save := &fakeSave{visible: true}

	for _, mode := range []entities.ExecutionMode{"", entities.ModeDryRun} {
		clicked, err := robot.pressSave(save, entities.PortalConfig{Mode: mode}, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, clicked)
	}
	assert.Zero(t, save.clicks, "dry-run must never press the save button")
}

func TestPressSaveLiveClicksOnce(t *testing.T) {
	robot := newTestRobot(t)
	save := &fakeSave{visible: true}

	clicked, err := robot.pressSave(save, entities.PortalConfig{Mode: entities.ModeLive}, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, clicked)
	assert.Equal(t, 1, save.clicks)
}

func TestPressSaveMissingButtonFailsInEveryMode(t *testing.T) {
	robot := newTestRobot(t)

	for _, mode := range []entities.ExecutionMode{entities.ModeDryRun, entities.ModeLive} {
		save := &fakeSave{visible: false}
		clicked, err := robot.pressSave(save, entities.PortalConfig{Mode: mode}, zap.NewNop())
		require.Error(t, err)
		assert.False(t, clicked)
		assert.Zero(t, save.clicks)
	}
}

func TestPressSaveClickFailure(t *testing.T) {
	robot := newTestRobot(t)
	save := &fakeSave{visible: true, clickErr: errors.New("element is not attached")}

	clicked, err := robot.pressSave(save, entities.PortalConfig{Mode: entities.ModeLive}, zap.NewNop())
	require.Error(t, err)
	assert.False(t, clicked)
}

func TestSubmitScheduleRejectsInvalidRequest(t *testing.T) {
	robot := NewRobot(zap.NewNop(), diagnostics.NewRecorder(t.TempDir(), zap.NewNop()), nil)

	// an invalid request must fail before any browser interaction, so a
	// session without a live page is safe here
	result := robot.SubmitSchedule(context.Background(), &Session{}, entities.PortalConfig{}, entities.ScheduleRequest{
		ProtocolID: "12345",
		// order and driver document missing
	})

	assert.False(t, result.Success)
	assert.Equal(t, entities.StatusError, result.Status)
	assert.Contains(t, result.Message, "precondition failed")
	assert.NotEmpty(t, result.UserMessage)
}
