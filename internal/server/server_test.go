package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/WireCut/internal/model"
)

func smallJob() model.Job {
	job := model.DefaultJob()
	job.ID = "ws-test"
	job.Stack = model.PlateStackConfig{PlateCount: 3, PlateHeight: 5, PlateWidth: 1}
	job.Wire.AngleDegrees = 1
	job.Tolerance = model.ToleranceWindow{MinHeight: 4.45, MaxHeight: 5}
	job.SweepSteps = 5
	return job
}

func dial(t *testing.T, delay time.Duration) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(NewServer("", DefaultUpgrader(), delay).Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + SweepPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestSweep_StreamsFramesThenResult(t *testing.T) {
	conn := dial(t, 0)
	job := smallJob()
	require.NoError(t, conn.WriteJSON(Message{Type: TypeRun, Job: &job}))

	var frames []model.SweepFrame
	for i := 0; i < job.SweepSteps; i++ {
		msg := read(t, conn)
		require.Equal(t, TypeFrame, msg.Type)
		require.NotNil(t, msg.Frame)
		frames = append(frames, *msg.Frame)
	}

	msg := read(t, conn)
	require.Equal(t, TypeResult, msg.Type)
	require.NotNil(t, msg.Result)
	assert.Equal(t, "ws-test", msg.Result.ID)

	for i, f := range frames {
		assert.Equal(t, i, f.Step)
	}
	assert.Equal(t, 0.0, frames[0].T)
	assert.Equal(t, 1.0, frames[len(frames)-1].T)
	for _, h := range frames[0].PlateHeights {
		assert.Equal(t, 5.0, h, "no plate is cut before the wire moves")
	}
	assert.Equal(t, msg.Result.Heights(), frames[len(frames)-1].PlateHeights)
}

func TestSweep_InvalidJob(t *testing.T) {
	conn := dial(t, 0)
	job := smallJob()
	job.Stack.PlateCount = 0
	require.NoError(t, conn.WriteJSON(Message{Type: TypeRun, Job: &job}))

	msg := read(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Contains(t, msg.Error, "plate count")
}

func TestSweep_RejectsOversizedJobs(t *testing.T) {
	conn := dial(t, 0)

	tests := []struct {
		name   string
		modify func(*model.Job)
		expect string
	}{
		{"too many plates", func(j *model.Job) { j.Stack.PlateCount = 100000000 }, "number of plates"},
		{"too many steps", func(j *model.Job) { j.SweepSteps = 2000000000 }, "sweep steps"},
	}
	for _, tc := range tests {
		job := smallJob()
		tc.modify(&job)
		require.NoError(t, conn.WriteJSON(Message{Type: TypeRun, Job: &job}))

		msg := read(t, conn)
		assert.Equal(t, TypeError, msg.Type, tc.name)
		assert.Contains(t, msg.Error, tc.expect, tc.name)
	}

	// The connection keeps serving acceptable jobs
	job := smallJob()
	require.NoError(t, conn.WriteJSON(Message{Type: TypeRun, Job: &job}))
	msg := read(t, conn)
	assert.Equal(t, TypeFrame, msg.Type)
}

func TestSweep_RejectsBadMessages(t *testing.T) {
	conn := dial(t, 0)

	require.NoError(t, conn.WriteJSON(Message{Type: TypeRun}))
	msg := read(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Contains(t, msg.Error, "no job")

	require.NoError(t, conn.WriteJSON(Message{Type: "bogus"}))
	msg = read(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Contains(t, msg.Error, "bogus")
}

func TestSweep_Stop(t *testing.T) {
	conn := dial(t, time.Hour)
	job := smallJob()
	require.NoError(t, conn.WriteJSON(Message{Type: TypeRun, Job: &job}))

	msg := read(t, conn)
	require.Equal(t, TypeFrame, msg.Type)
	assert.Equal(t, 0, msg.Frame.Step)

	require.NoError(t, conn.WriteJSON(Message{Type: TypeStop}))
	msg = read(t, conn)
	assert.Equal(t, TypeStopped, msg.Type)
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(NewServer("", DefaultUpgrader(), 0).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}
