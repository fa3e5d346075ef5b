package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFrame(t *testing.T, r *bufio.Reader) []string {
	t.Helper()
	var lines []string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			return lines
		}
		lines = append(lines, line)
	}
}

func TestBroadcasterStreamsEvents(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	srv := httptest.NewServer(b)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	hello := readFrame(t, reader)
	assert.Equal(t, "event: connected", hello[0])

	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	b.Broadcast(Event{Event: "models.updated", ID: "7", Data: map[string]any{"provider": "ollama"}})

	frame := readFrame(t, reader)
	assert.Equal(t, []string{
		"event: models.updated",
		"id: 7",
		`data: {"provider":"ollama"}`,
	}, frame)
}

func TestBroadcasterBroadcastNeverBlocks(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)
	for i := 0; i < cap(b.events)+5; i++ {
		b.Broadcast(Event{Event: "x"})
	}
	assert.Len(t, b.events, cap(b.events))
}
