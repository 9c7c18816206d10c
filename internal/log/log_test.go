package log

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLog_FormatsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	Warn(CatNav, "rejected transition", "action", "to-domain", "domain", "atlantis")

	line := buf.String()
	require.Contains(t, line, "[WARN] [nav] rejected transition")
	require.Contains(t, line, "action=to-domain domain=atlantis")
	require.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestLog_OddFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	Info(CatRoute, "resolved", "path")
	require.Contains(t, buf.String(), "path=<missing>")
}

func TestLog_ErrorErr(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	ErrorErr(CatDB, "save failed", errors.New("disk full"), "path", "/domain/home")
	require.Contains(t, buf.String(), "[ERROR] [db] save failed path=/domain/home error=disk full")
}

func TestLog_MinLevelAndDisable(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetMinLevel(LevelWarn)
	Debug(CatNav, "hidden")
	Info(CatNav, "hidden")
	require.Empty(t, buf.String())

	SetEnabled(false)
	Error(CatNav, "hidden")
	require.Empty(t, buf.String())
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Error(CatNav, "nobody listening")
	})
	require.Nil(t, NewListener(context.Background()))
}

func TestLog_Listener(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Info(CatLink, "decoded", "uri", "spheres://app/map")

	waitCtx, waitCancel := context.WithTimeout(ctx, time.Second)
	defer waitCancel()
	ev, ok := listener.Next(waitCtx)
	require.True(t, ok)
	require.Contains(t, ev.Payload, "[INFO] [link] decoded uri=spheres://app/map")
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"debug": LevelDebug, "INFO": LevelInfo, "warning": LevelWarn, "error": LevelError} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseLevel("loud")
	require.Error(t, err)
}
