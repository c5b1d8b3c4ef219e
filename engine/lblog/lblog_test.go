package lblog

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/bmizerany/assert"
)

func TestLBLog(t *testing.T) {
	SetSource("lblog_test")
	SetLevel(DebugLevel)
	defer SetOutput(os.Stderr)

	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, InfoLevel, ParseLevel("info"))
	assert.Equal(t, WarnLevel, ParseLevel("warn"))
	assert.Equal(t, WarnLevel, ParseLevel("Warning"))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, PanicLevel, ParseLevel("panic"))
	assert.Equal(t, FatalLevel, ParseLevel("fatal"))

	var buf bytes.Buffer
	SetOutput(&buf)
	Debugf("this is a debug %d", 1)
	SetLevel(InfoLevel)
	Debugf("SHOULD NOT SEE THIS!")
	Infof("this is an info %d", 2)
	Warnf("this is a warning %d", 3)

	out := buf.String()
	assert.T(t, strings.Contains(out, "this is a debug 1"), out)
	assert.T(t, !strings.Contains(out, "SHOULD NOT SEE THIS"), out)
	assert.T(t, strings.Contains(out, "this is a warning 3"), out)
	assert.T(t, strings.Contains(out, "lblog_test"), "source missing: ", out)
	assert.Equal(t, InfoLevel, GetLevel())

	func() {
		defer func() {
			_ = recover()
		}()
		Panicf("this is a panic %d", 4)
	}()
	SetLevel(DebugLevel)
}

func TestListener(t *testing.T) {
	SetOutput(&bytes.Buffer{})
	defer SetOutput(os.Stderr)
	SetLevel(DebugLevel)

	var got []string
	remove := AddListener(func(lv Level, message string) {
		if lv >= WarnLevel {
			got = append(got, message)
		}
	})
	Infof("info")
	Warnf("warn %d", 1)
	Errorf("error %d", 2)
	remove()
	Errorf("after remove")

	assert.Equal(t, []string{"warn 1", "error 2"}, got)
}
