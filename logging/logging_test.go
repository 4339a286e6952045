package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestLevelStrings(t *testing.T) {
	for _, tc := range []struct {
		str   string
		level Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
	} {
		t.Run(tc.str, func(t *testing.T) {
			level, err := LevelFromString(tc.str)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, level, test.ShouldEqual, tc.level)
		})
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "loud")
}

func TestLevelJSON(t *testing.T) {
	data, err := json.Marshal(WARN)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldEqual, `"Warn"`)

	var level Level
	test.That(t, json.Unmarshal([]byte(`"error"`), &level), test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, ERROR)
}

func TestObservedLevels(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	logger.Debugw("debug line", "k", 1)
	logger.Info("info line")
	test.That(t, observed.Len(), test.ShouldEqual, 2)

	logger.SetLevel(WARN)
	logger.Info("dropped")
	logger.Warnf("kept %d", 3)
	test.That(t, observed.Len(), test.ShouldEqual, 3)
	test.That(t, observed.All()[2].Message, test.ShouldEqual, "kept 3")
}

func TestSublogger(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	parent := logger.Sublogger("smb")
	child := parent.Sublogger("cost")
	child.Info("hello")

	entries := observed.All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].LoggerName, test.ShouldEqual, "smb.cost")

	// Sublogger levels are independent once created.
	child.SetLevel(ERROR)
	test.That(t, parent.GetLevel(), test.ShouldEqual, DEBUG)
	parent.Info("still here")
	child.Info("dropped")
	test.That(t, observed.Len(), test.ShouldEqual, 2)
}

func TestBlankLogger(t *testing.T) {
	logger := NewBlankLogger("blank")
	logger.Errorw("nowhere", "x", 1)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
}

func TestCallerIsLogSite(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	logger.Infow("from the test")
	logger.Sublogger("child").Warnf("from the %s", "child")

	for _, entry := range observed.All() {
		test.That(t, entry.Caller.Defined, test.ShouldBeTrue)
		test.That(t, filepath.Base(entry.Caller.File), test.ShouldEqual, "logging_test.go")
	}
	test.That(t, observed.Len(), test.ShouldEqual, 2)
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("writer", WARN, &buf)
	logger.Info("dropped")
	test.That(t, buf.Len(), test.ShouldEqual, 0)

	logger.Warnw("kept", "k", 7)
	test.That(t, logger.Sync(), test.ShouldBeNil)
	out := buf.String()
	test.That(t, out, test.ShouldContainSubstring, "writer")
	test.That(t, out, test.ShouldContainSubstring, "kept")
	test.That(t, out, test.ShouldContainSubstring, "logging/logging_test.go")
	test.That(t, out, test.ShouldNotContainSubstring, "impl.go")
}
