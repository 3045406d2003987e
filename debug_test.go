package stillframe

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	defer func() { os.Stderr = oldStderr }()

	fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugMode_DisposedNodePanics(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewPlain("parent")
	s.Root().AddChild(parent)

	child := NewImageView("child")
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with disposed node, got none")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()

	parent.AddChild(child)
}

func TestReleaseMode_DisposedNodeNoPanic(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(false)

	child := NewLeaf("child")
	child.Dispose()

	// Not useful, but not a crash either.
	s.Root().AddChild(child)
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		current := s.Root()
		for i := 0; i < debugMaxTreeDepth+5; i++ {
			child := NewPlain(fmt.Sprintf("depth_%d", i))
			current.AddChild(child)
			current = child
		}
	})

	if !strings.Contains(output, "warning: tree depth") {
		t.Errorf("expected tree depth warning in stderr, got: %q", output)
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		parent := NewSplit("many_items")
		s.Root().AddChild(parent)
		for i := 0; i < debugMaxChildCount+1; i++ {
			parent.AddItem(NewLeaf(""))
		}
	})

	if !strings.Contains(output, `warning: node "many_items"`) {
		t.Errorf("expected child count warning in stderr, got: %q", output)
	}
}

func TestDebugMode_DuplicateIDWarning(t *testing.T) {
	root := NewPlain("")
	root.AddChild(NewLeaf("dup"))
	root.AddChild(NewPanel("", NewLeaf("dup")))
	root.AddChild(NewLeaf("unique"))

	s := NewScene()
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		s.SetDebugMode(true)
		s.SetRoot(root)
	})

	if n := strings.Count(output, `duplicate node id "dup"`); n == 0 {
		t.Errorf("expected duplicate id warning, got: %q", output)
	}
	if strings.Contains(output, "unique") {
		t.Errorf("unique id should not be reported, got: %q", output)
	}
}

func TestDebugLogSkipsIdleFrames(t *testing.T) {
	s := NewScene()
	s.debug = true

	output := captureStderr(t, func() {
		s.debugLog(frameStats{})
		s.debugLog(frameStats{applied: 2, dropped: 1, drawn: 1})
	})

	if strings.Count(output, "\n") != 1 {
		t.Errorf("expected exactly one stats line, got: %q", output)
	}
	if !strings.Contains(output, "applied: 2 | dropped: 1") {
		t.Errorf("stats line missing counters: %q", output)
	}
}

func TestDebugfGated(t *testing.T) {
	saved := globalDebug.Load()
	defer globalDebug.Store(saved)

	globalDebug.Store(false)
	if out := captureStderr(t, func() { debugf("hidden %d", 1) }); out != "" {
		t.Errorf("debugf wrote %q with debug off", out)
	}
	globalDebug.Store(true)
	if out := captureStderr(t, func() { debugf("shown %d", 2) }); out != "[stillframe] shown 2\n" {
		t.Errorf("debugf wrote %q, want prefixed line", out)
	}
}
