package monitoring

import "testing"

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	Logf("message")
	if !called {
		t.Error("custom logger was not called")
	}

	// nil installs a no-op, not a nil function.
	called = false
	SetLogger(nil)
	Logf("message")
	if called {
		t.Error("no-op logger triggered the previous callback")
	}
}

func TestProgress(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var logged int
	SetLogger(func(format string, v ...interface{}) { logged++ })

	for processed := int64(1); processed <= 2500; processed++ {
		Progress(processed, 1000, "processed %d events", processed)
	}
	if logged != 2 {
		t.Errorf("logged %d times over 2500 events at interval 1000, want 2", logged)
	}

	// A non-positive interval disables reporting entirely.
	logged = 0
	Progress(1000, 0, "unexpected")
	Progress(1000, -5, "unexpected")
	if logged != 0 {
		t.Errorf("non-positive interval logged %d times", logged)
	}

	// Zero processed events never reports, regardless of interval.
	Progress(0, 1000, "unexpected")
	if logged != 0 {
		t.Error("zero processed events reported progress")
	}
}
