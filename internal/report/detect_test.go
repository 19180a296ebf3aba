package report

import (
	"bytes"
	"os"
	"testing"
)

func TestColorEnabled_MARKUID_NO_COLOR(t *testing.T) {
	t.Setenv("MARKUID_NO_COLOR", "1")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	if ColorEnabled(os.Stdout) {
		t.Error("ColorEnabled() = true, want false")
	}
}

func TestColorEnabled_CI(t *testing.T) {
	t.Setenv("MARKUID_NO_COLOR", "")
	t.Setenv("CI", "true")
	t.Setenv("NO_COLOR", "")

	if ColorEnabled(os.Stdout) {
		t.Error("ColorEnabled() = true, want false")
	}
}

func TestColorEnabled_NO_COLOR(t *testing.T) {
	t.Setenv("MARKUID_NO_COLOR", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "1")

	if ColorEnabled(os.Stdout) {
		t.Error("ColorEnabled() = true, want false")
	}
}

func TestColorEnabled_NotAFile(t *testing.T) {
	t.Setenv("MARKUID_NO_COLOR", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	if ColorEnabled(&bytes.Buffer{}) {
		t.Error("ColorEnabled(buffer) = true, want false")
	}
}

func TestColorEnabled_RegularFile(t *testing.T) {
	t.Setenv("MARKUID_NO_COLOR", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if ColorEnabled(f) {
		t.Error("ColorEnabled(regular file) = true, want false")
	}
}
