package logging

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
)

func TestConsoleLogger_WritesToStderrByDefault(t *testing.T) {
	// Capture stderr
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	logger := NewConsoleLogger(true)
	logger.Verbose("scanned %s", "Main.xaml")

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	output := buf.String()

	expected := "[VERBOSE] scanned Main.xaml\n"
	if output != expected {
		t.Errorf("Expected %q, got %q", expected, output)
	}
}

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		log      func(l *ConsoleLogger)
		expected string
	}{
		{
			name:     "verbose enabled",
			verbose:  true,
			log:      func(l *ConsoleLogger) { l.Verbose("scanned %s", "Main.xaml") },
			expected: "[VERBOSE] scanned Main.xaml\n",
		},
		{
			name:     "verbose disabled",
			verbose:  false,
			log:      func(l *ConsoleLogger) { l.Verbose("scanned %s", "Main.xaml") },
			expected: "",
		},
		{
			name:     "info",
			log:      func(l *ConsoleLogger) { l.Info("updated %d files", 3) },
			expected: "updated 3 files\n",
		},
		{
			name:     "error",
			log:      func(l *ConsoleLogger) { l.Error("failed to read %s", "App.xaml") },
			expected: "[ERROR] failed to read App.xaml\n",
		},
		{
			name:     "no args keeps percent signs",
			log:      func(l *ConsoleLogger) { l.Info("100% done") },
			expected: "100% done\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewConsoleLoggerWithWriter(&buf, tt.verbose)
			tt.log(logger)
			if buf.String() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, buf.String())
			}
		})
	}
}

func TestConsoleLogger_ConcurrentSafety(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerWithWriter(&buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Error("error %d", id)
		}(i)
	}
	wg.Wait()

	// Verify we got all messages (10 * 3 = 30 lines)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 30 {
		t.Errorf("Expected 30 lines, got %d", len(lines))
	}

	// Verify no interleaved output (each line should be complete)
	for i, line := range lines {
		if !strings.Contains(line, "message") && !strings.Contains(line, "verbose") && !strings.Contains(line, "error") {
			t.Errorf("Line %d appears corrupted: %q", i, line)
		}
	}
}

func TestNullLogger_DiscardsAllMessages(t *testing.T) {
	// Capture stderr to verify nothing is written
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	logger := NewNullLogger()
	logger.Verbose("verbose")
	logger.Info("info")
	logger.Error("error")

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)

	if buf.String() != "" {
		t.Errorf("NullLogger should discard all messages, got: %q", buf.String())
	}
}

func TestNullLogger_ConcurrentSafety(t *testing.T) {
	logger := NewNullLogger()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Error("error %d", id)
		}(i)
	}

	// Should complete without panic
	wg.Wait()
}

// BenchmarkConsoleLogger_Verbose measures performance of verbose logging
func BenchmarkConsoleLogger_Verbose(b *testing.B) {
	logger := NewConsoleLoggerWithWriter(io.Discard, true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Verbose("benchmark message %d", i)
	}
}
