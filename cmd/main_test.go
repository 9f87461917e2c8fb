package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bryan-cox/taskboard/internal/clipboard"
)

// --- Test Setup ---

func setupTests(t *testing.T) string {
	t.Helper()
	content := []byte(`
Harbor House:
  "2024-08-01":
    -Nx1:
      task: Sweep
      status: complete
      rating: 5
      imageUrl: https://img/1.jpg
      completedBy: Ana
    -Nx2:
      task: Mop
      status: incomplete
  "2024-08-02":
    -Nx3:
      task: Sweep
      status: approved
      rating: 3
      imageUrl: https://img/2.jpg
      completedBy: Ben
Lake Cabin:
  "2024-08-03":
    -Nx4:
      task: Windows
      status: incomplete
      rating: 4
`)
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset.yaml")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}

	// Keep the developer's own configuration out of the tests.
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("FIREBASE_SERVICE_ACCOUNT_BASE64", "")
	t.Setenv("TASKBOARD_SOURCE_KIND", "")
	t.Setenv("TASKBOARD_SOURCE_FILE", "")
	t.Setenv("TASKBOARD_SOURCE_SQLITE", "")
	t.Setenv("TASKBOARD_LOG_FILE", "")
	return path
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command and returns stdout, stderr and the
// command error.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))

	// Reset flags to default values before each run
	resetFlags(rootCmd)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// executeCommandText captures plain text output from a command.
func executeCommandText(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := executeCommand(t, args...)
	if err != nil {
		t.Fatalf("command execution failed: %v\nstderr: %s", err, stderr)
	}
	return out
}

// --- Test Functions ---

func TestReportCommand(t *testing.T) {
	tmpFile := setupTests(t)

	t.Run("prints the whole dataset", func(t *testing.T) {
		output := executeCommandText(t, "report", "--file", tmpFile)

		for _, want := range []string{
			"Task Dashboard",
			"Workspaces: all",
			"• Total Tasks: 4",
			"• Completed Tasks: 1",
			"• Incomplete Tasks: 2",
			"• Approved Tasks: 1",
			"• Sweep: 4.00 (2)",
			"• Windows: 4.00 (1)",
			"1. https://img/1.jpg",
			"2. https://img/2.jpg",
			"◦ Completed By: Ben",
			"◦ Mop (2024-08-01)",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Report missing %q\nGot:\n%s", want, output)
			}
		}
	})

	t.Run("filters by workspace and date", func(t *testing.T) {
		output := executeCommandText(t, "report", "--file", tmpFile, "--workspace", "Harbor House", "--date", "2024-08-02")

		if !strings.Contains(output, "Dates: 2024-08-02") {
			t.Error("Report missing date selection")
		}
		if !strings.Contains(output, "• Total Tasks: 1") {
			t.Errorf("Expected one task, got:\n%s", output)
		}
		if strings.Contains(output, "https://img/1.jpg") {
			t.Error("Report includes an image from a filtered-out date")
		}
	})

	t.Run("filters by date range", func(t *testing.T) {
		output := executeCommandText(t, "report", "--file", tmpFile, "--start-date", "2024-08-02", "--end-date", "2024-08-03")

		if !strings.Contains(output, "Dates: 2024-08-02, 2024-08-03") {
			t.Errorf("Report missing date range selection, got:\n%s", output)
		}
		if !strings.Contains(output, "• Total Tasks: 2") {
			t.Errorf("Expected two tasks, got:\n%s", output)
		}
	})

	t.Run("rejects an empty date range", func(t *testing.T) {
		_, _, err := executeCommand(t, "report", "--file", tmpFile, "--start-date", "2030-01-01")
		if err == nil || !strings.Contains(err.Error(), "no data found") {
			t.Errorf("Expected an empty range error, got %v", err)
		}
	})

	t.Run("prints JSON", func(t *testing.T) {
		output := executeCommandText(t, "report", "--file", tmpFile, "--workspace", "Lake Cabin", "--json")

		var view struct {
			KPIs struct {
				Total int `json:"totalTasks"`
			} `json:"kpis"`
			Slide struct {
				ImageURL  *string `json:"imageUrl"`
				TaskLabel string  `json:"taskLabel"`
			} `json:"slide"`
			DateOptions []string `json:"dateOptions"`
		}
		if err := json.Unmarshal([]byte(output), &view); err != nil {
			t.Fatalf("Output is not JSON: %v\n%s", err, output)
		}
		if view.KPIs.Total != 1 {
			t.Errorf("Expected 1 task, got %d", view.KPIs.Total)
		}
		if view.Slide.ImageURL != nil || view.Slide.TaskLabel != "Task: " {
			t.Errorf("Expected the placeholder slide, got %+v", view.Slide)
		}
		if !reflect.DeepEqual(view.DateOptions, []string{"2024-08-03"}) {
			t.Errorf("Unexpected date options %v", view.DateOptions)
		}
	})

	t.Run("copies HTML to the clipboard", func(t *testing.T) {
		var copied string
		orig := copier
		copier = &clipboard.Copier{
			GOOS:     "linux",
			LookPath: func(name string) (string, error) { return "/usr/bin/" + name, nil },
			Run: func(_ context.Context, stdin string, _ string, _ ...string) error {
				copied = stdin
				return nil
			},
		}
		defer func() { copier = orig }()

		_, stderr, err := executeCommand(t, "report", "--file", tmpFile, "--copy")
		if err != nil {
			t.Fatalf("command execution failed: %v", err)
		}
		if !strings.Contains(copied, "<h2>Task Dashboard</h2>") {
			t.Errorf("Clipboard did not receive the HTML report: %q", copied)
		}
		if !strings.Contains(stderr, "Report copied to clipboard") {
			t.Errorf("Missing confirmation, stderr: %s", stderr)
		}
	})

	t.Run("missing dataset renders an empty report", func(t *testing.T) {
		output := executeCommandText(t, "report", "--file", filepath.Join(t.TempDir(), "nope.yaml"))
		if !strings.Contains(output, "• Total Tasks: 0") || !strings.Contains(output, "(no images)") {
			t.Errorf("Expected an empty report, got:\n%s", output)
		}
	})

	t.Run("rejects an unknown source", func(t *testing.T) {
		_, _, err := executeCommand(t, "report", "--source", "ftp")
		if err == nil {
			t.Error("Expected an error for an unknown source kind")
		}
	})
}

func TestDatesCommand(t *testing.T) {
	tmpFile := setupTests(t)

	output := executeCommandText(t, "dates", "--file", tmpFile)
	if output != "2024-08-01\n2024-08-02\n2024-08-03\n" {
		t.Errorf("Unexpected dates:\n%q", output)
	}

	output = executeCommandText(t, "dates", "--file", tmpFile, "--workspace", "Lake Cabin")
	if output != "2024-08-03\n" {
		t.Errorf("Unexpected dates for Lake Cabin:\n%q", output)
	}

	output = executeCommandText(t, "dates", "--file", tmpFile, "--workspace", "Nowhere", "--json")
	if output != "[]\n" {
		t.Errorf("Expected an empty JSON array, got %q", output)
	}
}

func TestSnapshotCommand(t *testing.T) {
	tmpFile := setupTests(t)
	dbPath := filepath.Join(t.TempDir(), "taskboard.db")

	output := executeCommandText(t, "snapshot", "--file", tmpFile, "--sqlite", dbPath)
	expected := "Saved 4 records in 2 workspaces from file to " + dbPath + "\n"
	if output != expected {
		t.Errorf("Expected output:\n%q\nGot:\n%q", expected, output)
	}

	output = executeCommandText(t, "report", "--source", "sqlite", "--sqlite", dbPath)
	if !strings.Contains(output, "• Total Tasks: 4") {
		t.Errorf("Report from the snapshot is missing tasks:\n%s", output)
	}

	_, _, err := executeCommand(t, "snapshot", "--source", "sqlite", "--sqlite", dbPath)
	if err == nil {
		t.Error("Expected snapshot to refuse the sqlite source")
	}

	_, _, err = executeCommand(t, "snapshot", "--file", filepath.Join(t.TempDir(), "nope.yaml"), "--sqlite", dbPath)
	if err == nil {
		t.Error("Expected snapshot to fail when the source cannot be read")
	}
}

func TestGetDatesInRange(t *testing.T) {
	available := []string{"2024-08-01", "2024-08-02", "2024-08-03", "not-a-date"}

	tests := []struct {
		name       string
		start, end string
		want       []string
		wantErr    bool
	}{
		{name: "no bounds", want: available},
		{name: "single day", start: "2024-08-02", want: []string{"2024-08-02"}},
		{name: "end only", end: "2024-08-03", want: []string{"2024-08-03"}},
		{name: "range", start: "2024-08-01", end: "2024-08-02", want: []string{"2024-08-01", "2024-08-02"}},
		{name: "outside", start: "2025-01-01", want: nil},
		{name: "bad format", start: "08/01/2024", wantErr: true},
		{name: "reversed", start: "2024-08-03", end: "2024-08-01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getDatesInRange(available, tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("getDatesInRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("getDatesInRange() = %v, want %v", got, tt.want)
			}
		})
	}
}
