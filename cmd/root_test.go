package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/iksnae/termblog/internal"
)

// executeCommand runs rootCmd with args against a clean flag state and
// returns what the command wrote to its output
func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	dataDir, driver, manifestPath, contentRoot, configPath = "", internal.DriverSQLite, "", "", ""
	runLines, runFormat, runOutput, runRecord = nil, "", "", false
	format, outputDir, transcriptID = "jsonl", "./exports", ""
	limit, historyClear, inspectKeys, inspectSampleRows = 0, false, "", 3

	var stdout bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	rootCmd.SetIn(stdin)
	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name:    "version flag",
			args:    []string{"--version"},
			wantErr: false,
		},
		{
			name:    "help flag",
			args:    []string{"--help"},
			wantErr: false,
		},
		{
			name:    "nonexistent command",
			args:    []string{"nonexistent-command"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, nil, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("rootCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{"shell", "run", "list", "show", "export", "history", "inspect", "healthcheck"}
	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "data-dir", "driver", "manifest", "content", "config"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag --%s missing", name)
		}
	}
}

func TestOpenShell_UnknownDriver(t *testing.T) {
	_, err := executeCommand(t, nil, "run", "--data-dir", t.TempDir(), "--driver", "postgres")
	if err == nil || !strings.Contains(err.Error(), "unsupported driver") {
		t.Errorf("run with unknown driver: error = %v", err)
	}
}
