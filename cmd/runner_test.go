package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/windlearn/kazegaku/internal/catalog"
	"github.com/windlearn/kazegaku/internal/shared"
	tu "github.com/windlearn/kazegaku/internal/testing"
)

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	songs, err := catalog.Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return songs
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			songs := mustCatalog(t)
			gateway := &tu.MockGateway{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "config.toml",
				Songs:      songs,
				Gateway:    gateway,
				Logger:     logger,
				Output:     output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.songs != songs {
				t.Error("expected songs to be set")
			}
			if runner.gateway != gateway {
				t.Error("expected gateway to be set")
			}
			if runner.configPath != "config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("requireGateway", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if err := runner.requireGateway(); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}

		runner = NewRunner(RunnerOpts{Gateway: &tu.MockGateway{}})
		if err := runner.requireGateway(); err != nil {
			t.Errorf("expected no error with gateway set, got %v", err)
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("pretty output", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("failed to write JSON: %v", err)
			}
			if !strings.Contains(output.String(), "\"key\": \"value\"") {
				t.Errorf("expected indented JSON, got %s", output.String())
			}
		})

		t.Run("write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
				t.Error("expected error from failing writer")
			}
		})

		t.Run("newline write failure", func(t *testing.T) {
			lw := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &lw})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
				t.Error("expected error when newline write fails")
			}
		})
	})

	t.Run("writePlain failure", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

		if err := runner.writePlain("hello"); err == nil {
			t.Error("expected error from failing writer")
		}
		if err := runner.writePlainln("hello"); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("resolveSong", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Songs: mustCatalog(t)})

		tc := []struct {
			name    string
			query   string
			wantID  string
			wantErr bool
		}{
			{"by id", "hana", "hana", false},
			{"by romaji title case-insensitive", "GRACE", "grace", false},
			{"empty query", "  ", "", true},
			{"unknown song", "unknown", "", true},
		}

		for _, c := range tc {
			t.Run(c.name, func(t *testing.T) {
				song, err := runner.resolveSong(c.query)
				if c.wantErr {
					if err == nil {
						t.Error("expected error")
					}
					return
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if song.ID != c.wantID {
					t.Errorf("expected %s, got %s", c.wantID, song.ID)
				}
			})
		}
	})
}

func TestSongsCommands(t *testing.T) {
	newApp := func(output *bytes.Buffer) *cli.Command {
		runner := NewRunner(RunnerOpts{
			Songs:  mustCatalog(t),
			Output: output,
		})
		return &cli.Command{Name: "kazegaku", Commands: runner.register()}
	}

	t.Run("songs list", func(t *testing.T) {
		output := &bytes.Buffer{}
		app := newApp(output)

		if err := app.Run(context.Background(), []string{"kazegaku", "songs", "list"}); err != nil {
			t.Fatalf("songs list failed: %v", err)
		}

		for _, want := range []string{"hana", "grace", "kirari", "matsuri"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("expected listing to contain %s", want)
			}
		}
	})

	t.Run("songs list json", func(t *testing.T) {
		output := &bytes.Buffer{}
		app := newApp(output)

		if err := app.Run(context.Background(), []string{"kazegaku", "songs", "list", "--json"}); err != nil {
			t.Fatalf("songs list --json failed: %v", err)
		}
		if !strings.Contains(output.String(), "\"romaji_title\"") {
			t.Errorf("expected JSON output, got %s", output.String())
		}
	})

	t.Run("songs show prints lyrics", func(t *testing.T) {
		output := &bytes.Buffer{}
		app := newApp(output)

		if err := app.Run(context.Background(), []string{"kazegaku", "songs", "show", "hana"}); err != nil {
			t.Fatalf("songs show failed: %v", err)
		}
		if !strings.Contains(output.String(), "花") {
			t.Errorf("expected lyrics in output, got %s", output.String())
		}
	})

	t.Run("songs show unknown song fails", func(t *testing.T) {
		output := &bytes.Buffer{}
		app := newApp(output)

		err := app.Run(context.Background(), []string{"kazegaku", "songs", "show", "nope"})
		if err == nil {
			t.Error("expected error for unknown song")
		}
	})
}

func TestGatewayTranslateCommand(t *testing.T) {
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Songs:   mustCatalog(t),
		Gateway: &tu.MockGateway{Translation: "測試翻譯"},
		Output:  output,
	})
	app := &cli.Command{Name: "kazegaku", Commands: runner.register()}

	if err := app.Run(context.Background(), []string{"kazegaku", "gateway", "translate", "何なんw"}); err != nil {
		t.Fatalf("gateway translate failed: %v", err)
	}
	if !strings.Contains(output.String(), "測試翻譯") {
		t.Errorf("expected translation in output, got %s", output.String())
	}
}
