package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gochart "github.com/VantageDataChat/GoChart"
	"github.com/VantageDataChat/GoChart/internal/config"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	var stdout, stderr bytes.Buffer
	return New().WithOutput(&stdout, &stderr), &stdout, &stderr
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestApp_Version(t *testing.T) {
	app, stdout, _ := newTestApp(t)

	if err := app.ExecuteWithArgs(context.Background(), []string{"version"}); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "gochart version "+gochart.Version) {
		t.Errorf("version output missing version, got: %s", stdout.String())
	}
}

func TestApp_Help(t *testing.T) {
	app, stdout, _ := newTestApp(t)

	if err := app.ExecuteWithArgs(context.Background(), []string{"--help"}); err != nil {
		t.Fatalf("help command failed: %v", err)
	}
	for _, want := range []string{"render", "parse", "icons", "--log-level"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("help output missing %q, got: %s", want, stdout.String())
		}
	}
}

func TestApp_Parse(t *testing.T) {
	app, stdout, _ := newTestApp(t)
	input := writeFile(t, "sales.csv", "Month,Sales,Costs\nJan,10,4\nFeb,oops,5\nMar,12,6\n")

	err := app.ExecuteWithArgs(context.Background(), []string{"parse", input, "--type", "line"})
	if err != nil {
		t.Fatalf("parse command failed: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"Header: true", "Series: Sales, Costs", "Rows: 2", "Skipped: 1", "line 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("parse output missing %q, got: %s", want, out)
		}
	}
}

func TestApp_ParseStdin(t *testing.T) {
	app, stdout, _ := newTestApp(t)
	app.WithInput(strings.NewReader("A,1\nB,2\n"))

	if err := app.ExecuteWithArgs(context.Background(), []string{"parse", "-", "--type", "pie"}); err != nil {
		t.Fatalf("parse command failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Rows: 2") {
		t.Errorf("expected 2 rows, got: %s", stdout.String())
	}
}

func TestApp_ParseEmpty(t *testing.T) {
	app, _, _ := newTestApp(t)
	input := writeFile(t, "bad.csv", "A,x\nB,y\n")

	err := app.ExecuteWithArgs(context.Background(), []string{"parse", input, "--type", "pie"})
	if !errors.Is(err, gochart.ErrEmptyResult) {
		t.Errorf("expected ErrEmptyResult, got %v", err)
	}
}

func TestApp_Icons(t *testing.T) {
	app, stdout, _ := newTestApp(t)

	if err := app.ExecuteWithArgs(context.Background(), []string{"icons"}); err != nil {
		t.Fatalf("icons command failed: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "energy:") {
		t.Errorf("icons output missing energy category, got: %s", out)
	}
	if !strings.Contains(out, "gas (default)") {
		t.Errorf("icons output missing default marker, got: %s", out)
	}
}

func TestApp_IconsFromConfig(t *testing.T) {
	pack := writeFile(t, "pack.yaml", `icons:
  - id: star
    category: shapes
    svg: '<svg viewBox="0 0 24 24"><path d="M12 2L15 9H22L16 14L18 22L12 17L6 22L8 14L2 9H9Z"/></svg>'
`)
	cfg := writeFile(t, "gochart.yaml", "icons:\n  path: "+pack+"\n")
	app, stdout, _ := newTestApp(t)

	if err := app.ExecuteWithArgs(context.Background(), []string{"icons", "--config", cfg}); err != nil {
		t.Fatalf("icons command failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "shapes:\n  star") {
		t.Errorf("icons output missing pack icon, got: %s", stdout.String())
	}
}

func TestApp_RenderPNG(t *testing.T) {
	app, _, _ := newTestApp(t)
	input := writeFile(t, "data.csv", "Label,A,B\nJan,3,5\nFeb,-2,4\n")
	out := filepath.Join(t.TempDir(), "chart.png")

	err := app.ExecuteWithArgs(context.Background(), []string{
		"render", input,
		"--type", "bar",
		"--style", "bar_mode=stacked",
		"--color", "base:1=#AB0000",
		"--title", "Sales",
		"--width", "540",
		"--out", out,
	})
	if err != nil {
		t.Fatalf("render command failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("output is not a PNG")
	}
}

func TestApp_RenderStdout(t *testing.T) {
	app, stdout, _ := newTestApp(t)
	app.WithInput(strings.NewReader("A,1\nB,2\n"))

	err := app.ExecuteWithArgs(context.Background(), []string{"render", "-", "--type", "donut", "--format", "jpeg", "--width", "270", "--out", "-"})
	if err != nil {
		t.Fatalf("render command failed: %v", err)
	}
	if !bytes.HasPrefix(stdout.Bytes(), []byte{0xFF, 0xD8}) {
		t.Errorf("stdout is not a JPEG")
	}
}

func TestApp_RenderHTMLFromDocument(t *testing.T) {
	doc := writeFile(t, "chart.yaml", `type: line
data: |
  Week,Visits
  W1,120
  W2,180
title: Traffic
`)
	out := filepath.Join(t.TempDir(), "chart.html")
	app, _, _ := newTestApp(t)

	if err := app.ExecuteWithArgs(context.Background(), []string{"render", "--doc", doc, "--html", "--out", out}); err != nil {
		t.Fatalf("render command failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !bytes.Contains(data, []byte("Traffic")) {
		t.Errorf("html output missing title")
	}
}

func TestApp_RenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown type", []string{"render", "--type", "radar"}, gochart.ErrUnsupportedKind},
		{"unknown style", []string{"render", "--style", "sparkle=1"}, gochart.ErrInvalidStyle},
		{"unknown icon", []string{"render", "--type", "pictogram", "--style", "icon=unicorn"}, gochart.ErrIconNotFound},
		{"pictogram html", []string{"render", "--type", "pictogram", "--html", "--out", "-"}, gochart.ErrUnsupportedKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := newTestApp(t)
			err := app.ExecuteWithArgs(context.Background(), tt.args)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestApp_RenderMalformedFlag(t *testing.T) {
	app, _, _ := newTestApp(t)
	err := app.ExecuteWithArgs(context.Background(), []string{"render", "--style", "no-equals"})
	if err == nil || !strings.Contains(err.Error(), "want name=value") {
		t.Errorf("expected malformed style error, got %v", err)
	}
}

func TestApp_BadLogLevel(t *testing.T) {
	app, _, _ := newTestApp(t)
	err := app.ExecuteWithArgs(context.Background(), []string{"version", "--log-level", "loud"})
	if err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestApp_WatchNeedsFile(t *testing.T) {
	app, _, _ := newTestApp(t)
	err := app.ExecuteWithArgs(context.Background(), []string{"render", "--watch"})
	if err == nil || !strings.Contains(err.Error(), "--watch") {
		t.Errorf("expected watch error, got %v", err)
	}
}
