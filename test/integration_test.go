// ABOUTME: Integration tests for the fuerza CLI.
// ABOUTME: Builds the binary and drives the register, login and logging workflow.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(projectRoot, "fuerza")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/fuerza")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(binary)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--db", dbPath}, args...)
		cmd := exec.Command(binary, fullArgs...)
		cmd.Env = append(os.Environ(),
			"XDG_CONFIG_HOME="+tmpDir,
			"XDG_DATA_HOME="+tmpDir,
			"FUERZA_PHOTO_DIR="+filepath.Join(tmpDir, "perfiles"),
			"FUERZA_PASSWORD=secreto",
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	output, err := run("register", "Ana", "ana@example.com")
	if err != nil {
		t.Fatalf("Failed to register: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Registered Ana") {
		t.Errorf("Expected 'Registered Ana' in output, got: %s", output)
	}

	// Not logged in yet
	if output, err := run("workout", "list"); err == nil {
		t.Errorf("Expected workout list to fail before login, got: %s", output)
	}

	output, err = run("login", "ana@example.com")
	if err != nil {
		t.Fatalf("Failed to login: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Welcome, Ana") {
		t.Errorf("Expected welcome message, got: %s", output)
	}

	output, err = run("workout", "add", "cardio", "-d", "30", "-c", "250")
	if err != nil {
		t.Fatalf("Failed to add workout: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Added Cardio workout") {
		t.Errorf("Expected 'Added Cardio workout' in output, got: %s", output)
	}

	output, err = run("meal", "add", "protein", "pollo", "-c", "400")
	if err != nil {
		t.Fatalf("Failed to add meal: %v\n%s", err, output)
	}

	output, err = run("workout", "list")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Cardio") {
		t.Errorf("Expected 'Cardio' in list output, got: %s", output)
	}

	output, err = run("report")
	if err != nil {
		t.Fatalf("Failed to report: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Hola, Ana") {
		t.Errorf("Expected greeting in report, got: %s", output)
	}

	output, err = run("export", "json")
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if !strings.Contains(output, "pollo") {
		t.Errorf("Expected meal in export, got: %s", output)
	}

	// Bad input is rejected
	if _, err := run("measure", "add", "--weight", "1000"); err == nil {
		t.Error("Expected out of range weight to fail")
	}
}
