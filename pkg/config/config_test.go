package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-pivot/pivot/pkg/config"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "pivot.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadOptional_MissingFileReturnsEmpty(t *testing.T) {
	cfg, err := config.LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(&config.Config{}, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOptional_ParsesValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "rotation:\n  speed: 90\ntransition:\n  duration_ms: 250\n")

	cfg, err := config.LoadOptional(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &config.Config{
		Rotation:   config.RotationConfig{Speed: 90},
		Transition: config.TransitionConfig{DurationMS: 250},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOptional_InvalidYAMLFails(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "rotation: [\n")

	_, err := config.LoadOptional(dir)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse pivot.yaml") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestResolve_DefaultsWhenAbsent(t *testing.T) {
	resolved, err := config.Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(config.Default(), resolved); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_Overrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "rotation:\n  speed: 90\ntransition:\n  duration_ms: 250\n")

	resolved, err := config.Resolve(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &config.Resolved{
		RotationSpeed: 90,
		FadeDuration:  250 * time.Millisecond,
	}
	if diff := cmp.Diff(want, resolved); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_PartialOverrideKeepsOtherDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "rotation:\n  speed: 180\n")

	resolved, err := config.Resolve(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.RotationSpeed != 180 {
		t.Errorf("expected speed 180, got %d", resolved.RotationSpeed)
	}
	if resolved.FadeDuration != config.Default().FadeDuration {
		t.Errorf("expected default fade duration, got %v", resolved.FadeDuration)
	}
}

func TestConfigResolve_RejectsNegativeSpeed(t *testing.T) {
	cfg := &config.Config{Rotation: config.RotationConfig{Speed: -90}}

	_, err := cfg.Resolve()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(err.Error(), "rotation.speed must be positive") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigResolve_RejectsNegativeDuration(t *testing.T) {
	cfg := &config.Config{Transition: config.TransitionConfig{DurationMS: -1}}

	_, err := cfg.Resolve()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(err.Error(), "transition.duration_ms must be positive") {
		t.Errorf("unexpected error: %v", err)
	}
}
