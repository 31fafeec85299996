package config

import "testing"

func TestNewConfigRequiresSchedulerSecret(t *testing.T) {
	t.Setenv("SCHEDULER_SECRET", "")
	if _, err := NewConfig(); err == nil {
		t.Error("expected an error without SCHEDULER_SECRET")
	}
}

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("SCHEDULER_SECRET", "s3cret")
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.RecurringCron == "" {
		t.Error("expected a default recurring cron spec")
	}
	if cfg.SchedulerSecret != "s3cret" {
		t.Errorf("scheduler secret = %q, want the env value", cfg.SchedulerSecret)
	}
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("SCHEDULER_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("RECURRING_CRON", "0 6 * * *")
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.RecurringCron != "0 6 * * *" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}
