package config

import "testing"

func TestEnvKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"APP_SERVER__PORT", "server.port"},
		{"APP_LOG_LEVEL", "log_level"},
		{"APP_GENERATION__BATCH_SIZE", "generation.batch_size"},
		{"APP_GENERATION__MAX_RETRIES", "generation.max_retries"},
		{"APP_MODEL_SERVER__BASE_URL", "model_server.base_url"},
		{"APP_INGEST__CHUNK_SIZE", "ingest.chunk_size"},
	}
	for _, tc := range cases {
		if got := envKey(tc.in); got != tc.want {
			t.Errorf("envKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_SERVER__PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("APP_GENERATION__BATCH_SIZE", "3")
	t.Setenv("APP_MODEL_SERVER__BASE_URL", "http://models:9000")

	if err := load("testdata/absent.yaml"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if Cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", Cfg.Server.Port)
	}
	if Cfg.LogLevel != Debug {
		t.Errorf("LogLevel = %q, want %q", Cfg.LogLevel, Debug)
	}
	if Cfg.Generation.BatchSize != 3 {
		t.Errorf("Generation.BatchSize = %d, want 3", Cfg.Generation.BatchSize)
	}
	if Cfg.ModelServer.BaseURL != "http://models:9000" {
		t.Errorf("ModelServer.BaseURL = %q", Cfg.ModelServer.BaseURL)
	}
}

func TestLoad_DefaultsWithoutEnv(t *testing.T) {
	if err := load("testdata/absent.yaml"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if Cfg.Generation.BatchSize != 8 || Cfg.Generation.MaxRetries != 6 {
		t.Errorf("generation defaults = %d/%d, want 8/6",
			Cfg.Generation.BatchSize, Cfg.Generation.MaxRetries)
	}
	if Cfg.Dns == "" {
		t.Error("Dns not derived from database config")
	}
}
