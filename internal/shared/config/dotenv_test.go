package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseEnvLine(t *testing.T) {
	cases := []struct {
		line     string
		key, val string
		ok       bool
	}{
		{line: "PORT=9000", key: "PORT", val: "9000", ok: true},
		{line: "export ENV=staging", key: "ENV", val: "staging", ok: true},
		{line: `JWT_SECRET="s3cr=t # kept"`, key: "JWT_SECRET", val: "s3cr=t # kept", ok: true},
		{line: "LOG_LEVEL='debug'", key: "LOG_LEVEL", val: "debug", ok: true},
		{line: "SCRAPER_URL=http://localhost:8000 # local scraper", key: "SCRAPER_URL", val: "http://localhost:8000", ok: true},
		{line: "EMPTY=", key: "EMPTY", val: "", ok: true},
		{line: "# comment"},
		{line: "   "},
		{line: "NOEQUALS"},
		{line: "BAD KEY=1"},
	}
	for _, tc := range cases {
		key, val, ok := parseEnvLine(tc.line)
		if ok != tc.ok || key != tc.key || val != tc.val {
			t.Errorf("parseEnvLine(%q) = %q, %q, %v; want %q, %q, %v", tc.line, key, val, ok, tc.key, tc.val, tc.ok)
		}
	}
}

func TestLoadEnvFilesKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := "FITABLE_DOTENV_SET=from-file\nFITABLE_DOTENV_NEW=from-file\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("FITABLE_DOTENV_SET", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("FITABLE_DOTENV_NEW") })

	loadEnvFiles(filepath.Join(t.TempDir(), "missing.env"), path)

	if got := os.Getenv("FITABLE_DOTENV_SET"); got != "from-env" {
		t.Fatalf("existing variable overridden: %q", got)
	}
	if got := os.Getenv("FITABLE_DOTENV_NEW"); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
}
