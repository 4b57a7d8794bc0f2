package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"testing"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	configPath := parseFlags()
	expected := "myconfig.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

// ----------------- Tests for printBuildInfo -----------------

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// Set build info variables
	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2026-08-29"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	// Check if all expected strings are present
	if !contains(output, "version v1.0.0") ||
		!contains(output, "commit abcd1234") ||
		!contains(output, "build 2026-08-29") {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

// Helper function to check substring
func contains(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()
	os.Setenv("JWT_SECRET_KEY", "test-secret")

	appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaBroker, kafkaTopic,
		jwtSecretKey, jwtExpHour, bcryptCost, cacheExpSecond, err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	// Application
	if appHost != "localhost" || appPort != "8080" || logLevel != "info" {
		t.Errorf("unexpected app config: %v/%v/%v", appHost, appPort, logLevel)
	}

	// PostgreSQL
	if pgHost != "localhost" || pgPort != 5432 || pgUser != "user" || pgPassword != "password" || pgDB != "library" ||
		pgMaxOpenConns != 16 || pgMaxIdleConns != 8 {
		t.Errorf("unexpected postgres config")
	}

	// Redis
	if redisHost != "localhost" || redisPort != 6379 || redisDB != 0 || redisPassword != "" || cacheExpSecond != 300 {
		t.Errorf("unexpected redis config")
	}

	// Kafka is optional: no broker by default
	if kafkaBroker != "" || kafkaTopic != "auth-events" {
		t.Errorf("unexpected kafka config: %v/%v", kafkaBroker, kafkaTopic)
	}

	// JWT and bcrypt
	if jwtSecretKey != "test-secret" || jwtExpHour != 168 || bcryptCost != 10 {
		t.Errorf("unexpected auth config: %v/%v/%v", jwtSecretKey, jwtExpHour, bcryptCost)
	}
}

func TestParseConfig_MissingJWTSecret(t *testing.T) {
	resetEnv()

	_, _, _,
		_, _, _, _, _,
		_, _,
		_, _, _, _,
		_, _,
		_, _, _, _, err := parseConfig("nonexistent.env")

	if !errors.Is(err, errMissingJWTSecret) {
		t.Fatalf("expected errMissingJWTSecret, got %v", err)
	}
}

func TestParseConfig_Overrides(t *testing.T) {
	resetEnv()
	os.Setenv("JWT_SECRET_KEY", "another-secret")
	os.Setenv("APP_PORT", "9090")
	os.Setenv("JWT_EXP_HOUR", "24")
	os.Setenv("BCRYPT_COST", "12")
	os.Setenv("KAFKA_BROKER", "localhost:9092")
	os.Setenv("USER_CACHE_EXP_SECOND", "60")

	_, appPort, _,
		_, _, _, _, _,
		_, _,
		_, _, _, _,
		kafkaBroker, _,
		_, jwtExpHour, bcryptCost, cacheExpSecond, err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}
	if appPort != "9090" || jwtExpHour != 24 || bcryptCost != 12 || kafkaBroker != "localhost:9092" || cacheExpSecond != 60 {
		t.Errorf("unexpected overridden config")
	}
}

func TestParseConfig_InvalidNumber(t *testing.T) {
	resetEnv()
	os.Setenv("JWT_SECRET_KEY", "secret")
	os.Setenv("POSTGRES_PORT", "not-a-number")

	_, _, _,
		_, _, _, _, _,
		_, _,
		_, _, _, _,
		_, _,
		_, _, _, _, err := parseConfig("nonexistent.env")

	if err == nil {
		t.Fatal("expected error for invalid POSTGRES_PORT")
	}
}
