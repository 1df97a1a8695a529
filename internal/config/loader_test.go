package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/blocboard/blocboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.FactStore, convey.ShouldEqual, config.StoreMemory)
				convey.So(cfg.DefaultPodiumSize, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("BLOC_ADDR", ":8080")
			_ = os.Setenv("BLOC_FACT_STORE", "sqlite")
			_ = os.Setenv("BLOC_SQLITE_PATH", "facts.db")
			_ = os.Setenv("BLOC_DEFAULT_PODIUM_SIZE", "5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.FactStore, convey.ShouldEqual, config.StoreSQLite)
				convey.So(cfg.SQLitePath, convey.ShouldEqual, "facts.db")
				convey.So(cfg.DefaultPodiumSize, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
fact_store: "memory"
default_podium_size: 10
max_podium_size: 20
`
			tmpFile := createTempConfigFile(t, yamlContent)

			_ = os.Setenv("BLOC_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DefaultPodiumSize, convey.ShouldEqual, 10)
				convey.So(cfg.MaxPodiumSize, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
default_podium_size: 10
`
			tmpFile := createTempConfigFile(t, yamlContent)

			_ = os.Setenv("BLOC_CONFIG", tmpFile)
			_ = os.Setenv("BLOC_ADDR", ":8080") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")           // Overridden by env
				convey.So(cfg.DefaultPodiumSize, convey.ShouldEqual, 10)   // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(t, invalidYaml)

			_ = os.Setenv("BLOC_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown fact store", func() {
			_ = os.Setenv("BLOC_FACT_STORE", "cassandra")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should fail validation", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the postgres backend is selected without a DSN", func() {
			_ = os.Setenv("BLOC_FACT_STORE", "postgres")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should fail validation", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"BLOC_CONFIG",
		"BLOC_ADDR",
		"BLOC_LOG_LEVEL",
		"BLOC_FACT_STORE",
		"BLOC_SQLITE_PATH",
		"BLOC_POSTGRES_DSN",
		"BLOC_POSTGRES_MAX_CONNS",
		"BLOC_DEFAULT_PODIUM_SIZE",
		"BLOC_MAX_PODIUM_SIZE",
		"BLOC_REQUEST_TIMEOUT_SECONDS",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}
