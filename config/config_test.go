package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/relay-services/config"
)

var envVars = []string{
	"PORT", "SERVER_PORT", "NODE_ENV", "ENVIRONMENT", "SERVER_ENVIRONMENT",
	"BACKEND_URL", "UPSTREAM_URL", "STATIC_DIR", "LOGGING_LEVEL",
	"HEALTH_CHECK_INTERVAL", "RELAY_UNIFORM_ERRORS",
}

var _ = Describe("Config", func() {
	var (
		tempDir string
		origDir string
	)

	BeforeEach(func() {
		var err error
		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(tempDir)).To(Succeed())

		for _, name := range envVars {
			os.Unsetenv(name)
		}
	})

	AfterEach(func() {
		Expect(os.Chdir(origDir)).To(Succeed())
		os.RemoveAll(tempDir)
		for _, name := range envVars {
			os.Unsetenv(name)
		}
	})

	Describe("Load", func() {
		It("should reject an unknown service", func() {
			cfg, err := config.Load("sidecar")
			Expect(err).To(HaveOccurred())
			Expect(cfg).To(BeNil())
		})

		Context("without config file", func() {
			It("should apply backend defaults", func() {
				cfg, err := config.Load(config.ServiceBackend)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(8080))
				Expect(cfg.Server.Environment).To(Equal("development"))
				Expect(cfg.Logging.Level).To(Equal("info"))
				Expect(cfg.Address()).To(Equal(":8080"))
				Expect(cfg.IsFrontend()).To(BeFalse())
			})

			It("should apply frontend defaults", func() {
				cfg, err := config.Load(config.ServiceFrontend)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(3000))
				Expect(cfg.Upstream.URL).To(Equal("http://backend-service:80"))
				Expect(cfg.Static.Dir).To(Equal("./public"))
				Expect(cfg.Relay.UniformErrors).To(BeFalse())

				interval, err := cfg.HealthCheckInterval()
				Expect(err).NotTo(HaveOccurred())
				Expect(interval).To(Equal(30 * time.Second))
			})
		})

		Context("with environment variables", func() {
			It("should honour PORT and NODE_ENV", func() {
				os.Setenv("PORT", "9090")
				os.Setenv("NODE_ENV", "production")

				cfg, err := config.Load(config.ServiceBackend)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(9090))
				Expect(cfg.Server.Environment).To(Equal("production"))
			})

			It("should honour BACKEND_URL and STATIC_DIR", func() {
				os.Setenv("BACKEND_URL", "http://localhost:8080")
				os.Setenv("STATIC_DIR", "/srv/www")

				cfg, err := config.Load(config.ServiceFrontend)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Upstream.URL).To(Equal("http://localhost:8080"))
				Expect(cfg.Static.Dir).To(Equal("/srv/www"))
			})

			It("should map nested keys through the replacer", func() {
				os.Setenv("LOGGING_LEVEL", "debug")
				os.Setenv("RELAY_UNIFORM_ERRORS", "true")

				cfg, err := config.Load(config.ServiceFrontend)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Logging.Level).To(Equal("debug"))
				Expect(cfg.Relay.UniformErrors).To(BeTrue())
			})

			It("should reject a port out of range", func() {
				os.Setenv("PORT", "70000")

				_, err := config.Load(config.ServiceBackend)
				Expect(err).To(HaveOccurred())
			})

			It("should reject a non-http backend URL", func() {
				os.Setenv("BACKEND_URL", "ftp://backend-service")

				_, err := config.Load(config.ServiceFrontend)
				Expect(err).To(HaveOccurred())
			})

			It("should ignore frontend-only settings for the backend", func() {
				os.Setenv("BACKEND_URL", "not a url")

				_, err := config.Load(config.ServiceBackend)
				Expect(err).NotTo(HaveOccurred())
			})
		})

		Context("with a .env file", func() {
			It("should load variables from it", func() {
				Expect(os.WriteFile(filepath.Join(tempDir, ".env"), []byte("PORT=4100\n"), 0644)).To(Succeed())

				cfg, err := config.Load(config.ServiceFrontend)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(4100))
			})
		})

		Context("with a service config file", func() {
			BeforeEach(func() {
				content := `
server:
  port: 3100
  environment: "staging"

upstream:
  url: "http://localhost:8080"

static:
  dir: "./assets"

health_check:
  interval: "0s"

relay:
  uniform_errors: true

logging:
  level: "warn"
`
				Expect(os.WriteFile(filepath.Join(tempDir, "frontend.yaml"), []byte(content), 0644)).To(Succeed())
			})

			It("should load the file", func() {
				cfg, err := config.Load(config.ServiceFrontend)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(3100))
				Expect(cfg.Server.Environment).To(Equal("staging"))
				Expect(cfg.Upstream.URL).To(Equal("http://localhost:8080"))
				Expect(cfg.Static.Dir).To(Equal("./assets"))
				Expect(cfg.Relay.UniformErrors).To(BeTrue())
				Expect(cfg.Logging.Level).To(Equal("warn"))

				interval, err := cfg.HealthCheckInterval()
				Expect(err).NotTo(HaveOccurred())
				Expect(interval).To(BeZero())
			})

			It("should not apply another service's file", func() {
				cfg, err := config.Load(config.ServiceBackend)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(8080))
			})

			It("should let environment variables override the file", func() {
				os.Setenv("PORT", "3200")

				cfg, err := config.Load(config.ServiceFrontend)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(3200))
			})
		})
	})

	Describe("Validate", func() {
		var cfg *config.Config

		BeforeEach(func() {
			cfg = &config.Config{
				Service: config.ServiceFrontend,
				Server:  config.ServerConfig{Port: 3000, Environment: "development"},
				Logging: config.LoggingConfig{Level: "info"},
				Upstream: config.UpstreamConfig{
					URL: "http://backend-service:80",
				},
				Static:      config.StaticConfig{Dir: "./public"},
				HealthCheck: config.HealthCheckConfig{Interval: "10s"},
			}
		})

		It("should accept a complete frontend config", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should reject an unknown log level", func() {
			cfg.Logging.Level = "trace"
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject a negative interval", func() {
			cfg.HealthCheck.Interval = "-1s"
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject a malformed interval", func() {
			cfg.HealthCheck.Interval = "soon"
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject a URL without host", func() {
			cfg.Upstream.URL = "http://"
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should require a static directory", func() {
			cfg.Static.Dir = ""
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should require an environment", func() {
			cfg.Server.Environment = ""
			Expect(cfg.Validate()).NotTo(Succeed())
		})
	})
})
