package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is built once at process start and passed to whatever needs it.
type Config struct {
	AppEnv string
	Port   string
	CMS    CMSConfig
	DB     DBConfig
}

type CMSConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	// APIHost overrides the project API host, e.g. for a local proxy.
	APIHost string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// LoadEnv reads the environment, loading the given dotenv files first when
// they exist (".env" by default).
func LoadEnv(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("APP_PORT", ":8080"),
		CMS: CMSConfig{
			ProjectID:  os.Getenv("SANITY_PROJECT_ID"),
			Dataset:    os.Getenv("SANITY_DATASET"),
			APIVersion: os.Getenv("SANITY_API_VERSION"),
			Token:      os.Getenv("SANITY_API_TOKEN"),
			APIHost:    os.Getenv("SANITY_API_HOST"),
		},
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MissingEnvError lists every required variable that was not set.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	var b strings.Builder
	b.WriteString("missing required environment variables:")
	for _, v := range e.Vars {
		b.WriteString("\n  [ ] ")
		b.WriteString(v)
	}
	return b.String()
}

type requirement struct {
	name  string
	value string
}

func checkRequired(reqs ...requirement) error {
	var missing []string
	for _, r := range reqs {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return &MissingEnvError{Vars: missing}
	}
	return nil
}

// Require checks the CMS settings. Writes additionally need the API token.
func (c CMSConfig) Require(write bool) error {
	reqs := []requirement{
		{"SANITY_PROJECT_ID", c.ProjectID},
		{"SANITY_DATASET", c.Dataset},
		{"SANITY_API_VERSION", c.APIVersion},
	}
	if write {
		reqs = append(reqs, requirement{"SANITY_API_TOKEN", c.Token})
	}
	return checkRequired(reqs...)
}

func (c DBConfig) Require() error {
	return checkRequired(
		requirement{"DB_HOST", c.Host},
		requirement{"DB_USER", c.User},
		requirement{"DB_NAME", c.Name},
	)
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
	)
}

// MissingFileError is returned when a script's input file does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("required file not found:\n  [ ] %s", e.Path)
}

// RequireFile checks that path exists and is a regular file.
func RequireFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &MissingFileError{Path: path}
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
