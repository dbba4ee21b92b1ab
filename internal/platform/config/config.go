package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	EnvPrefix     = "PETVAX_"
	EnvConfigPath = "PETVAX_CONFIG"

	defaultConfigFile = "config.yaml"
	dotEnvFile        = ".env"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	App     App     `koanf:"app"`
	HTTP    HTTP    `koanf:"http"`
	Log     Log     `koanf:"log"`
	Storage Storage `koanf:"storage"`
	Auth    Auth    `koanf:"auth"`
}

type App struct {
	Name string `koanf:"name"`
	Env  string `koanf:"env"`
}

type HTTP struct {
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"readTimeout"`
	WriteTimeout time.Duration `koanf:"writeTimeout"`
	IdleTimeout  time.Duration `koanf:"idleTimeout"`

	// CSV en env: PETVAX_HTTP_CORSORIGINS=http://a,http://b
	CORSOrigins []string `koanf:"corsOrigins"`
	Swagger     bool     `koanf:"swagger"`
}

type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Storage elige el driver: memory | postgres | mongo.
type Storage struct {
	Driver   string   `koanf:"driver"`
	Postgres Postgres `koanf:"postgres"`
	Mongo    Mongo    `koanf:"mongo"`
}

type Postgres struct {
	DSN         string `koanf:"dsn"`
	AutoMigrate bool   `koanf:"autoMigrate"`
}

type Mongo struct {
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

// Auth elige el verificador de tokens: jwt | odin | dev.
type Auth struct {
	Provider   string        `koanf:"provider"`
	JWTSecret  string        `koanf:"jwtSecret"`
	TokenTTL   time.Duration `koanf:"tokenTTL"`
	BcryptCost int           `koanf:"bcryptCost"`
	Odin       Odin          `koanf:"odin"`
}

type Odin struct {
	BaseURL      string        `koanf:"baseUrl"`
	APIKey       string        `koanf:"apiKey"`
	APIKeyHeader string        `koanf:"apiKeyHeader"`
	Timeout      time.Duration `koanf:"timeout"`
}

// Addr devuelve ":<port>" para http.Server.
func (h HTTP) Addr() string {
	return ":" + strconv.Itoa(h.Port)
}

// Load arma la config en capas:
// defaults embebidos -> archivo YAML opcional -> .env -> variables PETVAX_*.
func Load() (*Config, error) {
	path := strings.TrimSpace(os.Getenv(EnvConfigPath))
	if path == "" {
		path = defaultConfigFile
	}
	return LoadFrom(path, os.Environ)
}

// LoadFrom es Load con ruta y fuente de entorno explícitas (tests).
// Si path no existe se ignora salvo que venga de PETVAX_CONFIG.
func LoadFrom(path string, environ func() []string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawYAML(defaultsYAML), yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, "load embedded defaults")
	}

	if path = strings.TrimSpace(path); path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "read config file %s", path)
			}
		} else if os.Getenv(EnvConfigPath) != "" {
			return nil, errors.Wrapf(err, "config file %s", path)
		}
	}

	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	existing := k.Raw()
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, EnvPrefix)
			return canonicalizeEnvKey(key, existing), value
		},
		EnvironFunc: environ,
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables")
	}

	cfg := new(Config)
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	// PORT plano, como lo usan la mayoría de los PaaS.
	if p := strings.TrimSpace(lookup(environ, "PORT")); p != "" && lookup(environ, EnvPrefix+"HTTP_PORT") == "" {
		if n, err := strconv.Atoi(p); err == nil {
			cfg.HTTP.Port = n
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Auth.Provider = strings.ToLower(strings.TrimSpace(c.Auth.Provider))

	origins := make([]string, 0, len(c.HTTP.CORSOrigins))
	for _, o := range c.HTTP.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.HTTP.CORSOrigins = origins
}

// Validate revisa combinaciones que no tienen sentido antes de arrancar.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return errors.Errorf("http.port out of range: %d", c.HTTP.Port)
	}

	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if strings.TrimSpace(c.Storage.Postgres.DSN) == "" {
			return errors.New("storage.postgres.dsn is required for the postgres driver")
		}
	case "mongo":
		if strings.TrimSpace(c.Storage.Mongo.URI) == "" || strings.TrimSpace(c.Storage.Mongo.Database) == "" {
			return errors.New("storage.mongo.uri and storage.mongo.database are required for the mongo driver")
		}
	default:
		return errors.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	switch c.Auth.Provider {
	case "jwt":
		if strings.TrimSpace(c.Auth.JWTSecret) == "" {
			return errors.New("auth.jwtSecret is required for the jwt provider")
		}
	case "odin":
		if strings.TrimSpace(c.Auth.Odin.BaseURL) == "" {
			return errors.New("auth.odin.baseUrl is required for the odin provider")
		}
	case "dev":
	default:
		return errors.Errorf("unknown auth.provider %q", c.Auth.Provider)
	}

	return nil
}

// canonicalizeEnvKey convierte STORAGE_POSTGRES_AUTOMIGRATE en
// storage.postgres.autoMigrate usando las claves que ya existen en el YAML.
func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}
		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
			continue
		}
		canonical = append(canonical, segment)
		current = nil
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (string, map[string]any, bool) {
	if len(current) == 0 {
		return "", nil, false
	}
	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}
		child, _ := value.(map[string]any)
		return key, child, true
	}
	return "", nil, false
}

func normalizeToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func lookup(environ func() []string, name string) string {
	prefix := name + "="
	for _, kv := range environ() {
		if strings.HasPrefix(kv, prefix) {
			return kv[len(prefix):]
		}
	}
	return ""
}

// loadDotEnv carga path si existe; no pisa variables ya exportadas.
// Un .env presente pero mal formado es error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return errors.Wrapf(err, "load %s", path)
}
