package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// App es la configuración del proceso, cargada desde env vars.
// Sin DB_DSN / MONGO_URI el router cae a repos in-memory (modo dev).
type App struct {
	Port      string `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	DebugMode bool   `env:"DEBUG" envDefault:"false"`

	DatabaseDSN   string `env:"DB_DSN"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DB" envDefault:"riavet"`

	// DIAN: si BaseURL está vacío se usa el cliente simulado.
	DianBaseURL string `env:"DIAN_BASE_URL"`
	DianAPIKey  string `env:"DIAN_API_KEY"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load lee .env si existe (dev) y luego parsea el entorno.
func Load() (App, error) {
	// .env es opcional: en producción las vars vienen del entorno real.
	_ = godotenv.Load()

	var cfg App
	if err := env.Parse(&cfg); err != nil {
		return App{}, err
	}
	return cfg, nil
}
