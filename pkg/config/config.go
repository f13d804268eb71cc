package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Invoice   InvoiceConfig
	Tax       TaxConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env            string // development, staging, production
	Name           string
	LogLevel       string // trace, debug, info, warn, error
	SwaggerEnabled bool
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	BodyLimitMB int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BodyLimit devuelve el tamaño máximo del cuerpo en bytes.
func (c HTTPConfig) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// CORSConfig orígenes permitidos (separados por coma en CORS_ALLOW_ORIGINS).
type CORSConfig struct {
	AllowOrigins []string
}

// RateLimitConfig límite de peticiones por IP de cliente.
// RequestsPerSecond <= 0 desactiva el limitador.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// InvoiceConfig parámetros de la representación gráfica de la factura.
// LogoPath se resuelve una sola vez al arrancar; si no existe el archivo, la factura sale sin logo.
type InvoiceConfig struct {
	LogoPath    string
	OutputDir   string
	KeepFiles   bool   // conservar el PDF en OutputDir después de responder
	BrandName   string // titular del copyright en el pie de página
	Signatory   string // texto de "FOR ..."; vacío = nombre de la empresa emisora
	StrictGSTIN bool   // rechazar GSTIN con formato o dígito de control inválido
}

// TaxConfig tasas GST por defecto (porcentaje) cuando la petición no las trae.
type TaxConfig struct {
	CGSTRate float64
	SGSTRate float64
	IGSTRate float64
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, INVOICE_LOGO_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:            getString(v, "APP_ENV", "development"),
			Name:           getString(v, "APP_NAME", "gst-invoice-api"),
			LogLevel:       getString(v, "LOG_LEVEL", "info"),
			SwaggerEnabled: getBool(v, "SWAGGER_ENABLED", false),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 5000),
			BodyLimitMB: getInt(v, "HTTP_BODY_LIMIT_MB", 4),
		},
		CORS: CORSConfig{
			AllowOrigins: getStrings(v, "CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getFloat(v, "RATE_LIMIT_RPS", 5),
			Burst:             getInt(v, "RATE_LIMIT_BURST", 10),
		},
		Invoice: InvoiceConfig{
			LogoPath:    getString(v, "INVOICE_LOGO_PATH", ""),
			OutputDir:   getString(v, "INVOICE_OUTPUT_DIR", "invoices"),
			KeepFiles:   getBool(v, "INVOICE_KEEP_FILES", false),
			BrandName:   getString(v, "INVOICE_BRAND_NAME", "Fascino"),
			Signatory:   getString(v, "INVOICE_SIGNATORY", ""),
			StrictGSTIN: getBool(v, "INVOICE_STRICT_GSTIN", false),
		},
		Tax: TaxConfig{
			CGSTRate: getFloat(v, "TAX_CGST_RATE", 9),
			SGSTRate: getFloat(v, "TAX_SGST_RATE", 9),
			IGSTRate: getFloat(v, "TAX_IGST_RATE", 18),
		},
	}

	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("config: HTTP_PORT fuera de rango: %d", cfg.HTTP.Port)
	}
	if cfg.Invoice.OutputDir == "" {
		return nil, fmt.Errorf("config: INVOICE_OUTPUT_DIR es obligatorio")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

// getStrings lee una lista separada por comas ("a, b,c").
func getStrings(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, s := range strings.Split(v.GetString(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
