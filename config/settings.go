package config

import (
	"errors"
	"time"
)

const (
	DefaultJWTSecret     = "gaffer-portfolio-secret-key-2024"
	DefaultAdminPassword = "admin123"
	DefaultDBName        = "gaffer_portfolio"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

type Settings struct {
	Env  string
	Port string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	LogLevel  string
	LogFormat string

	Database   DatabaseSettings
	JWT        JWTSettings
	EmailJS    EmailJSSettings
	Cloudinary CloudinarySettings
	S3         S3Settings
	Admin      AdminSettings

	MediaHost      string
	UploadDir      string
	AcceptedOrigin []string

	ContactRateLimit int
	LoginRateLimit   int
}

type DatabaseSettings struct {
	Driver     string
	URL        string
	ReplicaURL string
	Name       string
}

type JWTSettings struct {
	Secret string
	TTL    time.Duration
}

type EmailJSSettings struct {
	URL                  string
	ServiceID            string
	TemplateID           string
	NotificationTemplate string
	UserID               string
	PrivateKey           string
	OwnerName            string
	AdminName            string
}

type CloudinarySettings struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Configured is true only when all three credentials are present.
func (c CloudinarySettings) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type S3Settings struct {
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
}

type AdminSettings struct {
	Username string
	Email    string
	Password string
}

// Load builds typed settings from a config map produced by New.
func Load(c map[string]string) Settings {
	return Settings{
		Env:  GetString(c, "APP_ENV", "development"),
		Port: GetString(c, "PORT", "8080"),

		ReadTimeout:  time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
		WriteTimeout: time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
		IdleTimeout:  time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,

		LogLevel:  GetString(c, "LOG_LEVEL", "info"),
		LogFormat: GetString(c, "LOG_FORMAT", "console"),

		Database: DatabaseSettings{
			Driver:     GetString(c, "DB_DRIVER", "postgres"),
			URL:        GetString(c, "DATABASE_URL", ""),
			ReplicaURL: GetString(c, "DATABASE_REPLICA_URL", ""),
			Name:       GetString(c, "DB_NAME", DefaultDBName),
		},
		JWT: JWTSettings{
			Secret: GetString(c, "JWT_SECRET_KEY", DefaultJWTSecret),
			TTL:    time.Duration(GetInt(c, "JWT_TTL_MINUTES", 1440)) * time.Minute,
		},
		EmailJS: EmailJSSettings{
			URL:                  GetString(c, "EMAILJS_URL", "https://api.emailjs.com/api/v1.0/email/send"),
			ServiceID:            GetString(c, "EMAILJS_SERVICE_ID", ""),
			TemplateID:           GetString(c, "EMAILJS_TEMPLATE_ID", ""),
			NotificationTemplate: GetString(c, "EMAILJS_NOTIFICATION_TEMPLATE", ""),
			UserID:               GetString(c, "EMAILJS_USER_ID", ""),
			PrivateKey:           GetString(c, "EMAILJS_PRIVATE_KEY", ""),
			OwnerName:            GetString(c, "OWNER_NAME", "Jeferson Rodrigues"),
			AdminName:            GetString(c, "ADMIN_DISPLAY_NAME", "Jeferson"),
		},
		Cloudinary: CloudinarySettings{
			CloudName: GetString(c, "CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    GetString(c, "CLOUDINARY_API_KEY", ""),
			APISecret: GetString(c, "CLOUDINARY_API_SECRET", ""),
		},
		S3: S3Settings{
			Bucket:    GetString(c, "S3_BUCKET", ""),
			Region:    GetString(c, "AWS_REGION", "us-east-1"),
			Endpoint:  GetString(c, "S3_ENDPOINT", ""),
			PublicURL: GetString(c, "S3_PUBLIC_URL", ""),
		},
		Admin: AdminSettings{
			Username: GetString(c, "ADMIN_USERNAME", "admin"),
			Email:    GetString(c, "ADMIN_EMAIL", "admin@example.com"),
			Password: GetString(c, "ADMIN_PASSWORD", DefaultAdminPassword),
		},

		MediaHost:      GetString(c, "MEDIA_HOST", ""),
		UploadDir:      GetString(c, "UPLOAD_DIR", "./uploads"),
		AcceptedOrigin: GetList(c, "ACCEPTED_ORIGINS", []string{"*"}),

		ContactRateLimit: GetInt(c, "CONTACT_RATE_LIMIT_PER_MINUTE", 5),
		LoginRateLimit:   GetInt(c, "LOGIN_RATE_LIMIT_PER_MINUTE", 10),
	}
}

func (s Settings) IsProduction() bool {
	return s.Env == "production"
}

// Validate reports settings the process cannot start without.
func (s Settings) Validate() error {
	if s.Database.URL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}

// UsesDefaultSecret is true while the token secret is the built-in value.
func (s Settings) UsesDefaultSecret() bool {
	return s.JWT.Secret == DefaultJWTSecret
}
