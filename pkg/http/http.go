package http

import "time"

// Http holds the HTTP server configuration.
type Http struct {
	Host            string
	Port            int
	Mode            string
	ContextPath     string
	AccessLog       bool
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	Auth            Auth
}

// Auth holds JWT settings. Expiries are in minutes.
type Auth struct {
	SecretKey     string
	AccessExpire  time.Duration
	RefreshExpire time.Duration
}
