package main

type Config struct {
	Host       string  `env:"CLASSIFIER_HOST,default=0.0.0.0"`
	Port       int     `env:"CLASSIFIER_PORT,default=50051"`
	LogLevel   string  `env:"LOG_LEVEL,default=INFO"`
	Threshold  float64 `env:"UNSAFE_THRESHOLD,default=0.8"`
	AuthSecret string  `env:"AUTH_SECRET"`
}
