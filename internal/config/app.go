package config

import "os"

func Port() string {
	return os.Getenv("APP_PORT")
}

func LogFile() string {
	return os.Getenv("LOG_FILE")
}
