package config

import (
	"github.com/jinzhu/configor"
)

type Config struct {
	AppConfig AppConfig `env:"APPCONFIG"`
	DBConfig  DBConfig  `env:"DBCONFIG"`
}

type AppConfig struct {
	APPName string `default:"userrank"`
	Version string `default:"x.x.x" env:"VERSION"`
	Port    int    `default:"8080" env:"APP_PORT"`
}

type DBConfig struct {
	Host           string `default:"localhost" env:"DBHOST"`
	DataBase       string `default:"userrank" env:"DBNAME"`
	User           string `default:"postgres" env:"DBUSERNAME"`
	Password       string `required:"true" env:"DBPASSWORD" default:"mysecretpassword"`
	Port           uint   `default:"5432" env:"DBPORT"`
	SSLMode        string `default:"disable" env:"DBSSL"`
	MigrationsPath string `default:"migrations" env:"DBMIGRATIONS"`
}

func LoadConfigOrPanic() Config {
	var config = Config{}
	configor.Load(&config, "config/config.dev.json")

	return config
}
