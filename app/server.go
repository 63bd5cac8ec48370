package app

import (
	"flag"
	"log"
	"os"

	"github.com/hyderoo/dewa-wo-sub001/app/controllers"
	"github.com/joho/godotenv"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func Run() {
	var server = controllers.Server{}
	var appConfig = controllers.AppConfig{}
	var dbConfig = controllers.DBConfig{}

	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig.AppName = getEnv("APP_NAME", "DewaWO")
	appConfig.AppEnv = getEnv("APP_ENV", "development")
	appConfig.AppPort = getEnv("APP_PORT", "9000")
	appConfig.AppURL = getEnv("APP_URL", "http://localhost:9000")
	appConfig.RedisAddr = getEnv("REDIS_ADDR", "127.0.0.1:6379")
	appConfig.RedisPassword = getEnv("REDIS_PASSWORD", "")
	appConfig.GatewayBaseURL = getEnv("PAYMENT_GATEWAY_BASE_URL", "https://api.sandbox.midtrans.com")
	appConfig.GatewayServerKey = getEnv("PAYMENT_GATEWAY_SERVER_KEY", "")
	appConfig.DownPaymentPercent = getEnv("DOWN_PAYMENT_PERCENT", "30")

	dbConfig.DBHost = getEnv("DB_HOST", "localhost")
	dbConfig.DBUser = getEnv("DB_USER", "root")
	dbConfig.DBPassword = getEnv("DB_PASSWORD", "123")
	dbConfig.DBName = getEnv("DB_NAME", "dewawodb")
	dbConfig.DBPort = getEnv("DB_PORT", "3306")
	dbConfig.DBDriver = getEnv("DB_DRIVER", "mysql")

	flag.Parse()
	arg := flag.Arg(0)

	if arg != "" {
		server.InitCommands(appConfig, dbConfig)
	} else {
		server.Initialize(appConfig, dbConfig)
		server.Run(":" + appConfig.AppPort)
	}
}
