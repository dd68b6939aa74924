package main

import (
	"avtopark/vehicle-api/app"
	"avtopark/vehicle-api/config"
	"avtopark/vehicle-api/db"
	"avtopark/vehicle-api/internal/service"
	"avtopark/vehicle-api/pkg/security"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	if *config.Seed {
		d, err := db.New()
		if err != nil {
			panic(err)
		}

		if err := service.Seed(d, security.NewHasher()); err != nil {
			panic(err)
		}

		fmt.Println("Database seeded")
		return
	}

	router, err := app.NewRouter()
	if err != nil {
		panic(err)
	}

	zap.L().Info("Server starting", zap.Int("port", viper.GetInt("host.port")))

	err = router.Run(fmt.Sprintf(":%d", viper.GetInt("host.port")))
	if err != nil {
		panic(err)
	}
}
