package main

import (
	"net/http"

	"geosplit/internal/config"
	"geosplit/internal/handler"
	"geosplit/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Initialize layers. The API partitions in memory and returns the
	// leaves to the caller, so no leaf writer is wired.
	splitService := service.NewSplitService(nil)
	splitHandler := handler.NewSplitHandler(splitService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.POST("/split", splitHandler.Split)

	r.Run(config.ServerAddress)
}
