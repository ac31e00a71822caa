// @title 智能错题本后端 API
// @version 1.0
// @description 错题录入、练习追踪、统计分析与试卷识别服务。

// @host localhost:8080
// @BasePath /api

package main

import (
	"log"

	"wrongbook_backend/internal/app"
	"wrongbook_backend/internal/config"
	"wrongbook_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
