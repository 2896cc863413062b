package main

import (
	"court-watcher/core/logger"
	"court-watcher/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
