package main

import (
	"log"

	_ "internportal/docs"
	"internportal/internal/config"
	"internportal/internal/server"
)

// @title           Intern Portal API
// @version         1.0
// @description     Portal surface for managing interns and their tasks.

// @host      localhost:8080
// @BasePath  /

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
