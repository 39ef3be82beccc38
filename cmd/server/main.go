package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"pi-spigot-service/internal/router"
	"pi-spigot-service/internal/server"
)

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func main() {
	router.InitPools(map[string]int{
		"workers.pi": getenvInt("WORKERS_PI", 2),
		"queue.pi":   getenvInt("QUEUE_PI", 16),
	})

	// cierre ordenado opcional
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		router.Close()
		os.Exit(0)
	}()

	log.Println("HTTP/1.0 server starting on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		log.Fatalf("listen failed: %v", err)
	}
}
