package main

import (
	"log"
	"net/http"

	"lostfound-api/internal"
	"lostfound-api/internal/config"
)

func main() {
	// Load and validate configuration
	cfg, err := config.LoadAndValidate()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Create and start server
	srv, err := internal.NewServer(cfg)
	if err != nil {
		log.Fatalf("Server setup error: %v", err)
	}

	log.Println("Starting Lost & Found API server...")
	log.Printf("Store backend: %s", cfg.Backend)
	log.Printf("Uploads dir: %s", cfg.UploadsDir)
	log.Printf("Listening on %s", cfg.Addr)

	log.Fatal(http.ListenAndServe(cfg.Addr, srv.Router))
}
