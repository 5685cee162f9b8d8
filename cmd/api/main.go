package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"study-planner/backend/internal/database"
	"study-planner/backend/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db := database.InitDB()
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Fatal: Failed to apply database schema: %v", err)
	}

	r := routes.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server listening on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
