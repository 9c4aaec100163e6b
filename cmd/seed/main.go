package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"globetrotter/internal/game"
	"globetrotter/internal/model"
	"globetrotter/internal/repository"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "globetrotter"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(mongoDB)
	destinations := repository.NewDestinationRepo(db)
	bonuses := repository.NewBonusRepo(db)

	count, err := destinations.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count destinations: %v", err)
	}
	if count > 0 {
		fmt.Printf("Destinations collection already has %d documents, skipping\n", count)
		return
	}

	seeded := 0
	for _, dest := range game.SampleDestinations(100) {
		d := dest
		if err := destinations.Create(ctx, &d); err != nil {
			log.Fatalf("Failed to insert destination %s: %v", d.City, err)
		}
		seeded++
	}

	bonusQuestions := []model.BonusQuestion{
		{
			Question:     "Which of these cities sits on two continents?",
			Options:      []string{"Cairo", "Istanbul", "Sydney", "Tokyo"},
			CorrectIndex: 1,
			EmojiSet:     []string{"🗼", "🗽", "🗾"},
		},
		{
			Question:     "Which city is home to the world's most visited museum?",
			Options:      []string{"New York", "Tokyo", "Paris", "Cairo"},
			CorrectIndex: 2,
			EmojiSet:     []string{"🗼", "🏜️", "🏄"},
		},
		{
			Question:     "Which of these cities is the largest in Africa?",
			Options:      []string{"Cairo", "Lagos", "Nairobi", "Casablanca"},
			CorrectIndex: 0,
			EmojiSet:     []string{"🏜️", "🌍", "🧭"},
		},
	}
	for i := range bonusQuestions {
		if err := bonuses.Create(ctx, &bonusQuestions[i]); err != nil {
			log.Fatalf("Failed to insert bonus question: %v", err)
		}
	}

	fmt.Printf("Seeded %d destinations and %d bonus questions\n", seeded, len(bonusQuestions))
}
