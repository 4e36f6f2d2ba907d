// Command import_csv bulk-creates verified accounts from a CSV file:
//
//	go run ./cmd/scripts accounts.csv
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ArowuTest/mystery-message-backend/internal/config"
	"github.com/ArowuTest/mystery-message-backend/internal/logging"
	mongorepo "github.com/ArowuTest/mystery-message-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/mystery-message-backend/internal/utils"
	"github.com/ArowuTest/mystery-message-backend/pkg/mongodb"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if len(os.Args) < 2 {
		logger.Fatal("CSV file path is required as a command line argument")
	}
	csvFilePath := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.ConnectTimeout)
	if err != nil {
		logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	userRepo := mongorepo.NewUserRepository(client.Database(cfg.MongoDB.Database))
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatalf("Failed to create indexes: %v", err)
	}

	file, err := os.Open(csvFilePath)
	if err != nil {
		logger.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	result, err := utils.NewCSVImporter(userRepo).ImportAccounts(ctx, file)
	if err != nil {
		logger.Fatalf("Failed to import accounts: %v", err)
	}

	summary, _ := json.MarshalIndent(result, "", "  ")
	logger.WithFields(logrus.Fields{
		"created": result.Created,
		"skipped": result.Skipped,
	}).Info("import finished")
	os.Stdout.Write(append(summary, '\n'))
}
