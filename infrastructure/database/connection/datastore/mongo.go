package datastore

import (
	"context"
	"os"
	"time"

	"facegate.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	FaceTemplateModel  *mongo.Collection
	AuthAttemptModel   *mongo.Collection
	AuthSettingsModel  *mongo.Collection
	SecurityEventModel *mongo.Collection
	AuthSessionModel   *mongo.Collection
)

var cancelMongo *context.CancelFunc

func ConnectToDatabase() {
	cancelMongo = connectMongo()
}

func CleanUp() {
	if cancelMongo != nil {
		(*cancelMongo)()
	}
}

func connectMongo() *context.CancelFunc {
	url := os.Getenv("DB_URL")

	if url == "" {
		logger.Error("mongo url missing")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)

	clientOpts := options.Client().ApplyURI(url)
	clientOpts.SetMinPoolSize(5)
	clientOpts.SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)

	if err != nil {
		logger.Warning("an error occured while starting the database", logger.LoggerOptions{Key: "error", Data: err})
		return &cancel
	}

	db := client.Database(os.Getenv("DB_NAME"))
	setUpIndexes(ctx, db)

	logger.Info("connected to mongodb successfully")
	return &cancel
}

// Set up the indexes for the database
func setUpIndexes(ctx context.Context, db *mongo.Database) {
	FaceTemplateModel = db.Collection("FaceTemplates")
	FaceTemplateModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "userID", Value: 1}, {Key: "isActive", Value: 1}},
		Options: options.Index(),
	}})

	// attempts are scanned most-recent-first for lockout derivation
	AuthAttemptModel = db.Collection("AuthAttempts")
	AuthAttemptModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "userID", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index(),
	}})

	AuthSettingsModel = db.Collection("AuthSettings")
	AuthSettingsModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "userID", Value: 1}},
		Options: options.Index().SetUnique(true),
	}})

	SecurityEventModel = db.Collection("SecurityEvents")
	SecurityEventModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "userID", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "severity", Value: 1}},
		Options: options.Index(),
	}})

	AuthSessionModel = db.Collection("AuthSessions")
	AuthSessionModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "userID", Value: 1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index(),
	}})

	logger.Info("mongodb indexes set up successfully")
}
