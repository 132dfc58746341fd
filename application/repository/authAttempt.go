package repository

import (
	"sync"

	"facegate.io/entities"
	"facegate.io/infrastructure/database/connection/datastore"
	"facegate.io/infrastructure/database/repository/mongo"
)

var authAttemptOnce = sync.Once{}

var authAttemptRepository mongo.MongoRepository[entities.AuthAttempt]

func AuthAttemptRepo() *mongo.MongoRepository[entities.AuthAttempt] {
	authAttemptOnce.Do(func() {
		authAttemptRepository = mongo.MongoRepository[entities.AuthAttempt]{Model: datastore.AuthAttemptModel}
	})
	return &authAttemptRepository
}
