package repository

import (
	"sync"

	"facegate.io/entities"
	"facegate.io/infrastructure/database/connection/datastore"
	"facegate.io/infrastructure/database/repository/mongo"
)

var authSessionOnce = sync.Once{}

var authSessionRepository mongo.MongoRepository[entities.AuthSession]

func AuthSessionRepo() *mongo.MongoRepository[entities.AuthSession] {
	authSessionOnce.Do(func() {
		authSessionRepository = mongo.MongoRepository[entities.AuthSession]{Model: datastore.AuthSessionModel}
	})
	return &authSessionRepository
}
