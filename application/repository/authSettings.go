package repository

import (
	"sync"

	"facegate.io/entities"
	"facegate.io/infrastructure/database/connection/datastore"
	"facegate.io/infrastructure/database/repository/mongo"
)

var authSettingsOnce = sync.Once{}

var authSettingsRepository mongo.MongoRepository[entities.AuthSettings]

func AuthSettingsRepo() *mongo.MongoRepository[entities.AuthSettings] {
	authSettingsOnce.Do(func() {
		authSettingsRepository = mongo.MongoRepository[entities.AuthSettings]{Model: datastore.AuthSettingsModel}
	})
	return &authSettingsRepository
}
