package repository

import (
	"sync"

	"facegate.io/entities"
	"facegate.io/infrastructure/database/connection/datastore"
	"facegate.io/infrastructure/database/repository/mongo"
)

var securityEventOnce = sync.Once{}

var securityEventRepository mongo.MongoRepository[entities.SecurityEvent]

func SecurityEventRepo() *mongo.MongoRepository[entities.SecurityEvent] {
	securityEventOnce.Do(func() {
		securityEventRepository = mongo.MongoRepository[entities.SecurityEvent]{Model: datastore.SecurityEventModel}
	})
	return &securityEventRepository
}
