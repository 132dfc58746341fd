package connection

import (
	"facegate.io/infrastructure/database/connection/cache"
	"facegate.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.ConnectToDatabase()
	cache.ConnectToCache()
}
