package startup

import (
	biometric_usecases "facegate.io/application/usecases/biometric"
	"facegate.io/infrastructure/database"
	"facegate.io/infrastructure/database/connection/datastore"
	"facegate.io/infrastructure/logger"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() {
	logger.InitializeLogger()
	database.SetUpDatabase()
	biometric_usecases.InitialiseFaceAuthEngine()
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
}
