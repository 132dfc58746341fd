package mongo

import (
	"context"
	"time"

	"facegate.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *MongoRepository[T]) defaultContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T, opts ...*options.InsertOneOptions) (*T, error) {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = repo.defaultContext()
		defer cancel()
	}
	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.InsertOne(ctx, parsed, opts...)
	if err != nil {
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindByID(id string, opts ...*options.FindOneOptions) (*T, error) {
	return repo.FindOneByFilter(map[string]any{"_id": id}, opts...)
}

func (repo *MongoRepository[T]) FindOneByFilter(filter map[string]any, opts ...*options.FindOneOptions) (*T, error) {
	ctx, cancel := repo.defaultContext()
	defer cancel()
	var result T
	err := repo.Model.FindOne(ctx, normaliseFilter(filter), opts...).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindMany(filter map[string]any, opts ...*options.FindOptions) (*[]T, error) {
	ctx, cancel := repo.defaultContext()
	defer cancel()
	cursor, err := repo.Model.Find(ctx, normaliseFilter(filter), opts...)
	if err != nil {
		logger.Error("mongo error occured while running FindMany", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		logger.Error("mongo error occured while decoding FindMany results", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	return &results, nil
}

// FindManyPaginated pages with an id cursor rather than skip so deep pages
// stay cheap. Pass lastID from the previous page, nil for the first.
func (repo *MongoRepository[T]) FindManyPaginated(filter map[string]any, pageSize int64, lastID *string, sortOrder int, opts ...*options.FindOptions) (*[]T, error) {
	paged := normaliseFilter(filter)
	if lastID != nil && *lastID != "" {
		op := "$lt"
		if sortOrder == 1 {
			op = "$gt"
		}
		paged["_id"] = bson.M{op: *lastID}
	}
	findOpts := append(opts, options.Find().SetLimit(pageSize))
	ctx, cancel := repo.defaultContext()
	defer cancel()
	cursor, err := repo.Model.Find(ctx, paged, findOpts...)
	if err != nil {
		logger.Error("mongo error occured while running FindManyPaginated", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

func (repo *MongoRepository[T]) CountDocs(filter map[string]any) (int64, error) {
	ctx, cancel := repo.defaultContext()
	defer cancel()
	count, err := repo.Model.CountDocuments(ctx, normaliseFilter(filter))
	if err != nil {
		logger.Error("mongo error occured while running CountDocs", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return 0, err
	}
	return count, nil
}

func (repo *MongoRepository[T]) UpdatePartialByID(id string, payload map[string]any) (bool, error) {
	return repo.UpdatePartialByFilter(map[string]any{"_id": id}, payload)
}

func (repo *MongoRepository[T]) UpdatePartialByFilter(filter map[string]any, payload map[string]any) (bool, error) {
	ctx, cancel := repo.defaultContext()
	defer cancel()
	payload["updatedAt"] = time.Now()
	result, err := repo.Model.UpdateOne(ctx, normaliseFilter(filter), bson.M{"$set": payload})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

func (repo *MongoRepository[T]) UpdateManyByFilter(filter map[string]any, payload map[string]any) (int64, error) {
	ctx, cancel := repo.defaultContext()
	defer cancel()
	payload["updatedAt"] = time.Now()
	result, err := repo.Model.UpdateMany(ctx, normaliseFilter(filter), bson.M{"$set": payload})
	if err != nil {
		logger.Error("mongo error occured while running UpdateManyByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return 0, err
	}
	return result.ModifiedCount, nil
}

func normaliseFilter(filter map[string]any) bson.M {
	parsed := bson.M{}
	for key, value := range filter {
		parsed[key] = value
	}
	return parsed
}
