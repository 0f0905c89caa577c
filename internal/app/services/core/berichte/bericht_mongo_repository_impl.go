package berichte

import (
	"context"

	"isik-bericht-service/internal/app/contracts"
	"isik-bericht-service/internal/app/models"
	"isik-bericht-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type BerichtMongoRepository struct {
	Collection *mongo.Collection
}

func NewBerichtMongoRepository(db *mongo.Client, dbName, collectionName string) contracts.BerichtRepository {
	return &BerichtMongoRepository{
		Collection: db.Database(dbName).Collection(collectionName),
	}
}

func (repo *BerichtMongoRepository) InsertBericht(ctx context.Context, bericht *models.Bericht) error {
	_, err := repo.Collection.InsertOne(ctx, bericht)
	if err != nil {
		return exceptions.ErrArchiveInsert(err)
	}
	return nil
}

// FindBerichtByID looks the archive up by the bundle id. Bericht ids are
// UUIDs assigned during assembly, not Mongo ObjectIDs.
func (repo *BerichtMongoRepository) FindBerichtByID(ctx context.Context, berichtID string) (*models.Bericht, error) {
	var bericht models.Bericht
	err := repo.Collection.FindOne(ctx, bson.M{"_id": berichtID}).Decode(&bericht)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrArchiveFind(err)
	}
	return &bericht, nil
}
