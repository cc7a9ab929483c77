package sources

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"accessibuddy/models"
)

// MongoSource reads POIs from the "pois" collection. When the collection is
// empty and Seed is set, Seed is inserted first.
type MongoSource struct {
	URI      string
	Database string
	Seed     Source
}

// poiDocument is the stored form of a POI; Seq keeps the load order stable.
type poiDocument struct {
	ID          string          `bson:"_id"`
	Seq         int             `bson:"seq"`
	Name        string          `bson:"name"`
	Description string          `bson:"description"`
	Type        string          `bson:"type"`
	Location    models.GeoPoint `bson:"location"`
	Features    []string        `bson:"features,omitempty"`
}

func toDocument(p models.POI, seq int) poiDocument {
	return poiDocument{
		ID:          p.ID,
		Seq:         seq,
		Name:        p.Name,
		Description: p.Description,
		Type:        string(p.Type),
		Location:    p.Location,
		Features:    p.Features,
	}
}

func (d poiDocument) poi() models.POI {
	return models.POI{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Type:        models.ParseCategory(d.Type),
		Location:    d.Location,
		Features:    d.Features,
	}
}

func (s *MongoSource) Name() string { return "mongo:" + s.Database }

func (s *MongoSource) Load(ctx context.Context) ([]models.POI, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.URI))
	if err != nil {
		return nil, fmt.Errorf("MongoDB connection failed: %w", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	slog.Info("Connected to MongoDB", "database", s.Database)
	collection := client.Database(s.Database).Collection("pois")

	if s.Seed != nil {
		count, err := collection.CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, fmt.Errorf("failed to count documents: %w", err)
		}
		if count == 0 {
			if err := s.seed(ctx, collection); err != nil {
				return nil, err
			}
		}
	}

	cursor, err := collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to load POIs from MongoDB: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []poiDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode POIs from MongoDB: %w", err)
	}
	pois := make([]models.POI, 0, len(docs))
	for _, d := range docs {
		pois = append(pois, d.poi())
	}
	return pois, nil
}

func (s *MongoSource) seed(ctx context.Context, collection *mongo.Collection) error {
	slog.Info("No POIs found in MongoDB, seeding sample data", "seed", s.Seed.Name())
	pois, err := s.Seed.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading seed: %w", err)
	}
	if len(pois) == 0 {
		return nil
	}

	docs := make([]any, 0, len(pois))
	for i, p := range pois {
		docs = append(docs, toDocument(p, i))
	}
	result, err := collection.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to seed POIs: %w", err)
	}
	slog.Info("Inserted POIs into MongoDB", "count", len(result.InsertedIDs))
	return nil
}
