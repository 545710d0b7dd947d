package catalog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"phoneflip/pkg/models"
)

// Repository is the catalog boundary the import pipeline depends on.
// FindByIdentity returns (nil, nil) when no record matches; the pipeline
// never queries beyond the (brand, model) identity.
type Repository interface {
	FindByIdentity(ctx context.Context, brand, model string) (*models.PhoneSpec, error)
	Insert(ctx context.Context, spec *models.PhoneSpec) (string, error)
	Update(ctx context.Context, id string, spec *models.PhoneSpec) error
	List(ctx context.Context, q ListQuery) ([]models.PhoneSpec, error)
	GetByID(ctx context.Context, id string) (*models.PhoneSpec, error)
	Count(ctx context.Context) (int64, error)
}

type ListQuery struct {
	Brand  string
	Limit  int
	Offset int
}

type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{collection: db.Collection("phone_specs")}
}

func (r *MongoRepo) FindByIdentity(ctx context.Context, brand, model string) (*models.PhoneSpec, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var spec models.PhoneSpec
	filter := bson.M{"brand": brand, "model": model}

	err := r.collection.FindOne(ctx, filter).Decode(&spec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find by identity: %w", err)
	}
	return &spec, nil
}

func (r *MongoRepo) Insert(ctx context.Context, spec *models.PhoneSpec) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	spec.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	spec.CreatedAt = now
	spec.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, spec); err != nil {
		return "", fmt.Errorf("insert spec: %w", err)
	}
	return spec.ID.Hex(), nil
}

// Update replaces every field of the stored document except _id,
// identity and created_at.
func (r *MongoRepo) Update(ctx context.Context, id string, spec *models.PhoneSpec) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid spec ID")
	}

	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("spec not found")
	}

	replacement := *spec
	replacement.ID = objID
	replacement.Brand = existing.Brand
	replacement.Model = existing.Model
	replacement.CreatedAt = existing.CreatedAt
	replacement.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objID}, &replacement)
	if err != nil {
		return fmt.Errorf("update spec: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("spec not found")
	}
	return nil
}

func (r *MongoRepo) GetByID(ctx context.Context, id string) (*models.PhoneSpec, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid spec ID")
	}

	var spec models.PhoneSpec
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&spec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return &spec, nil
}

func (r *MongoRepo) List(ctx context.Context, q ListQuery) ([]models.PhoneSpec, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if q.Brand != "" {
		filter["brand"] = bson.M{"$regex": q.Brand, "$options": "i"}
	}

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "brand", Value: 1}, {Key: "model", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list specs: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.PhoneSpec, 0, limit)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode specs: %w", err)
	}
	return out, nil
}

func (r *MongoRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.collection.CountDocuments(ctx, bson.M{})
}
