package product

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Repository stores products.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (Product, error)
	List(ctx context.Context) ([]Product, error)
	// GetByID returns ErrNotFound when no product has the id.
	GetByID(ctx context.Context, id string) (Product, error)
}

type document struct {
	ID          bson.ObjectID `bson:"_id"`
	Name        string        `bson:"name"`
	Price       float64       `bson:"price"`
	Description string        `bson:"description"`
}

// MongoRepository is a Repository backed by a MongoDB collection.
type MongoRepository struct {
	coll    *mongo.Collection
	baseURL string
}

// NewMongoRepository returns a repository over coll.
// baseURL prefixes the href of every returned product.
func NewMongoRepository(coll *mongo.Collection, baseURL string) *MongoRepository {
	return &MongoRepository{coll: coll, baseURL: strings.TrimRight(baseURL, "/")}
}

// Create inserts a product with a new ObjectID.
func (r *MongoRepository) Create(ctx context.Context, in CreateInput) (Product, error) {
	doc := document{
		ID:          bson.NewObjectID(),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return Product{}, errors.Join(ErrCreateProduct, err)
	}
	return r.toProduct(doc), nil
}

// List returns every stored product.
func (r *MongoRepository) List(ctx context.Context) ([]Product, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Join(ErrListProducts, err)
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrListProducts, err)
	}

	products := make([]Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, r.toProduct(doc))
	}
	return products, nil
}

// GetByID treats malformed ids as not found.
func (r *MongoRepository) GetByID(ctx context.Context, id string) (Product, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return Product{}, ErrNotFound
	}

	var doc document
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return Product{}, ErrNotFound
	case err != nil:
		return Product{}, errors.Join(ErrGetProduct, err)
	}
	return r.toProduct(doc), nil
}

func (r *MongoRepository) toProduct(doc document) Product {
	id := doc.ID.Hex()
	return Product{
		ID:          id,
		Href:        Href(r.baseURL, id),
		Name:        doc.Name,
		Price:       doc.Price,
		Description: doc.Description,
	}
}

// Href is the canonical URL of a product.
func Href(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/products/" + id
}
