package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Repository stores users.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (User, error)
	List(ctx context.Context) ([]User, error)
}

type document struct {
	ID    bson.ObjectID `bson:"_id"`
	Name  string        `bson:"name"`
	Email string        `bson:"email,omitempty"`
	Age   int           `bson:"age,omitempty"`
}

func (d document) user() User {
	return User{ID: d.ID.Hex(), Name: d.Name, Email: d.Email, Age: d.Age}
}

// MongoRepository is a Repository backed by a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository returns a repository over coll.
func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// Create inserts a user with a new ObjectID.
func (r *MongoRepository) Create(ctx context.Context, in CreateInput) (User, error) {
	doc := document{ID: bson.NewObjectID(), Name: in.Name, Email: in.Email, Age: in.Age}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return User{}, errors.Join(ErrCreateUser, err)
	}
	return doc.user(), nil
}

// List returns every stored user.
func (r *MongoRepository) List(ctx context.Context) ([]User, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Join(ErrListUsers, err)
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrListUsers, err)
	}

	users := make([]User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.user())
	}
	return users, nil
}
