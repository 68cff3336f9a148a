package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kailas-cloud/cancerdx/internal/db"
)

// InsertDocument inserts doc and returns the generated ObjectID as hex.
// doc should leave "_id" empty (omitempty) so the driver assigns it.
func (s *Store) InsertDocument(ctx context.Context, collection string, doc any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", &db.Error{Op: db.OpInsert, Err: err}
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", &db.Error{Op: db.OpInsert, Err: fmt.Errorf("unexpected id type %T", res.InsertedID)}
	}
	return id.Hex(), nil
}

// FindDocuments decodes all documents of a collection into out, projected to the given fields.
func (s *Store) FindDocuments(ctx context.Context, collection string, projection []string, out any) error {
	opts := options.Find()
	if len(projection) > 0 {
		opts.SetProjection(projectionDoc(projection))
	}

	cur, err := s.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return &db.Error{Op: db.OpFind, Err: err}
	}
	if err := cur.All(ctx, out); err != nil {
		return &db.Error{Op: db.OpFind, Err: err}
	}
	return nil
}

// FindDocument decodes the document with the given hex ObjectID into out.
func (s *Store) FindDocument(ctx context.Context, collection, id string, out any) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	err = s.db.Collection(collection).FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return db.ErrKeyNotFound
		}
		return &db.Error{Op: db.OpFindOne, Err: err}
	}
	return nil
}

// ParseID converts a hex string to an ObjectID, mapping malformed input to db.ErrInvalidID.
func ParseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", db.ErrInvalidID, id)
	}
	return oid, nil
}

func projectionDoc(fields []string) bson.D {
	d := make(bson.D, 0, len(fields))
	for _, f := range fields {
		d = append(d, bson.E{Key: f, Value: 1})
	}
	return d
}
