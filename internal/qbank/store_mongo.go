package qbank

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoOpTimeout = 10 * time.Second

// MongoStore is the MongoDB-backed SubjectStore. One document per subject in
// the subjects collection; saves are conditional replaces filtered on the
// version read at load time.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore wraps the subjects collection of the given database and
// ensures the unique subject-name index exists.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	coll := db.Collection("subjects")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subject_name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("ensure subject_name index: %w", err)
	}

	return &MongoStore{coll: coll}, nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (*Subject, error) {
	return s.findOne(ctx, bson.M{"subject_name": name}, ErrSubjectNotFound)
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (*Subject, error) {
	return s.findOne(ctx, bson.M{"_id": id}, ErrSubjectNotFound)
}

func (s *MongoStore) GetByTopicID(ctx context.Context, topicID string) (*Subject, error) {
	return s.findOne(ctx, bson.M{"topics.topic_id": topicID}, ErrTopicNotFound)
}

func (s *MongoStore) List(ctx context.Context) ([]SubjectSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	projection := bson.M{
		"subject_name":           1,
		"topics.topic_id":        1,
		"topics.topic_name":      1,
		"topics.units.unit_name": 1,
	}
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer cursor.Close(ctx)

	var out []SubjectSummary
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode subject summaries: %w", err)
	}
	if out == nil {
		out = []SubjectSummary{}
	}
	return out, nil
}

func (s *MongoStore) Create(ctx context.Context, subject *Subject) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	if subject.ID == "" {
		subject.ID = NewID()
	}
	now := time.Now()
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = now
	}
	if subject.UpdatedAt.IsZero() {
		subject.UpdatedAt = now
	}
	subject.Version = 1

	if _, err := s.coll.InsertOne(ctx, subject); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSubjectExists
		}
		return fmt.Errorf("insert subject: %w", err)
	}
	return nil
}

// Save replaces the whole document, but only if the stored version still
// matches the one the caller loaded. A zero match count means a concurrent
// writer got there first (or the subject was deleted).
func (s *MongoStore) Save(ctx context.Context, subject *Subject) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	loadedVersion := subject.Version
	subject.Version++

	result, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": subject.ID, "version": loadedVersion},
		subject,
	)
	if err != nil {
		subject.Version = loadedVersion
		return fmt.Errorf("save subject: %w", err)
	}
	if result.MatchedCount == 0 {
		subject.Version = loadedVersion
		// Distinguish a stale version from a deleted document.
		n, err := s.coll.CountDocuments(ctx, bson.M{"_id": subject.ID})
		if err == nil && n == 0 {
			return ErrSubjectNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	return s.deleteOne(ctx, bson.M{"subject_name": name})
}

func (s *MongoStore) DeleteByID(ctx context.Context, id string) error {
	return s.deleteOne(ctx, bson.M{"_id": id})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M, notFound error) (*Subject, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	var subject Subject
	if err := s.coll.FindOne(ctx, filter).Decode(&subject); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}
	return &subject, nil
}

func (s *MongoStore) deleteOne(ctx context.Context, filter bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	result, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrSubjectNotFound
	}
	return nil
}
