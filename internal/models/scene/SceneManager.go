// This file contains the SceneManager implementation, which reads scene documents from a MongoDB collection.
// The manager is read-only: scenes are written by whatever pipeline produces the geometry, never by this server.
// Documents are stored in the same shape as the served JSON, keyed by `_id`, and are converted through relaxed
// extended JSON so they go through the same decoder as every other source.

package scene

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/NeRF-or-Nothing/go-scene-server/internal/log"
)

type SceneManager struct {
	collection *mongo.Collection
	logger     *log.Logger
}

// NewSceneManager creates a new SceneManager over database.collection of the given MongoDB client.
func NewSceneManager(client *mongo.Client, database, collection string, logger *log.Logger) *SceneManager {
	return &SceneManager{
		collection: client.Database(database).Collection(collection),
		logger:     logger,
	}
}

// GetScene fetches and decodes the scene stored under id.
// Returns ErrNotFound if there is no such document, *SchemaError if the document is malformed.
func (sm *SceneManager) GetScene(ctx context.Context, id string) (*Scene, error) {
	raw, err := sm.collection.FindOne(ctx, bson.M{"_id": id}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			sm.logger.Infof("Scene %s not found in store", id)
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		sm.logger.Errorf("Failed to fetch scene %s: %v", id, err)
		return nil, err
	}
	return decodeStored(raw)
}

// Source returns a Source that loads the scene stored under id on every call.
func (sm *SceneManager) Source(id string) Source {
	return storedSource{sm: sm, id: id}
}

type storedSource struct {
	sm *SceneManager
	id string
}

func (s storedSource) Load(ctx context.Context) (*Scene, error) {
	return s.sm.GetScene(ctx, s.id)
}

func (s storedSource) String() string {
	return fmt.Sprintf("mongo:%s/%s", s.sm.collection.Name(), s.id)
}

// decodeStored converts a stored document into a Scene. The `_id` key is ignored by Parse.
func decodeStored(raw bson.Raw) (*Scene, error) {
	data, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, schemaViolation(EntityScene, "", "", err.Error())
	}
	return Parse(data)
}
