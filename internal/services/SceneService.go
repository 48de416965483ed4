package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/NeRF-or-Nothing/go-scene-server/internal/log"
	"github.com/NeRF-or-Nothing/go-scene-server/internal/models/collection"
	"github.com/NeRF-or-Nothing/go-scene-server/internal/models/scene"
)

type SceneService struct {
	scenes scene.Source
	events scene.Source
	logger *log.Logger
}

// NewSceneService creates a service serving /scene from scenes. The event document is the built-in legacy fixture.
func NewSceneService(scenes scene.Source, logger *log.Logger) *SceneService {
	return &SceneService{
		scenes: scenes,
		events: scene.FixtureSource{Name: "legacy-event", Build: scene.LegacyEvent},
		logger: logger,
	}
}

// WithEventSource replaces the source of the single-event document.
func (s *SceneService) WithEventSource(events scene.Source) *SceneService {
	s.events = events
	return s
}

// GetScene builds the scene document served on /scene.
// Returns *scene.SchemaError if the source data is inconsistent, *scene.UpstreamError if the source failed.
func (s *SceneService) GetScene(ctx context.Context) (*scene.Scene, error) {
	sc, err := scene.Build(ctx, s.scenes)
	if err != nil {
		s.logger.Errorf("Failed to build scene from %s: %v", s.scenes, err)
		return nil, err
	}

	s.logger.Debugf("Scene from %s built: %d materials, %d primitives, access model %s",
		s.scenes, len(sc.GeometryData.Materials), len(sc.GeometryData.Geometry), AccessModel(sc))
	return sc, nil
}

// AccessModel returns how the viewer will treat sc as a root document.
func AccessModel(sc *scene.Scene) collection.AccessModel {
	return collection.Classify(collection.Descriptor{
		Iterable: sc.Iterable,
		Expires:  sc.ExpiresIn != nil && *sc.ExpiresIn != 0,
	})
}

// GetEvent builds the single-event document served on /event.
func (s *SceneService) GetEvent(ctx context.Context) (*scene.Scene, error) {
	sc, err := scene.Build(ctx, s.events)
	if err != nil {
		s.logger.Errorf("Failed to build event from %s: %v", s.events, err)
		return nil, err
	}
	return sc, nil
}

// GetEvents returns the cursor of the event collection. Events are only browsable forward, starting at the first.
func (s *SceneService) GetEvents(ctx context.Context) (*collection.Cursor, error) {
	cursor := collection.ForwardOnly(1)
	s.logger.Debugf("Events cursor served, access model %s", collection.Classify(cursor.Describe()))
	return cursor, nil
}

// Preflight builds every source once and reports all failures. Used by strict mode at startup.
func (s *SceneService) Preflight(ctx context.Context) error {
	var errs []error
	for _, src := range []scene.Source{s.scenes, s.events} {
		if _, err := scene.Build(ctx, src); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src, err))
			continue
		}
		s.logger.Infof("Source %s passed preflight", src)
	}
	return errors.Join(errs...)
}
