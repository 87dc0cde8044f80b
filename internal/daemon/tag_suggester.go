package daemon

import (
	"context"
	"sync"

	"github.com/ealmloff/linknotes/internal/semantic"
	"github.com/ealmloff/linknotes/internal/types"
)

// TagSuggester wraps the classifier with a per-workspace cache. The
// model is retrained lazily from the workspace's manually tagged notes,
// so suggestions track how the user actually labels things.
type TagSuggester struct {
	stores *Stores

	mu     sync.Mutex
	models map[int]*semantic.Classifier
}

func NewTagSuggester(stores *Stores) *TagSuggester {
	return &TagSuggester{stores: stores, models: map[int]*semantic.Classifier{}}
}

// Suggest returns the inferred tag name for the text, or "" when the
// text has nothing to classify.
func (s *TagSuggester) Suggest(ctx context.Context, workspaceID int, text string) (string, error) {
	model, err := s.model(ctx, workspaceID)
	if err != nil {
		return "", err
	}
	name, err := model.Classify(text)
	if err != nil {
		return "", err
	}
	return name, nil
}

// Invalidate drops the cached model so the next suggestion retrains on
// current data.
func (s *TagSuggester) Invalidate(workspaceID int) {
	s.mu.Lock()
	delete(s.models, workspaceID)
	s.mu.Unlock()
}

func (s *TagSuggester) model(ctx context.Context, workspaceID int) (*semantic.Classifier, error) {
	s.mu.Lock()
	if model, ok := s.models[workspaceID]; ok {
		s.mu.Unlock()
		return model, nil
	}
	s.mu.Unlock()

	records, err := s.stores.Notes.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	var extra []semantic.TrainingDoc
	for _, rec := range records {
		names := manualTagNames(rec.Tags)
		if len(names) == 0 {
			continue
		}
		extra = append(extra, semantic.TrainingDoc{Body: rec.Body, Tags: names})
	}
	model := semantic.NewClassifier(extra)

	s.mu.Lock()
	s.models[workspaceID] = model
	s.mu.Unlock()
	return model, nil
}

func manualTagNames(tags []types.Tag) []string {
	var out []string
	for _, tag := range tags {
		if tag.Manual {
			out = append(out, tag.Name)
		}
	}
	return out
}
