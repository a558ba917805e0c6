package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"negromart_seller/internal/storage"
)

// DraftKey is the storage key of the saved draft.
const DraftKey = "seller-form-data"

// DraftStore saves the draft between runs, the way the browser keeps it in
// session storage.
type DraftStore struct {
	store storage.Storage
}

func NewDraftStore(store storage.Storage) *DraftStore {
	return &DraftStore{store: store}
}

// Load returns the saved draft. found is false when nothing was saved.
func (s *DraftStore) Load(ctx context.Context) (draft Draft, found bool, err error) {
	data, err := storage.ReadAll(ctx, s.store, DraftKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Draft{}, false, nil
		}
		return Draft{}, false, fmt.Errorf("failed to read draft: %w", err)
	}
	if err := json.Unmarshal(data, &draft); err != nil {
		return Draft{}, false, fmt.Errorf("failed to decode draft: %w", err)
	}
	return draft, true, nil
}

func (s *DraftStore) Save(ctx context.Context, draft Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.store.Save(ctx, DraftKey, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *DraftStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, DraftKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
