package invoicing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/globaltours/invoice-api/internal/application/dto"
)

// draftKeyPrefix is the fixed slot name. The original product kept one global
// browser slot; on a multi-user server the slot is per authenticated user.
const draftKeyPrefix = "invoice_draft:"

// DraftUseCase owns the single-slot draft of an in-progress invoice form.
// Saves are last-write-wins; a corrupt or absent value reads as "no draft"
// rather than failing the caller.
type DraftUseCase struct {
	store DraftStore
}

// NewDraftUseCase builds the use case. A nil store disables drafts entirely:
// saves become no-ops and loads always answer nil.
func NewDraftUseCase(store DraftStore) *DraftUseCase {
	return &DraftUseCase{store: store}
}

func draftKey(userID string) string { return draftKeyPrefix + userID }

// Save overwrites the user's draft slot with the full current form state.
func (uc *DraftUseCase) Save(ctx context.Context, userID string, draft *dto.InvoiceDraft) error {
	if uc.store == nil {
		return nil
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	return uc.store.Save(ctx, draftKey(userID), data)
}

// Load returns the stored draft, normalized: legacy string-only stops become
// structured entries and stops without an ID get a fresh one. Absent or
// corrupted content yields (nil, nil).
func (uc *DraftUseCase) Load(ctx context.Context, userID string) (*dto.InvoiceDraft, error) {
	if uc.store == nil {
		return nil, nil
	}
	data, err := uc.store.Load(ctx, draftKey(userID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var draft dto.InvoiceDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		// Corrupted slot: treat as no draft. The next save overwrites it.
		return nil, nil
	}
	for i := range draft.Stops {
		if draft.Stops[i].ID == "" {
			draft.Stops[i].ID = uuid.New().String()
		}
	}
	return &draft, nil
}

// Clear empties the slot. Called after a successful create.
func (uc *DraftUseCase) Clear(ctx context.Context, userID string) error {
	if uc.store == nil {
		return nil
	}
	return uc.store.Clear(ctx, draftKey(userID))
}
