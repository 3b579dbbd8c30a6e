package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cabinet-advisory/core/store"
)

// Export persists the current ranked snapshot as JSON for later review.
func (e *Engine) Export(ctx context.Context, s store.Store) error {
	data, err := json.MarshalIndent(e.All(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode insights: %w", err)
	}

	key := fmt.Sprintf("%s/%s.json", store.NamespaceInsights, time.Now().Format("2006-01-02T15-04-05"))
	if err := s.Save(ctx, store.Entry{Key: key, Value: data}); err != nil {
		return fmt.Errorf("failed to persist insights: %w", err)
	}
	return nil
}
