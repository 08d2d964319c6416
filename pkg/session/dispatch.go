package session

import (
	"context"
	"fmt"

	"github.com/coursedesk/coursedesk/pkg/collections"
	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/notify"
)

// Action names an item-level command the dispatcher can route.
type Action string

const (
	ActionAddItem    Action = "add_item"
	ActionSaveItem   Action = "save_item"
	ActionRemoveItem Action = "remove_item"
)

// Command is one dispatched user action. Rendered items carry stable
// identifiers; the dispatcher routes (action, item) pairs to the matching
// manager method instead of any wiring embedded in markup.
type Command struct {
	Action     Action
	ItemID     string
	Collection models.CollectionName // For add_item
	Prefill    map[string]any        // For add_item
	Confirmed  bool                  // For remove_item
}

// Dispatch routes a command to the collection manager. Validation
// rejections are published as notifications and returned.
func (s *Session) Dispatch(ctx context.Context, cmd Command) (*models.CollectionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Action {
	case ActionAddItem:
		return s.cols.AddItem(cmd.Collection, cmd.Prefill)
	case ActionSaveItem:
		if err := s.cols.SaveItem(cmd.ItemID); err != nil {
			if collections.IsValidationError(err) {
				s.bus.Publish(ctx, notify.Notification{
					Level:   notify.LevelError,
					Source:  "collections",
					Message: err.Error(),
				})
			}

			return nil, err
		}

		item, err := s.cols.Item(cmd.ItemID)
		if err != nil {
			return nil, err
		}

		return item, nil
	case ActionRemoveItem:
		return nil, s.cols.RemoveItem(cmd.ItemID, cmd.Confirmed)
	}

	return nil, fmt.Errorf("unknown action %q", cmd.Action)
}
