package collections

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/google/uuid"
)

// CommittedRecord is the canonical, submission-eligible copy of a Saved
// item's fields, taken at save time. Later in-place edits to the live item
// do not touch it until the item is saved again.
type CommittedRecord struct {
	ItemID string         `json:"item_id"`
	Fields map[string]any `json:"fields"`
}

// Manager owns the dynamic collections of one editing session.
type Manager struct {
	items     map[string]*models.CollectionItem
	order     map[models.CollectionName][]string
	committed map[models.CollectionName][]CommittedRecord
	markers   []models.DeletionMarker
	logger    *slog.Logger
}

// NewManager creates an empty collection manager.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		items:     make(map[string]*models.CollectionItem),
		order:     make(map[models.CollectionName][]string),
		committed: make(map[models.CollectionName][]CommittedRecord),
		logger:    logger.With("module", "collections"),
	}
}

// AddItem creates a new item in Entered state with a fresh identifier and
// appends it to the collection. An optional prefill seeds the fields, which
// serves both manual entry and template-driven creation.
func (m *Manager) AddItem(collection models.CollectionName, prefill map[string]any) (*models.CollectionItem, error) {
	if !slices.Contains(models.AllCollections(), collection) {
		return nil, ErrUnknownCollection
	}

	fields := deepCopyFields(prefill)
	if fields == nil {
		fields = make(map[string]any)
	}

	if collection == models.CollectionCertificationBodies {
		if strings.TrimSpace(asString(fields["role"])) == "" {
			fields["role"] = models.DefaultCertificationRole
		}
	}

	item := &models.CollectionItem{
		ID:         uuid.New().String(),
		Collection: collection,
		Fields:     fields,
		State:      models.ItemStateEntered,
		CreatedAt:  time.Now().UTC(),
	}

	m.items[item.ID] = item
	m.order[collection] = append(m.order[collection], item.ID)

	return item, nil
}

// Item returns the live item with the given ID.
func (m *Manager) Item(itemID string) (*models.CollectionItem, error) {
	item, ok := m.items[itemID]
	if !ok {
		return nil, ErrItemNotFound
	}

	return item, nil
}

// Items returns the live items of a collection in insertion order.
func (m *Manager) Items(collection models.CollectionName) []*models.CollectionItem {
	ids := m.order[collection]
	items := make([]*models.CollectionItem, 0, len(ids))

	for _, id := range ids {
		items = append(items, m.items[id])
	}

	return items
}

// SetField edits a field of the live item. The committed copy, if any, is
// deliberately left alone: pushing an edit into the submission payload
// requires an explicit re-save.
func (m *Manager) SetField(itemID, field string, value any) error {
	item, ok := m.items[itemID]
	if !ok {
		return ErrItemNotFound
	}

	item.Fields[field] = value

	return nil
}

// ApplyBodySelection populates a certification-body item from a lookup
// entry: the identifier and the read-only display name. The role is left
// as chosen.
func (m *Manager) ApplyBodySelection(itemID string, body models.CertificationBody) error {
	item, ok := m.items[itemID]
	if !ok {
		return ErrItemNotFound
	}

	if item.Collection != models.CollectionCertificationBodies {
		return ErrUnknownCollection
	}

	item.Fields["body_id"] = body.ID
	item.Fields["body_name"] = body.DisplayName

	return nil
}

// SaveItem runs the collection-specific save rule and, on success, moves
// the item to Saved and stores a canonical copy of its fields in the
// committed set. On failure the item stays Entered and nothing is
// partially applied. Re-saving a Saved item replaces its committed copy.
func (m *Manager) SaveItem(itemID string) error {
	item, ok := m.items[itemID]
	if !ok {
		return ErrItemNotFound
	}

	if err := saveRule(item); err != nil {
		m.logger.Debug("item save rejected",
			"collection", item.Collection, "item_id", itemID, "error", err)

		return err
	}

	now := time.Now().UTC()
	item.State = models.ItemStateSaved
	item.SavedAt = &now

	record := CommittedRecord{ItemID: itemID, Fields: deepCopyFields(item.Fields)}

	records := m.committed[item.Collection]
	replaced := false

	for i := range records {
		if records[i].ItemID == itemID {
			records[i] = record
			replaced = true

			break
		}
	}

	if !replaced {
		records = append(records, record)
	}

	m.committed[item.Collection] = records

	return nil
}

// RemoveItem deletes an item and its committed copy. The confirmed flag is
// the caller's attestation that the user explicitly confirmed the removal.
// When the item references a persisted identity, a deletion marker is
// recorded so the backend can reconcile the disassociation.
func (m *Manager) RemoveItem(itemID string, confirmed bool) error {
	item, ok := m.items[itemID]
	if !ok {
		return ErrItemNotFound
	}

	if !confirmed {
		return ErrConfirmationRequired
	}

	if persisted := strings.TrimSpace(item.StringField("persisted_id")); persisted != "" {
		m.markers = append(m.markers, models.DeletionMarker{
			Collection:   item.Collection,
			ReferencedID: persisted,
			CapturedRole: item.StringField("role"),
		})
	}

	delete(m.items, itemID)

	ids := m.order[item.Collection]
	m.order[item.Collection] = slices.DeleteFunc(ids, func(id string) bool { return id == itemID })

	records := m.committed[item.Collection]
	m.committed[item.Collection] = slices.DeleteFunc(records, func(r CommittedRecord) bool {
		return r.ItemID == itemID
	})

	return nil
}

// Committed returns deep copies of the committed records of a collection.
func (m *Manager) Committed(collection models.CollectionName) []map[string]any {
	records := m.committed[collection]
	out := make([]map[string]any, 0, len(records))

	for _, r := range records {
		out = append(out, deepCopyFields(r.Fields))
	}

	return out
}

// AllSaved reports whether every live item of the collection is Saved.
func (m *Manager) AllSaved(collection models.CollectionName) bool {
	for _, id := range m.order[collection] {
		if m.items[id].State != models.ItemStateSaved {
			return false
		}
	}

	return true
}

// DeletionMarkers returns the markers recorded so far.
func (m *Manager) DeletionMarkers() []models.DeletionMarker {
	return slices.Clone(m.markers)
}

// Clear drops all items, committed records, and deletion markers. Called
// after a successful submission.
func (m *Manager) Clear() {
	m.items = make(map[string]*models.CollectionItem)
	m.order = make(map[models.CollectionName][]string)
	m.committed = make(map[models.CollectionName][]CommittedRecord)
	m.markers = nil
}

func asString(v any) string {
	s, _ := v.(string)

	return s
}

// deepCopyFields copies a field payload, descending into nested maps and
// slices so committed records never alias live item state.
func deepCopyFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}

	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = deepCopyValue(v)
	}

	return out
}

func deepCopyValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return deepCopyFields(typed)
	case []any:
		out := make([]any, len(typed))
		for i, e := range typed {
			out[i] = deepCopyValue(e)
		}

		return out
	case []string:
		return slices.Clone(typed)
	default:
		return v
	}
}
