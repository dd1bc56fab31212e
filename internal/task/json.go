package task

import (
	"encoding/json"
	"time"
)

// Wire field names for the persisted/exported task JSON shape.
const (
	fieldID          = "id"
	fieldText        = "text"
	fieldCompleted   = "completed"
	fieldPriority    = "priority"
	fieldCreatedAt   = "createdAt"
	fieldCompletedAt = "completedAt"
	fieldEditedAt    = "editedAt"
)

// MarshalJSON emits the known fields under their wire names and inlines
// any preserved unknown fields alongside them.
func (t Task) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(t.Extra)+7)
	for k, v := range t.Extra {
		out[k] = v
	}

	set := func(key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out[key] = data
		return nil
	}

	if err := set(fieldID, t.ID); err != nil {
		return nil, err
	}
	if err := set(fieldText, t.Text); err != nil {
		return nil, err
	}
	if err := set(fieldCompleted, t.Completed); err != nil {
		return nil, err
	}
	if err := set(fieldPriority, t.Priority); err != nil {
		return nil, err
	}
	if err := set(fieldCreatedAt, t.CreatedAt); err != nil {
		return nil, err
	}
	if t.CompletedAt != nil {
		if err := set(fieldCompletedAt, t.CompletedAt); err != nil {
			return nil, err
		}
	}
	if t.EditedAt != nil {
		if err := set(fieldEditedAt, t.EditedAt); err != nil {
			return nil, err
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON decodes a task-like object. Known fields that fail to
// decode are left at their zero value rather than failing the whole
// object, so loosely shaped import entries still come through; the
// store normalizes zero values afterwards. Unknown fields are kept in
// Extra.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Task{}

	if v, ok := raw[fieldID]; ok {
		_ = json.Unmarshal(v, &t.ID)
		delete(raw, fieldID)
	}
	if v, ok := raw[fieldText]; ok {
		_ = json.Unmarshal(v, &t.Text)
		delete(raw, fieldText)
	}
	if v, ok := raw[fieldCompleted]; ok {
		_ = json.Unmarshal(v, &t.Completed)
		delete(raw, fieldCompleted)
	}
	if v, ok := raw[fieldPriority]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			if p, err := ParsePriority(s); err == nil {
				t.Priority = p
			}
		}
		delete(raw, fieldPriority)
	}
	if v, ok := raw[fieldCreatedAt]; ok {
		var ts time.Time
		if err := json.Unmarshal(v, &ts); err == nil {
			t.CreatedAt = ts
		}
		delete(raw, fieldCreatedAt)
	}
	if v, ok := raw[fieldCompletedAt]; ok {
		var ts time.Time
		if err := json.Unmarshal(v, &ts); err == nil && !ts.IsZero() {
			t.CompletedAt = &ts
		}
		delete(raw, fieldCompletedAt)
	}
	if v, ok := raw[fieldEditedAt]; ok {
		var ts time.Time
		if err := json.Unmarshal(v, &ts); err == nil && !ts.IsZero() {
			t.EditedAt = &ts
		}
		delete(raw, fieldEditedAt)
	}

	if len(raw) > 0 {
		t.Extra = raw
	}
	return nil
}
