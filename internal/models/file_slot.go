package models

import "encoding/json"

// SlotState tells what is left of a picked file.
type SlotState int

const (
	// SlotUnset: nothing was ever picked.
	SlotUnset SlotState = iota
	// SlotNameOnly: the name survived a restore but the bytes did not.
	SlotNameOnly
	// SlotLoaded: bytes are in memory and can be uploaded.
	SlotLoaded
)

// FileSlot is one file input. Only Name is persisted; Data and Preview live
// for the current process only.
type FileSlot struct {
	Name        string
	ContentType string
	Data        []byte
	// Preview is a display handle (a path or URL), never persisted.
	Preview string
}

// NewFileSlot returns a loaded slot.
func NewFileSlot(name, contentType string, data []byte) FileSlot {
	if data == nil {
		data = []byte{}
	}
	return FileSlot{Name: name, ContentType: contentType, Data: data, Preview: name}
}

func (f FileSlot) State() SlotState {
	switch {
	case f.Data != nil:
		return SlotLoaded
	case f.Name != "":
		return SlotNameOnly
	default:
		return SlotUnset
	}
}

func (f FileSlot) Loaded() bool { return f.State() == SlotLoaded }

type wireFileSlot struct {
	File    *struct{} `json:"file"`
	Preview *string   `json:"preview"`
	Name    *string   `json:"name"`
}

// MarshalJSON writes {"file":null,"preview":null,"name":...}: binary content
// and previews cannot be persisted.
func (f FileSlot) MarshalJSON() ([]byte, error) {
	w := wireFileSlot{}
	if f.Name != "" {
		name := f.Name
		w.Name = &name
	}
	return json.Marshal(w)
}

// UnmarshalJSON keeps only the name, so a restored slot is never Loaded.
func (f *FileSlot) UnmarshalJSON(data []byte) error {
	var w wireFileSlot
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*f = FileSlot{}
	if w.Name != nil {
		f.Name = *w.Name
	}
	return nil
}
