package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Note - одна заметка сотрудника по лиду
type Note struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NoteList хранится в jsonb. Исторически колонка могла содержать
// одиночную строку вместо массива; Scan нормализует её в список из
// одного элемента, так что выше границы хранилища legacy-форма не видна.
type NoteList []Note

func (NoteList) GormDataType() string {
	return "jsonb"
}

func (n *NoteList) Scan(value interface{}) error {
	if value == nil {
		*n = NoteList{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("notes: unsupported scan type %T", value)
	}

	if len(raw) == 0 {
		*n = NoteList{}
		return nil
	}

	var notes []Note
	if err := json.Unmarshal(raw, &notes); err == nil {
		*n = notes
		return nil
	}

	// Legacy-форма: plain string
	var legacy string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		if legacy == "" {
			*n = NoteList{}
			return nil
		}
		*n = NoteList{{Text: legacy, CreatedAt: time.Now().UTC()}}
		return nil
	}

	// null в jsonb
	if string(raw) == "null" {
		*n = NoteList{}
		return nil
	}

	return errors.New("notes: value is neither a note array nor a legacy string")
}

func (n NoteList) Value() (driver.Value, error) {
	if n == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(n)
}
