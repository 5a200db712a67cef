package repository

import (
	"encoding/json"
	"fmt"

	"github.com/arloliu/seating/types"
)

func decodeTable(raw []byte) (*types.Table, error) {
	var t types.Table
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode table: %w", err)
	}

	return &t, nil
}

func decodeParticipant(raw []byte) (*types.Participant, error) {
	var p types.Participant
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode participant: %w", err)
	}

	return &p, nil
}

func put(w types.Writer, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return w.Set(key, data)
}
