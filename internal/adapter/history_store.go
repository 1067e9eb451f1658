package adapter

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	m "github.com/mouse-blink/simwright/internal/model"
)

// HistoryStore persists and retrieves audit records so a session's trail
// survives the process. Records are append-only; nothing ever rewrites or
// removes an existing line.
type HistoryStore interface {
	Append(path string, audits []m.Audit) error
	Load(path string) ([]m.Audit, error)
}

type historyStore struct{}

// NewHistoryStore constructs a JSON-lines HistoryStore.
func NewHistoryStore() HistoryStore {
	return &historyStore{}
}

func (hs *historyStore) Append(path string, audits []m.Audit) error {
	if len(audits) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for _, audit := range audits {
		if err := enc.Encode(audit); err != nil {
			return fmt.Errorf("failed to encode audit: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	return nil
}

func (hs *historyStore) Load(path string) ([]m.Audit, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	var audits []m.Audit

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var audit m.Audit
		if err := json.Unmarshal(line, &audit); err != nil {
			return nil, fmt.Errorf("corrupt history line: %w", err)
		}

		audits = append(audits, audit)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	return audits, nil
}
