package events

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
)

const journalFileMode fs.FileMode = 0o644

// JournalRecord is one line of the event journal.
type JournalRecord struct {
	Kind       domain.EventKind `json:"kind"`
	AccountID  string           `json:"accountID"`
	OccurredOn time.Time        `json:"occurredOn"`
	Payload    json.RawMessage  `json:"payload"`
}

// JournalObserver appends every event as a JSON line and syncs the file after each write.
type JournalObserver struct {
	NopObserver
	mu   sync.Mutex
	file *os.File
}

var _ Observer = (*JournalObserver)(nil)

// NewJournalObserver opens path for appending, creating it if needed.
func NewJournalObserver(path string) (*JournalObserver, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, journalFileMode)
	if err != nil {
		return nil, fmt.Errorf("failed to open event journal %s: %w", path, err)
	}
	return &JournalObserver{file: file}, nil
}

func (j *JournalObserver) Name() string { return "journal" }

func (j *JournalObserver) OnTransactionProcessed(_ context.Context, e domain.TransactionProcessed) error {
	return j.append(e)
}

func (j *JournalObserver) OnAccountBlocked(_ context.Context, e domain.AccountBlocked) error {
	return j.append(e)
}

func (j *JournalObserver) OnAccountActivated(_ context.Context, e domain.AccountActivated) error {
	return j.append(e)
}

func (j *JournalObserver) OnAccountDeactivated(_ context.Context, e domain.AccountDeactivated) error {
	return j.append(e)
}

func (j *JournalObserver) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

func (j *JournalObserver) append(e domain.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", e.Kind(), err)
	}
	record := JournalRecord{
		Kind:       e.Kind(),
		AccountID:  e.AggregateID(),
		OccurredOn: e.OccurredOn(),
		Payload:    payload,
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if err := json.NewEncoder(j.file).Encode(record); err != nil {
		return fmt.Errorf("failed to write journal record: %w", err)
	}
	return j.file.Sync()
}

// ReadJournal calls fn for every record in the journal at path, in write order.
func ReadJournal(path string, fn func(JournalRecord) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open event journal %s: %w", path, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(bufio.NewReader(file))
	for {
		var record JournalRecord
		if err := decoder.Decode(&record); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("corrupt journal record: %w", err)
		}
		if err := fn(record); err != nil {
			return err
		}
	}
}
