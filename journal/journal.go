// Package journal provides an append-only record of noteworthy marketplace
// events, written as JSON lines to a file under the repo home.
package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("journal")

// EventType identifies a class of journal entries.
type EventType struct {
	System string `json:"system"`
	Event  string `json:"event"`
}

type Journal interface {
	RecordEvent(evtType EventType, obj interface{})
	Close() error
}

type entry struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

type fsJournal struct {
	file *os.File
}

// OpenFSJournal opens (appending) the journal file under the given home
// directory.
func OpenFSJournal(homeDir string) (Journal, error) {
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(filepath.Join(homeDir, "marketplace.ndjson"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &fsJournal{file: file}, nil
}

func (j *fsJournal) RecordEvent(evtType EventType, obj interface{}) {
	data, err := json.Marshal(entry{
		Type:      evtType,
		Timestamp: time.Now(),
		Data:      obj,
	})
	if err != nil {
		log.Warnf("marshal journal entry %s/%s: %s", evtType.System, evtType.Event, err)
		return
	}
	if _, err := j.file.Write(append(data, '\n')); err != nil {
		log.Warnf("write journal entry %s/%s: %s", evtType.System, evtType.Event, err)
	}
}

func (j *fsJournal) Close() error {
	return j.file.Close()
}

type nilJournal struct{}

// NilJournal discards all entries; used in tests and when journaling is
// disabled.
func NilJournal() Journal {
	return nilJournal{}
}

func (nilJournal) RecordEvent(EventType, interface{}) {}

func (nilJournal) Close() error { return nil }
