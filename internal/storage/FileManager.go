package storage

import (
	"context"
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/storage/interfaces"
	"os"
	"path/filepath"
	"sync"
)

var ErrInvalidDocument = errors.New("value is not a JSON document")

// FileManager keeps every key in one JSON object on disk.
// The file is re-read on each Get so edits made while the service runs are picked up.
type FileManager struct {
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	mu         sync.Mutex
}

func NewFileManager(path string, compressor interfaces.CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		path:       path,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	docs, err := f.load()
	if err != nil {
		return nil, false, err
	}
	value, ok := docs[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

func (f *FileManager) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return ErrInvalidDocument
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	docs, err := f.load()
	if err != nil {
		return err
	}
	docs[key] = json.RawMessage(value)
	return f.save(docs)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

func (f *FileManager) load() (map[string]json.RawMessage, error) {
	docs := make(map[string]json.RawMessage)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return docs, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return docs, nil
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("unable to decompress %s: %w", f.path, err)
	}
	if err := json.Unmarshal(decompressed, &docs); err != nil {
		f.logger.Warnf(providers.TypeStore, "Unreadable store file %s: %s", f.path, err)
		return nil, err
	}
	return docs, nil
}

func (f *FileManager) save(docs map[string]json.RawMessage) error {
	jsonData, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}
