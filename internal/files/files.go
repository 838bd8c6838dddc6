package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.etcd.io/bbolt"
)

// Upload kinds accepted by the upload endpoint.
const (
	KindAvatar  = "avatar"
	KindEvent   = "event"
	KindProgram = "program"
	KindDocs    = "docs"
)

var ErrNotFound = errors.New("file not found")

// Store keeps uploaded blobs in a single BoltDB file, one bucket per upload
// kind. Keys are generated, opaque, and returned to the caller as the file id.
type Store interface {
	Put(kind string, data []byte) (string, error)
	Get(kind, id string) ([]byte, error)
	Close() error
}

type BoltStore struct {
	db  *bbolt.DB
	seq atomic.Int64
	log *zerolog.Logger
}

func NewBoltStore(dbPath string, log *zerolog.Logger) (*BoltStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB at %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, kind := range []string{KindAvatar, KindEvent, KindProgram, KindDocs} {
			if _, err := tx.CreateBucketIfNotExists([]byte(kind)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("upload store initialized")
	return &BoltStore{db: db, log: log}, nil
}

func ValidKind(kind string) bool {
	switch kind {
	case KindAvatar, KindEvent, KindProgram, KindDocs:
		return true
	}
	return false
}

func (s *BoltStore) Put(kind string, data []byte) (string, error) {
	if !ValidKind(kind) {
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}
	id := strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + strconv.FormatInt(s.seq.Add(1), 10)

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(kind))
		if bucket == nil {
			return fmt.Errorf("bucket %s does not exist", kind)
		}
		return bucket.Put([]byte(id), data)
	})
	if err != nil {
		return "", fmt.Errorf("failed to store %s upload: %w", kind, err)
	}
	return id, nil
}

func (s *BoltStore) Get(kind, id string) ([]byte, error) {
	if !ValidKind(kind) {
		return nil, fmt.Errorf("unknown upload kind %q", kind)
	}
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(kind))
		if bucket == nil {
			return nil
		}
		raw := bucket.Get([]byte(id))
		if raw == nil {
			return nil
		}
		data = append([]byte(nil), raw...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", kind, id, err)
	}
	if data == nil {
		return nil, ErrNotFound
	}
	return data, nil
}

func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
