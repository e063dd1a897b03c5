// Package clientstore is a typed client-local persisted store: the desktop
// analog of the storefront's browser localStorage. Each fixed key holds one
// serialized collection in a bbolt file, with same-process change
// notification over an event bus. Cross-process access is last-write-wins
// through the file; there is no cross-process notification.
package clientstore

import (
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Fixed storage keys.
const (
	KeyCart      = "cart"
	KeyMessages  = "messages"
	KeyAuthToken = "auth_token"
)

// ErrQuotaExceeded is returned when a value does not fit the durable tier.
var ErrQuotaExceeded = errors.New("clientstore: storage quota exceeded")

var bucketName = []byte("clientstore")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Options struct {
	// Path of the bbolt file.
	Path string
	// MaxValueBytes bounds the serialized size of a single key in the
	// durable tier. Zero means unbounded.
	MaxValueBytes int
	// Bus receives change notifications; a private bus is created when nil.
	Bus EventBus.Bus
}

// Store is the client-local persisted key-value store. Values are JSON
// encoded. Writes that outgrow the durable tier can be diverted to a
// non-durable in-memory tier via PutVolatile.
type Store struct {
	mu       sync.Mutex
	db       *bolt.DB
	volatile map[string][]byte
	bus      EventBus.Bus
	maxBytes int
}

func Open(opts Options) (*Store, error) {
	db, err := bolt.Open(opts.Path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open client store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init client store bucket")
	}
	bus := opts.Bus
	if bus == nil {
		bus = EventBus.New()
	}
	return &Store{
		db:       db,
		volatile: make(map[string][]byte),
		bus:      bus,
		maxBytes: opts.MaxValueBytes,
	}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get decodes the value stored under key into dest. A missing key leaves
// dest untouched. A corrupt payload is silently reset to absent rather than
// propagated.
func (s *Store) Get(key string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.volatile[key]
	if !ok {
		if s.db == nil {
			return nil
		}
		err := s.db.View(func(tx *bolt.Tx) error {
			if v := tx.Bucket(bucketName).Get([]byte(key)); v != nil {
				data = append([]byte(nil), v...)
			}
			return nil
		})
		if err != nil {
			return errors.Wrap(err, "read client store")
		}
	}
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		zap.L().Warn("client store payload corrupt, resetting",
			zap.String("key", key), zap.Error(err))
		s.deleteLocked(key)
		return nil
	}
	return nil
}

// Put persists the value under key in the durable tier and notifies
// subscribers. Returns ErrQuotaExceeded when the encoded value does not fit.
func (s *Store) Put(key string, value interface{}) error {
	s.mu.Lock()
	data, err := json.Marshal(value)
	if err != nil {
		s.mu.Unlock()
		return errors.Wrap(err, "encode client store value")
	}
	if s.maxBytes > 0 && len(data) > s.maxBytes {
		s.mu.Unlock()
		return ErrQuotaExceeded
	}
	if s.db == nil {
		s.mu.Unlock()
		return ErrQuotaExceeded
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), data)
	})
	if err != nil {
		s.mu.Unlock()
		return errors.Wrap(err, "write client store")
	}
	// A successful durable write supersedes any fallback copy.
	delete(s.volatile, key)
	s.mu.Unlock()

	s.notify(key)
	return nil
}

// PutVolatile stores the value in the non-durable in-memory tier and
// notifies subscribers. Used as the last persistence fallback.
func (s *Store) PutVolatile(key string, value interface{}) error {
	s.mu.Lock()
	data, err := json.Marshal(value)
	if err != nil {
		s.mu.Unlock()
		return errors.Wrap(err, "encode client store value")
	}
	s.volatile[key] = data
	s.mu.Unlock()

	s.notify(key)
	return nil
}

// Delete removes the value under key from both tiers and notifies
// subscribers. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	s.deleteLocked(key)
	s.mu.Unlock()

	s.notify(key)
	return nil
}

func (s *Store) deleteLocked(key string) {
	delete(s.volatile, key)
	if s.db == nil {
		return
	}
	_ = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
}

// Subscribe registers fn to run whenever the value under key changes in
// this process.
func (s *Store) Subscribe(key string, fn func()) error {
	return s.bus.Subscribe(changeTopic(key), fn)
}

// Unsubscribe removes a previously registered callback.
func (s *Store) Unsubscribe(key string, fn func()) error {
	return s.bus.Unsubscribe(changeTopic(key), fn)
}

func (s *Store) notify(key string) {
	s.bus.Publish(changeTopic(key))
}

func changeTopic(key string) string {
	return "clientstore:changed:" + key
}
