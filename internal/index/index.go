package index

import (
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/fpgacores/testvec/internal/fixture"
)

var bucketFixtures = []byte("Fixtures")

var ErrNotFound = errors.New("index: fixture not found")

// Index records the manifest of every generated fixture, keyed by name. It
// lets a batch run skip pairs that already exist on disk.
type Index struct {
	db *bbolt.DB
}

// Open opens or creates the index database at path.
func Open(path string) (*Index, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFixtures)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return &Index{db: db}, nil
}

func (x *Index) Close() error {
	return x.db.Close()
}

func (x *Index) Has(name string) bool {
	var exists bool
	_ = x.db.View(func(tx *bbolt.Tx) error {
		exists = tx.Bucket(bucketFixtures).Get([]byte(name)) != nil
		return nil
	})
	return exists
}

// Put stores m under m.Name, replacing any previous entry.
func (x *Index) Put(m *fixture.Manifest) error {
	return x.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketFixtures).Put([]byte(m.Name), m.MarshalBinary())
	})
}

func (x *Index) Get(name string) (*fixture.Manifest, error) {
	var m *fixture.Manifest
	err := x.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketFixtures).Get([]byte(name))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		m = new(fixture.Manifest)
		return m.UnmarshalBinary(data)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List returns every manifest in name order.
func (x *Index) List() ([]*fixture.Manifest, error) {
	var out []*fixture.Manifest
	err := x.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketFixtures).ForEach(func(k, v []byte) error {
			m := new(fixture.Manifest)
			if err := m.UnmarshalBinary(v); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			out = append(out, m)
			return nil
		})
	})
	return out, err
}

func (x *Index) Delete(name string) error {
	return x.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketFixtures).Delete([]byte(name))
	})
}
