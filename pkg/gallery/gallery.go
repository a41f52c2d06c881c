// Package gallery keeps a record of generated images in a bbolt database
// so they can be listed and rendered again without redrawing any random
// choices.
package gallery

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ErrNotFound is returned when no record has the requested name.
var ErrNotFound = errors.New("artwork not found")

var bucketName = []byte("artworks")

// Record describes one generated image.
type Record struct {
	Name     string    `json:"name"`
	Seed     int64     `json:"seed"`
	Pool     string    `json:"pool"`
	MinDepth int       `json:"min_depth"`
	MaxDepth int       `json:"max_depth"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Red      string    `json:"red"`
	Green    string    `json:"green"`
	Blue     string    `json:"blue"`
	Created  time.Time `json:"created"`
}

// Gallery is a bbolt-backed store of records.
type Gallery struct {
	db *bolt.DB
}

// Open opens or creates the gallery database at path.
func Open(path string) (*Gallery, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open gallery %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init gallery %s: %w", path, err)
	}
	return &Gallery{db: db}, nil
}

// Close releases the database.
func (g *Gallery) Close() error {
	return g.db.Close()
}

// Put stores r under r.Name, replacing any previous record.
func (g *Gallery) Put(r Record) error {
	if r.Name == "" {
		return errors.New("record has no name")
	}
	if r.Created.IsZero() {
		r.Created = time.Now().UTC()
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return g.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(r.Name), data)
	})
}

// Get returns the record stored under name.
func (g *Gallery) Get(name string) (Record, error) {
	var r Record
	err := g.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketName).Get([]byte(name))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return json.Unmarshal(data, &r)
	})
	return r, err
}

// List returns every record, ordered by name.
func (g *Gallery) List() ([]Record, error) {
	var out []Record
	err := g.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, v []byte) error {
			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("record %s: %w", k, err)
			}
			out = append(out, r)
			return nil
		})
	})
	return out, err
}

// Delete removes the record stored under name.
func (g *Gallery) Delete(name string) error {
	return g.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return b.Delete([]byte(name))
	})
}
