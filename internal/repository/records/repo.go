// Package records persists the reconciliation dataset in an embedded
// bbolt database and serves it from memory. The zero-padded record
// identifiers double as bucket keys, so bbolt's key order preserves
// ingest order and every Load yields the same scan sequence.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/culturegraph/reconcile/internal/domain"
	"github.com/culturegraph/reconcile/internal/domain/record"
)

// Bucket keys
var (
	bucketMuseums   = []byte("museums")
	bucketArtists   = []byte("artists")
	bucketArtifacts = []byte("artifacts")
)

// Counts holds per-category record totals.
type Counts struct {
	Museums   int `json:"museums"`
	Artists   int `json:"artists"`
	Artifacts int `json:"artifacts"`
	Total     int `json:"total_entities"`
}

// Repo is a bbolt-backed record store. Rebuild and Load mutate it;
// after Load the read methods are safe for concurrent use.
type Repo struct {
	db *bolt.DB

	byCategory map[record.Category][]record.Record
	byID       map[string]record.Record
}

// Open opens (or creates) a bbolt database at the given path.
func Open(path string) (*Repo, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open %s: %w", path, err)
	}
	return &Repo{db: db}, nil
}

// Close closes the underlying bbolt database.
func (r *Repo) Close() error {
	return r.db.Close()
}

// Rebuild replaces the stored dataset with the given records in one
// transaction. A crash mid-rebuild leaves the previous dataset intact.
func (r *Repo) Rebuild(museums []*record.Museum, artists []*record.Artist, artifacts []*record.Artifact) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketMuseums, bucketArtists, bucketArtifacts} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return fmt.Errorf("delete bucket %s: %w", name, err)
			}
		}

		mb, err := tx.CreateBucket(bucketMuseums)
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		for _, m := range museums {
			if err := putJSON(mb, m.Identifier, museumToDTO(m)); err != nil {
				return err
			}
		}

		ab, err := tx.CreateBucket(bucketArtists)
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		for _, a := range artists {
			if err := putJSON(ab, a.Identifier, artistToDTO(a)); err != nil {
				return err
			}
		}

		fb, err := tx.CreateBucket(bucketArtifacts)
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		for _, a := range artifacts {
			if err := putJSON(fb, a.Identifier, artifactToDTO(a)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load reads the full dataset into memory. Call once at startup and
// again after Rebuild.
func (r *Repo) Load() error {
	byCategory := map[record.Category][]record.Record{
		record.CategoryMuseum:   {},
		record.CategoryArtist:   {},
		record.CategoryArtifact: {},
	}
	byID := make(map[string]record.Record)

	err := r.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketMuseums); b != nil {
			if err := b.ForEach(func(_, v []byte) error {
				var d museumDTO
				if err := json.Unmarshal(v, &d); err != nil {
					return fmt.Errorf("unmarshal museum: %w", err)
				}
				m := d.toDomain()
				byCategory[record.CategoryMuseum] = append(byCategory[record.CategoryMuseum], m)
				byID[m.Identifier] = m
				return nil
			}); err != nil {
				return err
			}
		}
		if b := tx.Bucket(bucketArtists); b != nil {
			if err := b.ForEach(func(_, v []byte) error {
				var d artistDTO
				if err := json.Unmarshal(v, &d); err != nil {
					return fmt.Errorf("unmarshal artist: %w", err)
				}
				a := d.toDomain()
				byCategory[record.CategoryArtist] = append(byCategory[record.CategoryArtist], a)
				byID[a.Identifier] = a
				return nil
			}); err != nil {
				return err
			}
		}
		if b := tx.Bucket(bucketArtifacts); b != nil {
			if err := b.ForEach(func(_, v []byte) error {
				var d artifactDTO
				if err := json.Unmarshal(v, &d); err != nil {
					return fmt.Errorf("unmarshal artifact: %w", err)
				}
				a := d.toDomain()
				byCategory[record.CategoryArtifact] = append(byCategory[record.CategoryArtifact], a)
				byID[a.Identifier] = a
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	r.byCategory = byCategory
	r.byID = byID
	return nil
}

// AllRecords returns every record of a category in stored order.
func (r *Repo) AllRecords(ctx context.Context, cat record.Category) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("all records: %w", err)
	}
	if r.byCategory == nil {
		return nil, fmt.Errorf("all records: %w", domain.ErrStoreUnavailable)
	}
	recs, ok := r.byCategory[cat]
	if !ok {
		return nil, fmt.Errorf("all records %q: %w", cat, domain.ErrUnknownCategory)
	}
	return recs, nil
}

// RecordByID returns the record with the given identifier.
func (r *Repo) RecordByID(ctx context.Context, id string) (record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("record by id: %w", err)
	}
	if r.byID == nil {
		return nil, fmt.Errorf("record by id: %w", domain.ErrStoreUnavailable)
	}
	rec, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrRecordNotFound)
	}
	return rec, nil
}

// Stats returns per-category record counts.
func (r *Repo) Stats(ctx context.Context) (Counts, error) {
	if err := ctx.Err(); err != nil {
		return Counts{}, fmt.Errorf("stats: %w", err)
	}
	if r.byCategory == nil {
		return Counts{}, fmt.Errorf("stats: %w", domain.ErrStoreUnavailable)
	}
	c := Counts{
		Museums:   len(r.byCategory[record.CategoryMuseum]),
		Artists:   len(r.byCategory[record.CategoryArtist]),
		Artifacts: len(r.byCategory[record.CategoryArtifact]),
	}
	c.Total = c.Museums + c.Artists + c.Artifacts
	return c, nil
}

// Ping verifies the database handle is usable.
func (r *Repo) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	err := r.db.View(func(tx *bolt.Tx) error { return nil })
	if err != nil {
		return fmt.Errorf("ping: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Empty reports whether the database holds no records, which triggers
// the automatic ingest on startup.
func (r *Repo) Empty() (bool, error) {
	empty := true
	err := r.db.View(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketMuseums, bucketArtists, bucketArtifacts} {
			if b := tx.Bucket(name); b != nil {
				if k, _ := b.Cursor().First(); k != nil {
					empty = false
					return nil
				}
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("check empty: %w", err)
	}
	return empty, nil
}

func putJSON(b *bolt.Bucket, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := b.Put([]byte(key), data); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
