// Package storage persists prediction history using BoltDB. Each
// successful prediction is appended with the submitted specification, the
// predicted price, and the model version that produced it.
//
// History is a convenience feature: the service runs fine without a data
// path configured, and write failures never fail the prediction itself.
package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"laptop-pricer/internal/features"
)

const predictionsBucket = "predictions"

// PredictionRecord is one stored prediction.
type PredictionRecord struct {
	Timestamp    time.Time           `json:"timestamp"`
	Spec         features.LaptopSpec `json:"spec"`
	Price        float64             `json:"price"`
	ModelVersion string              `json:"model_version"`
}

// Store provides persistent prediction history backed by BoltDB.
type Store struct {
	db *bbolt.DB
}

// New opens (or creates) the history database under dataPath.
func New(dataPath string) (*Store, error) {
	dbPath := filepath.Join(dataPath, "pricer-history.db")

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(predictionsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create predictions bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StorePrediction appends one prediction record. Keys are zero-padded
// nanosecond timestamps so a cursor walk returns records in time order.
func (s *Store) StorePrediction(record PredictionRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(predictionsBucket))

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal prediction record: %w", err)
		}

		key := fmt.Sprintf("%020d", record.Timestamp.UnixNano())
		return b.Put([]byte(key), data)
	})
}

// Recent returns up to limit most recent predictions, newest first.
func (s *Store) Recent(limit int) ([]PredictionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []PredictionRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(predictionsBucket)).Cursor()
		for k, v := c.Last(); k != nil && len(records) < limit; k, v = c.Prev() {
			var record PredictionRecord
			if err := json.Unmarshal(v, &record); err != nil {
				continue // Skip malformed records
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the total number of stored predictions.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket([]byte(predictionsBucket)).Stats().KeyN
		return nil
	})
	return n, err
}
