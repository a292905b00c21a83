package prefs

import (
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("prefs")

// Bolt persists preferences in a single-bucket bbolt file. Values are stored
// as human-readable strings so `oto prefs list` output stays inspectable.
type Bolt struct {
	db *bolt.DB
}

var _ Store = &Bolt{}

// OpenBolt opens (or creates) the preferences database at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "prefs: open %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "prefs: create bucket")
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) GetBool(key string) (bool, error) {
	raw, err := b.GetString(key)
	if err != nil {
		return false, err
	}
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Wrapf(err, "prefs: key %s is not a bool", key)
	}
	return v, nil
}

func (b *Bolt) SetBool(key string, v bool) error {
	return b.SetString(key, strconv.FormatBool(v))
}

func (b *Bolt) GetString(key string) (string, error) {
	if key == "" {
		return "", errors.New("prefs: empty key")
	}
	var out string
	err := b.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(bucketName).Get([]byte(key)); raw != nil {
			out = string(raw)
		}
		return nil
	})
	return out, err
}

func (b *Bolt) SetString(key, v string) error {
	if key == "" {
		return errors.New("prefs: empty key")
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(v))
	})
}

func (b *Bolt) Delete(key string) error {
	if key == "" {
		return errors.New("prefs: empty key")
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
}

func (b *Bolt) Keys() ([]string, error) {
	var keys []string
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *Bolt) Close() error { return b.db.Close() }
