package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/kailas-cloud/cancerdx/internal/db"
	"github.com/kailas-cloud/cancerdx/internal/domain"
	domrec "github.com/kailas-cloud/cancerdx/internal/domain/record"
)

// jsonStore is the consumer interface for RedisJSON (ISP).
type jsonStore interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONMGet(ctx context.Context, keys []string, path string) ([][]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// JSONRepo implements usecase/diagnosis.Repository on RedisJSON documents.
// Ids are ULIDs, so lexical key order is creation order.
type JSONRepo struct {
	store  jsonStore
	prefix string
	newID  func() string
}

// NewJSON creates a repository storing records under prefix+"record:".
func NewJSON(s jsonStore, keyPrefix string) *JSONRepo {
	return &JSONRepo{
		store:  s,
		prefix: keyPrefix + "record:",
		newID:  func() string { return ulid.Make().String() },
	}
}

// Insert stores the record under a fresh ULID.
func (r *JSONRepo) Insert(ctx context.Context, rec *domrec.Record) (string, error) {
	id := r.newID()
	data, err := json.Marshal(toJSONDoc(id, rec))
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	key := r.key(id)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return "", fmt.Errorf("json.set %s: %w", key, err)
	}
	return id, nil
}

// List returns summaries of all records in creation order.
func (r *JSONRepo) List(ctx context.Context) ([]domrec.Summary, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	if len(keys) == 0 {
		return []domrec.Summary{}, nil
	}
	sort.Strings(keys)

	raws, err := r.store.JSONMGet(ctx, keys, "$")
	if err != nil {
		return nil, fmt.Errorf("json.mget records: %w", err)
	}

	out := make([]domrec.Summary, 0, len(raws))
	for i, raw := range raws {
		// Key expired or deleted between SCAN and MGET.
		if raw == nil {
			continue
		}
		doc, err := parseJSONResult(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		rec := doc.toDomain()
		out = append(out, rec.Summary())
	}
	return out, nil
}

// Get returns a record by ULID. ULIDs are case-insensitive; the key uses the canonical form.
func (r *JSONRepo) Get(ctx context.Context, id string) (domrec.Record, error) {
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("%w: %q", domain.ErrInvalidRecordID, id)
	}

	key := r.key(parsed.String())
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domrec.Record{}, domain.ErrRecordNotFound
		}
		return domrec.Record{}, fmt.Errorf("json.get %s: %w", key, err)
	}

	doc, err := parseJSONResult(raw)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return doc.toDomain(), nil
}

func (r *JSONRepo) key(id string) string {
	return r.prefix + id
}

// parseJSONResult decodes a JSON.GET/JSON.MGET "$" reply, which wraps the document in an array.
func parseJSONResult(raw []byte) (*jsonDoc, error) {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, "[") {
		var docs []jsonDoc
		if err := json.Unmarshal([]byte(s), &docs); err != nil {
			return nil, fmt.Errorf("unmarshal: %w", err)
		}
		if len(docs) == 0 {
			return nil, domain.ErrRecordNotFound
		}
		return &docs[0], nil
	}
	var doc jsonDoc
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &doc, nil
}
