package mongo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kailas-cloud/cancerdx/internal/db"
)

func TestParseID_Valid(t *testing.T) {
	want := bson.NewObjectID()
	got, err := ParseID(want.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("got %s, want %s", got.Hex(), want.Hex())
	}
}

func TestParseID_Malformed(t *testing.T) {
	for _, id := range []string{"", "abc", "zzzzzzzzzzzzzzzzzzzzzzzz", "01ARZ3NDEKTSV4RRFFQ69G5FAV"} {
		_, err := ParseID(id)
		if !errors.Is(err, db.ErrInvalidID) {
			t.Errorf("ParseID(%q): expected ErrInvalidID, got %v", id, err)
		}
	}
}

func TestFindDocument_MalformedIDNeverReachesServer(t *testing.T) {
	// A zero Store has no client; a malformed id must be rejected before any driver call.
	s := &Store{}
	var out bson.M
	err := s.FindDocument(context.Background(), "diagnosis", "not-an-id", &out)
	if !errors.Is(err, db.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestProjectionDoc(t *testing.T) {
	d := projectionDoc([]string{"personal.name", "prediction"})
	if len(d) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(d))
	}
	if d[0].Key != "personal.name" || d[0].Value != 1 {
		t.Errorf("unexpected first element: %+v", d[0])
	}
	if d[1].Key != "prediction" {
		t.Errorf("unexpected second element: %+v", d[1])
	}
}

func TestNewStore_Validation(t *testing.T) {
	if _, err := NewStore(Config{Database: "cancerDB"}); err == nil {
		t.Error("expected error for empty uri")
	}
	if _, err := NewStore(Config{URI: "mongodb://localhost:27017"}); err == nil {
		t.Error("expected error for empty database")
	}
}

func TestNewStore_BadCAFile(t *testing.T) {
	_, err := NewStore(Config{
		URI:       "mongodb://localhost:27017",
		Database:  "cancerDB",
		TLSCAFile: filepath.Join(t.TempDir(), "missing.pem"),
	})
	if err == nil {
		t.Fatal("expected error for missing CA file")
	}
}
