package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/cancerdx/internal/db"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	err := s.Ping(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpPing {
		t.Errorf("expected *db.Error with op PING, got %v", err)
	}
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

func TestCheckJSON_ModuleLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.TYPE", probeKey)).
		Return(mock.Result(mock.RedisNil()))

	s := NewStoreForTest(c)
	if err := s.CheckJSON(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckJSON_ModuleMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.TYPE", probeKey)).
		Return(mock.Result(mock.RedisError("ERR unknown command 'JSON.TYPE'")))

	s := NewStoreForTest(c)
	err := s.CheckJSON(context.Background())
	if !errors.Is(err, ErrJSONModuleMissing) {
		t.Fatalf("expected ErrJSONModuleMissing, got %v", err)
	}
}

func TestCheckJSON_ConnectionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.TYPE", probeKey)).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	err := s.CheckJSON(context.Background())
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpJSONType {
		t.Errorf("expected *db.Error with op JSON.TYPE, got %v", err)
	}
}

func TestNewStore_BadCAFile(t *testing.T) {
	_, err := NewStore(Config{Addrs: []string{"localhost:6379"}, TLSCAFile: "/nonexistent/ca.pem"})
	if err == nil {
		t.Fatal("expected error for missing CA file")
	}
}

// --- keys.go tests ---

func TestScan_SinglePage(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	// SCAN returns [cursor, [elements...]]
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN" && cmd[1] == "0" && cmd[3] == "cancerdx:record:*"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(0), // cursor=0 means done
			mock.RedisArray(mock.RedisString("key1"), mock.RedisString("key2")),
		)))

	s := NewStoreForTest(c)
	keys, err := s.Scan(context.Background(), "cancerdx:record:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
}

func TestScan_MultiPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	first := true
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN"
		})).
		DoAndReturn(func(_ context.Context, _ rueidis.Completed) rueidis.RedisResult {
			if first {
				first = false
				return mock.Result(mock.RedisArray(
					mock.RedisInt64(42), // cursor=42 means more
					mock.RedisArray(mock.RedisString("key1")),
				))
			}
			return mock.Result(mock.RedisArray(
				mock.RedisInt64(0),
				mock.RedisArray(mock.RedisString("key2")),
			))
		}).Times(2)

	s := NewStoreForTest(c)
	keys, err := s.Scan(context.Background(), "prefix:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 || keys[0] != "key1" || keys[1] != "key2" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestScan_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "SCAN" })).
		Return(mock.ErrorResult(errors.New("LOADING")))

	s := NewStoreForTest(c)
	if _, err := s.Scan(context.Background(), "prefix:*"); err == nil {
		t.Fatal("expected error")
	}
}

// --- json.go tests ---

func TestJSONSet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.SET", "mykey", "$", `{"a":1}`)).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.JSONSet(context.Background(), "mykey", "$", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJSONSet_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "JSON.SET"
		})).
		Return(mock.ErrorResult(errors.New("ERR unknown command 'JSON.SET'")))

	s := NewStoreForTest(c)
	err := s.JSONSet(context.Background(), "mykey", "$", []byte(`{"a":1}`))
	if err == nil {
		t.Fatal("expected error")
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpJSONSet {
		t.Errorf("expected *db.Error with op JSON.SET, got %v", err)
	}
}

func TestJSONGet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.GET", "mykey", "$")).
		Return(mock.Result(mock.RedisString(`[{"a":1}]`)))

	s := NewStoreForTest(c)
	data, err := s.JSONGet(context.Background(), "mykey", "$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `[{"a":1}]` {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestJSONGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "JSON.GET"
		})).
		Return(mock.Result(mock.RedisNil()))

	s := NewStoreForTest(c)
	_, err := s.JSONGet(context.Background(), "mykey", "$")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestJSONGet_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "JSON.GET"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.JSONGet(context.Background(), "mykey", "$")
	if err == nil || errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
}

func TestJSONMGet_MixedResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.MGET", "k1", "k2", "k3", "$")).
		Return(mock.Result(mock.RedisArray(
			mock.RedisString(`[{"n":1}]`),
			mock.RedisNil(),
			mock.RedisString(`[{"n":3}]`),
		)))

	s := NewStoreForTest(c)
	out, err := s.JSONMGet(context.Background(), []string{"k1", "k2", "k3"}, "$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out))
	}
	if string(out[0]) != `[{"n":1}]` || out[1] != nil || string(out[2]) != `[{"n":3}]` {
		t.Errorf("unexpected entries: %q", out)
	}
}

func TestJSONMGet_NoKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	s := NewStoreForTest(c)
	out, err := s.JSONMGet(context.Background(), nil, "$")
	if err != nil || out != nil {
		t.Fatalf("expected nil, nil; got %v, %v", out, err)
	}
}
