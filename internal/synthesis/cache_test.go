package synthesis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/lexiqai/voice-studio/internal/audio"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	cache, err := NewRedisCache("redis://" + mr.Addr() + "/0")
	if err != nil {
		t.Fatalf("NewRedisCache failed: %v", err)
	}
	t.Cleanup(func() { cache.Close() })

	return cache, mr
}

func TestRedisCache_Miss(t *testing.T) {
	cache, _ := newTestRedisCache(t)

	result, ok, err := cache.Get(context.Background(), CacheKey("en-US-JennyNeural", "hello"))
	if err != nil {
		t.Fatalf("Expected a miss without error, got %v", err)
	}
	if ok || result != nil {
		t.Errorf("Expected miss, got ok=%v result=%v", ok, result)
	}
}

func TestRedisCache_SetGet(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()
	key := CacheKey("en-US-JennyNeural", "hello world")

	stored := &Result{
		Audio:           audio.SilentMP3(2),
		Format:          FormatMP3,
		DurationSeconds: 2 * audio.SilentFrameSeconds,
		SpeechMarks:     EstimateSpeechMarks("hello world", 2*audio.SilentFrameSeconds),
	}
	if err := cache.Set(ctx, key, stored, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Errorf("Expected TTL of 1m, got %v", ttl)
	}

	got, ok, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if len(got.Audio) != len(stored.Audio) {
		t.Errorf("Expected %d audio bytes, got %d", len(stored.Audio), len(got.Audio))
	}
	if got.Format != FormatMP3 {
		t.Errorf("Expected format mp3, got %s", got.Format)
	}
	if len(got.SpeechMarks) != 2 || got.SpeechMarks[1].Value != "world" {
		t.Errorf("Expected speech marks to survive the round trip, got %+v", got.SpeechMarks)
	}
}

func TestRedisCache_Expiry(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()
	key := CacheKey("v", "short lived")

	if err := cache.Set(ctx, key, &Result{Format: FormatMP3}, time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	mr.FastForward(2 * time.Second)

	if _, ok, err := cache.Get(ctx, key); err != nil || ok {
		t.Errorf("Expected expired entry to miss, got ok=%v err=%v", ok, err)
	}
}

func TestRedisCache_CorruptValue(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	key := CacheKey("v", "garbage")

	if err := mr.Set(key, "not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, _, err := cache.Get(context.Background(), key); err == nil {
		t.Error("Expected decode error for corrupt entry")
	}
}

func TestRedisCache_PingAndUnavailable(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()

	if err := cache.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	mr.Close()

	if err := cache.Ping(ctx); err == nil {
		t.Error("Expected ping to fail once redis is gone")
	}
	if _, _, err := cache.Get(ctx, CacheKey("v", "t")); err == nil {
		t.Error("Expected lookup error once redis is gone")
	}
}

func TestService_RedisCache(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	provider := &fakeProvider{audio: audio.SilentMP3(10)}
	svc := NewService(provider, WithCache(cache, time.Minute))

	first, err := svc.Synthesize(context.Background(), "cached in redis", "en-US-JennyNeural")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	second, err := svc.Synthesize(context.Background(), "cached in redis", "en-US-JennyNeural")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if provider.calls != 1 {
		t.Errorf("Expected 1 provider call, got %d", provider.calls)
	}
	if second.DurationSeconds != first.DurationSeconds {
		t.Errorf("Expected cached duration %f, got %f", first.DurationSeconds, second.DurationSeconds)
	}
}
