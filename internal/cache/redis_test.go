package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/JonMunkholm/sheetsync/internal/sheet"
)

// Requires a running Redis; set REDIS_ADDR to enable.
func TestRedis_SetGetInvalidate(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	c := NewRedis(client, "test-"+time.Now().Format("150405.000"), time.Minute)
	snap := sheet.MapRows("Records", [][]string{{"Name", "Grade"}, {"Ann", "A"}, {"Ben"}})

	if _, ok, err := c.Get(ctx, "Records"); err != nil || ok {
		t.Fatalf("Get() before Set = ok %v, err %v; want miss", ok, err)
	}
	if err := c.Set(ctx, snap); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(ctx, "Records")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if got.Len() != 2 || got.Records[1].Value("Name") != "Ben" {
		t.Errorf("cached snapshot = %+v", got.Records)
	}
	if _, present := got.Records[1].Get("Grade"); present {
		t.Error("short row should keep Grade absent")
	}

	if err := c.Invalidate(ctx, "Records", "Items"); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "Records"); ok {
		t.Error("Get() after Invalidate should miss")
	}
}
