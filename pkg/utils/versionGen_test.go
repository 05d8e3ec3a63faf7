package utils

import (
	"fmt"
	"testing"
	"time"
)

func TestGenerateVersionID(t *testing.T) {
	datePrefix := time.Now().Format("06-01")

	t.Run("no existing versions", func(t *testing.T) {
		id := GenerateVersionID(nil)
		want := fmt.Sprintf("%s-1", datePrefix)
		if id != want {
			t.Errorf("unexpected version id: %s, want %s", id, want)
		}
	})

	t.Run("counter skips used ids", func(t *testing.T) {
		existing := []string{
			fmt.Sprintf("%s-1", datePrefix),
			fmt.Sprintf("%s-2", datePrefix),
		}
		id := GenerateVersionID(existing)
		want := fmt.Sprintf("%s-3", datePrefix)
		if id != want {
			t.Errorf("unexpected version id: %s, want %s", id, want)
		}
	})

	t.Run("older months do not block the counter", func(t *testing.T) {
		existing := []string{"21-03-1", "21-03-2"}
		id := GenerateVersionID(existing)
		want := fmt.Sprintf("%s-1", datePrefix)
		if id != want {
			t.Errorf("unexpected version id: %s, want %s", id, want)
		}
	})
}
