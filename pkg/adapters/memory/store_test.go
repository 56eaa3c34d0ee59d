package memory_test

import (
	"testing"

	"github.com/aretw0/plantrace/pkg/adapters/memory"
	"github.com/aretw0/plantrace/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunTraceStoreContract(t, store)
}
