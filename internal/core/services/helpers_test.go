package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/docket/internal/adapters/driven/storage/memory"
)

var testTime = time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testTime }

// sequentialIDs returns an ID generator yielding prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type testEnv struct {
	slot         *memory.StateSlot
	docStore     *memory.DocumentStore
	invoiceStore *memory.InvoiceStore
	notifier     *memory.Notifier
	persistence  *Persistence
	documents    *DocumentService
	invoices     *InvoiceService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		slot:         memory.NewStateSlot(),
		docStore:     memory.NewDocumentStore(),
		invoiceStore: memory.NewInvoiceStore(),
		notifier:     memory.NewNotifier(),
	}
	env.persistence = NewPersistence(env.slot, env.docStore, env.invoiceStore, env.notifier)
	env.documents = NewDocumentService(env.docStore, env.persistence, env.notifier,
		WithIDGenerator(sequentialIDs("doc")), WithClock(fixedClock))
	env.invoices = NewInvoiceService(env.invoiceStore, env.docStore, env.persistence, env.notifier,
		WithIDGenerator(sequentialIDs("inv")), WithClock(fixedClock))
	return env
}
