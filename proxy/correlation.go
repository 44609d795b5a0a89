package proxy

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/viant/mcp-protocol/syncmap"
)

// defaultInFlightLimit bounds the correlation table of one session.
const defaultInFlightLimit = 1024

type correlationEntry struct {
	clientId interface{}
	// clientIntId is -1 when the client id is not numeric.
	clientIntId int
	method      string
	upstream    string
	cancel      context.CancelFunc
}

// correlationTable maps locally assigned outbound ids to originating client
// ids. Entries exist only while a forwarded request is in flight.
type correlationTable struct {
	counter atomic.Uint64
	size    atomic.Int64
	limit   int
	entries *syncmap.Map[uint64, *correlationEntry]
}

func newCorrelationTable(limit int) *correlationTable {
	if limit <= 0 {
		limit = defaultInFlightLimit
	}
	return &correlationTable{
		limit:   limit,
		entries: syncmap.NewMap[uint64, *correlationEntry](),
	}
}

// register allocates a fresh local id for an outbound request.
func (t *correlationTable) register(clientId interface{}, clientIntId int, method, upstream string, cancel context.CancelFunc) (uint64, error) {
	if int(t.size.Add(1)) > t.limit {
		t.size.Add(-1)
		return 0, fmt.Errorf("too many in-flight requests: limit %v reached", t.limit)
	}
	localId := t.counter.Add(1)
	t.entries.Put(localId, &correlationEntry{
		clientId:    clientId,
		clientIntId: clientIntId,
		method:      method,
		upstream:    upstream,
		cancel:      cancel,
	})
	return localId, nil
}

// evict removes a completed request, returning its entry if present.
func (t *correlationTable) evict(localId uint64) *correlationEntry {
	entry, ok := t.entries.Get(localId)
	if !ok {
		return nil
	}
	t.entries.Delete(localId)
	t.size.Add(-1)
	return entry
}

// localFor finds the in-flight local id for a client request id.
func (t *correlationTable) localFor(clientIntId int) (uint64, *correlationEntry, bool) {
	var foundId uint64
	var found *correlationEntry
	t.entries.Range(func(localId uint64, entry *correlationEntry) bool {
		if entry.clientIntId == clientIntId {
			foundId, found = localId, entry
			return false
		}
		return true
	})
	return foundId, found, found != nil
}

// cancelUpstream aborts every in-flight request bound to a failed upstream.
func (t *correlationTable) cancelUpstream(upstream string) {
	t.entries.Range(func(localId uint64, entry *correlationEntry) bool {
		if entry.upstream == upstream && entry.cancel != nil {
			entry.cancel()
		}
		return true
	})
}

func (t *correlationTable) len() int {
	return int(t.size.Load())
}
