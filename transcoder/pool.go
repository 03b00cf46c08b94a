package transcoder

import (
	"sync"

	"github.com/wippyai/redis-codec/resp"
)

// poolMaxEntries caps the size of scratch maps returned to the pool so
// one oversized reply does not pin its capacity forever
const poolMaxEntries = 512

// scratch holds the per-decode field index: directly named values and
// dotted pairs regrouped by first segment
type scratch struct {
	direct map[string]resp.Value
	groups map[string][]resp.Pair
}

var scratchPool = sync.Pool{
	New: func() any {
		return &scratch{
			direct: make(map[string]resp.Value),
			groups: make(map[string][]resp.Pair),
		}
	},
}

func getScratch() *scratch {
	return scratchPool.Get().(*scratch)
}

func putScratch(s *scratch) {
	if len(s.direct) > poolMaxEntries || len(s.groups) > poolMaxEntries {
		return
	}
	clear(s.direct)
	clear(s.groups)
	scratchPool.Put(s)
}
