package langdetect

import (
	"hash/fnv"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Detector memoizes Detect by content. Re-rendering a document re-detects
// every untagged block, and most of them have not changed.
//
// A Detector is safe for concurrent use.
type Detector struct {
	memo *gocache.Cache
}

// NewDetector returns a Detector whose entries expire after ttl without use.
// A non-positive ttl keeps entries until Flush.
func NewDetector(ttl time.Duration) *Detector {
	expiration, cleanup := ttl, 2*ttl
	if ttl <= 0 {
		expiration, cleanup = gocache.NoExpiration, 0
	}
	return &Detector{memo: gocache.New(expiration, cleanup)}
}

// Detect is Detect with memoization.
func (d *Detector) Detect(content []byte) string {
	key := memoKey(content)
	if lang, ok := d.memo.Get(key); ok {
		if s, ok := lang.(string); ok {
			return s
		}
	}

	lang := Detect(content)
	d.memo.SetDefault(key, lang)
	return lang
}

// Len returns the number of memoized results.
func (d *Detector) Len() int {
	return d.memo.ItemCount()
}

// Flush drops all memoized results.
func (d *Detector) Flush() {
	d.memo.Flush()
}

func memoKey(content []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(content)
	return strconv.Itoa(len(content)) + ":" + strconv.FormatUint(h.Sum64(), 16)
}
