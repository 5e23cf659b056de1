package gbfs

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSnapshot_Lookup(t *testing.T) {
	snap := NewSnapshot(time.Now(), []StationStatus{
		{StationID: "A", VehiclesAvailable: 3, DocksAvailable: 2},
		{StationID: "B", VehiclesAvailable: 0, DocksAvailable: 10},
	})
	if snap.Stations() != 2 {
		t.Fatalf("Stations = %d, want 2", snap.Stations())
	}
	a, ok := snap.Station("A")
	if !ok || a.VehiclesAvailable != 3 {
		t.Errorf("Station(A) = %+v ok=%v", a, ok)
	}
	if _, ok := snap.Station("Z"); ok {
		t.Error("unknown station should not resolve")
	}
}

func TestDecodeStatus(t *testing.T) {
	doc := `{
		"last_updated": 1719830000,
		"data": {"stations": [
			{"station_id": "A", "num_bikes_available": 2, "num_docks_available": 5, "last_reported": 1719829990}
		]}
	}`
	snap, err := DecodeStatus([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeStatus: %v", err)
	}
	if !snap.CapturedAt.Equal(time.Unix(1719830000, 0)) {
		t.Errorf("CapturedAt = %v", snap.CapturedAt)
	}
	st, ok := snap.Station("A")
	if !ok || st.VehiclesAvailable != 2 || st.DocksAvailable != 5 {
		t.Errorf("Station(A) = %+v ok=%v", st, ok)
	}

	if _, err := DecodeStatus([]byte("not json")); err == nil {
		t.Error("expected decode error for malformed document")
	}
}

// Publication must be atomic: a reader either sees one capture in full or
// another, never fields from two. Each snapshot here is internally
// consistent (every station count equals the capture's sequence number), so
// any torn read shows up as a mismatch.
func TestCache_AtomicPublish(t *testing.T) {
	cache := NewCache(consistentSnapshot(0, 8))

	done := make(chan struct{})
	var wg sync.WaitGroup
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snap := cache.Current()
				seen := snap.ID
				var want int
				first := true
				for i := 0; i < 8; i++ {
					st, ok := snap.Station(fmt.Sprintf("S%d", i))
					if !ok {
						t.Errorf("snapshot %s missing station S%d", seen, i)
						return
					}
					if first {
						want = st.VehiclesAvailable
						first = false
					} else if st.VehiclesAvailable != want {
						t.Errorf("torn snapshot %s: station counts %d and %d", seen, want, st.VehiclesAvailable)
						return
					}
				}
			}
		}()
	}

	for seq := 1; seq <= 500; seq++ {
		cache.Publish(consistentSnapshot(seq, 8))
	}
	close(done)
	wg.Wait()
}

func consistentSnapshot(seq, stations int) *Snapshot {
	list := make([]StationStatus, stations)
	for i := range list {
		list[i] = StationStatus{
			StationID:         fmt.Sprintf("S%d", i),
			VehiclesAvailable: seq,
			DocksAvailable:    seq,
		}
	}
	return NewSnapshot(time.Now(), list)
}

func TestCache_PublishIgnoresNil(t *testing.T) {
	snap := consistentSnapshot(1, 2)
	cache := NewCache(snap)
	cache.Publish(nil)
	if cache.Current() != snap {
		t.Error("nil publish must not clear the current snapshot")
	}
}

func TestCache_EmptyUntilFirstPublish(t *testing.T) {
	cache := NewCache(nil)
	if cache.Current() != nil {
		t.Fatal("expected nil before first publish")
	}
	snap := consistentSnapshot(1, 1)
	cache.Publish(snap)
	if cache.Current() != snap {
		t.Error("publish should install the snapshot")
	}
}
