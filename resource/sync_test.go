package resource

import (
	"sync"
	"testing"
	"time"
)

func TestSyncSamplerCacheConcurrentMissRace(t *testing.T) {
	s := NewSyncSamplerCache()
	cr := &creator{}
	info := nearestRepeat()

	// Both goroutines must be inside create, each holding the shared
	// lock, before either upgrades.
	var inCreate sync.WaitGroup
	inCreate.Add(2)
	create := func() (*Handle[Sampler], error) {
		inCreate.Done()
		inCreate.Wait()
		return cr.create(info)()
	}

	var wg sync.WaitGroup
	handles := make([]*Handle[Sampler], 2)
	errs := make([]error, 2)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i], errs[i] = s.Get(info, create)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("goroutine %d: %v", i, err)
		}
	}
	if cr.count() != 2 {
		t.Errorf("create calls = %d, want 2", cr.count())
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	r := s.RLock()
	cached, _ := r.Cache().Lookup(info)
	r.Unlock()
	if cached != handles[0] && cached != handles[1] {
		t.Fatal("cached handle is neither of the created handles")
	}
	for i, h := range handles {
		if h.Value().Raw().(*testSampler).destroyed {
			t.Errorf("handle %d was destroyed while held", i)
		}
		want := int64(1)
		if h == cached {
			want = 2
		}
		if h.Refs() != want {
			t.Errorf("handle %d Refs() = %d, want %d", i, h.Refs(), want)
		}
	}
	if st := s.Stats(); st.Replaced != 1 || st.Misses != 2 {
		t.Errorf("Stats() = %+v, want 2 misses, 1 replaced", st)
	}
}

func TestSyncSamplerCacheConcurrentHits(t *testing.T) {
	s := NewSyncSamplerCache()
	cr := &creator{}
	info := LinearSamplerInfo()

	first, err := s.Get(info, cr.create(info))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	const workers = 16
	const perWorker = 100
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				h, err := s.Get(info, cr.create(info))
				if err != nil {
					t.Errorf("Get: %v", err)
					return
				}
				if h != first {
					t.Error("hit returned a different handle")
				}
				h.Release()
			}
		}()
	}
	wg.Wait()

	if cr.count() != 1 {
		t.Errorf("create calls = %d, want 1", cr.count())
	}
	if first.Refs() != 2 {
		t.Errorf("Refs() = %d, want 2", first.Refs())
	}
	if st := s.Stats(); st.Hits != workers*perWorker {
		t.Errorf("Hits = %d, want %d", st.Hits, workers*perWorker)
	}
}

func TestSyncSamplerCacheGetExclusive(t *testing.T) {
	s := NewSyncSamplerCache()
	cr := &creator{}
	info := DefaultSamplerInfo()

	var wg sync.WaitGroup
	handles := make([]*Handle[Sampler], 8)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, err := s.GetExclusive(info, cr.create(info))
			if err != nil {
				t.Errorf("GetExclusive: %v", err)
				return
			}
			handles[i] = h
		}(i)
	}
	wg.Wait()

	if cr.count() != 1 {
		t.Errorf("create calls = %d, want 1", cr.count())
	}
	for i, h := range handles {
		if h != handles[0] {
			t.Errorf("handle %d differs from handle 0", i)
		}
	}
}

func TestSyncSamplerCacheClear(t *testing.T) {
	s := NewSyncSamplerCache()
	cr := &creator{}
	h, _ := s.Get(DefaultSamplerInfo(), cr.create(DefaultSamplerInfo()))

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if h.Refs() != 1 {
		t.Errorf("Refs() = %d, want 1", h.Refs())
	}
}

func TestSyncSamplerCacheGuards(t *testing.T) {
	s := NewSyncSamplerCache()

	r := s.RLock()
	w := s.Upgrade(r)
	if w.Cache() != r.Cache() {
		t.Error("guards expose different caches")
	}
	w.Unlock()

	mustPanic(t, "read unlocked twice", func() { r.Unlock() })
	mustPanic(t, "write unlocked twice", func() { w.Unlock() })

	other := NewSyncSamplerCache()
	foreign := other.RLock()
	mustPanic(t, "foreign upgrade", func() { s.Upgrade(foreign) })
	foreign.Unlock()

	// The lock is usable after all of the above.
	s.Lock().Unlock()
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestSyncSamplerCacheCreatePanicReleasesLock(t *testing.T) {
	s := NewSyncSamplerCache()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("create panic was not propagated")
			}
		}()
		_, _ = s.Get(DefaultSamplerInfo(), func() (*Handle[Sampler], error) {
			panic("create failed")
		})
	}()

	done := make(chan struct{})
	go func() {
		s.Clear()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Clear blocked after a panicking create")
	}

	cr := &creator{}
	if _, err := s.Get(DefaultSamplerInfo(), cr.create(DefaultSamplerInfo())); err != nil {
		t.Fatalf("Get after panic: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}
