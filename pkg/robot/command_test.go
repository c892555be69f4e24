package robot

import (
	"sync"
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()

	first := q.Enqueue(CommandGoto, "poi_1")
	second := q.Enqueue(CommandAsk, "a question")
	third := q.Enqueue(CommandSetLang, "ZH")

	if first.ID == "" || first.ID == second.ID || second.ID == third.ID {
		t.Error("expected unique non-empty command ids")
	}
	if q.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", q.Len())
	}

	for i, want := range []Command{first, second, third} {
		got, ok := q.Dequeue(0)
		if !ok {
			t.Fatalf("Dequeue %d: queue empty", i)
		}
		if got != want {
			t.Errorf("Dequeue %d: got %+v, want %+v", i, got, want)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len after drain: got %d, want 0", q.Len())
	}
}

func TestQueue_DequeueTimeout(t *testing.T) {
	q := NewQueue()

	start := time.Now()
	if _, ok := q.Dequeue(20 * time.Millisecond); ok {
		t.Fatal("Dequeue on empty queue returned a command")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Dequeue returned before the timeout: %v", elapsed)
	}
}

func TestQueue_DequeueWakesOnEnqueue(t *testing.T) {
	q := NewQueue()

	done := make(chan Command, 1)
	go func() {
		if cmd, ok := q.Dequeue(5 * time.Second); ok {
			done <- cmd
		}
	}()

	time.Sleep(10 * time.Millisecond)
	sent := q.Enqueue(CommandGoto, "poi_1")

	select {
	case got := <-done:
		if got != sent {
			t.Errorf("got %+v, want %+v", got, sent)
		}
	case <-time.After(time.Second):
		t.Fatal("consumer never woke up")
	}
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	const producers = 8
	const perProducer = 50

	q := NewQueue()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(CommandAsk, "q")
			}
		}()
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < producers*perProducer; i++ {
		cmd, ok := q.Dequeue(time.Second)
		if !ok {
			t.Fatalf("queue ran dry after %d commands", i)
		}
		if seen[cmd.ID] {
			t.Fatalf("duplicate command id %s", cmd.ID)
		}
		seen[cmd.ID] = true
	}
	if q.Len() != 0 {
		t.Errorf("Len after full drain: got %d, want 0", q.Len())
	}
}
