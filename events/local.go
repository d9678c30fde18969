package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// LocalBus delivers events in-process. Payloads go through JSON so handlers
// see the same bytes they would receive from NATS. Each delivery runs on its
// own goroutine; queue subscribers in the same group share one delivery.
type LocalBus struct {
	mu     sync.RWMutex
	subs   map[string][]func(*Message)
	queues map[string]map[string][]func(*Message)
	next   map[string]int
	closed bool
	wg     sync.WaitGroup
}

func NewLocalBus() *LocalBus {
	return &LocalBus{
		subs:   make(map[string][]func(*Message)),
		queues: make(map[string]map[string][]func(*Message)),
		next:   make(map[string]int),
	}
}

func (b *LocalBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("event bus closed")
	}
	targets := append([]func(*Message){}, b.subs[subject]...)
	for queue, handlers := range b.queues[subject] {
		key := subject + "|" + queue
		targets = append(targets, handlers[b.next[key]%len(handlers)])
		b.next[key]++
	}
	b.wg.Add(len(targets))
	b.mu.Unlock()

	now := time.Now()
	for _, h := range targets {
		msg := &Message{Subject: subject, Data: payload, Timestamp: now, ID: fmt.Sprintf("%d", now.UnixNano())}
		go func(h func(*Message)) {
			defer b.wg.Done()
			h(msg)
		}(h)
	}
	return nil
}

func (b *LocalBus) Subscribe(subject string, handler func(msg *Message)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[subject] = append(b.subs[subject], handler)
	return nil
}

func (b *LocalBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.queues[subject] == nil {
		b.queues[subject] = make(map[string][]func(*Message))
	}
	b.queues[subject][queue] = append(b.queues[subject][queue], handler)
	return nil
}

// Close rejects new events and waits for in-flight deliveries.
func (b *LocalBus) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.wg.Wait()
	return nil
}
