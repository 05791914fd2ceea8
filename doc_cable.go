package rockset

import (
	"context"
	"time"
)

// DocumentBatchCable writes documents into a collection in batches,
// flushing when a batch fills up or the flush interval elapses.
type DocumentBatchCable struct {
	col *Collection

	sendCh chan *docSend

	// BatchSize is the maximum number of documents per write.
	BatchSize int
	// BatchInterval is the maximum time a queued document waits before
	// its batch is flushed.
	BatchInterval time.Duration
}

type docSend struct {
	doc Document

	err  chan error
	done chan struct{}
}

// DocumentBatchCable creates a cable writing into the collection. Call
// Start before sending and Close when no more documents will be sent.
func (col *Collection) DocumentBatchCable() *DocumentBatchCable {
	return &DocumentBatchCable{
		col:           col,
		sendCh:        make(chan *docSend),
		BatchSize:     1000,        // server-side limit per write
		BatchInterval: time.Second, // default to 1 second
	}
}

// Start runs the cable loop until Close is called.
func (c *DocumentBatchCable) Start(ctx context.Context) {
	go func() {
		ticker := time.Tick(c.BatchInterval)
		batch := make([]*docSend, 0, c.BatchSize)

		flush := func() {
			if len(batch) == 0 {
				return
			}
			sends := batch
			batch = make([]*docSend, 0, c.BatchSize)

			go func() {
				docs := make([]Document, 0, len(sends))
				for _, s := range sends {
					docs = append(docs, s.doc)
				}

				_, err := c.col.AddDocuments(ctx, docs)
				for _, s := range sends {
					if err != nil {
						s.err <- err
					}
					close(s.err)
					close(s.done)
				}
			}()
		}

		for {
			select {
			case <-ticker:
				flush()
			case s, more := <-c.sendCh:
				if !more {
					flush()
					return
				}
				if s.doc == nil {
					close(s.err)
					close(s.done)
					continue
				}

				batch = append(batch, s)
				if len(batch) >= c.BatchSize {
					flush()
				}
			}
		}
	}()
}

// Send queues a document for write. The returned channels report
// completion of the batch carrying the document: done is closed when the
// write finishes, and err yields the write error, if any, before closing.
func (c *DocumentBatchCable) Send(doc Document) (<-chan struct{}, <-chan error) {
	s := &docSend{
		doc:  doc,
		err:  make(chan error, 1),
		done: make(chan struct{}),
	}
	c.sendCh <- s
	return s.done, s.err
}

// Close stops the cable and flushes any queued documents.
func (c *DocumentBatchCable) Close() {
	close(c.sendCh)
}
