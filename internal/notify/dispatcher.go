package notify

import (
	"sync"

	"go.uber.org/zap"
)

const defaultQueueSize = 64

type job struct {
	msg      Message
	onResult func(error)
}

// Dispatcher queues messages and delivers them on background workers.
// Failures are logged per recipient and reported through the optional
// onResult callback; they are never propagated back to the enqueuing caller.
type Dispatcher struct {
	sender Sender
	logger *zap.Logger
	jobs   chan job
	wg     sync.WaitGroup
	once   sync.Once
}

func NewDispatcher(sender Sender, logger *zap.Logger, workers int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &Dispatcher{
		sender: sender,
		logger: logger,
		jobs:   make(chan job, defaultQueueSize),
	}
	for i := 0; i < workers; i++ {
		go d.run()
	}
	return d
}

// Enqueue hands a message to the delivery workers. onResult, if non-nil, is
// invoked from a worker goroutine with the delivery outcome.
func (d *Dispatcher) Enqueue(msg Message, onResult func(error)) {
	d.wg.Add(1)
	d.jobs <- job{msg: msg, onResult: onResult}
}

// Notify enqueues a message with no result callback.
func (d *Dispatcher) Notify(msg Message) {
	d.Enqueue(msg, nil)
}

// Drain blocks until every enqueued message has been attempted.
func (d *Dispatcher) Drain() {
	d.wg.Wait()
}

// Close drains the queue and stops the workers.
func (d *Dispatcher) Close() {
	d.Drain()
	d.once.Do(func() {
		close(d.jobs)
	})
}

func (d *Dispatcher) run() {
	for j := range d.jobs {
		err := d.sender.Send(j.msg)
		if err != nil {
			d.logger.Warn("notification delivery failed",
				zap.String("to", j.msg.To),
				zap.String("subject", j.msg.Subject),
				zap.Error(err),
			)
		}
		if j.onResult != nil {
			j.onResult(err)
		}
		d.wg.Done()
	}
}
