package services

import (
	"context"
	"log"
	"sync"
	"time"
)

type pushJob struct {
	token string
	title string
	body  string
}

// PushDispatcher decouples push delivery from request handling. It implements
// PushProvider by queueing the message and returning immediately; a small
// worker pool drains the queue against the wrapped provider. Badge renders
// never wait on FCM round trips.
type PushDispatcher struct {
	provider PushProvider
	jobQueue chan pushJob
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewPushDispatcher(provider PushProvider, workers int) *PushDispatcher {
	if workers <= 0 {
		workers = 2
	}
	d := &PushDispatcher{
		provider: provider,
		jobQueue: make(chan pushJob, 100),
		stopChan: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// SendPush queues the message. A full queue drops the push rather than block;
// pushes are cosmetic and never worth stalling a request over.
func (d *PushDispatcher) SendPush(_ context.Context, token, title, body string) error {
	select {
	case d.jobQueue <- pushJob{token: token, title: title, body: body}:
	default:
		log.Printf("Push queue full, dropping notification %q", title)
	}
	return nil
}

func (d *PushDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case job := <-d.jobQueue:
			d.deliver(job)
		case <-d.stopChan:
			return
		}
	}
}

func (d *PushDispatcher) deliver(job pushJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := d.provider.SendPush(ctx, job.token, job.title, job.body); err != nil {
		log.Printf("Push delivery failed: %v", err)
	}
}

// Stop drains in-flight workers. Queued but unstarted jobs are discarded.
func (d *PushDispatcher) Stop() {
	close(d.stopChan)
	d.wg.Wait()
}
