/*
Copyright 2025 Stride Team

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package notify

import (
	"context"
	"sync"
	"time"

	"github.com/go-stride/stride/pkg/log"
	"github.com/go-stride/stride/pkg/retry"
)

const defaultQueueSize = 256

// Dispatcher delivers mail in the background. Enqueue never blocks the
// caller and delivery failures never surface to the request path; a failed
// notification must not fail the operation that triggered it.
type Dispatcher struct {
	mailer Mailer
	queue  chan Mail

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

func NewDispatcher(mailer Mailer) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan Mail, defaultQueueSize),
		done:   make(chan struct{}),
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

// Enqueue hands a mail to the worker. When the queue is full the mail is
// dropped with a warning rather than blocking the request.
func (d *Dispatcher) Enqueue(mail Mail) {
	select {
	case d.queue <- mail:
	default:
		log.Warnw("mail queue full, dropping notification", "subject", mail.Subject, "to", mail.To)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case mail := <-d.queue:
			d.deliver(mail)
		case <-d.done:
			// drain what is already queued before exiting
			for {
				select {
				case mail := <-d.queue:
					d.deliver(mail)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(mail Mail) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := retry.Do(ctx, func(ctx context.Context) error {
		return d.mailer.Send(ctx, mail)
	},
		retry.WithMaxAttempts(3),
		retry.WithBackoff(retry.Exponential(500*time.Millisecond)),
		retry.WithJitter(retry.FullJitter),
	)
	if err != nil {
		log.Errorw("failed to deliver notification", "subject", mail.Subject, "to", mail.To, "error", err)
		return
	}
	log.Debugw("notification delivered", "subject", mail.Subject, "to", mail.To)
}

// Close stops the worker after draining the queue.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
	d.wg.Wait()
}
