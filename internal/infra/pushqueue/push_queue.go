package pushqueue

import "context"

//go:generate mockgen -source=push_queue.go -destination=mock.go -package=pushqueue

// PushQueue hands emitted notifications to the platform push channel.
type PushQueue interface {
	Enqueue(ctx context.Context, msg *PushMessage) (*EnqueueResponse, error)
}
