package lock

import (
	"context"
	"sync"
	"time"

	apperrors "go-gin-rsvp/pkg/app_errors"

	"github.com/google/uuid"
)

type keyLock struct {
	ch   chan struct{}
	refs int
}

// LocalEventLocker 單一程序內的 keyed mutex，沒有人等待的 key 會被回收
type LocalEventLocker struct {
	mu          sync.Mutex
	locks       map[uuid.UUID]*keyLock
	waitTimeout time.Duration
}

func NewLocalEventLocker(waitTimeout time.Duration) *LocalEventLocker {
	return &LocalEventLocker{
		locks:       make(map[uuid.UUID]*keyLock),
		waitTimeout: waitTimeout,
	}
}

func (l *LocalEventLocker) acquireRef(eventID uuid.UUID) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	kl, ok := l.locks[eventID]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[eventID] = kl
	}
	kl.refs++
	return kl
}

func (l *LocalEventLocker) releaseRef(eventID uuid.UUID, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, eventID)
	}
}

func (l *LocalEventLocker) Lock(ctx context.Context, eventID uuid.UUID) (UnlockFunc, error) {
	kl := l.acquireRef(eventID)

	waitCtx := ctx
	if l.waitTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.waitTimeout)
		defer cancel()
	}

	select {
	case kl.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-kl.ch
				l.releaseRef(eventID, kl)
			})
		}, nil
	case <-waitCtx.Done():
		l.releaseRef(eventID, kl)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrLockTimeout
	}
}

// size 目前登記中的 key 數，測試用
func (l *LocalEventLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
