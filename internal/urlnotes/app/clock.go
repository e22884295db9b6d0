// Package app реализует хранилища заметок и рисунков.
package app

import "time"

// Clock возвращает текущее время.
type Clock func() time.Time

// Option настраивает хранилища.
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock подменяет источник времени.
func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func buildOptions(opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// timestampOrNow возвращает ts, а для нулевого значения - текущее время в миллисекундах.
func timestampOrNow(ts int64, clock Clock) int64 {
	if ts != 0 {
		return ts
	}
	return clock().UnixMilli()
}
