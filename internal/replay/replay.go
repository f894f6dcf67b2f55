// Package replay pushes recorded messages back through a live debug messenger.
//
// Every record becomes a native event on a loopback instance. The instance routes it
// like a driver would, so the subscription's filters decide what reaches the sink.
package replay

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"vkdebug/internal/messenger"
	"vkdebug/internal/record"
	"vkdebug/internal/sink"
	"vkdebug/internal/trace"
	"vkdebug/internal/vk"
	"vkdebug/internal/vk/loopback"
)

// Status is the outcome for one record.
type Status uint8

const (
	StatusDelivered Status = iota + 1 // reached the callback
	StatusFiltered                    // rejected by the messenger filters
	StatusFailed                      // could not be turned into a native event
)

func (s Status) String() string {
	switch s {
	case StatusDelivered:
		return "delivered"
	case StatusFiltered:
		return "filtered"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event reports progress for one record.
type Event struct {
	Index  int // position in Request.Records
	Record *record.Record
	Status Status
	Err    error
}

// ProgressSink consumes progress events. OnEvent may be called concurrently.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to Ch.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

// Request describes one replay.
type Request struct {
	Records  []record.Record
	Severity messenger.Severity
	Category messenger.Category
	Sink     sink.Sink    // receives delivered messages, required
	Jobs     int          // concurrent submitters, <= 0 means GOMAXPROCS
	Progress ProgressSink // optional
}

// Result summarises a replay.
type Result struct {
	Submitted int
	Delivered int
	Filtered  int
	Elapsed   time.Duration
}

var ErrNoSink = errors.New("replay: no sink")

// Run replays req.Records and returns once every record was submitted and the
// subscription is closed. With more than one job records are submitted concurrently
// and reach the sink in no particular order.
func Run(ctx context.Context, req Request) (Result, error) {
	if req.Sink == nil {
		return Result{}, ErrNoSink
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeReplay, "replay", trace.SpanFrom(ctx))
	span.WithExtra("records", strconv.Itoa(len(req.Records)))
	started := time.Now()

	inst := loopback.New(loopback.WithExtensions(vk.ExtDebugUtils))
	sub, err := subscribe(tracer, span.ID(), inst, req)
	if err != nil {
		span.Fail(err)
		span.End("subscribe failed")
		return Result{}, err
	}

	var delivered, filtered atomic.Int64
	submit := func(i int) error {
		rec := &req.Records[i]
		var n int
		err := validate(rec)
		if err == nil {
			n, err = inst.Submit(rec.Event())
		}
		ev := Event{Index: i, Record: rec}
		switch {
		case err != nil:
			ev.Status, ev.Err = StatusFailed, err
		case n > 0:
			ev.Status = StatusDelivered
			delivered.Add(1)
		default:
			ev.Status = StatusFiltered
			filtered.Add(1)
		}
		trace.Point(tracer, trace.ScopeMessage, span.ID(), "submit", ev.Status.String())
		if req.Progress != nil {
			req.Progress.OnEvent(ev)
		}
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		return nil
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs == 1 || len(req.Records) < 2 {
		for i := range req.Records {
			if err = ctx.Err(); err != nil {
				break
			}
			if err = submit(i); err != nil {
				break
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(req.Records)))
		for i := range req.Records {
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				return submit(i)
			})
		}
		err = g.Wait()
	}

	if cerr := closeSubscription(tracer, span.ID(), sub); err == nil {
		err = cerr
	}
	if ferr := req.Sink.Flush(); err == nil {
		err = ferr
	}

	res := Result{
		Submitted: int(delivered.Load() + filtered.Load()),
		Delivered: int(delivered.Load()),
		Filtered:  int(filtered.Load()),
		Elapsed:   time.Since(started),
	}
	span.WithExtra("delivered", strconv.Itoa(res.Delivered)).
		WithExtra("filtered", strconv.Itoa(res.Filtered))
	span.Fail(err)
	span.End("")
	return res, err
}

func subscribe(tracer trace.Tracer, parent uint64, inst *loopback.Instance, req Request) (*messenger.Subscription, error) {
	span := trace.Begin(tracer, trace.ScopeSubscription, "subscribe", parent)
	span.WithExtra("severity", req.Severity.String()).
		WithExtra("category", req.Category.String())
	defer span.End("")

	sub, err := messenger.New(inst, req.Severity, req.Category, sink.Handler(req.Sink))
	if err != nil {
		span.Fail(err)
		return nil, err
	}
	span.WithExtra("messenger", fmt.Sprintf("0x%x", uint64(sub.Messenger())))
	return sub, nil
}

func closeSubscription(tracer trace.Tracer, parent uint64, sub *messenger.Subscription) error {
	span := trace.Begin(tracer, trace.ScopeSubscription, "unsubscribe", parent)
	defer span.End("")
	err := sub.Close()
	span.Fail(err)
	return err
}

// validate rejects records the native side could never have produced. Invalid UTF-8
// would abort the process inside the callback; an embedded NUL would silently cut the
// text short once it crosses as a C string.
func validate(rec *record.Record) error {
	check := func(what, s string) error {
		if !utf8.ValidString(s) {
			return fmt.Errorf("%s is not valid UTF-8", what)
		}
		if strings.IndexByte(s, 0) >= 0 {
			return fmt.Errorf("%s contains a NUL byte", what)
		}
		return nil
	}
	if err := check("description", rec.Description); err != nil {
		return err
	}
	if err := check("id name", rec.IDName); err != nil {
		return err
	}
	for _, l := range rec.QueueLabels {
		if err := check("queue label", l); err != nil {
			return err
		}
	}
	for _, l := range rec.CmdBufLabels {
		if err := check("command buffer label", l); err != nil {
			return err
		}
	}
	for _, o := range rec.Objects {
		if err := check("object name", o.Name); err != nil {
			return err
		}
	}
	return nil
}
