package sdk

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/secure-iot/obt-go/pkg/acl"
	"github.com/secure-iot/obt-go/pkg/cred"
	"github.com/secure-iot/obt-go/pkg/device"
	obtlog "github.com/secure-iot/obt-go/pkg/log"
	"github.com/secure-iot/obt-go/pkg/result"
)

// Request is an accepted request whose completion is pending.
type Request[T any] struct {
	*result.Pending[T]

	Op     string
	Handle Handle
	Device device.ID
	Issued time.Time
}

// Target describes what a request is about, for the journal.
type Target struct {
	Device device.ID
	Peer   device.ID
	Scope  string
	Detail string
}

func idString(id device.ID) string {
	if id.IsNil() {
		return ""
	}
	return id.String()
}

// Issue sends one request through fn and tracks its completion.
//
// fn receives the handler to pass to the SDK. If fn returns an error the
// request was not issued: the rejection is journaled and returned. Otherwise
// the returned Request resolves exactly once; completions arriving after the
// first are journaled as duplicates and dropped.
func Issue[T any](j *obtlog.Journal, op string, target Target, fn func(result.Handler[T]) (Handle, error)) (*Request[T], error) {
	p := result.NewPending[T]()
	dev := idString(target.Device)

	var handle atomic.Int64
	handle.Store(-1)
	p.OnDuplicate(func(result.Result[T]) {
		j.Duplicate(op, int(handle.Load()), dev)
	})

	issued := time.Now()
	h, err := fn(p.Resolve)
	if err != nil {
		code := CodeError
		var rej *Rejection
		if errors.As(err, &rej) {
			code = rej.Code
		}
		j.Rejection(op, dev, code)
		return nil, err
	}
	handle.Store(int64(h))

	j.Request(op, int(h), dev, idString(target.Peer), obtlog.RequestEvent{
		Scope:  target.Scope,
		Detail: target.Detail,
	})
	p.Then(func(r result.Result[T]) {
		latency := time.Since(issued)
		c := obtlog.CompletionEvent{
			Success: r.Err == nil,
			Items:   itemCount(r.Value),
			Latency: &latency,
		}
		if r.Err != nil {
			c.Code = uint8(result.CodeOf(r.Err))
			c.Message = r.Err.Error()
		}
		j.Completion(op, int(h), dev, c)
	})

	return &Request[T]{
		Pending: p,
		Op:      op,
		Handle:  h,
		Device:  target.Device,
		Issued:  issued,
	}, nil
}

func itemCount(v any) int {
	switch v := v.(type) {
	case []cred.Credential:
		return len(v)
	case *acl.ACL:
		if v == nil {
			return 0
		}
		return len(v.Entries)
	default:
		return 0
	}
}
