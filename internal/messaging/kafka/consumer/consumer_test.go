package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs      []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func runAll(t *testing.T, msgs []kafkago.Message, handle HandleFunc) *fakeReader {
	t.Helper()
	old := retryBackoff
	retryBackoff = time.Millisecond
	t.Cleanup(func() { retryBackoff = old })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := &fakeReader{msgs: msgs, cancel: cancel}
	Run(ctx, reader, "test", handle, zap.NewNop())
	return reader
}

func TestRun(t *testing.T) {
	msgs := []kafkago.Message{
		{Offset: 1, Headers: []kafkago.Header{{Key: "request_id", Value: []byte("req-1")}}},
		{Offset: 2},
		{Offset: 3},
		{Offset: 4},
	}
	attempts := map[int64]int{}
	var requestID string

	reader := runAll(t, msgs, func(ctx context.Context, msg kafkago.Message) error {
		attempts[msg.Offset]++
		switch msg.Offset {
		case 1:
			requestID = contextutil.GetRequestID(ctx)
		case 2:
			if attempts[2] < 2 {
				return errors.New("database unavailable")
			}
		case 3:
			return errors.New("database unavailable")
		case 4:
			return leaveerrors.ErrEmployeeNotFound
		}
		return nil
	})

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, map[int64]int{1: 1, 2: 2, 3: maxAttempts, 4: 1}, attempts)
	assert.Equal(t, []int64{1, 2, 3, 4}, reader.committed)
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(errors.New("timeout")))
	assert.False(t, retryable(permanent(errors.New("bad json"))))
	assert.False(t, retryable(leaveerrors.ErrInvalidYear))
}

type fakeAllocator struct {
	reqs []leave.AllocateRequest
	err  error
}

func (f *fakeAllocator) Allocate(ctx context.Context, req leave.AllocateRequest) ([]leave.LeaveBalanceResponse, error) {
	f.reqs = append(f.reqs, req)
	return []leave.LeaveBalanceResponse{{}, {}}, f.err
}

func TestEmployeeLifecycle(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC) }
	alloc := &fakeAllocator{}
	handle := EmployeeLifecycle(alloc, now, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, handle(ctx, kafkago.Message{Value: []byte(`{"event_type":"employee_created","employee_id":"e-1","joining_date":"2026-03-01"}`)}))
	require.NoError(t, handle(ctx, kafkago.Message{Value: []byte(`{"event_type":"employee_created","employee_id":"e-2","joining_date":"2027-01-04"}`)}))
	require.NoError(t, handle(ctx, kafkago.Message{Value: []byte(`{"event_type":"employee_exited","employee_id":"e-3"}`)}))

	assert.Equal(t, []leave.AllocateRequest{
		{EmployeeID: "e-1", Year: 2026},
		{EmployeeID: "e-2", Year: 2027},
	}, alloc.reqs)

	err := handle(ctx, kafkago.Message{Value: []byte(`{`)})
	assert.ErrorIs(t, err, errPermanent)

	alloc.err = leaveerrors.ErrEmployeeNotFound
	err = handle(ctx, kafkago.Message{Value: []byte(`{"event_type":"employee_created","employee_id":"e-4"}`)})
	assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
}

type fakeGenerator struct {
	ids []string
}

func (f *fakeGenerator) GeneratePayslips(ctx context.Context, payrollID string) (int, error) {
	f.ids = append(f.ids, payrollID)
	return 3, nil
}

func TestPayrollProcessed(t *testing.T) {
	gen := &fakeGenerator{}
	handle := PayrollProcessed(gen, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, handle(ctx, kafkago.Message{Value: []byte(`{"event_type":"` + events.PayrollProcessed + `","payroll_id":"run-1","month":3,"year":2026,"slip_count":3}`)}))
	require.NoError(t, handle(ctx, kafkago.Message{Value: []byte(`{"event_type":"payroll_deleted","payroll_id":"run-2"}`)}))
	assert.Equal(t, []string{"run-1"}, gen.ids)

	assert.ErrorIs(t, handle(ctx, kafkago.Message{Value: []byte(`not json`)}), errPermanent)
}
