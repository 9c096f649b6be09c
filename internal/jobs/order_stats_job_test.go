package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatsReader struct{ mock.Mock }

func (m *MockStatsReader) Handle(ctx context.Context, query queries.GetOrderStatsQuery) (queries.GetOrderStatsQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderStatsQueryResponse), args.Error(1)
}

type MockStatsRecorder struct{ mock.Mock }

func (m *MockStatsRecorder) RecordStats(stats queries.GetOrderStatsQueryResponse) {
	m.Called(stats)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOrderStatsJob_Run(t *testing.T) {
	t.Run("should record fresh stats", func(t *testing.T) {
		ctx := t.Context()
		stats := queries.GetOrderStatsQueryResponse{
			ByStatus: map[order.Status]queries.StatusStats{order.Pending: {Count: 2}},
		}
		reader := new(MockStatsReader)
		reader.On("Handle", ctx, mock.Anything).Return(stats, nil).Once()
		recorder := new(MockStatsRecorder)
		recorder.On("RecordStats", stats).Once()

		jobs.NewOrderStatsJob(reader, recorder, "", discardLogger()).Run(ctx)

		reader.AssertExpectations(t)
		recorder.AssertExpectations(t)
	})

	t.Run("should keep previous values when reading fails", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockStatsReader)
		reader.On("Handle", ctx, mock.Anything).
			Return(queries.GetOrderStatsQueryResponse{}, errors.New("db down")).Once()
		recorder := new(MockStatsRecorder)

		jobs.NewOrderStatsJob(reader, recorder, "", discardLogger()).Run(ctx)

		recorder.AssertNotCalled(t, "RecordStats", mock.Anything)
	})
}

func TestOrderStatsJob_Start(t *testing.T) {
	t.Run("should reject invalid schedule", func(t *testing.T) {
		job := jobs.NewOrderStatsJob(new(MockStatsReader), new(MockStatsRecorder), "every now and then", discardLogger())

		require.Error(t, job.Start())
	})

	t.Run("should start and stop with a valid schedule", func(t *testing.T) {
		job := jobs.NewOrderStatsJob(new(MockStatsReader), new(MockStatsRecorder), "0 0 3 * * *", discardLogger())

		require.NoError(t, job.Start())
		job.Stop()
	})
}

type fakeJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j fakeJob) Start() error {
	*j.log = append(*j.log, "start "+j.name)
	return j.startErr
}

func (j fakeJob) Stop() {
	*j.log = append(*j.log, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	t.Run("should start in order and stop in reverse", func(t *testing.T) {
		var calls []string
		manager := jobs.NewJobManager(discardLogger(),
			fakeJob{name: "a", log: &calls},
			fakeJob{name: "b", log: &calls},
		)

		require.NoError(t, manager.StartAll())
		manager.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, calls)
	})

	t.Run("should stop started jobs when one fails", func(t *testing.T) {
		var calls []string
		manager := jobs.NewJobManager(discardLogger(),
			fakeJob{name: "a", log: &calls},
			fakeJob{name: "b", log: &calls, startErr: errors.New("bad schedule")},
			fakeJob{name: "c", log: &calls},
		)

		err := manager.StartAll()

		require.ErrorContains(t, err, "bad schedule")
		assert.Equal(t, []string{"start a", "start b", "stop a"}, calls)
	})
}
