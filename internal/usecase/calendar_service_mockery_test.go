package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/cooking-schedule/internal/domain/period"
	periodmock "github.com/riskibarqy/cooking-schedule/internal/mocks/domain/period"
	idgen "github.com/riskibarqy/cooking-schedule/internal/platform/id"
	"github.com/stretchr/testify/mock"
)

func TestCalendarService_AddPeriod_DuplicateSkipsCreateUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	periods := periodmock.NewRepository(t)
	periods.
		On("GetByLabel", mock.Anything, "2025-10").
		Return(period.Period{ID: "p-1", Label: "2025-10"}, true, nil).
		Once()

	service := NewCalendarService(Repositories{Periods: periods}, idgen.NewSequenceGenerator("period"), nil)
	_, err := service.AddPeriod(ctx, AddPeriodInput{Label: "2025-10"})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	periods.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCalendarService_AddPeriod_CreatesClosedPeriodUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	periods := periodmock.NewRepository(t)
	periods.
		On("GetByLabel", mock.Anything, "2025-10").
		Return(period.Period{}, false, nil).
		Once()
	periods.
		On("Create", mock.Anything, mock.MatchedBy(func(item period.Period) bool {
			return item.Label == "2025-10" && item.StartMonth == 10 && item.Year == 2025 && !item.IsOpen && item.IsCurrent
		})).
		Return(nil).
		Once()

	service := NewCalendarService(Repositories{Periods: periods}, idgen.NewSequenceGenerator("period"), nil)
	got, err := service.AddPeriod(ctx, AddPeriodInput{Label: "2025-10", Current: true})
	if err != nil {
		t.Fatalf("add period: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestQueryService_ListPeriods_StorageFailureIsUntaggedUsingMockery(t *testing.T) {
	t.Parallel()

	periods := periodmock.NewRepository(t)
	periods.
		On("List", mock.Anything).
		Return(nil, errors.New("connection reset")).
		Once()

	service := NewQueryService(Repositories{Periods: periods})
	_, err := service.ListPeriods(context.Background())
	if err == nil {
		t.Fatalf("expected storage error")
	}
	if tag := ErrorTag(err); tag != "" {
		t.Fatalf("storage failure should not carry a taxonomy tag, got %q", tag)
	}
}
