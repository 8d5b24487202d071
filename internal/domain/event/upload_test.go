package event

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func csvUpload(body string) Upload {
	return Upload{Filename: "events.csv", Reader: strings.NewReader(body)}
}

func TestParseUploadTime(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-09-01T10:00:00Z", time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)},
		{"2026-09-01 10:00:00", time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)},
		{"2026-09-01 10:00", time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)},
		{"2026-09-01", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := parseUploadTime(tc.in)
		require.NoError(t, err, tc.in)
		assert.True(t, got.Equal(tc.want), tc.in)
	}

	_, err := parseUploadTime("next tuesday")
	assert.Error(t, err)
}

func TestColumnIndex(t *testing.T) {
	idx, err := columnIndex([]string{" Calendar_ID ", "title", "description", "start_time", "end_time", "is_public", "event_id"})
	require.NoError(t, err)
	assert.Equal(t, 0, idx["calendar_id"])
	assert.Equal(t, 6, idx["event_id"])

	_, err = columnIndex([]string{"calendar_id", "title"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestUploadEvents(t *testing.T) {
	ctx := context.Background()
	calendarID := uuid.New()
	userID := uuid.New()

	repo := newMockRepository()
	svc := NewService(repo, allowAllAuthorizer{}, nil, false, zap.NewNop())

	header := "calendar_id,title,description,start_time,end_time,is_public\n"

	t.Run("creates rows and reports failures individually", func(t *testing.T) {
		body := header +
			fmt.Sprintf("%s,standup,daily sync,2026-09-01 10:00,2026-09-01 10:30,true\n", calendarID) +
			fmt.Sprintf("%s,,missing title,2026-09-01 11:00,2026-09-01 11:30,true\n", calendarID) +
			fmt.Sprintf("%s,retro,sprint retro,2026-09-01 12:00,2026-09-01 13:00,false\n", calendarID)

		report, err := svc.UploadEvents(ctx, userID, csvUpload(body))
		require.NoError(t, err)
		assert.Equal(t, 2, report.Created)
		assert.Equal(t, 0, report.Updated)
		assert.Equal(t, 1, report.Failed)
		require.Len(t, report.Rows, 3)

		assert.Equal(t, "created", report.Rows[0].Action)
		assert.Equal(t, 2, report.Rows[0].Row)
		assert.NotEmpty(t, report.Rows[1].Error)
		assert.Equal(t, 3, report.Rows[1].Row)

		events, err := repo.ListByCalendar(ctx, calendarID)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("rows with an event_id update in place", func(t *testing.T) {
		existing, err := svc.CreateEvent(ctx, userID, validInput(calendarID))
		require.NoError(t, err)

		body := "event_id," + header +
			fmt.Sprintf("%s,%s,renamed,moved,2026-09-02 10:00,2026-09-02 11:00,false\n", existing.ID, calendarID)

		report, err := svc.UploadEvents(ctx, userID, csvUpload(body))
		require.NoError(t, err)
		assert.Equal(t, 1, report.Updated)
		assert.Equal(t, 0, report.Failed)

		got, err := repo.GetByID(ctx, existing.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
		assert.False(t, got.IsPublic)
	})

	t.Run("header only is rejected", func(t *testing.T) {
		_, err := svc.UploadEvents(ctx, userID, csvUpload(header))
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("unknown extension is rejected", func(t *testing.T) {
		_, err := svc.UploadEvents(ctx, userID, Upload{Filename: "events.pdf", Reader: strings.NewReader("x")})
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("permission failures land in the row report", func(t *testing.T) {
		denied := NewService(newMockRepository(), readOnlyAuthorizer{}, nil, false, zap.NewNop())
		body := header +
			fmt.Sprintf("%s,standup,,2026-09-01 10:00,2026-09-01 10:30,true\n", calendarID)
		report, err := denied.UploadEvents(ctx, userID, csvUpload(body))
		require.NoError(t, err)
		assert.Equal(t, 1, report.Failed)
		assert.Equal(t, 0, report.Created)
	})
}
