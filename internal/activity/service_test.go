package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fcsolar/pos/internal/activity"
)

func TestService_Record(t *testing.T) {
	type testCase struct {
		name       string
		userID     string
		wantUserID string
		setupMock  func(m *activity.MockRepository)
		wantErr    bool
	}

	tests := []testCase{
		{
			name:       "Success",
			userID:     "u1",
			wantUserID: "u1",
			setupMock: func(m *activity.MockRepository) {
				m.EXPECT().
					Append(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rec *activity.Record) error {
						assert.Equal(t, "u1", rec.UserID)
						assert.Equal(t, activity.ActionOrderCreated, rec.Action)
						assert.NotEmpty(t, rec.ID)
						assert.False(t, rec.Timestamp.IsZero())
						return nil
					})
			},
		},
		{
			name:       "EmptyUserDefaultsToSystem",
			userID:     "",
			wantUserID: "system",
			setupMock: func(m *activity.MockRepository) {
				m.EXPECT().
					Append(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rec *activity.Record) error {
						assert.Equal(t, "system", rec.UserID)
						return nil
					})
			},
		},
		{
			name:   "RepoError",
			userID: "u1",
			setupMock: func(m *activity.MockRepository) {
				m.EXPECT().
					Append(gomock.Any(), gomock.Any()).
					Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := activity.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := activity.NewService(repo)
			err := svc.Record(context.Background(), tt.userID, activity.ActionOrderCreated, "New order ORD-1 created")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_ListByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := activity.NewMockRepository(ctrl)
	repo.EXPECT().List(gomock.Any()).Return([]*activity.Record{
		{UserID: "u1", Action: activity.ActionOrderCreated},
		{UserID: "u2", Action: activity.ActionSaleCompleted},
		{UserID: "u1", Action: activity.ActionOrderDeleted},
	}, nil)

	svc := activity.NewService(repo)
	recs, err := svc.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, activity.ActionOrderCreated, recs[0].Action)
	assert.Equal(t, activity.ActionOrderDeleted, recs[1].Action)
}
