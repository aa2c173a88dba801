package reminder

import (
	"testing"
	"time"

	"github.com/diegoclair/reminder-bot/internal/metrics"
	"github.com/diegoclair/reminder-bot/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type allMocks struct {
	mockChatClient   *mocks.MockChatClient
	mockChannel      *mocks.MockChannel
	mockForum        *mocks.MockForumChannel
	mockDataManager  *mocks.MockDataManager
	mockDeliveryRepo *mocks.MockDeliveryRepo
}

func newServiceTestMock(t *testing.T, clock clockwork.Clock) (m allMocks, s *Service, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	deliveryRepo := mocks.NewMockDeliveryRepo(ctrl)
	dm.EXPECT().Delivery().Return(deliveryRepo).AnyTimes()

	channel := mocks.NewMockChannel(ctrl)
	channel.EXPECT().ID().Return("900379983439077440").AnyTimes()

	m = allMocks{
		mockChatClient:   mocks.NewMockChatClient(ctrl),
		mockChannel:      channel,
		mockForum:        mocks.NewMockForumChannel(ctrl),
		mockDataManager:  dm,
		mockDeliveryRepo: deliveryRepo,
	}

	s = New(m.mockChatClient, dm, metrics.New(), zap.NewNop(), Options{
		Location:     time.UTC,
		PollInterval: time.Second,
		SendTimeout:  time.Second,
		Clock:        clock,
	})
	require.NotNil(t, s)

	return
}
