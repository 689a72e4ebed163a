package catalogrouter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/Black-And-White-Club/retro-arcade/app/eventbus"
	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/require"
)

type fakeHandlers struct {
	played chan catalogdomain.GamePlayedPayloadV1
}

func (f *fakeHandlers) HandleListGames(http.ResponseWriter, *http.Request)        {}
func (f *fakeHandlers) HandleGetGame(http.ResponseWriter, *http.Request)          {}
func (f *fakeHandlers) HandleListGamesByGenre(http.ResponseWriter, *http.Request) {}
func (f *fakeHandlers) HandleRecordPlay(http.ResponseWriter, *http.Request)       {}

func (f *fakeHandlers) HandleGamePlayed(msg *message.Message) error {
	var p catalogdomain.GamePlayedPayloadV1
	if err := eventbus.Decode(msg, &p); err != nil {
		return err
	}
	f.played <- p
	return nil
}

func TestCatalogRouter_DeliversGamePlayed(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := eventbus.NewEventBus(logger, nil)
	defer bus.Close()

	router, err := eventbus.NewRouter(logger)
	require.NoError(t, err)

	handlers := &fakeHandlers{played: make(chan catalogdomain.GamePlayedPayloadV1, 1)}
	require.NoError(t, NewCatalogRouter(logger, router, bus).Configure(context.Background(), handlers))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = router.Run(ctx) }()
	<-router.Running()
	defer router.Close()

	msg, err := eventbus.NewMessage(catalogdomain.GamePlayedPayloadV1{GameID: 2, GameName: "Pac-Man"}, "")
	require.NoError(t, err)
	require.NoError(t, bus.Publish(catalogdomain.GamePlayedV1, msg))

	select {
	case got := <-handlers.played:
		require.Equal(t, catalogdomain.GameID(2), got.GameID)
	case <-time.After(2 * time.Second):
		t.Fatal("handler not invoked")
	}
}
