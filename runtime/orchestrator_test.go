package runtime_test

import (
	"context"
	"fmt"
	"log/slog"
	"mood-chat/mocks"
	"mood-chat/runtime"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOrchestrator_PrepareKeywords_Uses_Stored_List(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	supervisor := mocks.NewMockISupervisor(ctrl)
	keywords := mocks.NewMockIKeywordRepository(ctrl)

	// Given an operator-edited list in storage
	keywords.EXPECT().List().Return([]string{"bridge tonight"}, nil)
	keywords.EXPECT().Add(gomock.Any()).Times(0)

	orchestrator := runtime.NewOrchestrator(slog.Default(), supervisor, keywords, runtime.NewEmbeddedKeywordLoader())
	phrases, err := orchestrator.PrepareKeywords()

	// Then the embedded files are not used
	req.NoError(err)
	req.Equal([]string{"bridge tonight"}, phrases)
}

func TestOrchestrator_PrepareKeywords_Seeds_Empty_Storage(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	supervisor := mocks.NewMockISupervisor(ctrl)
	keywords := mocks.NewMockIKeywordRepository(ctrl)
	loader := runtime.NewKeywordLoader(fstest.MapFS{
		"keywords/en.txt": {Data: []byte("suicide\nkill myself\n")},
	})

	gomock.InOrder(
		keywords.EXPECT().List().Return(nil, nil),
		keywords.EXPECT().Add("kill myself", "suicide").Return(nil),
		keywords.EXPECT().List().Return([]string{"kill myself", "suicide"}, nil),
	)

	orchestrator := runtime.NewOrchestrator(slog.Default(), supervisor, keywords, loader)
	phrases, err := orchestrator.PrepareKeywords()

	req.NoError(err)
	req.Equal([]string{"kill myself", "suicide"}, phrases)
}

func TestOrchestrator_PrepareKeywords_Storage_Error(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	keywords := mocks.NewMockIKeywordRepository(ctrl)
	keywords.EXPECT().List().Return(nil, fmt.Errorf("disk gone"))

	orchestrator := runtime.NewOrchestrator(slog.Default(), mocks.NewMockISupervisor(ctrl), keywords, runtime.NewEmbeddedKeywordLoader())
	_, err := orchestrator.PrepareKeywords()

	req.ErrorContains(err, "disk gone")
}

func TestOrchestrator_Start_Then_Stop(t *testing.T) {
	ctrl := gomock.NewController(t)
	supervisor := mocks.NewMockISupervisor(ctrl)
	worker := mocks.NewMockWorker(ctrl)
	stopped := make(chan struct{})

	supervisor.EXPECT().Add(worker).Return(supervisor)
	supervisor.EXPECT().Run(gomock.Any()).Do(func(context.Context) { <-stopped })
	supervisor.EXPECT().Stop().Do(func() { close(stopped) })

	orchestrator := runtime.NewOrchestrator(slog.Default(), supervisor, mocks.NewMockIKeywordRepository(ctrl), runtime.NewEmbeddedKeywordLoader())

	// When started then stopped
	orchestrator.Add(worker).Start(context.Background())
	orchestrator.Stop()

	// Then Stop returned only after the supervisor did
}
