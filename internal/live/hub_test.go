package live

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// startHub runs the service's hub until the test ends.
func startHub(t *testing.T, svc *Service) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Hub().Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

// receive reads the next snapshot or fails the test.
func receive(t *testing.T, sub *Subscription) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-sub.C:
		require.True(t, ok, "subscription closed unexpectedly")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a snapshot")
	}
	return Snapshot{}
}

func messageContents(t *testing.T, snap Snapshot) []string {
	t.Helper()
	views, ok := snap.Data.([]models.MessageView)
	require.True(t, ok, "snapshot data is %T, want []models.MessageView", snap.Data)
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Content)
	}
	return out
}

func TestSubscribe_DeliversInitialSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	startHub(t, svc)

	sub := svc.Hub().Subscribe(TopicMessages)
	defer sub.Close()

	snap := receive(t, sub)
	assert.Equal(t, TopicMessages, snap.Topic)
	assert.Empty(t, messageContents(t, snap))
}

func TestInvalidate_PushesFreshSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	startHub(t, svc)
	sess := registerAccount(t, svc, "pusher@example.com")

	sub := svc.Hub().Subscribe(TopicMessages)
	defer sub.Close()
	receive(t, sub) // initial, empty

	_, err := svc.SendMessage(context.Background(), sess, SendMessageInput{Content: "hello"})
	require.NoError(t, err)

	snap := receive(t, sub)
	assert.Equal(t, []string{"hello"}, messageContents(t, snap))
}

func TestPush_LatestWins(t *testing.T) {
	svc, _ := newTestService(t)
	startHub(t, svc)
	sess := registerAccount(t, svc, "burst@example.com")

	sub := svc.Hub().Subscribe(TopicMessages)
	defer sub.Close()
	receive(t, sub)

	// A burst of sends while the subscriber is not reading. Intermediate
	// snapshots may be dropped; the last one observed must be the final
	// state.
	for i := 0; i < 5; i++ {
		_, err := svc.SendMessage(context.Background(), sess, SendMessageInput{Content: fmt.Sprintf("m%d", i)})
		require.NoError(t, err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-sub.C:
			contents := messageContents(t, snap)
			if len(contents) == 5 {
				assert.Equal(t, "m4", contents[4])
				return
			}
		case <-deadline:
			t.Fatal("never observed the final state")
		}
	}
}

func TestSubscribe_OnlyRequestedTopics(t *testing.T) {
	svc, _ := newTestService(t)
	startHub(t, svc)

	sub := svc.Hub().Subscribe(TopicSchedule)
	defer sub.Close()
	snap := receive(t, sub)
	assert.Equal(t, TopicSchedule, snap.Topic)

	// A chat send must not reach a schedule-only subscriber.
	sess := registerAccount(t, svc, "quiet@example.com")
	_, err := svc.SendMessage(context.Background(), sess, SendMessageInput{Content: "noise"})
	require.NoError(t, err)

	select {
	case got := <-sub.C:
		assert.Equal(t, TopicSchedule, got.Topic)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSubscribe_UnknownTopicIgnored(t *testing.T) {
	svc, _ := newTestService(t)
	startHub(t, svc)

	sub := svc.Hub().Subscribe(Topic("bogus"))
	defer sub.Close()

	select {
	case snap, ok := <-sub.C:
		if ok {
			t.Fatalf("unexpected snapshot for topic %q", snap.Topic)
		}
	case <-time.After(200 * time.Millisecond):
	}
}

func TestClose_StopsDelivery(t *testing.T) {
	svc, _ := newTestService(t)
	startHub(t, svc)

	sub := svc.Hub().Subscribe(TopicMessages)
	receive(t, sub)
	sub.Close()
	sub.Close() // safe to repeat

	// The channel closes once the hub processes the unregister.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-sub.C:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel never closed after Close")
		}
	}
}

func TestRun_CancelClosesSubscribers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Hub().Run(ctx)
	}()

	sub := svc.Hub().Subscribe(TopicAnnouncements)
	receive(t, sub)

	cancel()
	<-done

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-sub.C:
			if !ok {
				// Late calls after shutdown must not block.
				svc.Hub().Invalidate(TopicAnnouncements)
				sub.Close()
				return
			}
		case <-deadline:
			t.Fatal("channel never closed after hub shutdown")
		}
	}
}
