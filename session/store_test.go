package session

import (
	"sync"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

const testSystemPrompt = "You are a helpful assistant."

func TestAcquireSeedsSystemPromptOnce(t *testing.T) {
	store := NewStore(testSystemPrompt)

	sess := store.Acquire("alice")
	if sess.Len() != 1 {
		t.Fatalf("new session has %d messages, want 1", sess.Len())
	}
	msgs := sess.Messages()
	if msgs[0].Role != llms.ChatMessageTypeSystem {
		t.Errorf("first message role = %q, want system", msgs[0].Role)
	}
	sess.Append(llms.TextParts(llms.ChatMessageTypeHuman, "hello"))
	sess.Release()

	// Re-acquiring must return the same history, not a reseeded one.
	again := store.Acquire("alice")
	defer again.Release()
	if again.Len() != 2 {
		t.Errorf("reacquired session has %d messages, want 2", again.Len())
	}
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	store := NewStore(testSystemPrompt)

	alice := store.Acquire("alice")
	alice.Append(llms.TextParts(llms.ChatMessageTypeHuman, "hi from alice"))
	alice.Release()

	bob := store.Acquire("bob")
	defer bob.Release()
	if bob.Len() != 1 {
		t.Errorf("bob's session has %d messages, want only the system prompt", bob.Len())
	}
	if bob.UserID() != "bob" {
		t.Errorf("UserID() = %q, want bob", bob.UserID())
	}
}

func TestMessagesReturnsSnapshot(t *testing.T) {
	store := NewStore(testSystemPrompt)

	sess := store.Acquire("alice")
	defer sess.Release()

	snapshot := sess.Messages()
	sess.Append(llms.TextParts(llms.ChatMessageTypeHuman, "hello"))
	if len(snapshot) != 1 {
		t.Errorf("snapshot grew with the session: %d messages", len(snapshot))
	}
}

func TestSameUserExchangesSerialize(t *testing.T) {
	store := NewStore(testSystemPrompt)

	const workers = 8
	const appendsPerWorker = 10

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < appendsPerWorker; j++ {
				sess := store.Acquire("alice")
				sess.Append(llms.TextParts(llms.ChatMessageTypeHuman, "m"))
				sess.Release()
			}
		}()
	}
	wg.Wait()

	sess := store.Acquire("alice")
	defer sess.Release()
	want := 1 + workers*appendsPerWorker
	if sess.Len() != want {
		t.Errorf("session has %d messages, want %d", sess.Len(), want)
	}
}
