package wsproto

import "testing"

func newTestConn(maxPending int) *Conn {
	return &Conn{
		rate:          newRateBucket(1000, 0),
		maxPending:    maxPending,
		subscriptions: make(map[SubscriptionType]uint32),
	}
}

func TestConnBeginRequestGatesAtMaxPending(t *testing.T) {
	c := newTestConn(2)
	if !c.beginRequest() {
		t.Fatal("expected first beginRequest to succeed")
	}
	if !c.beginRequest() {
		t.Fatal("expected second beginRequest to succeed")
	}
	if c.beginRequest() {
		t.Fatal("expected third beginRequest to be rejected at cap")
	}
	c.endRequest()
	if !c.beginRequest() {
		t.Fatal("expected beginRequest to succeed after endRequest frees a slot")
	}
}

func TestConnSubscribeRejectsDuplicateType(t *testing.T) {
	c := newTestConn(8)
	if _, ok := c.Subscribe(SubBlocks, 4); !ok {
		t.Fatal("expected first subscribe to succeed")
	}
	if _, ok := c.Subscribe(SubBlocks, 4); ok {
		t.Fatal("expected duplicate subscription type to be rejected")
	}
}

func TestConnSubscribeRejectsOverCap(t *testing.T) {
	c := newTestConn(8)
	if _, ok := c.Subscribe(SubBlocks, 1); !ok {
		t.Fatal("expected first subscribe to succeed")
	}
	if _, ok := c.Subscribe(SubEpochs, 1); ok {
		t.Fatal("expected second distinct-type subscribe to be rejected at cap 1")
	}
	if c.SubscriptionCount() != 1 {
		t.Fatalf("subscription count = %d, want 1", c.SubscriptionCount())
	}
}

func TestConnUnsubscribeFreesSlotAndID(t *testing.T) {
	c := newTestConn(8)
	id, ok := c.Subscribe(SubBlocks, 4)
	if !ok || id == 0 {
		t.Fatalf("expected subscribe to succeed with nonzero id, got %d", id)
	}
	c.Unsubscribe(SubBlocks)
	if _, ok := c.subscribedID(SubBlocks); ok {
		t.Fatal("expected subscription to be gone after Unsubscribe")
	}
	if _, ok := c.Subscribe(SubBlocks, 4); !ok {
		t.Fatal("expected re-subscribe after unsubscribe to succeed")
	}
}

func TestConnSubscribedIDAssignsDistinctIDsPerType(t *testing.T) {
	c := newTestConn(8)
	blocksID, _ := c.Subscribe(SubBlocks, 8)
	epochsID, _ := c.Subscribe(SubEpochs, 8)
	if blocksID == epochsID {
		t.Fatalf("expected distinct subscription ids, got %d and %d", blocksID, epochsID)
	}
}
